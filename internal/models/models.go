package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

// Product stock is a uint so it can never go negative; the pair
// (brand_id, model) identifies a product.
type Product struct {
	ID      uint            `gorm:"primaryKey;autoIncrement"                      json:"id"`
	BrandID uint            `gorm:"not null;uniqueIndex:idx_products_brand_model" json:"brand_id"`
	Brand   *Brand          `gorm:"constraint:OnDelete:RESTRICT"                  json:"brand,omitempty"`
	Name    string          `gorm:"size:50;not null"                              json:"name"`
	Model   string          `gorm:"size:50;not null;uniqueIndex:idx_products_brand_model" json:"model"`
	Stock   uint            `json:"stock"`
	Price   decimal.Decimal `gorm:"type:decimal(12,2);not null"                   json:"price"`
	VIP     bool            `gorm:"default:false"                                 json:"vip"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// CustomerProfile holds the wallet balance, one per user.
type CustomerProfile struct {
	ID      uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID  uint            `gorm:"uniqueIndex;not null"        json:"user_id"`
	VIP     bool            `gorm:"default:false"               json:"vip"`
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`
}

// Purchase rows are written only by the checkout transaction and never
// updated afterwards.
type Purchase struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"                   json:"id"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_purchases_natural" json:"product_id"`
	ProfileID uint            `gorm:"not null;uniqueIndex:idx_purchases_natural" json:"profile_id"`
	Date      time.Time       `gorm:"not null;uniqueIndex:idx_purchases_natural" json:"date"`
	Quantity  uint            `gorm:"not null"                                   json:"quantity"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"                json:"amount"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(12,2);default:0.21"            json:"tax_rate"`
}

type Address struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"uniqueIndex;not null"     json:"user_id"`
	Shipping string `json:"shipping"`
	Billing  string `json:"billing"`
}

type PaymentCard struct {
	ID      uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	Name    string     `gorm:"size:40"                  json:"name"`
	Network string     `gorm:"size:20"                  json:"network"`
	Holder  string     `gorm:"size:40"                  json:"holder"`
	Expiry  *time.Time `json:"expiry,omitempty"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	Text      string    `json:"text"`
	Rating    int       `gorm:"not null"                 json:"rating"`
	Moderated bool      `gorm:"default:false"            json:"moderated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
