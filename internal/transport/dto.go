package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateBrandRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	BrandID uint            `json:"brand_id"`
	Name    string          `json:"name"`
	Model   string          `json:"model"`
	Stock   uint            `json:"stock"`
	Price   decimal.Decimal `json:"price"`
	VIP     bool            `json:"vip"`
}

type PatchProductRequest struct {
	BrandID *uint            `json:"brand_id"`
	Name    *string          `json:"name"`
	Model   *string          `json:"model"`
	Stock   *uint            `json:"stock"`
	Price   *decimal.Decimal `json:"price"`
	VIP     *bool            `json:"vip"`
}

type CheckoutRequest struct {
	Quantity int `json:"quantity"`
}

type ProfileRequest struct {
	VIP     *bool            `json:"vip"`
	Balance *decimal.Decimal `json:"balance"`
}

type AddressRequest struct {
	Shipping string `json:"shipping"`
	Billing  string `json:"billing"`
}

// CardRequest carries the expiry as YYYY-MM.
type CardRequest struct {
	Name    string `json:"name"`
	Network string `json:"network"`
	Holder  string `json:"holder"`
	Expiry  string `json:"expiry"`
}

type CommentRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type PatchCommentRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

type ModerateCommentRequest struct {
	Moderated bool `json:"moderated"`
}

// ProductSalesRow is one line of the top-products report.
type ProductSalesRow struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Model     string          `json:"model"`
	Units     int64           `json:"units"`
	Amount    decimal.Decimal `json:"amount"`
}

// CustomerSpendRow is one line of the top-customers report.
type CustomerSpendRow struct {
	ProfileID uint            `json:"profile_id"`
	Username  string          `json:"username"`
	Spent     decimal.Decimal `json:"spent"`
}
