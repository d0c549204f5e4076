package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
)

func seedPurchase(t *testing.T, r *repo.GormRepo, productID, profileID uint, qty uint, amount string, date time.Time) {
	t.Helper()
	purchase := models.Purchase{
		ProductID: productID,
		ProfileID: profileID,
		Date:      date,
		Quantity:  qty,
		Amount:    decimal.RequireFromString(amount),
		TaxRate:   DefaultTaxRate,
	}
	require.NoError(t, r.DB.Create(&purchase).Error)
}

func TestTopProducts_TenRowsSortedByUnits(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReportService{Repo: r}
	ctx := context.Background()

	_, profile := seedCustomer(t, r, "buyer", "0.00")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 12 products, product i sold i units
	for i := 1; i <= 12; i++ {
		p := seedProduct(t, r, "acme", fmt.Sprintf("item %d", i), fmt.Sprintf("M-%d", i), 100, "2.00")
		seedPurchase(t, r, p.ID, profile.ID, uint(i), fmt.Sprintf("%d.00", 2*i), base.Add(time.Duration(i)*time.Hour))
	}

	rows, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	assert.EqualValues(t, 12, rows[0].Units)
	assert.Equal(t, "item 12", rows[0].Name)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Units, rows[i].Units)
	}
	// products 1 and 2 fall off the report
	assert.EqualValues(t, 3, rows[9].Units)
}

func TestTopProducts_AggregatesRepeatSales(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReportService{Repo: r}
	ctx := context.Background()

	_, profile := seedCustomer(t, r, "buyer", "0.00")
	p := seedProduct(t, r, "acme", "widget", "W-1", 100, "5.00")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seedPurchase(t, r, p.ID, profile.ID, 2, "10.00", base)
	seedPurchase(t, r, p.ID, profile.ID, 3, "15.00", base.Add(time.Hour))

	rows, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 5, rows[0].Units)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("25.00")),
		"amount = %s", rows[0].Amount)
}

func TestTopCustomers_SortedBySpend(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReportService{Repo: r}
	ctx := context.Background()

	p := seedProduct(t, r, "acme", "widget", "W-1", 100, "5.00")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		_, profile := seedCustomer(t, r, fmt.Sprintf("buyer%d", i), "0.00")
		seedPurchase(t, r, p.ID, profile.ID, uint(i), fmt.Sprintf("%d.00", 10*i), base.Add(time.Duration(i)*time.Hour))
	}

	rows, err := svc.TopCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "buyer3", rows[0].Username)
	assert.True(t, rows[0].Spent.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, "buyer1", rows[2].Username)
}

func TestPurchaseHistory_PagesNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	svc := &ReportService{Repo: r}
	ctx := context.Background()

	_, profile := seedCustomer(t, r, "buyer", "0.00")
	p := seedProduct(t, r, "acme", "widget", "W-1", 100, "5.00")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedPurchase(t, r, p.ID, profile.ID, 1, "5.00", base.Add(time.Duration(i)*time.Hour))
	}

	total, page, err := svc.PurchaseHistory(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.True(t, page[0].Date.After(page[1].Date))

	_, rest, err := svc.PurchaseHistory(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
