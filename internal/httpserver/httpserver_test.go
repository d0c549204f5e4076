package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
	"github.com/tienda-shop/tienda/internal/service"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Auth     *AuthHTTP
	Checkout *CheckoutHTTP
	Comments *CommentHTTP
	Tokens   *service.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Brand{},
		&models.Product{},
		&models.User{},
		&models.CustomerProfile{},
		&models.Purchase{},
		&models.Address{},
		&models.PaymentCard{},
		&models.Comment{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := repo.New(db)
	tokens := &service.TokenService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Repo:     r,
		Auth:     &AuthHTTP{Svc: &service.AccountService{Repo: r, Tokens: tokens}},
		Checkout: &CheckoutHTTP{Svc: &service.CheckoutService{Repo: r}},
		Comments: &CommentHTTP{Svc: &service.CommentService{Repo: r}},
		Tokens:   tokens,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) register(username string) *models.User {
	env.T.Helper()

	payload := map[string]string{
		"username": username,
		"password": "password",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	require.NoError(env.T, env.Auth.Register(c))
	require.Equal(env.T, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &user))
	return &user
}

func (env *testEnv) topUp(userID uint, balance string) {
	env.T.Helper()

	var profile models.CustomerProfile
	require.NoError(env.T, env.DB.Where("user_id = ?", userID).First(&profile).Error)
	profile.Balance = decimal.RequireFromString(balance)
	require.NoError(env.T, env.DB.Save(&profile).Error)
}

func (env *testEnv) seedProduct(name, model string, stock uint, price string) *models.Product {
	env.T.Helper()

	brand := models.Brand{Name: "brand for " + model}
	require.NoError(env.T, env.DB.Create(&brand).Error)

	product := models.Product{
		BrandID: brand.ID,
		Name:    name,
		Model:   model,
		Stock:   stock,
		Price:   decimal.RequireFromString(price),
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}
