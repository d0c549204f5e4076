package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth     *AuthHTTP
	Catalog  *CatalogHTTP
	Checkout *CheckoutHTTP
	Profile  *ProfileHTTP
	Comments *CommentHTTP
	Reports  *ReportHTTP
	Search   *SearchHTTP
	AuthMW   *AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)

	v1.GET("/brands", d.Catalog.ListBrands)
	v1.GET("/products", d.Catalog.ListProducts)
	v1.GET("/products/:id", d.Catalog.GetProduct)
	v1.GET("/products/:id/comments", d.Comments.ListForProduct)
	v1.GET("/search", d.Search.Search)

	user := v1.Group("", d.AuthMW.RequireLogin)
	user.POST("/checkout/:id", d.Checkout.Checkout)
	user.GET("/profile", d.Profile.GetProfile)
	user.PUT("/profile", d.Profile.UpdateProfile)
	user.GET("/profile/address", d.Profile.GetAddress)
	user.PUT("/profile/address", d.Profile.UpdateAddress)
	user.GET("/profile/card", d.Profile.GetCard)
	user.PUT("/profile/card", d.Profile.UpdateCard)
	user.POST("/products/:id/comments", d.Comments.Create)
	user.PATCH("/comments/:id", d.Comments.Edit)

	admin := v1.Group("/admin", d.AuthMW.RequireAdmin)
	admin.POST("/brands", d.Catalog.CreateBrand)
	admin.DELETE("/brands/:id", d.Catalog.DeleteBrand)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.POST("/comments/:id/moderate", d.Comments.Moderate)
	admin.GET("/reports/top-products", d.Reports.TopProducts)
	admin.GET("/reports/top-customers", d.Reports.TopCustomers)
	admin.GET("/reports/history", d.Reports.PurchaseHistory)
}
