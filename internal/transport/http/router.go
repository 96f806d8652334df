package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/handlers"
	auth "github.com/zarascrunch/storefront/internal/middleware/auth"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.AdminOrderHandler
	ProjectHandler  *handlers.ProjectHandler
	CommentHandler  *handlers.CommentHandler
	ReviewHandler   *handlers.ReviewHandler
	SearchHandler   *handlers.SearchHandler
	TokenService    *auth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	v1.POST("/checkout", d.CheckoutHandler.Checkout)
	v1.GET("/orders/:id", d.CheckoutHandler.GetOrder)

	v1.GET("/projects", d.ProjectHandler.ListProjects)
	v1.GET("/projects/:id/comments", d.CommentHandler.ListComments)
	v1.POST("/projects/:id/comments", d.CommentHandler.AddComment)

	v1.GET("/reviews", d.ReviewHandler.ListReviews)
	v1.POST("/reviews", d.ReviewHandler.SubmitReview)

	admin := v1.Group("/admin", d.TokenService.RequireAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.GET("/orders", d.OrderHandler.ListOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	admin.POST("/projects", d.ProjectHandler.CreateProject)
	admin.PATCH("/projects/:id", d.ProjectHandler.UpdateProject)
	admin.DELETE("/projects/:id", d.ProjectHandler.DeleteProject)

	admin.PATCH("/comments/:id/approve", d.CommentHandler.ApproveComment)
	admin.DELETE("/comments/:id", d.CommentHandler.DeleteComment)
	admin.POST("/comments/:id/reply", d.CommentHandler.ReplyToComment)

	admin.PATCH("/reviews/:id/approve", d.ReviewHandler.ApproveReview)
	admin.DELETE("/reviews/:id", d.ReviewHandler.DeleteReview)
}

// ErrorHandler maps the closed error-kind set onto HTTP statuses and a
// uniform JSON error shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()

	var appErr *apperr.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Kind.HTTPStatus()
		message = appErr.Msg
		if appErr.Err != nil {
			// backend failures surface the raw driver message
			message = appErr.Err.Error()
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	_ = c.JSON(status, handlers.Response{Status: "error", Message: message})
}
