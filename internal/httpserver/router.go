package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodexpress/internal/domain"
	cartsvc "foodexpress/internal/service/cart"
	usersvc "foodexpress/internal/service/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type productService interface {
	List(ctx context.Context, categoryID *int64) ([]domain.Product, error)
}

type cartService interface {
	View(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userID int64, in cartsvc.AddInput) error
	Update(ctx context.Context, userID int64, in cartsvc.UpdateInput) error
	Clear(ctx context.Context, userID int64) error
}

type orderService interface {
	Create(ctx context.Context, userID int64, deliveryAddress string) (*domain.Order, error)
	Pay(ctx context.Context, userID, orderID int64) ([]domain.CourierStep, error)
	Status(ctx context.Context, userID, orderID int64) (*domain.OrderTracking, error)
}

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*usersvc.LoginResult, error)
	Authenticate(token string) (int64, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	CategorySvc categoryService
	ProductSvc  productService
	CartSvc     cartService
	OrderSvc    orderService
	UserSvc     userService
	// CORSOrigins lists allowed origins; empty or "*" allows all.
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.CategorySvc == nil:
		return errors.New("category service required")
	case d.ProductSvc == nil:
		return errors.New("product service required")
	case d.CartSvc == nil:
		return errors.New("cart service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.UserSvc == nil:
		return errors.New("user service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), cors.New(corsConfig(deps.CORSOrigins)))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	})

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	authed := authMiddleware(deps.UserSvc)

	auth := router.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", authed, h.logout)
	auth.GET("/test-token", authed, h.testToken)

	router.GET("/categories", h.listCategories)
	router.GET("/categories/:id/products", h.listCategoryProducts)
	router.GET("/products", h.listProducts)

	cart := router.Group("/cart", authed)
	cart.GET("", h.viewCart)
	cart.POST("/add", h.addToCart)
	cart.PUT("/update", h.updateCart)
	cart.POST("/clear", h.clearCart)

	order := router.Group("/order", authed)
	order.POST("/create", h.createOrder)
	order.POST("/:id/pay", h.payOrder)
	order.GET("/:id/status", h.orderStatus)

	router.GET("/account/me", authed, h.me)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	cfg.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cfg
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
