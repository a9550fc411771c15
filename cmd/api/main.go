package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodexpress/internal/cache"
	"foodexpress/internal/config"
	"foodexpress/internal/db"
	"foodexpress/internal/httpserver"
	"foodexpress/internal/logging"
	cartrepo "foodexpress/internal/repository/cart"
	categoryrepo "foodexpress/internal/repository/category"
	orderrepo "foodexpress/internal/repository/order"
	productrepo "foodexpress/internal/repository/product"
	userrepo "foodexpress/internal/repository/user"
	cartsvc "foodexpress/internal/service/cart"
	categorysvc "foodexpress/internal/service/category"
	ordersvc "foodexpress/internal/service/order"
	productsvc "foodexpress/internal/service/product"
	usersvc "foodexpress/internal/service/user"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger, err := logging.New("api", cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("status cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
		}
	}

	productService := productsvc.New(productrepo.NewPostgres(dbpool, logger))
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	cartService := cartsvc.New(cartrepo.NewPostgres(dbpool), productService)
	statusCache := cache.NewOrderStatus(rdb, cfg.StatusCacheTTL, logger)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), statusCache, logger)
	userService := usersvc.New(userrepo.NewPostgres(dbpool, logger), cfg.JWTSecret, cfg.TokenTTL, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CategorySvc: categoryService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		UserSvc:     userService,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
