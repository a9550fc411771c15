package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"foodexpress/internal/config"
	"foodexpress/internal/db"
	"foodexpress/internal/importer"
	"foodexpress/internal/logging"
	categoryrepo "foodexpress/internal/repository/category"
	productrepo "foodexpress/internal/repository/product"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV (category,name,description,price,image_url)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger, err := logging.New("importer", cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool), logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("import done",
		zap.String("file", filePath),
		zap.Int("products", count),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
}
