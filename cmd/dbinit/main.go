// dbinit creates (or with -reset, recreates) the schema and loads the seed
// catalog.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/config"
	"github.com/tahoebearjerky/storefront-api/internal/seed"
	"github.com/tahoebearjerky/storefront-api/internal/store"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before creating the schema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	st, err := store.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	ctx := context.Background()

	if *reset {
		logger.Warn("resetting database")
		if err := st.Drop(ctx); err != nil {
			logger.Fatal("drop failed", zap.Error(err))
		}
	}

	if err := st.Migrate(ctx); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	logger.Info("schema created", zap.String("database", st.Engine()))

	if err := seed.Run(ctx, st, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("✅ database initialized")
}
