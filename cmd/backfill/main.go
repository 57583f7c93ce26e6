// Package main provides the backfill batch job. It derives missing base
// ingredients and embeddings for the household inventory, then exits.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkcast/v2/internal/application/inventory"
	"github.com/forkcast/v2/internal/infrastructure/ai/ollama"
	"github.com/forkcast/v2/internal/infrastructure/ai/openai"
	"github.com/forkcast/v2/internal/infrastructure/config"
	"github.com/forkcast/v2/internal/infrastructure/container"
	gormrepo "github.com/forkcast/v2/internal/infrastructure/persistence/gorm"
	"github.com/forkcast/v2/internal/ports/outbound"
	"github.com/forkcast/v2/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := container.NewDatabase(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	repo := gormrepo.NewInventoryRepository(db)

	var ai outbound.AIService = openai.NewClient(cfg, zapLogger)
	if cfg.AI.Provider == "ollama" {
		ai = ollama.NewClient(zapLogger)
	}

	backfill := inventory.NewBackfill(repo, ai, zapLogger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, 10*time.Minute)
	defer timeoutCancel()

	report, err := backfill.Run(ctx)
	if err != nil {
		zapLogger.Fatal("Backfill failed", zap.Error(err))
	}

	fmt.Printf("Backfill complete: %d base ingredients derived, %d embeddings computed, %d skipped\n",
		report.BaseIngredientsDerived,
		report.EmbeddingsComputed,
		report.Skipped,
	)
}
