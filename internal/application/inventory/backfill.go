package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/forkcast/v2/internal/ports/outbound"
	apperrors "github.com/forkcast/v2/pkg/errors"
)

// Backfill derives missing base ingredients and embeddings for the master
// list. It runs as a detached batch job; the sync path only ever reads
// what this has already persisted.
type Backfill struct {
	repo   outbound.InventoryRepository
	ai     outbound.AIService
	logger *zap.Logger
}

// NewBackfill creates a new backfill job
func NewBackfill(repo outbound.InventoryRepository, ai outbound.AIService, logger *zap.Logger) *Backfill {
	return &Backfill{
		repo:   repo,
		ai:     ai,
		logger: logger.Named("inventory-backfill"),
	}
}

// Run processes the whole master list in two batched passes: base
// ingredient derivation, then embedding computation. Unlike the request
// path there is no fail-open here; a provider error aborts the run so it
// can be retried whole.
func (b *Backfill) Run(ctx context.Context) (*inbound.BackfillReport, error) {
	items, err := b.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load inventory", err)
	}

	report := &inbound.BackfillReport{}

	if err := b.deriveBaseIngredients(ctx, items, report); err != nil {
		return nil, err
	}
	if err := b.computeEmbeddings(ctx, items, report); err != nil {
		return nil, err
	}

	b.logger.Info("Backfill complete",
		zap.Int("base_ingredients_derived", report.BaseIngredientsDerived),
		zap.Int("embeddings_computed", report.EmbeddingsComputed),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}

func (b *Backfill) deriveBaseIngredients(ctx context.Context, items []*domain.Item, report *inbound.BackfillReport) error {
	var pending []*domain.Item
	for _, item := range items {
		if item.BaseIngredient == "" {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	names := make([]string, len(pending))
	for i, item := range pending {
		names[i] = item.Name
	}

	bases, err := b.ai.DeriveBaseIngredients(ctx, names)
	if err != nil {
		return apperrors.NewExternalServiceError("ai provider", err)
	}
	if len(bases) != len(pending) {
		return apperrors.NewExternalServiceError("ai provider",
			fmt.Errorf("requested %d base ingredients, received %d", len(pending), len(bases)))
	}

	for i, item := range pending {
		base := strings.ToLower(strings.TrimSpace(bases[i]))
		if base == "" {
			report.Skipped++
			continue
		}
		item.BaseIngredient = base
		if err := b.repo.Update(ctx, item); err != nil {
			return apperrors.NewDatabaseError("save base ingredient", err)
		}
		report.BaseIngredientsDerived++
	}

	return nil
}

func (b *Backfill) computeEmbeddings(ctx context.Context, items []*domain.Item, report *inbound.BackfillReport) error {
	var pending []*domain.Item
	for _, item := range items {
		if item.BaseIngredient != "" && len(item.Embedding) == 0 {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	texts := make([]string, len(pending))
	for i, item := range pending {
		texts[i] = item.BaseIngredient
	}

	vectors, err := b.ai.ComputeEmbeddings(ctx, texts)
	if err != nil {
		return apperrors.NewExternalServiceError("ai provider", err)
	}
	if len(vectors) != len(pending) {
		return apperrors.NewExternalServiceError("ai provider",
			fmt.Errorf("requested %d embeddings, received %d", len(pending), len(vectors)))
	}

	for i, item := range pending {
		item.Embedding = vectors[i]
		if err := b.repo.Update(ctx, item); err != nil {
			return apperrors.NewDatabaseError("save embedding", err)
		}
		report.EmbeddingsComputed++
	}

	return nil
}
