// Package inventory implements the household master list use cases and
// the offline AI backfill
package inventory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/forkcast/v2/internal/ports/outbound"
	apperrors "github.com/forkcast/v2/pkg/errors"
	"github.com/google/uuid"
)

const settingsPattern = "inventory:settings:*"

// Service manages the household master list
type Service struct {
	repo   outbound.InventoryRepository
	cache  outbound.CacheRepository
	logger *zap.Logger
}

// NewService creates a new inventory service
func NewService(repo outbound.InventoryRepository, cache outbound.CacheRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("inventory-service"),
	}
}

// ListItems returns every item on the master list
func (s *Service) ListItems(ctx context.Context) ([]inbound.InventoryItemDTO, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list inventory items", err)
	}

	dtos := make([]inbound.InventoryItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toDTO(item)
	}
	return dtos, nil
}

// CreateItem adds an item to the master list. Base ingredient and
// embedding stay empty until the backfill runs.
func (s *Service) CreateItem(ctx context.Context, cmd inbound.CreateInventoryItemCommand) (*inbound.InventoryItemDTO, error) {
	item, err := domain.NewItem(cmd.Name, domain.Type(cmd.Type), cmd.CategoryID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("create inventory item", err)
	}

	s.logger.Info("Inventory item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.String("type", string(item.Type)),
	)

	s.invalidateSettings()
	dto := toDTO(item)
	return &dto, nil
}

// DeleteItem removes an item from the master list
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperrors.NewInventoryItemNotFoundError(id.String())
		}
		return apperrors.NewDatabaseError("delete inventory item", err)
	}

	s.invalidateSettings()
	return nil
}

func (s *Service) invalidateSettings() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.cache.DeletePattern(ctx, settingsPattern); err != nil {
			s.logger.Debug("Settings cache invalidation failed", zap.Error(err))
		}
	}()
}

func toDTO(item *domain.Item) inbound.InventoryItemDTO {
	return inbound.InventoryItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		BaseIngredient: item.BaseIngredient,
		Type:           string(item.Type),
		CategoryID:     item.CategoryID,
		HasEmbedding:   len(item.Embedding) > 0,
	}
}
