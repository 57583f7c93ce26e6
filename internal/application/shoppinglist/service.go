// Package shoppinglist implements the shopping list use cases
package shoppinglist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forkcast/v2/internal/domain/ingredient"
	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/matching"
	domain "github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/forkcast/v2/internal/ports/outbound"
	apperrors "github.com/forkcast/v2/pkg/errors"
	"github.com/google/uuid"
)

const (
	cacheTTL        = 10 * time.Minute
	weekKeyPattern  = "shoppinglist:week:*"
	settingsPattern = "inventory:settings:*"
)

// Service orchestrates the weekly shopping list: creation, seeding, meal
// sync, manual items and inventory toggles
type Service struct {
	lists     outbound.ShoppingListRepository
	inventory outbound.InventoryRepository
	mealPlans outbound.MealPlanRepository
	ai        outbound.AIService
	cache     outbound.CacheRepository
	threshold float64
	logger    *zap.Logger
}

// NewService creates a new shopping list service
func NewService(
	lists outbound.ShoppingListRepository,
	inventoryRepo outbound.InventoryRepository,
	mealPlans outbound.MealPlanRepository,
	ai outbound.AIService,
	cache outbound.CacheRepository,
	threshold float64,
	logger *zap.Logger,
) *Service {
	return &Service{
		lists:     lists,
		inventory: inventoryRepo,
		mealPlans: mealPlans,
		ai:        ai,
		cache:     cache,
		threshold: threshold,
		logger:    logger.Named("shoppinglist-service"),
	}
}

// GetWeek returns the list for the given week, creating and seeding it on
// first access
func (s *Service) GetWeek(ctx context.Context, weekStart time.Time) (*inbound.ShoppingListDTO, error) {
	ws := domain.NormalizeWeekStart(weekStart)

	key := weekCacheKey(ws)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var dto inbound.ShoppingListDTO
		if json.Unmarshal(data, &dto) == nil {
			return &dto, nil
		}
	}

	list, err := s.ensureExists(ctx, ws)
	if err != nil {
		return nil, err
	}

	dto := s.toDTO(list)
	if data, err := json.Marshal(dto); err == nil {
		_ = s.cache.Set(ctx, key, data, cacheTTL)
	}
	return dto, nil
}

// SyncMealIngredients regenerates the meal partition of the week's list
// from the planned recipes in the 7-day window
func (s *Service) SyncMealIngredients(ctx context.Context, weekStart time.Time) (*inbound.ShoppingListDTO, error) {
	ws := domain.NormalizeWeekStart(weekStart)
	s.logger.Info("Syncing meal ingredients", zap.Time("week_start", ws))

	from, to := domain.WeekWindow(ws)
	days, err := s.mealPlans.FindDaysInRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load meal plan days", err)
	}

	aggregated := ingredient.Aggregate(collectIngredients(days))

	list, err := s.ensureExists(ctx, ws)
	if err != nil {
		return nil, err
	}

	covered, err := s.matchAgainstInventory(ctx, aggregated)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(aggregated))
	for i, agg := range aggregated {
		if covered[i] {
			continue
		}
		notes := ""
		if len(agg.Sources) > 0 {
			notes = "For: " + strings.Join(agg.Sources, ", ")
		}
		items = append(items, domain.NewItem(agg.Name, domain.SourceMeal, notes, i))
	}

	if err := s.lists.ReplaceMealItems(ctx, list.ID(), items); err != nil {
		return nil, apperrors.NewDatabaseError("replace meal items", err)
	}

	s.logger.Info("Meal partition replaced",
		zap.Time("week_start", ws),
		zap.Int("aggregated", len(aggregated)),
		zap.Int("needed", len(items)),
	)

	s.invalidateCaches(ws)
	return s.loadDTO(ctx, ws)
}

// AddManualItem appends a hand-typed entry to the week's list
func (s *Service) AddManualItem(ctx context.Context, cmd inbound.AddManualItemCommand) (*inbound.ShoppingListDTO, error) {
	ws := domain.NormalizeWeekStart(cmd.WeekStart)

	list, err := s.ensureExists(ctx, ws)
	if err != nil {
		return nil, err
	}

	item := domain.NewItem(strings.TrimSpace(cmd.Name), domain.SourceManual, cmd.Notes, nextOrder(list, domain.SourceManual))
	if err := list.CanAddItem(item); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.lists.InsertItems(ctx, list.ID(), []domain.Item{item}); err != nil {
		return nil, apperrors.NewDatabaseError("insert manual item", err)
	}

	s.invalidateCaches(ws)
	return s.loadDTO(ctx, ws)
}

// SetItemChecked flips the checked flag on one item
func (s *Service) SetItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) error {
	if err := s.lists.UpdateItemChecked(ctx, itemID, checked); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return apperrors.NewItemNotFoundError(itemID.String())
		}
		return apperrors.NewDatabaseError("update item checked state", err)
	}

	s.invalidateWeekPattern()
	return nil
}

// ToggleInventoryItem includes or excludes an inventory item on a week's
// list. Inclusion enforces (name, source) uniqueness; exclusion of an
// absent item is a no-op.
func (s *Service) ToggleInventoryItem(ctx context.Context, cmd inbound.ToggleInventoryItemCommand) (*inbound.ShoppingListDTO, error) {
	ws := domain.NormalizeWeekStart(cmd.WeekStart)

	invItem, err := s.inventory.FindByID(ctx, cmd.InventoryItemID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, apperrors.NewInventoryItemNotFoundError(cmd.InventoryItemID.String())
		}
		return nil, apperrors.NewDatabaseError("load inventory item", err)
	}

	list, err := s.ensureExists(ctx, ws)
	if err != nil {
		return nil, err
	}

	source := domain.SourceRestock
	if invItem.IsStaple() {
		source = domain.SourceStaple
	}

	if cmd.Included {
		if list.HasItem(invItem.Name, source) {
			return nil, apperrors.NewDuplicateItemError(invItem.Name, string(source))
		}
		item := domain.NewItem(invItem.Name, source, "", nextOrder(list, source))
		if err := s.lists.InsertItems(ctx, list.ID(), []domain.Item{item}); err != nil {
			return nil, apperrors.NewDatabaseError("insert toggled item", err)
		}
	} else {
		if err := s.lists.DeleteItemByNameAndSource(ctx, list.ID(), invItem.Name, source); err != nil && !errors.Is(err, domain.ErrItemNotFound) {
			return nil, apperrors.NewDatabaseError("delete toggled item", err)
		}
	}

	s.invalidateCaches(ws)
	return s.loadDTO(ctx, ws)
}

// ensureExists returns the week's list, creating it seeded with the
// current staples when absent. Idempotent.
func (s *Service) ensureExists(ctx context.Context, ws time.Time) (*domain.ShoppingList, error) {
	list, err := s.lists.FindByWeekStart(ctx, ws)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("find shopping list", err)
	}

	staples, err := s.inventory.FindStaples(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load staples", err)
	}

	list = domain.NewShoppingList(ws)
	for i, staple := range staples {
		if err := list.AddItem(domain.NewItem(staple.Name, domain.SourceStaple, "", i)); err != nil {
			s.logger.Warn("Skipping staple during seed",
				zap.String("name", staple.Name),
				zap.Error(err),
			)
		}
	}

	if err := s.lists.Create(ctx, list); err != nil {
		// Lost a create race for this week; use the winner's row.
		if existing, findErr := s.lists.FindByWeekStart(ctx, ws); findErr == nil {
			return existing, nil
		}
		return nil, apperrors.NewDatabaseError("create shopping list", err)
	}

	s.logger.Info("Shopping list created",
		zap.String("list_id", list.ID().String()),
		zap.Time("week_start", ws),
		zap.Int("staples_seeded", len(list.Items())),
	)

	return list, nil
}

// matchAgainstInventory decides, per aggregated ingredient, whether the
// household already has it. Inventory storage errors are fatal; any
// embedding or shape failure fails open so nothing gets filtered.
func (s *Service) matchAgainstInventory(ctx context.Context, aggregated []ingredient.Aggregated) ([]bool, error) {
	covered := make([]bool, len(aggregated))
	if len(aggregated) == 0 {
		return covered, nil
	}

	invItems, err := s.inventory.FindMatchable(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load matchable inventory", err)
	}
	if len(invItems) == 0 {
		return covered, nil
	}

	names := make([]string, len(aggregated))
	for i, agg := range aggregated {
		names[i] = agg.Name
	}

	vectors, err := s.ai.ComputeEmbeddings(ctx, names)
	if err != nil {
		s.logger.Warn("Embedding call failed, failing open", zap.Error(err))
		return covered, nil
	}
	if len(vectors) != len(names) {
		s.logger.Warn("Embedding response shape mismatch, failing open",
			zap.Int("requested", len(names)),
			zap.Int("received", len(vectors)),
		)
		return covered, nil
	}

	candidates := make([]matching.InventoryVector, len(invItems))
	for i, item := range invItems {
		candidates[i] = matching.InventoryVector{
			Name:      item.BaseIngredient,
			Embedding: item.Embedding,
		}
	}

	for i, result := range matching.FindBestMatches(vectors, candidates, s.threshold) {
		covered[i] = result.Matched
		if result.Matched {
			s.logger.Debug("Ingredient covered by inventory",
				zap.String("ingredient", names[i]),
				zap.String("matched", result.Match),
				zap.Float64("score", result.BestScore),
			)
		}
	}

	return covered, nil
}

func (s *Service) loadDTO(ctx context.Context, ws time.Time) (*inbound.ShoppingListDTO, error) {
	list, err := s.lists.FindByWeekStart(ctx, ws)
	if err != nil {
		return nil, apperrors.NewDatabaseError("reload shopping list", err)
	}
	return s.toDTO(list), nil
}

func (s *Service) toDTO(list *domain.ShoppingList) *inbound.ShoppingListDTO {
	items := list.Items()
	dtos := make([]inbound.ShoppingListItemDTO, len(items))
	for i, item := range items {
		dtos[i] = inbound.ShoppingListItemDTO{
			ID:      item.ID,
			Name:    item.Name,
			Checked: item.Checked,
			Source:  string(item.Source),
			Notes:   item.Notes,
			Order:   item.SortOrder,
		}
	}

	return &inbound.ShoppingListDTO{
		ID:        list.ID(),
		WeekStart: list.WeekStart(),
		Items:     dtos,
		CreatedAt: list.CreatedAt(),
		UpdatedAt: list.UpdatedAt(),
	}
}

// invalidateCaches drops cached views touched by a mutation. Fire and
// forget: never part of the transactional unit, failures only logged.
func (s *Service) invalidateCaches(ws time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.cache.Delete(ctx, weekCacheKey(ws)); err != nil {
			s.logger.Debug("Cache invalidation failed", zap.Error(err))
		}
		if err := s.cache.DeletePattern(ctx, settingsPattern); err != nil {
			s.logger.Debug("Settings cache invalidation failed", zap.Error(err))
		}
	}()
}

func (s *Service) invalidateWeekPattern() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.cache.DeletePattern(ctx, weekKeyPattern); err != nil {
			s.logger.Debug("Cache invalidation failed", zap.Error(err))
		}
	}()
}

func weekCacheKey(ws time.Time) string {
	return fmt.Sprintf("shoppinglist:week:%s", ws.Format("2006-01-02"))
}

func nextOrder(list *domain.ShoppingList, source domain.Source) int {
	max := -1
	for _, item := range list.ItemsBySource(source) {
		if item.SortOrder > max {
			max = item.SortOrder
		}
	}
	return max + 1
}
