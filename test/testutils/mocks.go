// Package testutils provides mocks and factories shared by tests
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/mealplan"
	"github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockShoppingListRepository mocks outbound.ShoppingListRepository. It
// keeps created lists in memory so FindByWeekStart can return what Create
// and ReplaceMealItems wrote, which the reconciler tests rely on.
type MockShoppingListRepository struct {
	mock.Mock
	lists map[time.Time]*shoppinglist.ShoppingList
	mu    sync.RWMutex
}

// NewMockShoppingListRepository creates the mock with empty storage
func NewMockShoppingListRepository() *MockShoppingListRepository {
	return &MockShoppingListRepository{
		lists: make(map[time.Time]*shoppinglist.ShoppingList),
	}
}

// Create stores a list when the programmed call succeeds
func (m *MockShoppingListRepository) Create(ctx context.Context, list *shoppinglist.ShoppingList) error {
	args := m.Called(ctx, list)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.lists[list.WeekStart()] = list
		m.mu.Unlock()
	}
	return args.Error(0)
}

// FindByWeekStart returns the stored list for the week if any
func (m *MockShoppingListRepository) FindByWeekStart(ctx context.Context, weekStart time.Time) (*shoppinglist.ShoppingList, error) {
	args := m.Called(ctx, weekStart)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if list, ok := m.lists[weekStart]; ok {
		return list, nil
	}
	if list, ok := args.Get(0).(*shoppinglist.ShoppingList); ok {
		return list, nil
	}
	return nil, shoppinglist.ErrNotFound
}

// FindItemByID returns a programmed item
func (m *MockShoppingListRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*shoppinglist.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shoppinglist.Item), nil
}

// InsertItems appends items to the stored list
func (m *MockShoppingListRepository) InsertItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error {
	args := m.Called(ctx, listID, items)
	if args.Error(0) == nil {
		m.mu.Lock()
		if list := m.findByID(listID); list != nil {
			for _, item := range items {
				_ = list.AddItem(item)
			}
		}
		m.mu.Unlock()
	}
	return args.Error(0)
}

// DeleteItemByNameAndSource removes a (name, source) item from the stored list
func (m *MockShoppingListRepository) DeleteItemByNameAndSource(ctx context.Context, listID uuid.UUID, name string, source shoppinglist.Source) error {
	args := m.Called(ctx, listID, name, source)
	if args.Error(0) == nil {
		m.mu.Lock()
		if list := m.findByID(listID); list != nil {
			_ = list.RemoveItem(name, source)
		}
		m.mu.Unlock()
	}
	return args.Error(0)
}

// UpdateItemChecked flips the checked flag on the stored item
func (m *MockShoppingListRepository) UpdateItemChecked(ctx context.Context, itemID uuid.UUID, checked bool) error {
	args := m.Called(ctx, itemID, checked)
	if args.Error(0) == nil {
		m.mu.Lock()
		for _, list := range m.lists {
			if list.SetItemChecked(itemID, checked) == nil {
				break
			}
		}
		m.mu.Unlock()
	}
	return args.Error(0)
}

// ReplaceMealItems swaps the meal partition on the stored list
func (m *MockShoppingListRepository) ReplaceMealItems(ctx context.Context, listID uuid.UUID, items []shoppinglist.Item) error {
	args := m.Called(ctx, listID, items)
	if args.Error(0) == nil {
		m.mu.Lock()
		if list := m.findByID(listID); list != nil {
			list.ReplaceMealItems(items)
		}
		m.mu.Unlock()
	}
	return args.Error(0)
}

// StoredList exposes the stored list for assertions
func (m *MockShoppingListRepository) StoredList(weekStart time.Time) *shoppinglist.ShoppingList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lists[weekStart]
}

func (m *MockShoppingListRepository) findByID(listID uuid.UUID) *shoppinglist.ShoppingList {
	for _, list := range m.lists {
		if list.ID() == listID {
			return list
		}
	}
	return nil
}

// MockInventoryRepository mocks outbound.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

// Create records an inventory item creation
func (m *MockInventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Update records an inventory item update
func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Delete records an inventory item deletion
func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindByID returns a programmed inventory item
func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), nil
}

// FindAll returns the programmed master list
func (m *MockInventoryRepository) FindAll(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), nil
}

// FindStaples returns the programmed staples
func (m *MockInventoryRepository) FindStaples(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), nil
}

// FindMatchable returns the programmed matchable items
func (m *MockInventoryRepository) FindMatchable(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), nil
}

// MockMealPlanRepository mocks outbound.MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

// FindDaysInRange returns the programmed plan days
func (m *MockMealPlanRepository) FindDaysInRange(ctx context.Context, from, to time.Time) ([]*mealplan.Day, error) {
	args := m.Called(ctx, from, to)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mealplan.Day), nil
}

// MockAIService mocks outbound.AIService
type MockAIService struct {
	mock.Mock
}

// ComputeEmbeddings returns programmed vectors
func (m *MockAIService) ComputeEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	args := m.Called(ctx, texts)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), nil
}

// DeriveBaseIngredients returns programmed base ingredient names
func (m *MockAIService) DeriveBaseIngredients(ctx context.Context, names []string) ([]string, error) {
	args := m.Called(ctx, names)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), nil
}

// MockCacheRepository mocks outbound.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// Get returns a programmed cached value; a nil value is a miss
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	data, _ := args.Get(0).([]byte)
	return data, nil
}

// Set records a cache write
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete records a cache delete
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// DeletePattern records a pattern delete
func (m *MockCacheRepository) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// Exists reports a programmed existence check
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
