package shoppinglist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/forkcast/v2/internal/domain/inventory"
	"github.com/forkcast/v2/internal/domain/mealplan"
	domain "github.com/forkcast/v2/internal/domain/shoppinglist"
	"github.com/forkcast/v2/internal/ports/inbound"
	apperrors "github.com/forkcast/v2/pkg/errors"
	"github.com/forkcast/v2/test/testutils"
	"github.com/google/uuid"
)

// ShoppingListServiceTestSuite tests the reconciler use cases against
// mocked collaborators
type ShoppingListServiceTestSuite struct {
	suite.Suite
	lists     *testutils.MockShoppingListRepository
	inventory *testutils.MockInventoryRepository
	mealPlans *testutils.MockMealPlanRepository
	ai        *testutils.MockAIService
	cache     *testutils.MockCacheRepository
	service   *Service

	week   time.Time
	plans  *testutils.MealPlanFactory
	pantry *testutils.InventoryFactory
}

func (suite *ShoppingListServiceTestSuite) SetupTest() {
	suite.lists = testutils.NewMockShoppingListRepository()
	suite.inventory = &testutils.MockInventoryRepository{}
	suite.mealPlans = &testutils.MockMealPlanRepository{}
	suite.ai = &testutils.MockAIService{}
	suite.cache = &testutils.MockCacheRepository{}

	suite.service = NewService(suite.lists, suite.inventory, suite.mealPlans, suite.ai, suite.cache, 0.82, zap.NewNop())

	suite.week = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)
	suite.plans = testutils.NewMealPlanFactory(42)
	suite.pantry = testutils.NewInventoryFactory(42)

	// Cache always misses and tolerates fire-and-forget invalidation
	suite.cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("cache miss")).Maybe()
	suite.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.cache.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.cache.On("DeletePattern", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *ShoppingListServiceTestSuite) givenEmptyListStorage() {
	suite.lists.On("FindByWeekStart", mock.Anything, mock.Anything).Return(nil, nil)
	suite.lists.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.lists.On("InsertItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.lists.On("DeleteItemByNameAndSource", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.lists.On("ReplaceMealItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func (suite *ShoppingListServiceTestSuite) givenStaples(items ...*inventory.Item) {
	suite.inventory.On("FindStaples", mock.Anything).Return(items, nil)
}

func (suite *ShoppingListServiceTestSuite) givenMatchable(items ...*inventory.Item) {
	suite.inventory.On("FindMatchable", mock.Anything).Return(items, nil)
}

func (suite *ShoppingListServiceTestSuite) givenPlan(days ...*mealplan.Day) {
	suite.mealPlans.On("FindDaysInRange", mock.Anything, mock.Anything, mock.Anything).Return(days, nil)
}

func (suite *ShoppingListServiceTestSuite) stirFryWeek() *mealplan.Day {
	return suite.plans.Day(suite.week,
		suite.plans.Recipe("Stir Fry", "2 lb chicken", "salt"),
		nil, nil, nil,
	)
}

func (suite *ShoppingListServiceTestSuite) mealNames(dto *inbound.ShoppingListDTO) []string {
	var names []string
	for _, item := range dto.Items {
		if item.Source == string(domain.SourceMeal) {
			names = append(names, item.Name)
		}
	}
	return names
}

func (suite *ShoppingListServiceTestSuite) TestGetWeek_Absent_CreatesListSeededWithStaples() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples(suite.pantry.Staple("Milk"), suite.pantry.Staple("Eggs"))

	// Act
	dto, err := suite.service.GetWeek(context.Background(), suite.week.Add(14*time.Hour))

	// Assert
	suite.Require().NoError(err)
	suite.Equal(suite.week, dto.WeekStart)
	suite.Require().Len(dto.Items, 2)
	suite.Equal("Milk", dto.Items[0].Name)
	suite.Equal(string(domain.SourceStaple), dto.Items[0].Source)
	suite.lists.AssertCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ShoppingListServiceTestSuite) TestGetWeek_AlreadyExists_Idempotent() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples(suite.pantry.Staple("Milk"))

	first, err := suite.service.GetWeek(context.Background(), suite.week)
	suite.Require().NoError(err)

	// Act
	second, err := suite.service.GetWeek(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
	suite.Len(second.Items, 1)
	suite.lists.AssertNumberOfCalls(suite.T(), "Create", 1)
}

func (suite *ShoppingListServiceTestSuite) TestSync_NoMatchableInventory_EverythingNeeded() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable()
	suite.givenPlan(suite.stirFryWeek())

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]string{"chicken", "salt"}, suite.mealNames(dto))
	suite.ai.AssertNotCalled(suite.T(), "ComputeEmbeddings", mock.Anything, mock.Anything)
}

func (suite *ShoppingListServiceTestSuite) TestSync_CoveredIngredient_FilteredOut() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable(suite.pantry.Matchable("Table Salt", "salt", []float64{1, 0, 0}))
	suite.givenPlan(suite.stirFryWeek())
	suite.ai.On("ComputeEmbeddings", mock.Anything, []string{"chicken", "salt"}).
		Return([][]float64{{0, 1, 0}, {1, 0, 0}}, nil)

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]string{"chicken"}, suite.mealNames(dto))
}

func (suite *ShoppingListServiceTestSuite) TestSync_NotesAttributeRecipes() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable()
	day := suite.plans.Day(suite.week,
		suite.plans.Recipe("Stir Fry", "2 lb chicken"),
		suite.plans.Recipe("Roast", "chicken"),
		nil, nil,
	)
	suite.givenPlan(day)

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Require().Len(suite.mealNames(dto), 1)
	for _, item := range dto.Items {
		if item.Source == string(domain.SourceMeal) {
			suite.Equal("For: Stir Fry, Roast", item.Notes)
		}
	}
}

func (suite *ShoppingListServiceTestSuite) TestSync_EmbeddingFailure_FailsOpen() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable(suite.pantry.Matchable("Table Salt", "salt", []float64{1, 0, 0}))
	suite.givenPlan(suite.stirFryWeek())
	suite.ai.On("ComputeEmbeddings", mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert: nothing filtered, sync still completes
	suite.Require().NoError(err)
	suite.Equal([]string{"chicken", "salt"}, suite.mealNames(dto))
}

func (suite *ShoppingListServiceTestSuite) TestSync_MalformedEmbeddingResponse_FailsOpen() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable(suite.pantry.Matchable("Table Salt", "salt", []float64{1, 0, 0}))
	suite.givenPlan(suite.stirFryWeek())
	// One vector short of the request
	suite.ai.On("ComputeEmbeddings", mock.Anything, mock.Anything).
		Return([][]float64{{1, 0, 0}}, nil)

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]string{"chicken", "salt"}, suite.mealNames(dto))
}

func (suite *ShoppingListServiceTestSuite) TestSync_Twice_IdenticalMealPartition() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenMatchable()
	suite.givenPlan(suite.stirFryWeek())

	// Act
	first, err := suite.service.SyncMealIngredients(context.Background(), suite.week)
	suite.Require().NoError(err)
	second, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert: no growth, no duplication
	suite.Require().NoError(err)
	suite.Equal(suite.mealNames(first), suite.mealNames(second))
}

func (suite *ShoppingListServiceTestSuite) TestSync_PreservesOtherPartitions() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples(suite.pantry.Staple("Milk"))
	suite.givenMatchable()
	suite.givenPlan(suite.stirFryWeek())

	_, err := suite.service.AddManualItem(context.Background(), inbound.AddManualItemCommand{
		WeekStart: suite.week,
		Name:      "batteries",
	})
	suite.Require().NoError(err)

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	bySource := make(map[string][]string)
	for _, item := range dto.Items {
		bySource[item.Source] = append(bySource[item.Source], item.Name)
	}
	suite.Equal([]string{"Milk"}, bySource[string(domain.SourceStaple)])
	suite.Equal([]string{"batteries"}, bySource[string(domain.SourceManual)])
	suite.Equal([]string{"chicken", "salt"}, bySource[string(domain.SourceMeal)])
}

func (suite *ShoppingListServiceTestSuite) TestSync_EmptyPlan_ClearsMealPartition() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	suite.givenPlan()

	// Act
	dto, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().NoError(err)
	suite.Empty(suite.mealNames(dto))
	suite.lists.AssertCalled(suite.T(), "ReplaceMealItems", mock.Anything, mock.Anything, mock.Anything)
	suite.inventory.AssertNotCalled(suite.T(), "FindMatchable", mock.Anything)
}

func (suite *ShoppingListServiceTestSuite) TestSync_StorageFailure_Propagates() {
	// Arrange
	suite.lists.On("FindByWeekStart", mock.Anything, mock.Anything).Return(nil, nil)
	suite.lists.On("Create", mock.Anything, mock.Anything).Return(nil)
	suite.lists.On("ReplaceMealItems", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection lost"))
	suite.givenStaples()
	suite.givenMatchable()
	suite.givenPlan(suite.stirFryWeek())

	// Act
	_, err := suite.service.SyncMealIngredients(context.Background(), suite.week)

	// Assert
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.CodeDatabaseError))
}

func (suite *ShoppingListServiceTestSuite) TestAddManualItem_AppearsExactlyOnce() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()

	// Act
	dto, err := suite.service.AddManualItem(context.Background(), inbound.AddManualItemCommand{
		WeekStart: suite.week,
		Name:      "batteries",
	})

	// Assert
	suite.Require().NoError(err)
	var manual []string
	for _, item := range dto.Items {
		if item.Source == string(domain.SourceManual) {
			manual = append(manual, item.Name)
		}
	}
	suite.Equal([]string{"batteries"}, manual)
}

func (suite *ShoppingListServiceTestSuite) TestAddManualItem_EmptyName_ValidationError() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()

	// Act
	_, err := suite.service.AddManualItem(context.Background(), inbound.AddManualItemCommand{
		WeekStart: suite.week,
		Name:      "   ",
	})

	// Assert
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.CodeValidationFailed))
}

func (suite *ShoppingListServiceTestSuite) TestToggleInventoryItem_Include_AddsOnce() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	restock := suite.pantry.Restock("Olive Oil")
	suite.inventory.On("FindByID", mock.Anything, restock.ID).Return(restock, nil)

	cmd := inbound.ToggleInventoryItemCommand{
		WeekStart:       suite.week,
		InventoryItemID: restock.ID,
		Included:        true,
	}

	// Act
	dto, err := suite.service.ToggleInventoryItem(context.Background(), cmd)
	suite.Require().NoError(err)
	_, dupErr := suite.service.ToggleInventoryItem(context.Background(), cmd)

	// Assert
	suite.Require().Len(dto.Items, 1)
	suite.Equal(string(domain.SourceRestock), dto.Items[0].Source)
	suite.Require().Error(dupErr)
	suite.True(apperrors.Is(dupErr, apperrors.CodeDuplicateItem))
}

func (suite *ShoppingListServiceTestSuite) TestToggleInventoryItem_Exclude_RemovesItem() {
	// Arrange
	suite.givenEmptyListStorage()
	suite.givenStaples()
	restock := suite.pantry.Restock("Olive Oil")
	suite.inventory.On("FindByID", mock.Anything, restock.ID).Return(restock, nil)

	_, err := suite.service.ToggleInventoryItem(context.Background(), inbound.ToggleInventoryItemCommand{
		WeekStart:       suite.week,
		InventoryItemID: restock.ID,
		Included:        true,
	})
	suite.Require().NoError(err)

	// Act
	dto, err := suite.service.ToggleInventoryItem(context.Background(), inbound.ToggleInventoryItemCommand{
		WeekStart:       suite.week,
		InventoryItemID: restock.ID,
		Included:        false,
	})

	// Assert
	suite.Require().NoError(err)
	suite.Empty(dto.Items)
}

func (suite *ShoppingListServiceTestSuite) TestToggleInventoryItem_UnknownItem_NotFound() {
	// Arrange
	suite.inventory.On("FindByID", mock.Anything, mock.Anything).Return(nil, inventory.ErrNotFound)

	// Act
	_, err := suite.service.ToggleInventoryItem(context.Background(), inbound.ToggleInventoryItemCommand{
		WeekStart:       suite.week,
		InventoryItemID: uuid.New(),
		Included:        true,
	})

	// Assert
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.CodeInventoryNotFound))
}

func (suite *ShoppingListServiceTestSuite) TestSetItemChecked_MissingItem_NotFound() {
	// Arrange
	suite.lists.On("UpdateItemChecked", mock.Anything, mock.Anything, true).Return(domain.ErrItemNotFound)

	// Act
	err := suite.service.SetItemChecked(context.Background(), uuid.New(), true)

	// Assert
	suite.Require().Error(err)
	suite.True(apperrors.Is(err, apperrors.CodeItemNotFound))
}

func TestShoppingListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingListServiceTestSuite))
}
