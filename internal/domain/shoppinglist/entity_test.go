package shoppinglist

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ShoppingListTestSuite tests the per-week aggregate
type ShoppingListTestSuite struct {
	suite.Suite
}

func (suite *ShoppingListTestSuite) TestNormalizeWeekStart_TruncatesToLocalMidnight() {
	// Arrange
	loc, err := time.LoadLocation("America/New_York")
	suite.Require().NoError(err)
	ts := time.Date(2026, time.March, 9, 15, 42, 7, 123, loc)

	// Act
	normalized := NormalizeWeekStart(ts)

	// Assert
	suite.Equal(time.Date(2026, time.March, 9, 0, 0, 0, 0, loc), normalized)
	suite.Equal(loc, normalized.Location())
}

func (suite *ShoppingListTestSuite) TestNormalizeWeekStart_SameDayTimestamps_SameKey() {
	morning := time.Date(2026, time.March, 9, 1, 0, 0, 0, time.Local)
	evening := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.Local)
	suite.Equal(NormalizeWeekStart(morning), NormalizeWeekStart(evening))
}

func (suite *ShoppingListTestSuite) TestWeekWindow_SevenDays() {
	start, end := WeekWindow(time.Date(2026, time.March, 9, 10, 0, 0, 0, time.Local))
	suite.Equal(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local), start)
	suite.Equal(time.Date(2026, time.March, 16, 0, 0, 0, 0, time.Local), end)
}

func (suite *ShoppingListTestSuite) TestNewShoppingList_NormalizesAndRaisesEvent() {
	// Act
	list := NewShoppingList(time.Date(2026, time.March, 9, 18, 30, 0, 0, time.Local))

	// Assert
	suite.NotEqual(uuid.Nil, list.ID())
	suite.Equal(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local), list.WeekStart())
	suite.Empty(list.Items())

	events := list.Events()
	suite.Require().Len(events, 1)
	suite.Equal(EventListCreated, events[0].EventName())
}

func (suite *ShoppingListTestSuite) TestAddItem_EmptyName_ReturnsError() {
	list := NewShoppingList(time.Now())
	err := list.AddItem(Item{Name: "   ", Source: SourceManual})
	suite.ErrorIs(err, ErrEmptyItemName)
}

func (suite *ShoppingListTestSuite) TestAddItem_InvalidSource_ReturnsError() {
	list := NewShoppingList(time.Now())
	err := list.AddItem(Item{Name: "milk", Source: Source("mystery")})
	suite.ErrorIs(err, ErrInvalidSource)
}

func (suite *ShoppingListTestSuite) TestAddItem_DuplicateStaple_ReturnsError() {
	// Arrange
	list := NewShoppingList(time.Now())
	suite.Require().NoError(list.AddItem(NewItem("Milk", SourceStaple, "", 0)))

	// Act
	err := list.AddItem(NewItem("milk", SourceStaple, "", 1))

	// Assert
	suite.ErrorIs(err, ErrDuplicateItem)
	suite.Len(list.ItemsBySource(SourceStaple), 1)
}

func (suite *ShoppingListTestSuite) TestAddItem_DuplicateManual_Allowed() {
	list := NewShoppingList(time.Now())
	suite.Require().NoError(list.AddItem(NewItem("batteries", SourceManual, "", 0)))
	suite.NoError(list.AddItem(NewItem("batteries", SourceManual, "", 1)))
	suite.Len(list.ItemsBySource(SourceManual), 2)
}

func (suite *ShoppingListTestSuite) TestCanAddItem_DoesNotMutate() {
	// Arrange
	list := NewShoppingList(time.Now())
	suite.Require().NoError(list.AddItem(NewItem("Milk", SourceStaple, "", 0)))

	// Act
	suite.NoError(list.CanAddItem(NewItem("batteries", SourceManual, "", 0)))
	suite.ErrorIs(list.CanAddItem(NewItem("milk", SourceStaple, "", 1)), ErrDuplicateItem)

	// Assert: the list is exactly as it was
	suite.Len(list.Items(), 1)
	suite.Equal("Milk", list.Items()[0].Name)
}

func (suite *ShoppingListTestSuite) TestRemoveItem_CaseInsensitiveName() {
	// Arrange
	list := NewShoppingList(time.Now())
	suite.Require().NoError(list.AddItem(NewItem("Olive Oil", SourceRestock, "", 0)))

	// Act
	err := list.RemoveItem("olive oil", SourceRestock)

	// Assert
	suite.NoError(err)
	suite.Empty(list.ItemsBySource(SourceRestock))
}

func (suite *ShoppingListTestSuite) TestRemoveItem_Missing_ReturnsError() {
	list := NewShoppingList(time.Now())
	suite.ErrorIs(list.RemoveItem("ghost", SourceRestock), ErrItemNotFound)
}

func (suite *ShoppingListTestSuite) TestSetItemChecked_FlipsFlag() {
	// Arrange
	list := NewShoppingList(time.Now())
	item := NewItem("bread", SourceManual, "", 0)
	suite.Require().NoError(list.AddItem(item))

	// Act
	err := list.SetItemChecked(item.ID, true)

	// Assert
	suite.NoError(err)
	suite.True(list.Items()[0].Checked)
}

func (suite *ShoppingListTestSuite) TestReplaceMealItems_OnlyTouchesMealPartition() {
	// Arrange
	list := NewShoppingList(time.Now())
	suite.Require().NoError(list.AddItem(NewItem("milk", SourceStaple, "", 0)))
	suite.Require().NoError(list.AddItem(NewItem("batteries", SourceManual, "", 0)))
	list.ReplaceMealItems([]Item{NewItem("chicken", SourceMeal, "For: Stir Fry", 0)})

	// Act
	list.ReplaceMealItems([]Item{
		NewItem("beef", SourceMeal, "For: Chili", 0),
		NewItem("onions", SourceMeal, "For: Chili", 1),
	})

	// Assert
	meal := list.MealItems()
	suite.Require().Len(meal, 2)
	suite.Equal("beef", meal[0].Name)
	suite.Equal("onions", meal[1].Name)
	suite.Len(list.ItemsBySource(SourceStaple), 1)
	suite.Len(list.ItemsBySource(SourceManual), 1)
}

func (suite *ShoppingListTestSuite) TestReplaceMealItems_EmptySet_ClearsPartition() {
	// Arrange
	list := NewShoppingList(time.Now())
	list.ReplaceMealItems([]Item{NewItem("chicken", SourceMeal, "", 0)})

	// Act
	list.ReplaceMealItems(nil)

	// Assert
	suite.Empty(list.MealItems())
}

func (suite *ShoppingListTestSuite) TestReconstitute_NoEventsRaised() {
	// Act
	list := Reconstitute(uuid.New(), time.Now(), []Item{NewItem("milk", SourceStaple, "", 0)}, time.Now(), time.Now())

	// Assert
	suite.Empty(list.Events())
	suite.Len(list.Items(), 1)
}

func TestShoppingListTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingListTestSuite))
}
