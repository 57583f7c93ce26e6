package ingredient

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// AggregateTestSuite tests grouping and source attribution
type AggregateTestSuite struct {
	suite.Suite
}

func (suite *AggregateTestSuite) TestAggregate_CaseVariants_SingleGroupFirstSeenCasing() {
	// Arrange
	items := []Raw{
		{Name: "Chicken", RecipeName: "A"},
		{Name: "chicken", RecipeName: "B"},
		{Name: "CHICKEN", RecipeName: "C"},
	}

	// Act
	result := Aggregate(items)

	// Assert
	suite.Require().Len(result, 1)
	suite.Equal("Chicken", result[0].Name)
	suite.Equal([]string{"A", "B", "C"}, result[0].Sources)
}

func (suite *AggregateTestSuite) TestAggregate_DuplicateSource_NotRepeated() {
	// Arrange
	items := []Raw{
		{Name: "2 lb chicken", RecipeName: "Stir Fry"},
		{Name: "chicken", RecipeName: "Stir Fry"},
	}

	// Act
	result := Aggregate(items)

	// Assert
	suite.Require().Len(result, 1)
	suite.Equal([]string{"Stir Fry"}, result[0].Sources)
}

func (suite *AggregateTestSuite) TestAggregate_UnitVariants_GroupTogether() {
	// Arrange
	items := []Raw{
		{Name: "500g beef", RecipeName: "Chili"},
		{Name: "1 lb Beef", RecipeName: "Tacos"},
	}

	// Act
	result := Aggregate(items)

	// Assert
	suite.Require().Len(result, 1)
	suite.Equal("beef", result[0].Name)
	suite.Equal([]string{"Chili", "Tacos"}, result[0].Sources)
}

func (suite *AggregateTestSuite) TestAggregate_Output_SortedCaseInsensitively() {
	// Arrange
	items := []Raw{
		{Name: "Zucchini", RecipeName: "A"},
		{Name: "apples", RecipeName: "A"},
		{Name: "Butter", RecipeName: "A"},
	}

	// Act
	result := Aggregate(items)

	// Assert
	suite.Require().Len(result, 3)
	suite.Equal("apples", result[0].Name)
	suite.Equal("Butter", result[1].Name)
	suite.Equal("Zucchini", result[2].Name)
}

func (suite *AggregateTestSuite) TestAggregate_EmptyInput_EmptyOutput() {
	suite.Empty(Aggregate(nil))
	suite.Empty(Aggregate([]Raw{}))
}

func (suite *AggregateTestSuite) TestAggregate_BlankNames_Skipped() {
	// Arrange
	items := []Raw{
		{Name: "   ", RecipeName: "A"},
		{Name: "salt", RecipeName: "A"},
	}

	// Act
	result := Aggregate(items)

	// Assert
	suite.Require().Len(result, 1)
	suite.Equal("salt", result[0].Name)
}

func TestAggregateTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}
