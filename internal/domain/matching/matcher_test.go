package matching

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

const tolerance = 1e-9

// MatcherTestSuite tests cosine similarity and threshold matching
type MatcherTestSuite struct {
	suite.Suite
}

func (suite *MatcherTestSuite) TestCosineSimilarity_IdenticalVectors_One() {
	v := []float64{0.3, -1.2, 4.5}
	suite.InDelta(1.0, CosineSimilarity(v, v), tolerance)
}

func (suite *MatcherTestSuite) TestCosineSimilarity_OrthogonalVectors_Zero() {
	suite.InDelta(0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), tolerance)
}

func (suite *MatcherTestSuite) TestCosineSimilarity_OppositeVectors_MinusOne() {
	suite.InDelta(-1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), tolerance)
}

func (suite *MatcherTestSuite) TestCosineSimilarity_ZeroVector_ZeroNotNaN() {
	suite.Equal(0.0, CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3}))
	suite.Equal(0.0, CosineSimilarity([]float64{1, 2, 3}, []float64{0, 0, 0}))
	suite.Equal(0.0, CosineSimilarity(nil, []float64{1}))
}

func (suite *MatcherTestSuite) TestCosineSimilarity_ScaleInvariant() {
	// Arrange
	a := []float64{0.2, 0.7, -0.3}
	b := []float64{0.9, 0.1, 0.4}
	scaled := make([]float64, len(b))
	for i, v := range b {
		scaled[i] = v * 42.0
	}

	// Act & Assert
	suite.InDelta(CosineSimilarity(a, b), CosineSimilarity(a, scaled), tolerance)
}

func (suite *MatcherTestSuite) TestCosineSimilarity_Symmetric() {
	a := []float64{0.5, 0.1, 0.9}
	b := []float64{-0.2, 0.8, 0.3}
	suite.InDelta(CosineSimilarity(a, b), CosineSimilarity(b, a), tolerance)
}

func pantryFixture() []InventoryVector {
	return []InventoryVector{
		{Name: "salt", Embedding: []float64{1, 0, 0}},
		{Name: "pepper", Embedding: []float64{0, 1, 0}},
		{Name: "sugar", Embedding: []float64{0, 0, 1}},
	}
}

func (suite *MatcherTestSuite) TestFindBestMatches_AboveThreshold_Matches() {
	// Act
	results := FindBestMatches([][]float64{{0.95, 0.05, 0}}, pantryFixture(), 0.9)

	// Assert
	suite.Require().Len(results, 1)
	suite.True(results[0].Matched)
	suite.Equal("salt", results[0].Match)
	suite.Equal("salt", results[0].BestCandidate)
	suite.GreaterOrEqual(results[0].BestScore, 0.9)
}

func (suite *MatcherTestSuite) TestFindBestMatches_BelowThreshold_NoMatch() {
	// Act
	results := FindBestMatches([][]float64{{0.5, 0.5, 0.5}}, pantryFixture(), 0.9)

	// Assert
	suite.Require().Len(results, 1)
	suite.False(results[0].Matched)
	suite.Empty(results[0].Match)
	suite.NotEmpty(results[0].BestCandidate)
}

func (suite *MatcherTestSuite) TestFindBestMatches_EmptyInventory_AllUnmatched() {
	// Act
	results := FindBestMatches([][]float64{{1, 0, 0}, {0, 1, 0}}, nil, 0.9)

	// Assert
	suite.Require().Len(results, 2)
	for _, r := range results {
		suite.False(r.Matched)
		suite.Empty(r.BestCandidate)
		suite.Equal(-1.0, r.BestScore)
	}
}

func (suite *MatcherTestSuite) TestFindBestMatches_EmptyInput_EmptyResult() {
	suite.Empty(FindBestMatches(nil, pantryFixture(), 0.9))
}

func (suite *MatcherTestSuite) TestFindBestMatches_PreservesInputOrder() {
	// Arrange
	vectors := [][]float64{
		{0, 0.99, 0.01},
		{0.99, 0, 0.01},
	}

	// Act
	results := FindBestMatches(vectors, pantryFixture(), 0.9)

	// Assert
	suite.Require().Len(results, 2)
	suite.Equal("pepper", results[0].Match)
	suite.Equal("salt", results[1].Match)
}

func TestMatcherTestSuite(t *testing.T) {
	suite.Run(t, new(MatcherTestSuite))
}
