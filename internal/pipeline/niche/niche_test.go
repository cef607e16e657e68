package niche

import (
	"testing"

	"trendscout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(category string, score, sold int) models.ScoredProduct {
	return models.ScoredProduct{
		Product: models.Product{Category: category, Sold: sold},
		AIScore: score,
	}
}

func TestAggregate(t *testing.T) {
	products := []models.ScoredProduct{
		scored("pet supplies", 90, 100),
		scored("pet supplies", 81, 50),
		scored("home decor", 70, 20),
		scored("home decor", 71, 10),
		scored("kitchen gadgets", 95, 500),
	}

	niches := Aggregate(products)

	require.Len(t, niches, 3)

	// Sorted descending by average score.
	assert.Equal(t, "kitchen gadgets", niches[0].Category)
	assert.Equal(t, 95, niches[0].AvgScore)
	assert.Equal(t, "pet supplies", niches[1].Category)
	assert.Equal(t, 86, niches[1].AvgScore) // round(85.5)
	assert.Equal(t, "home decor", niches[2].Category)
	assert.Equal(t, 71, niches[2].AvgScore) // round(70.5)

	// Counts partition the input.
	total := 0
	for _, n := range niches {
		total += n.Count
	}
	assert.Equal(t, len(products), total)

	assert.Equal(t, 150, niches[1].TotalSales)
	assert.Equal(t, 30, niches[2].TotalSales)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregate_SingleCategory(t *testing.T) {
	niches := Aggregate([]models.ScoredProduct{
		scored("beauty tools", 80, 5),
		scored("beauty tools", 80, 5),
	})

	require.Len(t, niches, 1)
	assert.Equal(t, 2, niches[0].Count)
	assert.Equal(t, 80, niches[0].AvgScore)
	assert.Equal(t, 10, niches[0].TotalSales)
}
