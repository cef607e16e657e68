// Package niche builds the category-level aggregate view over the final
// scored product list.
package niche

import (
	"math"
	"sort"

	"trendscout/internal/models"
)

// Aggregate groups scored products by category and computes the per-niche
// count, rounded average score, and total sales, sorted descending by
// average score. The result is recomputed per request and never cached.
func Aggregate(products []models.ScoredProduct) []models.NicheSummary {
	type bucket struct {
		count    int
		scoreSum int
		sales    int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for _, p := range products {
		b, ok := buckets[p.Category]
		if !ok {
			b = &bucket{}
			buckets[p.Category] = b
			order = append(order, p.Category)
		}
		b.count++
		b.scoreSum += p.AIScore
		b.sales += p.Sold
	}

	summaries := make([]models.NicheSummary, 0, len(buckets))
	for _, category := range order {
		b := buckets[category]
		summaries = append(summaries, models.NicheSummary{
			Category:   category,
			Count:      b.count,
			AvgScore:   int(math.Round(float64(b.scoreSum) / float64(b.count))),
			TotalSales: b.sales,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AvgScore > summaries[j].AvgScore
	})

	return summaries
}
