// Package selector filters the pooled normalized products down to the
// bounded candidate list handed to the scoring engine.
package selector

import (
	"sort"

	"trendscout/internal/models"
)

const (
	// MaxPrice bounds candidates to the viable dropshipping range.
	// Zero-price items are normalization failures and are dropped here.
	MaxPrice = 200.0

	// MaxCandidates caps AI-scoring cost and response size.
	MaxCandidates = 20
)

// Select filters to 0 < price < MaxPrice, ranks descending by the
// views+likes+sold popularity proxy, and truncates to MaxCandidates.
func Select(products []models.Product) []models.Product {
	eligible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price > 0 && p.Price < MaxPrice {
			eligible = append(eligible, p)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Popularity() > eligible[j].Popularity()
	})

	if len(eligible) > MaxCandidates {
		eligible = eligible[:MaxCandidates]
	}
	return eligible
}
