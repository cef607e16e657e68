package scoring

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"trendscout/internal/models"
)

const heuristicRecommendation = "Promising trend signals. Research competitors and test creatives before committing inventory."

// Heuristic assigns pseudo-random but plausibly distributed scores so the
// product works with no collaborator configured. Scores land in [70,100];
// trend and competition are binary draws. The random source is injected
// so tests can pin the stream. One instance is shared across requests, so
// the rand stream is mutex-guarded.
type Heuristic struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewHeuristic(src rand.Source) *Heuristic {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Heuristic{rnd: rand.New(src)}
}

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Score(_ context.Context, products []models.ScoredProduct) []models.ScoredProduct {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range products {
		products[i].AIScore = 70 + h.rnd.Intn(31)
		if h.rnd.Intn(2) == 0 {
			products[i].Trend = models.TrendRising
		} else {
			products[i].Trend = models.TrendStable
		}
		if h.rnd.Intn(2) == 0 {
			products[i].Competition = models.CompetitionMedium
		} else {
			products[i].Competition = models.CompetitionHigh
		}
		products[i].Recommendation = heuristicRecommendation
	}
	return products
}
