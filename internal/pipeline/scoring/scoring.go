// Package scoring produces the viability assessment for each candidate
// product. Two strategies implement the same interface: an AI-assisted
// path backed by an external collaborator and a heuristic fallback that
// keeps the product usable with no external configuration. Scoring never
// fails; every degradation path ends in defaulted or heuristic output.
package scoring

import (
	"context"

	"trendscout/internal/models"
)

// Summary is the compact per-product view sent to the collaborator.
// ProductID is the stable identifier assessments are merged back by.
type Summary struct {
	ProductID  string  `json:"product_id"`
	Position   int     `json:"position"` // 1-based, informational only
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Views      int     `json:"views"`
	Likes      int     `json:"likes"`
	Engagement float64 `json:"engagement"`
}

// Assessment is one product's verdict returned by the collaborator.
type Assessment struct {
	ProductID      string             `json:"product_id"`
	Score          int                `json:"score"`
	Trend          models.Trend       `json:"trend"`
	Competition    models.Competition `json:"competition"`
	Recommendation string             `json:"recommendation"`
}

// Collaborator is the external AI scoring capability. One call covers the
// whole batch; any failure routes the caller to the fallback strategy.
type Collaborator interface {
	ScoreBatch(ctx context.Context, summaries []Summary) ([]Assessment, error)
}

// Strategy annotates candidates with scores. Implementations must not
// return an error; failure handling is internal.
type Strategy interface {
	Name() string
	Score(ctx context.Context, products []models.ScoredProduct) []models.ScoredProduct
}

const (
	defaultScore          = 75
	defaultRecommendation = "Solid product with steady demand. Validate with a small ad budget before scaling."
)

// applyDefaults fills the standard middle-of-the-road verdict used for
// products the assisted path did not cover.
func applyDefaults(p *models.ScoredProduct) {
	p.AIScore = defaultScore
	p.Trend = models.TrendStable
	p.Competition = models.CompetitionMedium
	p.Recommendation = defaultRecommendation
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
