package scoring

import (
	"context"

	"trendscout/internal/common/logger"
	"trendscout/internal/common/metrics"
	"trendscout/internal/models"
)

// assistedBatchSize caps the number of products sent to the collaborator
// per run; products beyond it always receive the defaults.
const assistedBatchSize = 10

// Assisted scores through the AI collaborator and degrades to the
// fallback strategy on any failure.
type Assisted struct {
	collab   Collaborator
	fallback Strategy
	logger   logger.Logger
}

func NewAssisted(collab Collaborator, fallback Strategy, log logger.Logger) *Assisted {
	return &Assisted{
		collab:   collab,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "scoring.assisted"}),
	}
}

func (a *Assisted) Name() string { return "assisted" }

// Score sends at most assistedBatchSize summaries in one round-trip and
// merges the returned assessments back by product ID. Unmatched products
// and products beyond the batch window get the defaults. A failed call
// hands the whole batch to the fallback strategy instead of erroring.
func (a *Assisted) Score(ctx context.Context, products []models.ScoredProduct) []models.ScoredProduct {
	if len(products) == 0 {
		return products
	}

	batch := products
	if len(batch) > assistedBatchSize {
		batch = batch[:assistedBatchSize]
	}

	summaries := make([]Summary, 0, len(batch))
	for i, p := range batch {
		summaries = append(summaries, Summary{
			ProductID:  p.ID,
			Position:   i + 1,
			Title:      p.Title,
			Price:      p.Price,
			Views:      p.Views,
			Likes:      p.Likes,
			Engagement: p.Engagement,
		})
	}

	assessments, err := a.collab.ScoreBatch(ctx, summaries)
	if err != nil {
		a.logger.Warn("AI scoring failed, using heuristic fallback", map[string]interface{}{
			"batchSize": len(summaries),
			"error":     err.Error(),
		})
		metrics.ScoringFallbacks.Inc()
		return a.fallback.Score(ctx, products)
	}

	byID := make(map[string]Assessment, len(assessments))
	for _, as := range assessments {
		byID[as.ProductID] = as
	}

	matched := 0
	for i := range products {
		as, ok := byID[products[i].ID]
		if !ok {
			applyDefaults(&products[i])
			continue
		}
		matched++
		products[i].AIScore = clampScore(as.Score)
		products[i].Trend = normalizeTrend(as.Trend)
		products[i].Competition = normalizeCompetition(as.Competition)
		products[i].Recommendation = as.Recommendation
		if products[i].Recommendation == "" {
			products[i].Recommendation = defaultRecommendation
		}
	}

	a.logger.Info("AI scoring merged", map[string]interface{}{
		"requested": len(summaries),
		"matched":   matched,
		"defaulted": len(products) - matched,
	})

	return products
}

func normalizeTrend(t models.Trend) models.Trend {
	switch t {
	case models.TrendRising, models.TrendStable, models.TrendDeclining:
		return t
	}
	return models.TrendUnknown
}

func normalizeCompetition(c models.Competition) models.Competition {
	switch c {
	case models.CompetitionLow, models.CompetitionMedium, models.CompetitionHigh:
		return c
	}
	return models.CompetitionMedium
}
