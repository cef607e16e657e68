// Package pipeline orchestrates one recommendation run: sample
// categories, query the upstream concurrently, normalize and filter,
// select candidates, attach margins and sourcing, score, and build the
// niche view. The pipeline is stateless between requests.
package pipeline

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/logger"
	"trendscout/internal/common/metrics"
	"trendscout/internal/models"
	"trendscout/internal/pipeline/margins"
	"trendscout/internal/pipeline/niche"
	"trendscout/internal/pipeline/normalize"
	"trendscout/internal/pipeline/scoring"
	"trendscout/internal/pipeline/selector"
)

// Categories is the fixed catalog the per-run sample is drawn from.
var Categories = []string{
	"phone accessories",
	"home decor",
	"beauty tools",
	"fitness gear",
	"pet supplies",
	"kitchen gadgets",
	"led lighting",
	"car accessories",
	"desk organizers",
	"travel essentials",
}

const categoriesPerRun = 3

// TrendSource is the upstream data capability consumed by the pipeline.
type TrendSource interface {
	Query(ctx context.Context, category string) ([]models.RawItem, error)
}

type Service struct {
	source   TrendSource
	strategy scoring.Strategy
	logger   logger.Logger
	rnd      *rand.Rand
	mu       sync.Mutex // guards rnd; category sampling may race across requests
}

func New(source TrendSource, strategy scoring.Strategy, log logger.Logger) *Service {
	return &Service{
		source:   source,
		strategy: strategy,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateRecommendations runs the full pipeline once and returns a
// snapshot. Individual category failures degrade to zero contributed
// products; an upstream error is returned only when every category
// failed. An empty surviving candidate set is an unsuccessful result,
// not an error.
func (s *Service) GenerateRecommendations(ctx context.Context) (*models.RecommendationsResult, error) {
	started := time.Now()
	categories := s.sampleCategories(categoriesPerRun)

	pooled, queryErrs := s.collectProducts(ctx, categories)
	candidates := selector.Select(pooled)

	if len(candidates) == 0 {
		if len(queryErrs) == len(categories) && len(queryErrs) > 0 {
			metrics.PipelineRuns.WithLabelValues("error").Inc()
			return nil, queryErrs[0]
		}
		metrics.PipelineRuns.WithLabelValues("empty").Inc()
		s.logger.Info("no candidates survived filtering", map[string]interface{}{
			"categories": categories,
			"pooled":     len(pooled),
		})
		return &models.RecommendationsResult{
			Success:     false,
			Message:     apperrors.NewNoProductsFoundError().Message,
			Products:    []models.ScoredProduct{},
			Niches:      []models.NicheSummary{},
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	scored := make([]models.ScoredProduct, len(candidates))
	for i, p := range candidates {
		scored[i] = models.ScoredProduct{
			Product:  p,
			Margins:  margins.Calculate(p.Price),
			Sourcing: margins.SourcingOptions(p.Title),
		}
	}

	scored = s.strategy.Score(ctx, scored)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AIScore > scored[j].AIScore
	})

	result := &models.RecommendationsResult{
		Success:     true,
		Products:    scored,
		Niches:      niche.Aggregate(scored),
		Count:       len(scored),
		GeneratedAt: time.Now().UTC(),
	}

	metrics.PipelineRuns.WithLabelValues("success").Inc()
	metrics.PipelineDuration.Observe(time.Since(started).Seconds())
	s.logger.Info("pipeline run completed", map[string]interface{}{
		"categories": categories,
		"pooled":     len(pooled),
		"scored":     len(scored),
		"strategy":   s.strategy.Name(),
		"durationMs": time.Since(started).Milliseconds(),
	})

	return result, nil
}

// CalculateMargins serves the standalone margin endpoint for one
// already-known product, independent of the ranking pipeline.
func (s *Service) CalculateMargins(title string, price float64) *models.MarginsResult {
	return &models.MarginsResult{
		Title:    title,
		Margins:  margins.Calculate(price),
		Sourcing: margins.SourcingOptions(title),
	}
}

// collectProducts queries every category concurrently and pools the
// normalized, English-titled products. Completion order does not matter;
// results are pooled before ranking.
func (s *Service) collectProducts(ctx context.Context, categories []string) ([]models.Product, []error) {
	perCategory := make([][]models.Product, len(categories))
	errs := make([]error, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(idx int, cat string) {
			defer wg.Done()
			items, err := s.source.Query(ctx, cat)
			if err != nil {
				errs[idx] = err
				metrics.UpstreamQueryFailures.WithLabelValues(cat).Inc()
				s.logger.Warn("category query failed", map[string]interface{}{
					"category": cat,
					"error":    err.Error(),
				})
				return
			}
			products := make([]models.Product, 0, len(items))
			for _, item := range items {
				p := normalize.NormalizeRecord(item, cat)
				if !normalize.IsEnglish(p.Title) {
					continue
				}
				products = append(products, p)
			}
			perCategory[idx] = products
		}(i, category)
	}
	wg.Wait()

	var pooled []models.Product
	var failures []error
	for i := range categories {
		pooled = append(pooled, perCategory[i]...)
		if errs[i] != nil {
			failures = append(failures, errs[i])
		}
	}
	return pooled, failures
}

// sampleCategories picks n distinct categories from the catalog.
func (s *Service) sampleCategories(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(Categories) {
		n = len(Categories)
	}
	perm := s.rnd.Perm(len(Categories))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, Categories[idx])
	}
	return picked
}
