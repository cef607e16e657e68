// Package trendapi implements the client for the upstream social-commerce
// trend data API. Each category query is independent; a failure degrades
// that category to zero contributed products and never aborts the run.
package trendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"trendscout/internal/common/config"
	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/httpx"
	"trendscout/internal/common/logger"
	"trendscout/internal/common/metrics"
	"trendscout/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "trends:category:"

type Client struct {
	cfg    config.TrendsConfig
	http   *httpx.Client
	cache  *redis.Client // nil when no redis is configured
	logger logger.Logger
}

func New(cfg config.TrendsConfig, cache *redis.Client, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   httpx.NewClient(config.GetDuration(cfg.Timeout)),
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "trendapi"}),
	}
}

// searchResponse is the upstream envelope. Products stay opaque RawItems;
// normalization owns their shape.
type searchResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Products []models.RawItem `json:"products"`
	} `json:"data"`
}

// Query fetches the trending items for one category, read-through cached
// when redis is configured.
func (c *Client) Query(ctx context.Context, category string) ([]models.RawItem, error) {
	if items, ok := c.fromCache(ctx, category); ok {
		metrics.TrendCacheHits.Inc()
		return items, nil
	}
	metrics.TrendCacheMisses.Inc()

	if c.cfg.APIKey == "" {
		return nil, apperrors.NewUpstreamAuthError("no API key configured")
	}

	endpoint := fmt.Sprintf("%s/api/v1/products/search?keyword=%s&sort_by=trending",
		c.cfg.BaseURL, url.QueryEscape(category))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(category, err)
	}
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.NewUpstreamAuthError(string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamUnavailableError(category,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewUpstreamBadResponseError(err)
	}

	c.logger.Debug("category query completed", map[string]interface{}{
		"category": category,
		"items":    len(parsed.Data.Products),
	})

	c.toCache(ctx, category, parsed.Data.Products)
	return parsed.Data.Products, nil
}

func (c *Client) fromCache(ctx context.Context, category string) ([]models.RawItem, bool) {
	if c.cache == nil || c.cfg.CacheTTL <= 0 {
		return nil, false
	}
	val, err := c.cache.Get(ctx, cacheKeyPrefix+category).Result()
	if err != nil {
		return nil, false
	}
	var items []models.RawItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false
	}
	return items, true
}

// toCache is best-effort; a cache write failure only costs the next
// caller an upstream round-trip.
func (c *Client) toCache(ctx context.Context, category string, items []models.RawItem) {
	if c.cache == nil || c.cfg.CacheTTL <= 0 || len(items) == 0 {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	ttl := time.Duration(c.cfg.CacheTTL) * time.Second
	if err := c.cache.Set(ctx, cacheKeyPrefix+category, data, ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		})
	}
}
