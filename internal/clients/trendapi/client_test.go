package trendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trendscout/internal/common/config"
	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/logger"
	"trendscout/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string, cacheTTL int) config.TrendsConfig {
	return config.TrendsConfig{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Timeout:  2000,
		CacheTTL: cacheTTL,
	}
}

func productsPayload(titles ...string) []byte {
	items := make([]models.RawItem, 0, len(titles))
	for _, title := range titles {
		items = append(items, models.RawItem{"product_name": title})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"code": 0,
		"data": map[string]interface{}{"products": items},
	})
	return body
}

func TestQuery_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "trending", r.URL.Query().Get("sort_by"))
		assert.Equal(t, "pet supplies", r.URL.Query().Get("keyword"))
		w.Write(productsPayload("Dog Paw Cleaner", "Cat Tunnel"))
	}))
	defer ts.Close()

	client := New(testConfig(ts.URL, 0), nil, logger.NewTestLogger(t))

	items, err := client.Query(context.Background(), "pet supplies")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dog Paw Cleaner", items[0]["product_name"])
}

func TestQuery_AuthFailurePropagatesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("API key expired on 2026-01-01"))
	}))
	defer ts.Close()

	client := New(testConfig(ts.URL, 0), nil, logger.NewNoOpLogger())

	_, err := client.Query(context.Background(), "beauty tools")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstreamAuthFailed))
	assert.Contains(t, err.(*apperrors.StandardError).Details, "API key expired")
}

func TestQuery_MissingCredentials(t *testing.T) {
	cfg := testConfig("http://unused.invalid", 0)
	cfg.APIKey = ""
	client := New(cfg, nil, logger.NewNoOpLogger())

	_, err := client.Query(context.Background(), "home decor")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstreamAuthFailed))
}

func TestQuery_ServerErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := New(testConfig(ts.URL, 0), nil, logger.NewNoOpLogger())

	_, err := client.Query(context.Background(), "fitness gear")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstreamUnavailable))
}

func TestQuery_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>surprise</html>"))
	}))
	defer ts.Close()

	client := New(testConfig(ts.URL, 0), nil, logger.NewNoOpLogger())

	_, err := client.Query(context.Background(), "car accessories")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstreamBadResponse))
}

func TestQuery_ReadThroughCache(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write(productsPayload("LED Galaxy Projector"))
	}))
	defer ts.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client := New(testConfig(ts.URL, 60), rdb, logger.NewTestLogger(t))

	first, err := client.Query(context.Background(), "led lighting")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))

	// Second call is served from the cache without an upstream trip.
	second, err := client.Query(context.Background(), "led lighting")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))

	// TTL expiry brings the upstream back.
	mr.FastForward(61 * time.Second)
	_, err = client.Query(context.Background(), "led lighting")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}

func TestQuery_CacheHitShortCircuitsHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called on a cache hit")
	}))
	defer ts.Close()

	cached, _ := json.Marshal([]models.RawItem{{"product_name": "Cached Gadget"}})
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKeyPrefix + "kitchen gadgets").SetVal(string(cached))

	client := New(testConfig(ts.URL, 60), rdb, logger.NewNoOpLogger())

	items, err := client.Query(context.Background(), "kitchen gadgets")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cached Gadget", items[0]["product_name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
