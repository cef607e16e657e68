package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendscout/internal/common/config"
	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/logger"
	"trendscout/internal/models"
	"trendscout/internal/pipeline/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(config.GenAIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Timeout:     2000,
		MaxTokens:   512,
		Temperature: 0.4,
	}, logger.NewTestLogger(t))
	require.NoError(t, err)
	return client
}

func textResponse(text string) []byte {
	body, _ := json.Marshal(map[string]string{"text": text})
	return body
}

func sampleSummaries() []scoring.Summary {
	return []scoring.Summary{
		{ProductID: "p1", Position: 1, Title: "Mini Projector", Price: 39.99, Views: 12000, Likes: 900, Engagement: 7.5},
		{ProductID: "p2", Position: 2, Title: "Neck Massager", Price: 24.99, Views: 8000, Likes: 400, Engagement: 5.0},
	}
}

func TestScoreBatch_ParsesValidReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt, _ := req["prompt"].(string)
		assert.Contains(t, prompt, "p1")
		assert.Contains(t, prompt, "Mini Projector")

		// Models wrap the array in prose; the client extracts it.
		w.Write(textResponse(`Sure, here is my assessment:
[
  {"product_id": "p1", "score": 88, "trend": "Rising", "competition": "Low", "recommendation": "Scale fast."},
  {"product_id": "p2", "score": 64, "trend": "Stable", "competition": "High", "recommendation": "Crowded market."}
]
Let me know if you need more.`))
	}))
	defer ts.Close()

	assessments, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.NoError(t, err)
	require.Len(t, assessments, 2)
	assert.Equal(t, "p1", assessments[0].ProductID)
	assert.Equal(t, 88, assessments[0].Score)
	assert.Equal(t, models.TrendRising, assessments[0].Trend)
	assert.Equal(t, models.CompetitionHigh, assessments[1].Competition)
}

func TestScoreBatch_RejectsOutOfRangeScore(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`[{"product_id": "p1", "score": 250}]`))
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidScoringReply))
}

func TestScoreBatch_RejectsMissingProductID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse(`[{"score": 80, "trend": "Rising"}]`))
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidScoringReply))
}

func TestScoreBatch_NoArrayInReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse("I cannot assess these products."))
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidScoringReply))
}

func TestScoreBatch_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeScoringFailed))
}

func TestScoreBatch_TransportFailure(t *testing.T) {
	// Point at a closed server.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	_, err := testClient(t, ts.URL).ScoreBatch(context.Background(), sampleSummaries())

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeScoringFailed))
}
