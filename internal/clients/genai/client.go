// Package genai implements the AI scoring collaborator. One request
// covers the whole candidate batch; the reply is schema-validated before
// any assessment is trusted. Callers treat every error as a signal to use
// the heuristic fallback, so nothing here retries beyond the transport.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"trendscout/internal/common/config"
	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/httpx"
	"trendscout/internal/common/logger"
	"trendscout/internal/pipeline/scoring"

	"github.com/xeipuuv/gojsonschema"
)

// assessmentSchema guards the merge step: a reply that drops product_id
// or reports out-of-range scores is rejected wholesale rather than
// half-merged.
const assessmentSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["product_id", "score"],
		"properties": {
			"product_id": {"type": "string", "minLength": 1},
			"score": {"type": "number", "minimum": 0, "maximum": 100},
			"trend": {"type": "string"},
			"competition": {"type": "string"},
			"recommendation": {"type": "string"}
		}
	}
}`

type Client struct {
	cfg    config.GenAIConfig
	http   *httpx.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

func New(cfg config.GenAIConfig, log logger.Logger) (*Client, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(assessmentSchema))
	if err != nil {
		return nil, fmt.Errorf("compile assessment schema: %w", err)
	}
	return &Client{
		cfg:    cfg,
		http:   httpx.NewClient(0), // rely on context deadline only
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"component": "genai"}),
	}, nil
}

// ScoreBatch sends the batch in a single round-trip bounded by the
// configured timeout and returns the validated assessments.
func (c *Client) ScoreBatch(ctx context.Context, summaries []scoring.Summary) ([]scoring.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GetDuration(c.cfg.Timeout))
	defer cancel()

	requestBody := map[string]interface{}{
		"prompt":      c.buildPrompt(summaries),
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
	}
	body, _ := json.Marshal(requestBody)

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/api/ai/generate", bytes.NewBuffer(body))
	if err != nil {
		return nil, apperrors.NewScoringFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewScoringTimeoutError()
		}
		return nil, apperrors.NewScoringFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewScoringFailedError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, apperrors.NewScoringFailedError(fmt.Errorf("decode error: %w", err))
	}

	return c.parseAssessments(apiResponse.Text)
}

// parseAssessments extracts the JSON array from the model's free-form
// text and validates it before unmarshalling.
func (c *Client) parseAssessments(text string) ([]scoring.Assessment, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, apperrors.NewInvalidScoringReplyError("no JSON array in reply")
	}
	raw := text[start : end+1]

	result, err := c.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, apperrors.NewInvalidScoringReplyError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, apperrors.NewInvalidScoringReplyError(strings.Join(details, "; "))
	}

	var assessments []scoring.Assessment
	if err := json.Unmarshal([]byte(raw), &assessments); err != nil {
		return nil, apperrors.NewInvalidScoringReplyError(err.Error())
	}

	c.logger.Debug("assessments parsed", map[string]interface{}{
		"count": len(assessments),
	})
	return assessments, nil
}

func (c *Client) buildPrompt(summaries []scoring.Summary) string {
	var parts []string
	parts = append(parts,
		"You are a dropshipping product analyst. Assess each product below for dropshipping viability.")
	parts = append(parts,
		`Reply with ONLY a JSON array. Each element: {"product_id", "score" (0-100), "trend" (Rising|Stable|Declining), "competition" (Low|Medium|High), "recommendation" (one sentence)}. Keep every product_id exactly as given.`)
	parts = append(parts, "\nProducts:")
	for _, s := range summaries {
		parts = append(parts, fmt.Sprintf(
			"%d. id=%s title=%q price=$%.2f views=%d likes=%d engagement=%.2f%%",
			s.Position, s.ProductID, s.Title, s.Price, s.Views, s.Likes, s.Engagement))
	}
	return strings.Join(parts, "\n")
}
