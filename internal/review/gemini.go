package review

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/codecompass/engine/internal/model"
)

// DefaultGeminiBaseURL is the public Generative Language API endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService reviews snippets through the Gemini generateContent REST API.
type GeminiService struct {
	httpc  *resty.Client
	model  string
	apiKey string
	logger hclog.Logger
}

// NewGeminiService creates a review service backed by Gemini. baseURL may be
// empty to use the public endpoint.
func NewGeminiService(baseURL, apiKey, modelName string, timeout time.Duration, logger hclog.Logger) *GeminiService {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	httpc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &GeminiService{
		httpc:  httpc,
		model:  modelName,
		apiKey: apiKey,
		logger: loggerOrNull(logger),
	}
}

type geminiReply struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Review implements Service.
func (s *GeminiService) Review(ctx context.Context, language, content string) []model.ReviewOpportunity {
	var reply geminiReply
	resp, err := s.httpc.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(map[string]any{
			"contents": []map[string]any{
				{"parts": []map[string]string{{"text": buildPrompt(language, content)}}},
			},
		}).
		SetResult(&reply).
		Post(fmt.Sprintf("/models/%s:generateContent", s.model))
	if err != nil {
		s.logger.Warn("review request failed", "error", err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		s.logger.Warn("review request rejected", "status", resp.StatusCode())
		return nil
	}
	if len(reply.Candidates) == 0 || len(reply.Candidates[0].Content.Parts) == 0 {
		s.logger.Debug("review returned no candidates")
		return nil
	}
	return parseReply(reply.Candidates[0].Content.Parts[0].Text)
}
