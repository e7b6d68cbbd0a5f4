package service

import (
	"context"
	"fmt"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService is the secondary LLM provider, speaking the
// chat-completions protocol.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
	logger *zap.Logger
}

func NewOpenRouterService(logger *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(90 * time.Second)
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: client,
		logger: logger,
	}
}

func (s *OpenRouterService) GenerateResponse(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	messages := []map[string]string{}
	if systemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userPrompt})

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model":    s.Model,
			"messages": messages,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("openrouter error response",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	if apiErr := gjson.Get(resp.String(), "error.message").String(); apiErr != "" {
		return "", fmt.Errorf("openrouter api error: %s", apiErr)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
