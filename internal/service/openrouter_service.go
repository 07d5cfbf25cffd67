package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nik-Maltcev/careeros-sub000/internal/config"
	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/Nik-Maltcev/careeros-sub000/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	openRouterTimeout = 45 * time.Second
	responsePreview   = 200
)

// OpenRouterService is the primary assessment provider. It walks its model
// list strictly in order, one request per model, and stops at the first model
// whose response parses and validates. Cheaper and more reliable models come
// first in the list on purpose.
type OpenRouterService struct {
	client *resty.Client
	models []string
	log    *zap.Logger
}

func NewOpenRouterService(log *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(openRouterTimeout)

	return &OpenRouterService{
		client: client,
		models: cfg.Models,
		log:    log,
	}
}

func (s *OpenRouterService) Name() string { return "openrouter" }

// EvaluateSession tries each candidate model in priority order and returns the
// first structurally valid assessment together with the model that produced
// it. Every per-model failure is logged and absorbed; an error is returned
// only when the whole list is exhausted.
func (s *OpenRouterService) EvaluateSession(ctx context.Context, records []dto.AnswerRecord, specialty string) (*dto.SessionAssessment, string, error) {
	prompt := BuildSessionPrompt(records, specialty)

	var lastErr error
	for _, model := range s.models {
		content, err := s.chat(ctx, model, SessionSystemPrompt, prompt, 2048)
		if err != nil {
			s.log.Warn("session evaluation attempt failed",
				zap.String("model", model),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		assessment, err := ParseSessionAssessment(content)
		if err != nil {
			s.log.Warn("session evaluation response rejected",
				zap.String("model", model),
				zap.String("response_preview", logger.TruncateForLog(content, responsePreview)),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		s.log.Info("session evaluated", zap.String("model", model))
		return assessment, model, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate models configured")
	}
	return nil, "", fmt.Errorf("all candidate models exhausted: %w", lastErr)
}

// QuestionFeedback requests a critique of a single answer from the model that
// won the session-level call.
func (s *OpenRouterService) QuestionFeedback(ctx context.Context, record dto.AnswerRecord, questionID int, specialty, model string) (*dto.QuestionFeedback, error) {
	if model == "" && len(s.models) > 0 {
		model = s.models[0]
	}

	content, err := s.chat(ctx, model, SessionSystemPrompt, BuildQuestionPrompt(record, specialty), 1024)
	if err != nil {
		return nil, err
	}

	fb, err := ParseQuestionFeedback(content)
	if err != nil {
		return nil, err
	}
	fb.QuestionID = questionID
	fb.QuestionText = record.Question
	return fb, nil
}

// chat issues one chat-completions request and returns the first message
// content. Non-2xx statuses and empty content are call failures.
func (s *OpenRouterService) chat(ctx context.Context, model, system, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": prompt},
			},
			"temperature": 0.3,
			"max_tokens":  maxTokens,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), logger.TruncateForLog(resp.String(), responsePreview))
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return "", fmt.Errorf("empty completion content")
	}
	return content, nil
}
