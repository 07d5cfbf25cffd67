package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Nik-Maltcev/careeros-sub000/internal/config"
	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService is the secondary assessment provider, tried after the
// OpenRouter model list is exhausted. The client is hardened independently of
// the orchestrator's fallback: bounded retries with exponential backoff and a
// circuit breaker on consecutive failures, since Gemini is the last external
// option before the heuristic path.
type GeminiService struct {
	client            *genai.Client
	model             string
	log               *zap.Logger
	maxRetries        int
	baseDelay         time.Duration
	maxDelay          time.Duration
	requestTimeout    time.Duration
	consecutiveErrors atomic.Int64
	circuitBreakerMax int64
}

func NewGeminiService(ctx context.Context, log *zap.Logger) (*GeminiService, error) {
	cfg := config.LoadGeminiConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiService{
		client:            client,
		model:             cfg.Model,
		log:               log,
		maxRetries:        2,
		baseDelay:         time.Second,
		maxDelay:          30 * time.Second,
		requestTimeout:    60 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) Name() string { return "gemini" }

// EvaluateSession sends the session transcript through Gemini and validates
// the result against the same JSON contract the OpenRouter path uses.
func (s *GeminiService) EvaluateSession(ctx context.Context, records []dto.AnswerRecord, specialty string) (*dto.SessionAssessment, string, error) {
	content, err := s.generate(ctx, BuildSessionPrompt(records, specialty))
	if err != nil {
		return nil, "", err
	}

	assessment, err := ParseSessionAssessment(content)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("session evaluated", zap.String("model", s.model))
	return assessment, s.model, nil
}

// QuestionFeedback critiques a single answer. The model argument is accepted
// for interface symmetry; Gemini always uses its configured model.
func (s *GeminiService) QuestionFeedback(ctx context.Context, record dto.AnswerRecord, questionID int, specialty, _ string) (*dto.QuestionFeedback, error) {
	content, err := s.generate(ctx, BuildQuestionPrompt(record, specialty))
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

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if s.consecutiveErrors.Load() >= s.circuitBreakerMax {
		return "", fmt.Errorf("circuit breaker open: %d consecutive errors", s.consecutiveErrors.Load())
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff(attempt)
			s.log.Debug("retrying gemini generate",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context done during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.client.Models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				s.consecutiveErrors.Add(1)
				return "", fmt.Errorf("invalid gemini response: %w", err)
			}
			s.consecutiveErrors.Store(0)
			return result.Text(), nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors.Add(1)
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		s.log.Debug("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.consecutiveErrors.Add(1)
	return "", fmt.Errorf("gemini retries exhausted: %w", lastErr)
}

func (s *GeminiService) backoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "context canceled") || strings.Contains(msg, "context deadline exceeded") {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}
