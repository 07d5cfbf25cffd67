package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/Nik-Maltcev/careeros-sub000/internal/config"
	"github.com/Nik-Maltcev/careeros-sub000/internal/dto"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// TranscriptionFallback is returned when the transcription upstream fails.
// Downstream scoring treats it like any other low-content answer.
const TranscriptionFallback = "Transcription unavailable"

// WhisperService forwards recorded audio to the transcription endpoint. It
// never returns an error to the caller: any upstream failure degrades to the
// fallback sentinel so an interview can always proceed.
type WhisperService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

func NewWhisperService(log *zap.Logger) *WhisperService {
	cfg := config.LoadWhisperConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetTimeout(60 * time.Second)

	return &WhisperService{
		client: client,
		model:  cfg.Model,
		log:    log,
	}
}

// Transcribe sends one audio recording for transcription.
func (s *WhisperService) Transcribe(ctx context.Context, filename string, audio []byte) dto.TranscriptionResult {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(audio)).
		SetFormData(map[string]string{"model": s.model}).
		Post("/audio/transcriptions")
	if err != nil {
		s.log.Warn("transcription request failed", zap.String("file", filename), zap.Error(err))
		return dto.TranscriptionResult{Fallback: TranscriptionFallback}
	}
	if resp.IsError() {
		s.log.Warn("transcription upstream error",
			zap.String("file", filename),
			zap.Int("status", resp.StatusCode()),
		)
		return dto.TranscriptionResult{Fallback: TranscriptionFallback}
	}

	text := strings.TrimSpace(gjson.Get(resp.String(), "text").String())
	if text == "" {
		s.log.Warn("transcription returned empty text", zap.String("file", filename))
		return dto.TranscriptionResult{Fallback: TranscriptionFallback}
	}

	return dto.TranscriptionResult{Transcription: text}
}
