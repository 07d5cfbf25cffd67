package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestWhisper(t *testing.T, handler http.HandlerFunc) *WhisperService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &WhisperService{
		client: resty.New().SetBaseURL(srv.URL),
		model:  "whisper-1",
		log:    zap.NewNop(),
	}
}

func TestTranscribeSuccess(t *testing.T) {
	svc := newTestWhisper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "I would use a hash index here."}`))
	})

	result := svc.Transcribe(context.Background(), "answer.webm", []byte("fake-audio"))
	assert.Equal(t, "I would use a hash index here.", result.Transcription)
	assert.Empty(t, result.Fallback)
}

func TestTranscribeUpstreamErrorFallsBack(t *testing.T) {
	svc := newTestWhisper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := svc.Transcribe(context.Background(), "answer.webm", []byte("fake-audio"))
	assert.Empty(t, result.Transcription)
	assert.Equal(t, TranscriptionFallback, result.Fallback)
}

func TestTranscribeEmptyTextFallsBack(t *testing.T) {
	svc := newTestWhisper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "  "}`))
	})

	result := svc.Transcribe(context.Background(), "answer.webm", []byte("fake-audio"))
	assert.Equal(t, TranscriptionFallback, result.Fallback)
}
