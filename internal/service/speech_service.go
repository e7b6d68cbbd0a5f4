package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Transcriber converts recorded audio to text. An empty transcription means
// no speech was detected; that is not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer converts text to spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// SpeechService talks to OpenAI-compatible audio endpoints over HTTP.
// Either direction can be disabled by leaving its base URL unset.
type SpeechService struct {
	cfg       *config.SpeechConfig
	sttClient *resty.Client
	ttsClient *resty.Client
	logger    *zap.Logger
}

func NewSpeechService(logger *zap.Logger) *SpeechService {
	cfg := config.LoadSpeechConfig()
	s := &SpeechService{cfg: cfg, logger: logger}
	if cfg.STTBaseURL != "" {
		s.sttClient = resty.New().SetBaseURL(cfg.STTBaseURL).SetTimeout(60 * time.Second)
	}
	if cfg.TTSBaseURL != "" {
		s.ttsClient = resty.New().SetBaseURL(cfg.TTSBaseURL).SetTimeout(60 * time.Second)
	}
	return s
}

func (s *SpeechService) TranscriptionEnabled() bool {
	return s.sttClient != nil
}

func (s *SpeechService) SynthesisEnabled() bool {
	return s.ttsClient != nil
}

func (s *SpeechService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if s.sttClient == nil {
		return "", fmt.Errorf("speech-to-text is not configured")
	}

	req := s.sttClient.R().
		SetContext(ctx).
		SetFileReader("file", "audio.webm", bytes.NewReader(audio)).
		SetFormData(map[string]string{"model": s.cfg.STTModel})
	if s.cfg.STTAPIKey != "" {
		req.SetHeader("Authorization", "Bearer "+s.cfg.STTAPIKey)
	}

	resp, err := req.Post("/v1/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("transcription error response",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("transcription service returned status %d", resp.StatusCode())
	}

	// Empty text is a valid "no speech detected" outcome.
	return gjson.Get(resp.String(), "text").String(), nil
}

func (s *SpeechService) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if s.ttsClient == nil {
		return nil, fmt.Errorf("text-to-speech is not configured")
	}
	if voice == "" {
		voice = s.cfg.TTSVoice
	}

	req := s.ttsClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"input": text, "voice": voice})
	if s.cfg.TTSAPIKey != "" {
		req.SetHeader("Authorization", "Bearer "+s.cfg.TTSAPIKey)
	}

	resp, err := req.Post("/v1/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("synthesis service returned status %d", resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("synthesis service returned no audio")
	}
	return resp.Body(), nil
}
