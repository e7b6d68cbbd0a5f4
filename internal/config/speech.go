package config

import (
	"os"
	"sync"
)

type SpeechConfig struct {
	// STTBaseURL points at an OpenAI-compatible transcription endpoint
	// (e.g. a local whisper server). Empty disables speech-to-text.
	STTBaseURL string
	STTModel   string
	STTAPIKey  string

	// TTSBaseURL points at the speech synthesis service. Empty disables
	// text-to-speech.
	TTSBaseURL string
	TTSVoice   string
	TTSAPIKey  string
}

var (
	speechConfig *SpeechConfig
	speechOnce   sync.Once
)

func LoadSpeechConfig() *SpeechConfig {
	speechOnce.Do(func() {
		sttModel := os.Getenv("STT_MODEL")
		if sttModel == "" {
			sttModel = "whisper-1"
		}
		voice := os.Getenv("TTS_VOICE")
		if voice == "" {
			voice = "en-US-JennyNeural"
		}
		speechConfig = &SpeechConfig{
			STTBaseURL: os.Getenv("STT_BASE_URL"),
			STTModel:   sttModel,
			STTAPIKey:  os.Getenv("STT_API_KEY"),
			TTSBaseURL: os.Getenv("TTS_BASE_URL"),
			TTSVoice:   voice,
			TTSAPIKey:  os.Getenv("TTS_API_KEY"),
		}
	})
	return speechConfig
}
