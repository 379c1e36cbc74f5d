package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

const (
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultLLMModel   = "gemini-1.5-flash"
)

// Config stores runtime configuration for the assistant.
type Config struct {
	LLM      LLMConfig
	Deepgram DeepgramConfig
	Audio    AudioConfig
	Session  SessionConfig
	Log      LogConfig
}

// LLMConfig describes the OpenAI-compatible analysis endpoint. APIKey is a
// secret and must never be logged or returned to the UI.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	AnalysisTimeout time.Duration
}

type DeepgramConfig struct {
	APIKey      string
	APIBaseURL  string
	Model       string
	SmartFormat bool
	Endpointing int
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
}

type SessionConfig struct {
	ChunkSize       int
	StreamingGrace  time.Duration
	DefaultLanguage string
}

type LogConfig struct {
	File  string
	Level logger.LogLevel
}

// Load resolves configuration from environment variables and sensible defaults.
func Load() (Config, error) {
	level, err := parseLogLevel(os.Getenv("PRANIK_LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LLM: LLMConfig{
			APIKey: firstNonEmpty(
				os.Getenv("PRANIK_LLM_API_KEY"),
				os.Getenv("GEMINI_API_KEY"),
				os.Getenv("OPENAI_API_KEY"),
			),
			BaseURL:         envOrDefault("PRANIK_LLM_BASE_URL", DefaultLLMBaseURL),
			Model:           envOrDefault("PRANIK_LLM_MODEL", DefaultLLMModel),
			AnalysisTimeout: time.Duration(envOrDefaultInt("PRANIK_ANALYSIS_TIMEOUT_MS", 90000)) * time.Millisecond,
		},
		Deepgram: DeepgramConfig{
			APIKey:      strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
			APIBaseURL:  envOrDefault("DEEPGRAM_API_BASE", "https://api.deepgram.com/v1"),
			Model:       envOrDefault("DEEPGRAM_MODEL", "nova-2"),
			SmartFormat: envOrDefaultBool("DEEPGRAM_SMART_FORMAT", true),
			Endpointing: envOrDefaultInt("DEEPGRAM_ENDPOINTING_MS", 0),
		},
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("PRANIK_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     strings.TrimSpace(os.Getenv("PRANIK_AUDIO_INPUT_FORMAT")),
			InputDevice:     strings.TrimSpace(os.Getenv("PRANIK_AUDIO_INPUT_DEVICE")),
			SampleRate:      envOrDefaultInt("PRANIK_SAMPLE_RATE", 16000),
			Channels:        envOrDefaultInt("PRANIK_CHANNELS", 1),
		},
		Session: SessionConfig{
			ChunkSize:       envOrDefaultInt("PRANIK_AUDIO_CHUNK_SIZE", 4096),
			StreamingGrace:  time.Duration(firstNonNegativeInt("PRANIK_STREAMING_GRACE_MS", "DEEPGRAM_STREAMING_GRACE_MS", 1000)) * time.Millisecond,
			DefaultLanguage: envOrDefault("PRANIK_DEFAULT_LANGUAGE", "en"),
		},
		Log: LogConfig{
			File:  strings.TrimSpace(os.Getenv("PRANIK_LOG_FILE")),
			Level: level,
		},
	}

	if cfg.LLM.AnalysisTimeout <= 0 {
		cfg.LLM.AnalysisTimeout = 90 * time.Second
	}
	if cfg.Deepgram.Endpointing < 0 {
		cfg.Deepgram.Endpointing = 0
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Session.ChunkSize < 256 {
		cfg.Session.ChunkSize = 4096
	}

	return cfg, nil
}

// NewLogger returns the file logger when a log file is configured.
func (c LogConfig) NewLogger() logger.Logger {
	if c.File != "" {
		return logger.NewFileLogger(c.File)
	}
	return logger.NewDefaultLogger()
}

func parseLogLevel(value string) (logger.LogLevel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return logger.INFO, nil
	}
	level, err := logger.StringToLogLevel(value)
	if err != nil {
		return 0, fmt.Errorf("invalid PRANIK_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func firstNonNegativeInt(primary string, secondary string, fallback int) int {
	for _, key := range []string{primary, secondary} {
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
