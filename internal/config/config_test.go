package config

import (
	"testing"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRANIK_LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"PRANIK_LLM_BASE_URL", "PRANIK_LLM_MODEL", "PRANIK_ANALYSIS_TIMEOUT_MS",
		"DEEPGRAM_API_KEY", "DEEPGRAM_API_BASE", "DEEPGRAM_MODEL", "DEEPGRAM_SMART_FORMAT",
		"DEEPGRAM_ENDPOINTING_MS", "DEEPGRAM_STREAMING_GRACE_MS",
		"PRANIK_FFMPEG_COMMAND", "PRANIK_AUDIO_INPUT_FORMAT", "PRANIK_AUDIO_INPUT_DEVICE",
		"PRANIK_SAMPLE_RATE", "PRANIK_CHANNELS", "PRANIK_AUDIO_CHUNK_SIZE",
		"PRANIK_STREAMING_GRACE_MS", "PRANIK_DEFAULT_LANGUAGE",
		"PRANIK_LOG_FILE", "PRANIK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LLM.APIKey != "" || cfg.LLM.BaseURL != DefaultLLMBaseURL || cfg.LLM.Model != DefaultLLMModel {
		t.Fatalf("unexpected llm defaults: base=%q model=%q", cfg.LLM.BaseURL, cfg.LLM.Model)
	}
	if cfg.LLM.AnalysisTimeout != 90*time.Second {
		t.Fatalf("unexpected analysis timeout: %s", cfg.LLM.AnalysisTimeout)
	}
	if cfg.Deepgram.APIBaseURL != "https://api.deepgram.com/v1" || cfg.Deepgram.Model != "nova-2" || !cfg.Deepgram.SmartFormat {
		t.Fatalf("unexpected deepgram defaults: %+v", cfg.Deepgram)
	}
	if cfg.Audio.RecorderCommand != "ffmpeg" || cfg.Audio.InputFormat != "" || cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.Session.ChunkSize != 4096 || cfg.Session.StreamingGrace != time.Second || cfg.Session.DefaultLanguage != "en" {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Log.File != "" || cfg.Log.Level != logger.INFO {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadLLMKeyFallbackOrder(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, _ := Load()
	if cfg.LLM.APIKey != "openai-key" {
		t.Fatalf("expected OPENAI_API_KEY fallback, got %q", cfg.LLM.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, _ = Load()
	if cfg.LLM.APIKey != "gemini-key" {
		t.Fatalf("expected GEMINI_API_KEY over OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}

	t.Setenv("PRANIK_LLM_API_KEY", " own-key ")
	cfg, _ = Load()
	if cfg.LLM.APIKey != "own-key" {
		t.Fatalf("expected PRANIK_LLM_API_KEY to win, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadRespectsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRANIK_LLM_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("PRANIK_LLM_MODEL", "llama3")
	t.Setenv("PRANIK_ANALYSIS_TIMEOUT_MS", "1500")
	t.Setenv("DEEPGRAM_API_KEY", "test-key")
	t.Setenv("DEEPGRAM_API_BASE", "https://example.com/v1")
	t.Setenv("DEEPGRAM_MODEL", "nova-3")
	t.Setenv("DEEPGRAM_SMART_FORMAT", "false")
	t.Setenv("DEEPGRAM_ENDPOINTING_MS", "300")
	t.Setenv("PRANIK_FFMPEG_COMMAND", "my-ffmpeg")
	t.Setenv("PRANIK_AUDIO_INPUT_FORMAT", "alsa")
	t.Setenv("PRANIK_AUDIO_INPUT_DEVICE", "mic0")
	t.Setenv("PRANIK_SAMPLE_RATE", "22050")
	t.Setenv("PRANIK_CHANNELS", "2")
	t.Setenv("PRANIK_AUDIO_CHUNK_SIZE", "512")
	t.Setenv("PRANIK_STREAMING_GRACE_MS", "25")
	t.Setenv("PRANIK_DEFAULT_LANGUAGE", "te")
	t.Setenv("PRANIK_LOG_FILE", "/tmp/pranik.log")
	t.Setenv("PRANIK_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LLM.BaseURL != "http://localhost:11434/v1" || cfg.LLM.Model != "llama3" || cfg.LLM.AnalysisTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected llm config: base=%q model=%q timeout=%s", cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.AnalysisTimeout)
	}
	if cfg.Deepgram.APIKey != "test-key" || cfg.Deepgram.APIBaseURL != "https://example.com/v1" {
		t.Fatalf("unexpected deepgram config: %+v", cfg.Deepgram)
	}
	if cfg.Deepgram.Model != "nova-3" || cfg.Deepgram.SmartFormat || cfg.Deepgram.Endpointing != 300 {
		t.Fatalf("unexpected deepgram model/smart format/endpointing: %+v", cfg.Deepgram)
	}
	if cfg.Audio.RecorderCommand != "my-ffmpeg" || cfg.Audio.InputFormat != "alsa" || cfg.Audio.InputDevice != "mic0" {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Audio.Channels != 2 {
		t.Fatalf("unexpected sample/channels: %+v", cfg.Audio)
	}
	if cfg.Session.ChunkSize != 512 || cfg.Session.StreamingGrace != 25*time.Millisecond || cfg.Session.DefaultLanguage != "te" {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Log.File != "/tmp/pranik.log" || cfg.Log.Level != logger.DEBUG {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadInvalidNumericValuesFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRANIK_ANALYSIS_TIMEOUT_MS", "-5")
	t.Setenv("PRANIK_SAMPLE_RATE", "bad")
	t.Setenv("PRANIK_CHANNELS", "-1")
	t.Setenv("PRANIK_AUDIO_CHUNK_SIZE", "5")
	t.Setenv("PRANIK_STREAMING_GRACE_MS", "bad")
	t.Setenv("DEEPGRAM_ENDPOINTING_MS", "-1")
	t.Setenv("DEEPGRAM_SMART_FORMAT", "not-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LLM.AnalysisTimeout != 90*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.LLM.AnalysisTimeout)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Fatalf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Fatalf("expected default channels, got %d", cfg.Audio.Channels)
	}
	if cfg.Session.ChunkSize != 4096 {
		t.Fatalf("expected chunk size fallback, got %d", cfg.Session.ChunkSize)
	}
	if cfg.Session.StreamingGrace != time.Second {
		t.Fatalf("expected default grace, got %s", cfg.Session.StreamingGrace)
	}
	if cfg.Deepgram.Endpointing != 0 {
		t.Fatalf("expected endpointing to be disabled, got %d", cfg.Deepgram.Endpointing)
	}
	if !cfg.Deepgram.SmartFormat {
		t.Fatalf("expected default smart format true")
	}
}

func TestLoadGraceFallsBackToDeepgramKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_STREAMING_GRACE_MS", "200")

	cfg, _ := Load()
	if cfg.Session.StreamingGrace != 200*time.Millisecond {
		t.Fatalf("expected deepgram grace fallback, got %s", cfg.Session.StreamingGrace)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRANIK_LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Fatalf("expected invalid log level error")
	}
}
