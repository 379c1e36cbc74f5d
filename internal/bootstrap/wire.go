package bootstrap

import (
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"pranik/internal/analysis"
	"pranik/internal/audio"
	"pranik/internal/config"
	"pranik/internal/language"
	"pranik/internal/ports"
	"pranik/internal/providers/deepgram"
	"pranik/internal/providers/openai"
	"pranik/internal/speech"
	"pranik/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.SessionController
}

// Build wires all backend dependencies for the current runtime.
func Build(cfg config.Config, eventSink ports.EventSink, log logger.Logger) (Services, error) {
	languages := language.Default()
	if _, ok := languages.Lookup(cfg.Session.DefaultLanguage); !ok {
		return Services{}, fmt.Errorf("unsupported PRANIK_DEFAULT_LANGUAGE %q", cfg.Session.DefaultLanguage)
	}

	capture := audio.NewMicrophone(cfg.Audio.RecorderCommand)
	provider := deepgram.NewProvider(deepgram.Config{
		APIKey:      cfg.Deepgram.APIKey,
		APIBaseURL:  cfg.Deepgram.APIBaseURL,
		Model:       cfg.Deepgram.Model,
		Language:    language.DefaultLocale,
		SmartFormat: cfg.Deepgram.SmartFormat,
		Endpointing: cfg.Deepgram.Endpointing,
	})

	recognizer := speech.Probe(capture, provider, log, speech.Config{
		Audio: ports.AudioConfig{
			SampleRate:  cfg.Audio.SampleRate,
			Channels:    cfg.Audio.Channels,
			InputFormat: cfg.Audio.InputFormat,
			InputDevice: cfg.Audio.InputDevice,
		},
		Streaming: ports.StreamingConfig{
			SampleRate:     cfg.Audio.SampleRate,
			Channels:       cfg.Audio.Channels,
			Encoding:       "linear16",
			InterimResults: true,
		},
		ChunkSize:      cfg.Session.ChunkSize,
		StreamingGrace: cfg.Session.StreamingGrace,
	}, capture, provider)

	generator := openai.NewGenerator(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	if !generator.Configured() {
		log.Warning("no LLM API key configured; every analysis will return the fallback report")
	}
	analyzer := analysis.NewClient(generator, log, analysis.Config{Timeout: cfg.LLM.AnalysisTimeout})

	controller := usecase.NewSessionController(
		recognizer,
		analyzer,
		languages,
		eventSink,
		log,
		usecase.Config{DefaultLanguage: cfg.Session.DefaultLanguage},
	)

	return Services{Controller: controller}, nil
}
