package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"pranik/internal/domain"
	"pranik/internal/ports"
)

// Config controls a single analysis call.
type Config struct {
	Timeout time.Duration
}

// Client sends transcripts to a generative text service and always returns a
// complete report, substituting Fallback on any failure.
type Client struct {
	generator ports.TextGenerator
	log       logger.Logger
	cfg       Config
}

func NewClient(generator ports.TextGenerator, log logger.Logger, cfg Config) *Client {
	return &Client{generator: generator, log: log, cfg: cfg}
}

// Analyze implements ports.Analyzer.
func (c *Client) Analyze(ctx context.Context, transcript string) domain.Analysis {
	id := uuid.NewString()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	c.log.Info(fmt.Sprintf("analysis %s: sending transcript (%d chars)", id, len([]rune(transcript))))
	raw, err := c.generator.Generate(ctx, BuildPrompt(transcript))
	if err != nil {
		return c.fallback(id, domain.AnalysisFailureTransport, err)
	}
	c.log.Debug(fmt.Sprintf("analysis %s: raw response: %s", id, raw))

	cleaned := StripFences(raw)
	result, failure, err := Decode(cleaned)
	if err != nil {
		return c.fallback(id, failure, err)
	}

	c.log.Info(fmt.Sprintf("analysis %s: parsed %d symptoms", id, len(result.Symptoms)))
	return domain.Analysis{
		ID:     id,
		Result: result,
		Source: domain.ResultSourceModel,
	}
}

func (c *Client) fallback(id string, failure domain.AnalysisFailure, err error) domain.Analysis {
	c.log.Error(fmt.Sprintf("analysis %s: %s failure, using fallback: %v", id, failure, err))
	return domain.Analysis{
		ID:      id,
		Result:  Fallback(),
		Source:  domain.ResultSourceFallback,
		Failure: failure,
		Detail:  err.Error(),
	}
}
