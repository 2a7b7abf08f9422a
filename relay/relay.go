// Package relay turns a free-text instruction into a meta-prompt, streams the
// model's completion and forwards it fragment by fragment.
package relay

import (
	"context"
	"strings"

	"file-aggregator/apierror"
	"file-aggregator/gemini"
	"file-aggregator/metaprompt"
	"file-aggregator/metrics"
	"file-aggregator/models"

	"github.com/apex/log"
)

// Generation is the fixed sampling configuration of every request.
var Generation = gemini.GenerationConfig{
	Temperature:     0.7,
	MaxOutputTokens: 1000,
}

// Generator opens a completion stream. *gemini.Client implements it.
type Generator interface {
	StreamGenerate(ctx context.Context, prompt string, gen gemini.GenerationConfig) (<-chan gemini.Chunk, error)
}

// Sink receives stream events in order. An error from Send means the client
// is gone.
type Sink interface {
	Send(event models.StreamEvent) error
}

type Outcome string

const (
	OutcomeDone     Outcome = "done"
	OutcomeError    Outcome = "error"
	OutcomeCanceled Outcome = "canceled"
)

type Relay struct {
	generator Generator
}

// New returns a relay backed by generator. A nil generator means no API key
// is configured and every Open fails with Unavailable.
func New(generator Generator) *Relay {
	return &Relay{generator: generator}
}

// Open rejects empty or blank input and starts the upstream stream. All
// errors happen before any event is emitted, so callers can still answer with
// a plain HTTP error.
func (r *Relay) Open(ctx context.Context, input string) (<-chan gemini.Chunk, error) {
	if strings.TrimSpace(input) == "" {
		return nil, apierror.BadRequest("Input text is required")
	}
	if r.generator == nil {
		return nil, apierror.Unavailable("Gemini API key not configured")
	}

	chunks, err := r.generator.StreamGenerate(ctx, metaprompt.Build(input), Generation)
	if err != nil {
		return nil, apierror.Upstream("failed to start generation", err)
	}
	return chunks, nil
}

// Forward drains chunks into sink until the stream ends. It emits exactly one
// terminal event, done or error, unless the client goes away first, in which
// case it stops without one. The caller cancels the context it passed to Open
// once Forward returns.
func Forward(ctx context.Context, chunks <-chan gemini.Chunk, sink Sink) Outcome {
	outcome := forward(ctx, chunks, sink)
	metrics.RelayStreamsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func forward(ctx context.Context, chunks <-chan gemini.Chunk, sink Sink) Outcome {
	for {
		select {
		case <-ctx.Done():
			return OutcomeCanceled
		case chunk, ok := <-chunks:
			event := models.TextEvent(chunk.Text)
			switch {
			case !ok:
				event = models.DoneEvent()
			case chunk.Err != nil:
				log.WithError(chunk.Err).Error("Generation stream failed")
				event = models.ErrorEvent(chunk.Err.Error())
			}

			if err := sink.Send(event); err != nil {
				log.WithError(err).Debug("Client went away during stream")
				return OutcomeCanceled
			}

			if !event.Terminal() {
				metrics.RelayFragmentsTotal.Inc()
				continue
			}
			if event.Done {
				return OutcomeDone
			}
			return OutcomeError
		}
	}
}
