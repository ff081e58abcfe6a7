// Package reflection asks a chat-completion model for a short word of
// encouragement about the reader's progress. It is best effort: every
// failure resolves to Fallback, so callers never handle an error.
package reflection

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/logging"
)

// Fallback is returned whenever the model cannot be reached or answers
// with nothing usable.
const Fallback = "Keep going! 'Thy word is a lamp unto my feet, and a light unto my path.' (Psalm 119:105)"

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config configures the remote model.
type Config struct {
	APIKey  string
	BaseURL string // empty means the OpenAI default
	Model   string
	Timeout time.Duration
}

// Reflector requests reflections. The zero value is not usable; use New.
type Reflector struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
	busy    atomic.Int32
}

// New returns a Reflector. Without an API key it still works, but always
// yields Fallback.
func New(cfg Config, log *zap.Logger) *Reflector {
	r := &Reflector{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logging.OrNop(log),
	}
	if r.model == "" {
		r.model = DefaultModel
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		r.client = openai.NewClientWithConfig(oc)
	}
	return r
}

// Busy reports whether at least one request is in flight.
func (r *Reflector) Busy() bool {
	return r.busy.Load() > 0
}

// Request returns a reflection on completed out of total books, optionally
// mentioning the last finished book. Concurrent calls are allowed; each
// returns its own answer.
func (r *Reflector) Request(ctx context.Context, completed, total int, lastBook string) string {
	r.busy.Add(1)
	defer r.busy.Add(-1)

	if r.client == nil {
		r.log.Debug("reflection disabled: no API key")
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(completed, total, lastBook)},
		},
	})
	if err != nil {
		r.log.Warn("reflection request failed", zap.Error(err))
		return Fallback
	}
	if len(resp.Choices) == 0 {
		r.log.Warn("reflection response had no choices")
		return Fallback
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		r.log.Warn("reflection response was empty")
		return Fallback
	}
	return text
}

// Prompt builds the model prompt.
func Prompt(completed, total int, lastBook string) string {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}

	var b strings.Builder
	b.WriteString("The user is tracking their Bible reading progress.\n")
	fmt.Fprintf(&b, "Current status: %d out of %d books completed (%.1f%%).\n", completed, total, pct)
	if lastBook != "" {
		fmt.Fprintf(&b, "The last book they finished was %s.\n", lastBook)
	}
	b.WriteString("\nProvide a brief, encouraging word of wisdom or a short reflection (max 100 words). ")
	b.WriteString("If they are just starting, encourage them. If they are halfway, celebrate the milestone. ")
	b.WriteString("Use a warm, spiritual, yet modern tone. ")
	b.WriteString("Include a relevant Bible verse reference that matches their progress or the last book.")
	return b.String()
}
