// Package enhance rewrites template captions through an external
// text-completion provider. Every failure degrades to the original caption.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cadence/internal/core"
	"cadence/internal/logger"

	"github.com/cenkalti/backoff/v5"
)

// Completer is the only thing the enhancer needs from a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Outcome is the final state of one entry's enhancement.
type Outcome int

const (
	Pending Outcome = iota
	Enhanced
	Unchanged
)

func (o Outcome) String() string {
	switch o {
	case Enhanced:
		return "enhanced"
	case Unchanged:
		return "unchanged"
	default:
		return "pending"
	}
}

// Result carries the entry after enhancement. Warning is set when the provider
// failed and the template caption was kept.
type Result struct {
	Entry   core.DayEntry
	Outcome Outcome
	Warning error
}

// CaptionEnhancer is the strategy selected at configuration time.
type CaptionEnhancer interface {
	Enhance(ctx context.Context, entry core.DayEntry) Result
	Name() string
}

// TemplateOnly keeps every caption as generated.
type TemplateOnly struct{}

func (TemplateOnly) Enhance(_ context.Context, entry core.DayEntry) Result {
	return Result{Entry: entry, Outcome: Unchanged}
}

func (TemplateOnly) Name() string { return "template" }

// Options tunes the model-backed enhancer.
type Options struct {
	MaxCaptionLength int           // runes; longer rewrites are rejected
	MinCaptionLength int           // runes; shorter rewrites are rejected
	MaxAttempts      int           // calls per entry, at least 1
	RetryDelay       time.Duration // pause between attempts
	CallTimeout      time.Duration // per call; 0 leaves it to the provider
}

// DefaultOptions returns the limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxCaptionLength: 280,
		MinCaptionLength: 10,
		MaxAttempts:      1,
		RetryDelay:       500 * time.Millisecond,
		CallTimeout:      30 * time.Second,
	}
}

// ModelBacked rewrites captions using a Completer.
type ModelBacked struct {
	completer Completer
	provider  string
	opts      Options
}

// NewModelBacked wraps a completer. provider is used to label warnings.
func NewModelBacked(c Completer, provider string, opts Options) *ModelBacked {
	defaults := DefaultOptions()
	if opts.MaxCaptionLength <= 0 {
		opts.MaxCaptionLength = defaults.MaxCaptionLength
	}
	if opts.MinCaptionLength <= 0 {
		opts.MinCaptionLength = defaults.MinCaptionLength
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaults.RetryDelay
	}
	if provider == "" {
		provider = "model"
	}
	return &ModelBacked{completer: c, provider: provider, opts: opts}
}

func (m *ModelBacked) Name() string { return "model:" + m.provider }

// Enhance asks the provider for a rewritten caption. Only Caption can change.
func (m *ModelBacked) Enhance(ctx context.Context, entry core.DayEntry) Result {
	unchanged := func(err error) Result {
		return Result{
			Entry:   entry,
			Outcome: Unchanged,
			Warning: &core.ProviderError{Provider: m.provider, Day: entry.Day, Err: err},
		}
	}
	if err := ctx.Err(); err != nil {
		return unchanged(err)
	}

	prompt := BuildCaptionPrompt(entry, m.opts.MaxCaptionLength)
	attempt := 0
	caption, err := backoff.Retry(ctx,
		func() (string, error) {
			attempt++
			return m.complete(ctx, prompt)
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(m.opts.RetryDelay)),
		backoff.WithMaxTries(uint(m.opts.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Debug("caption rewrite attempt failed", "day", entry.Day, "attempt", attempt, "retry_in", next.String(), "error", err.Error())
		}),
	)
	if err != nil {
		return unchanged(err)
	}

	entry.Caption = caption
	return Result{Entry: entry, Outcome: Enhanced}
}

func (m *ModelBacked) complete(ctx context.Context, prompt string) (string, error) {
	if m.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.CallTimeout)
		defer cancel()
	}

	text, err := m.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanCaption(text, m.opts.MinCaptionLength, m.opts.MaxCaptionLength)
}

// ErrMalformedResponse is wrapped by every response that cannot be used as a caption.
var ErrMalformedResponse = errors.New("malformed response")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
