package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Prompter resolves unset fields through a [ValueSource].
type Prompter struct {
	source ValueSource
	logger *logger.Logger
	pause  time.Duration
}

// Option configures a [Prompter].
type Option func(*Prompter)

// WithLogger sets the logger used for prompt diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Prompter) {
		p.logger = logger.Wrap(l).Component("prompter")
	}
}

// WithPause waits d before and after every prompt, giving log output
// written by other goroutines time to flush before the prompt is drawn.
func WithPause(d time.Duration) Option {
	return func(p *Prompter) {
		p.pause = d
	}
}

// New creates a [Prompter] reading from source.
func New(source ValueSource, opts ...Option) *Prompter {
	p := &Prompter{source: source, logger: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTerminal creates a [Prompter] bound to the process terminal: a Bubble
// Tea input when stdin is a TTY, a line reader on stdin otherwise. Prompts
// are written to stderr.
func NewTerminal(opts ...Option) *Prompter {
	var source ValueSource
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		source = NewTerminalSource(os.Stdin, os.Stderr)
	} else {
		source = NewLineSource(os.Stdin, os.Stderr)
	}
	return New(source, opts...)
}

// Label renders the prompt shown for field of the configuration described
// by owner.
func Label(owner, field string) string {
	return fmt.Sprintf("%s: Enter value for '%s' (or press Enter to paste from clipboard): ", owner, field)
}

// Resolve obtains a value for field. The typed text wins when it is not
// blank; otherwise the clipboard content is used. A clipboard failure
// degrades to an empty value, and an empty value is accepted as-is.
//
// Resolve blocks until the source answers or ctx is done.
func (p *Prompter) Resolve(ctx context.Context, field, owner string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.sleep(ctx); err != nil {
		return "", err
	}

	text, err := p.source.PromptText(ctx, Label(owner, field))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("prompt %q: %w", field, ctxErr)
		}
		return "", fmt.Errorf("prompt %q: %w", field, err)
	}

	value := strings.TrimSpace(text)
	if value == "" {
		clip, clipErr := p.source.ClipboardText()
		if clipErr != nil {
			p.logger.Warn().Err(clipErr).Str("field", field).Msg("clipboard unavailable, using empty value")
			clip = ""
		}
		value = strings.TrimSpace(clip)
		p.logger.Debug().Str("field", field).Msg("using clipboard value")
	}

	if err = p.sleep(ctx); err != nil {
		return "", err
	}

	p.logger.Info().Str("owner", owner).Str("field", field).Msg("field set")
	return value, nil
}

func (p *Prompter) sleep(ctx context.Context) error {
	if p.pause <= 0 {
		return nil
	}
	t := time.NewTimer(p.pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
