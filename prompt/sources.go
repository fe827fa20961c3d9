package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MKhiriev/go-toomanyconfigs/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// TerminalSource asks through a Bubble Tea text input.
type TerminalSource struct {
	Clipboard

	in  io.Reader
	out io.Writer
}

// NewTerminalSource creates a [TerminalSource] reading keys from in and
// drawing on out.
func NewTerminalSource(in io.Reader, out io.Writer) *TerminalSource {
	return &TerminalSource{in: in, out: out}
}

// PromptText implements [ValueSource]. The program is killed when ctx is
// done.
func (s *TerminalSource) PromptText(ctx context.Context, label string) (string, error) {
	program := tea.NewProgram(
		tui.NewFieldInput(strings.TrimSpace(label)),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run input program: %w", err)
	}

	result, ok := final.(tui.FieldInput)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.Cancelled() {
		return "", ErrPromptCancelled
	}
	return result.Value(), nil
}

// LineSource reads one line per prompt from a reader. It serves pipes and
// other non-interactive stdin.
type LineSource struct {
	Clipboard

	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	pending chan lineResult
}

// NewLineSource creates a [LineSource] reading from in and writing labels
// to out.
func NewLineSource(in io.Reader, out io.Writer) *LineSource {
	return &LineSource{in: bufio.NewReader(in), out: out}
}

type lineResult struct {
	line string
	err  error
}

// PromptText implements [ValueSource]. End of input counts as an empty
// answer. When ctx is done first the read keeps running, and the line it
// returns answers the next prompt.
func (s *LineSource) PromptText(ctx context.Context, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	if s.pending == nil {
		done := make(chan lineResult, 1)
		go func() {
			line, err := s.in.ReadString('\n')
			done <- lineResult{line: line, err: err}
		}()
		s.pending = done
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-s.pending:
		s.pending = nil
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

// ScriptedSource answers prompts from a fixed list. It records every label
// it was asked with.
type ScriptedSource struct {
	mu        sync.Mutex
	answers   []string
	labels    []string
	clipboard string
	clipErr   error
}

// NewScriptedSource creates a [ScriptedSource] returning answers in order.
func NewScriptedSource(answers ...string) *ScriptedSource {
	return &ScriptedSource{answers: answers}
}

// WithClipboard sets the clipboard content and error returned by
// ClipboardText.
func (s *ScriptedSource) WithClipboard(text string, err error) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = text
	s.clipErr = err
	return s
}

// PromptText implements [ValueSource].
func (s *ScriptedSource) PromptText(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = append(s.labels, label)
	if len(s.answers) == 0 {
		return "", ErrScriptExhausted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// ClipboardText implements [ValueSource].
func (s *ScriptedSource) ClipboardText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clipboard, s.clipErr
}

// Labels returns the labels of all prompts issued so far.
func (s *ScriptedSource) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Count returns the number of prompts issued so far.
func (s *ScriptedSource) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.labels)
}

var (
	_ ValueSource = (*TerminalSource)(nil)
	_ ValueSource = (*LineSource)(nil)
	_ ValueSource = (*ScriptedSource)(nil)
)
