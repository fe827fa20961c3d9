package prompt

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-toomanyconfigs/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestResolve_TypedTextWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockValueSource(ctrl)

	src.EXPECT().PromptText(gomock.Any(), Label("Cfg(foo=<unset>)", "foo")).Return("  bar  ", nil)
	src.EXPECT().ClipboardText().Times(0)

	got, err := New(src).Resolve(context.Background(), "foo", "Cfg(foo=<unset>)")
	require.NoError(t, err)
	assert.Equal(t, "bar", got)
}

func TestResolve_BlankFallsBackToClipboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockValueSource(ctrl)

	gomock.InOrder(
		src.EXPECT().PromptText(gomock.Any(), gomock.Any()).Return("   ", nil),
		src.EXPECT().ClipboardText().Return("pasted-token\n", nil),
	)

	got, err := New(src).Resolve(context.Background(), "token", "Cfg")
	require.NoError(t, err)
	assert.Equal(t, "pasted-token", got)
}

func TestResolve_ClipboardFailureDegradesToEmpty(t *testing.T) {
	src := NewScriptedSource("").WithClipboard("ignored", ErrClipboardUnsupported)

	got, err := New(src).Resolve(context.Background(), "token", "Cfg")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, src.Count(), "an empty answer must not trigger a re-prompt")
}

func TestResolve_SourceErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mock.NewMockValueSource(ctrl)
	src.EXPECT().PromptText(gomock.Any(), gomock.Any()).Return("", ErrPromptCancelled)

	_, err := New(src).Resolve(context.Background(), "foo", "Cfg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPromptCancelled)
	assert.Contains(t, err.Error(), `"foo"`)
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewScriptedSource("never")
	_, err := New(src).Resolve(ctx, "foo", "Cfg")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.Count())
}

func TestResolve_PauseHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	src := NewScriptedSource("value")
	_, err := New(src, WithPause(time.Hour)).Resolve(ctx, "foo", "Cfg")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, src.Count())
}

func TestLabel(t *testing.T) {
	assert.Equal(t,
		"Test(foo=<unset>): Enter value for 'foo' (or press Enter to paste from clipboard): ",
		Label("Test(foo=<unset>)", "foo"))
}

// ── ScriptedSource ────────────────────────────────────────────────────────────

func TestScriptedSource_Exhausted(t *testing.T) {
	src := NewScriptedSource("one")
	ctx := context.Background()

	got, err := src.PromptText(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	_, err = src.PromptText(ctx, "second")
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Equal(t, []string{"first", "second"}, src.Labels())
}

// ── LineSource ────────────────────────────────────────────────────────────────

func TestLineSource_ReadsLinesInOrder(t *testing.T) {
	var out strings.Builder
	src := NewLineSource(strings.NewReader("alpha\r\nbeta\n"), &out)
	ctx := context.Background()

	first, err := src.PromptText(ctx, "a? ")
	require.NoError(t, err)
	second, err := src.PromptText(ctx, "b? ")
	require.NoError(t, err)

	assert.Equal(t, "alpha", first)
	assert.Equal(t, "beta", second)
	assert.Equal(t, "a? b? ", out.String())
}

func TestLineSource_EOFIsEmptyAnswer(t *testing.T) {
	src := NewLineSource(strings.NewReader(""), io.Discard)

	got, err := src.PromptText(context.Background(), "x? ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLineSource_CancelWhileBlocked(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	src := NewLineSource(r, io.Discard)

	errCh := make(chan error, 1)
	go func() {
		_, err := src.PromptText(ctx, "x? ")
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("PromptText did not return after cancellation")
	}
}

func TestLineSource_CancelledReadAnswersNextPrompt(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := NewLineSource(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.PromptText(ctx, "x? ")
	require.ErrorIs(t, err, context.Canceled)

	go func() {
		_, _ = io.WriteString(w, "first\nsecond\n")
	}()

	first, err := src.PromptText(context.Background(), "x? ")
	require.NoError(t, err)
	second, err := src.PromptText(context.Background(), "y? ")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}
