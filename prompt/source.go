package prompt

import (
	"context"

	"github.com/atotto/clipboard"
)

//go:generate mockgen -source=source.go -destination=../internal/mock/value_source_mock.go -package=mock

// ValueSource supplies raw text for unset configuration fields.
type ValueSource interface {
	// PromptText asks for a value, showing label, and blocks until one is
	// entered or ctx is done.
	PromptText(ctx context.Context, label string) (string, error)

	// ClipboardText returns the current clipboard content.
	ClipboardText() (string, error)
}

// Clipboard reads the system clipboard. Embed it to give a source the
// standard clipboard fallback.
type Clipboard struct{}

// ClipboardText implements [ValueSource].
func (Clipboard) ClipboardText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}
