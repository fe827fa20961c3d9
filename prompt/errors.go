package prompt

import "errors"

var (
	// ErrPromptCancelled is returned when the user aborts an interactive
	// prompt (ctrl+c or esc).
	ErrPromptCancelled = errors.New("prompt cancelled")

	// ErrScriptExhausted is returned by [ScriptedSource] when more prompts
	// are issued than answers were scripted.
	ErrScriptExhausted = errors.New("scripted source has no answers left")

	// ErrClipboardUnsupported is returned when no clipboard utility is
	// available on the host.
	ErrClipboardUnsupported = errors.New("clipboard unsupported")
)
