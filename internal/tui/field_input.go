// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui holds the Bubble Tea models used for interactive input.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FieldInput is a single-line Bubble Tea model asking for the value of one
// configuration field. The program quits on enter (submitted) or on
// ctrl+c / esc (cancelled).
type FieldInput struct {
	label string
	input textinput.Model

	submitted bool
	cancelled bool
}

// NewFieldInput creates a focused [FieldInput] showing label above the input.
func NewFieldInput(label string) FieldInput {
	input := textinput.New()
	input.Placeholder = "value"
	input.CharLimit = 4096
	input.Width = 60
	input.Focus()

	return FieldInput{label: label, input: input}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m FieldInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. enter submits, ctrl+c and esc cancel, every
// other message goes to the text input.
func (m FieldInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.submit):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m FieldInput) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(keys.submit.Help().Key + " " + keys.submit.Help().Desc + " • " +
		keys.cancel.Help().Key + " " + keys.cancel.Help().Desc))
	b.WriteString("\n")
	return b.String()
}

// Value returns the typed text.
func (m FieldInput) Value() string {
	return m.input.Value()
}

// Submitted reports whether the user confirmed the input.
func (m FieldInput) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user aborted the input.
func (m FieldInput) Cancelled() bool {
	return m.cancelled
}
