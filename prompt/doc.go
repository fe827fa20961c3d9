// Package prompt resolves configuration fields left unset after
// reconciliation by asking an external [ValueSource]: an interactive text
// entry first, the system clipboard when the entry is empty.
//
// The terminal source is a Bubble Tea program when stdin is a TTY and a
// plain line reader otherwise. Tests substitute a [ScriptedSource].
package prompt
