// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for command diagnostics. When
// stderr is a terminal, output uses slog.TextHandler for readability.
// When stderr is piped or redirected (CI, scripts), output switches
// to slog.JSONHandler for machine parsing.
//
// Commands scope the logger with context via With():
//
//	logger := cli.NewLogger().With("command", "infohash")
func NewLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Commands that produce raw binary output (encode, convert) use this
// to refuse to splatter bencode over an interactive session.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
