// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string

	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{
				Name: "alpha",
				Run: func(args []string) error {
					ran = append(ran, "alpha")
					return nil
				},
			},
			{
				Name: "beta",
				Run: func(args []string) error {
					ran = append(ran, "beta")
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"beta"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "beta" {
		t.Errorf("ran = %v, want [beta]", ran)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "decode", Run: func([]string) error { return nil }},
			{Name: "encode", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"decoed"})
	if err == nil {
		t.Fatal("Execute accepted unknown command")
	}
	if !strings.Contains(err.Error(), `"decode"`) {
		t.Errorf("error = %q, want a suggestion of decode", err.Error())
	}
}

func TestExecuteRunFallback(t *testing.T) {
	// A root with both subcommands and Run: an argument that is not
	// a subcommand name falls through to Run (e.g., a file path).
	var got []string

	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "decode", Run: func([]string) error { return nil }},
		},
		Run: func(args []string) error {
			got = args
			return nil
		},
	}

	if err := root.Execute([]string{"input.torrent"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 1 || got[0] != "input.torrent" {
		t.Errorf("Run args = %v, want [input.torrent]", got)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var compact bool
	var positional []string

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&compact, "compact", "c", false, "")
			return flags
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"-c", "file.bin"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !compact {
		t.Error("flag -c not parsed")
	}
	if len(positional) != 1 || positional[0] != "file.bin" {
		t.Errorf("positional = %v, want [file.bin]", positional)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.Bool("compact", false, "")
			return flags
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--compcat"})
	if err == nil {
		t.Fatal("Execute accepted unknown flag")
	}
	if !strings.Contains(err.Error(), "--compact") {
		t.Errorf("error = %q, want a suggestion of --compact", err.Error())
	}
}

func TestExecuteHelpFlag(t *testing.T) {
	command := &Command{
		Name:    "tool",
		Summary: "does things",
		Run: func([]string) error {
			t.Fatal("Run called for --help")
			return nil
		},
	}

	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help): %v", err)
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "tool",
		Summary: "top level",
		Subcommands: []*Command{
			{Name: "decode", Summary: "decode things"},
			{Name: "encode", Summary: "encode things"},
		},
	}

	var out bytes.Buffer
	root.PrintHelp(&out)

	help := out.String()
	for _, want := range []string{"decode", "encode", "decode things"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"decode", "decode", 0},
		{"decoed", "decode", 2},
		{"encde", "encode", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
