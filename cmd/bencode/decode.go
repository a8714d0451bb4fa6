// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/bencode"
)

func decodeCommand() *cli.Command {
	var compact bool

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert bencode to JSON",
		Description: `Read bencode from stdin (or a file argument) and write the equivalent
JSON to stdout.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output.

Byte strings that are valid UTF-8 appear as JSON strings; binary byte
strings (like the "pieces" field of a torrent file) appear base64
encoded. Integers of any magnitude survive as JSON numbers.

The decoder is strict: non-canonical input (unsorted dictionary keys,
"-0", leading zeros, trailing bytes) is rejected with the byte offset
of the violation.`,
		Usage: "bencode decode [-c] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a torrent file to pretty JSON",
				Command:     "bencode decode ubuntu.torrent",
			},
			{
				Description: "Compact output from stdin",
				Command:     "bencode decode -c < message.bencode",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			return flags
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeBencode(data, os.Stdout, compact)
		},
	}
}

// decodeBencode decodes bencode data and writes JSON to w.
func decodeBencode(data []byte, w io.Writer, compact bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected bencode data on stdin")
	}

	value, err := bencode.Decode(data)
	if err != nil {
		return fmt.Errorf("decode bencode: %w", err)
	}

	return writeJSON(w, jsonValue(value), compact)
}
