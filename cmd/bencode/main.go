// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/canonform/bencode/cmd/bencode/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like validate)
		// return an ExitError with the desired code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

func rootCommand() *cli.Command {
	var compact bool

	return &cli.Command{
		Name:    "bencode",
		Summary: "Inspect and produce canonical bencode data",
		Description: `Tools for working with bencode data from the command line.

Bencode is the serialization format of BitTorrent metainfo files and
tracker responses. Canonical form (sorted unique dictionary keys,
minimal integers, exact length prefixes) gives every value exactly one
serialization, which is what makes infohashes stable.

With no subcommand, decodes bencode on stdin to pretty-printed JSON on
stdout (equivalent to "bencode decode"). All subcommands accept an
optional trailing file path argument; when provided, input is read
from the file instead of stdin.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			validateCommand(),
			convertCommand(),
			infohashCommand(),
			digestCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("bencode", pflag.ContinueOnError)
			flags.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			return flags
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("unknown command %q\n\nRun 'bencode --help' for usage.", remainingArgs[0])
			}
			return decodeBencode(data, os.Stdout, compact)
		},
		Examples: []cli.Example{
			{
				Description: "Decode a torrent file to pretty JSON",
				Command:     "bencode ubuntu.torrent",
			},
			{
				Description: "Decode bencode on stdin",
				Command:     "curl -s $TRACKER/announce | bencode",
			},
			{
				Description: "Compute an infohash",
				Command:     "bencode infohash ubuntu.torrent",
			},
		},
	}
}
