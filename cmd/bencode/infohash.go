// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/bencode"
)

func infohashCommand() *cli.Command {
	var v2 bool

	return &cli.Command{
		Name:    "infohash",
		Summary: "Compute the BitTorrent infohash of a metainfo file",
		Description: `Read a torrent metainfo file from stdin (or a file argument) and print
the hex infohash of its "info" dictionary.

The infohash is the digest of the canonical bencode encoding of the
info dictionary: SHA-1 for BitTorrent v1 (BEP 3), SHA-256 with --v2
(BEP 52). The decoder enforces canonical form on input, so the
re-encoded info dictionary is byte-identical to the bytes that were
hashed by the torrent's creator.`,
		Usage: "bencode infohash [--v2] [file]",
		Examples: []cli.Example{
			{
				Description: "v1 infohash of a torrent file",
				Command:     "bencode infohash ubuntu.torrent",
			},
			{
				Description: "v2 infohash",
				Command:     "bencode infohash --v2 ubuntu.torrent",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("infohash", pflag.ContinueOnError)
			flags.BoolVar(&v2, "v2", false, "SHA-256 infohash (BitTorrent v2, BEP 52)")
			return flags
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("infohash takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return infohash(data, os.Stdout, v2)
		},
	}
}

// infohash decodes a metainfo document, re-encodes its info
// dictionary canonically, and writes the hex digest to w.
func infohash(data []byte, w io.Writer, v2 bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected a metainfo file")
	}

	document, err := bencode.Decode(data)
	if err != nil {
		return fmt.Errorf("decode metainfo: %w", err)
	}
	if document.Kind() != bencode.KindDict {
		return fmt.Errorf("metainfo top-level value is a %s, want a dictionary", document.Kind())
	}

	info, ok := document.Lookup([]byte("info"))
	if !ok {
		return fmt.Errorf("metainfo has no \"info\" dictionary")
	}

	canonical, err := bencode.Encode(info)
	if err != nil {
		return fmt.Errorf("encode info dictionary: %w", err)
	}

	var digest []byte
	if v2 {
		sum := sha256.Sum256(canonical)
		digest = sum[:]
	} else {
		sum := sha1.Sum(canonical)
		digest = sum[:]
	}

	_, err = fmt.Fprintln(w, hex.EncodeToString(digest))
	return err
}
