// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/bencode"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:    "digest",
		Summary: "Compute a BLAKE3 content address of canonical bencode",
		Description: `Read bencode from stdin (or a file argument) and print the hex BLAKE3
digest of its canonical encoding.

Because canonical bencode is the unique serialization of a value, the
digest is a stable content address: two documents with the same
logical content always produce the same digest, regardless of where
they came from. Input that is not canonical is rejected rather than
silently re-canonicalized, so the digest always matches the bytes on
disk.`,
		Usage: "bencode digest [file]",
		Examples: []cli.Example{
			{
				Description: "Content address of a torrent file",
				Command:     "bencode digest ubuntu.torrent",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("digest takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return digest(data, os.Stdout)
		},
	}
}

// digest validates data as canonical bencode and writes the hex
// BLAKE3 digest of it to w.
func digest(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected bencode data")
	}

	if _, err := bencode.Decode(data); err != nil {
		return fmt.Errorf("decode bencode: %w", err)
	}

	// Decode validated canonical form, so data itself is the
	// canonical encoding; hashing it avoids a redundant re-encode.
	sum := blake3.Sum256(data)
	_, err := fmt.Fprintln(w, hex.EncodeToString(sum[:]))
	return err
}
