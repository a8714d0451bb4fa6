// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/bencode"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Summary: "Verify input is canonical bencode",
		Description: `Read bencode from stdin (or a file argument) and verify it is exactly
one canonical bencode value: sorted unique dictionary keys, minimal
integer digits, exact length prefixes, no trailing bytes.

Exit code 0 means the input is canonical. Exit code 1 means it is
not; the first violation and its byte offset are printed to stderr.
This is the check to run before hashing a metainfo file, since an
infohash is only meaningful over canonical bytes.`,
		Usage: "bencode validate [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a torrent file",
				Command:     "bencode validate ubuntu.torrent",
			},
			{
				Description: "Validate piped data",
				Command:     "bencode encode < meta.json | bencode validate",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("validate takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return validateBencode(data, os.Stdout, os.Stderr)
		},
	}
}

// validateBencode checks data for canonical form, writing the verdict
// to out on success and the violation to errOut on failure. An
// invalid input is a handled exit code 1, not an error for main to
// re-print.
func validateBencode(data []byte, out, errOut io.Writer) error {
	if _, err := bencode.Decode(data); err != nil {
		var decodeErr *bencode.DecodeError
		if errors.As(err, &decodeErr) {
			fmt.Fprintf(errOut, "invalid: %s at offset %d\n", decodeErr.Reason, decodeErr.Offset)
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	fmt.Fprintf(out, "valid: %d bytes of canonical bencode\n", len(data))
	return nil
}
