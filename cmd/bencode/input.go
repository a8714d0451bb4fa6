// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/canonform/bencode/cmd/bencode/cli"
)

// logger carries diagnostics for all subcommands. Output format
// follows stderr: text on a terminal, JSON when redirected.
var logger = cli.NewLogger()

// readInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin.
//
// Returns the input bytes and the args with any consumed file path
// removed. The caller validates that the returned args are acceptable
// (e.g., no unexpected positional arguments).
func readInput(args []string) ([]byte, []string, error) {
	var data []byte
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err = os.ReadFile(candidate)
			if err != nil {
				return nil, nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			remainingArgs = args[:length-1]
			logger.Debug("read input", "source", candidate, "bytes", len(data))
		}
	}

	if data == nil {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		logger.Debug("read input", "source", "stdin", "bytes", len(data))
	}

	return data, remainingArgs, nil
}
