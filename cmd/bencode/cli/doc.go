// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework for the bencode tool: a
// Command tree with pflag flag sets, structured help output, typo
// suggestions for unknown commands and flags, and an ExitError
// contract for commands whose non-zero exit is an answer rather than
// a failure.
package cli
