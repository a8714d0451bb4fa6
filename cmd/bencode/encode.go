// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/codec"
)

func encodeCommand() *cli.Command {
	var fromYAML bool

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to canonical bencode",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
canonical bencode to stdout.

Input may be JSONC: // line comments, /* block comments */, and
trailing commas are stripped before parsing. With --yaml, input is
parsed as YAML instead, which is convenient for hand-written fixtures.

JSON integers are preserved exactly, including integers past 64-bit
range. Fractional numbers are rejected: bencode has no real number
type, and silently truncating would betray the canonical-form
contract. Booleans encode as integers 0 and 1.

The output is binary-ish ASCII. Writing it to an interactive terminal
is refused; pipe to a file or another command.`,
		Usage: "bencode encode [--yaml] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON to bencode",
				Command:     "echo '{\"name\":\"artifact\",\"length\":4096}' | bencode encode > out.bencode",
			},
			{
				Description: "Encode a YAML fixture",
				Command:     "bencode encode --yaml fixture.yaml > out.bencode",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\":42}' | bencode encode | bencode decode",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flags.BoolVar(&fromYAML, "yaml", false, "parse input as YAML instead of JSON")
			return flags
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if cli.StdoutIsTerminal() {
				return fmt.Errorf("refusing to write bencode to a terminal (pipe the output somewhere)")
			}
			return encodeBencode(data, os.Stdout, fromYAML)
		},
	}
}

// encodeBencode parses JSON (or YAML) data and writes its canonical
// bencode encoding to w.
func encodeBencode(data []byte, w io.Writer, fromYAML bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected JSON data")
	}

	var value any
	if fromYAML {
		if err := yaml.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("parse YAML: %w", err)
		}
	} else {
		// Strip comments and trailing commas before parsing as
		// standard JSON.
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}
		converted, err := convertNumbers(value)
		if err != nil {
			return err
		}
		value = converted
	}

	encoded, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode bencode: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}
