// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	gocbor "github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"

	"github.com/canonform/bencode/cmd/bencode/cli"
	"github.com/canonform/bencode/lib/codec"
)

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2) so
// that converting the same bencode document always produces identical
// CBOR bytes, preserving the content-addressing property across the
// format boundary.
var cborEncMode gocbor.EncMode

// cborDecMode decodes CBOR maps into map[string]any so the result
// feeds straight into the bencode marshaler, which requires
// string-kinded dictionary keys.
var cborDecMode gocbor.DecMode

func init() {
	var err error
	cborEncMode, err = gocbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bencode convert: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = gocbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bencode convert: CBOR decoder initialization failed: " + err.Error())
	}
}

func convertCommand() *cli.Command {
	var reverse bool

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert bencode to deterministic CBOR and back",
		Description: `Read bencode from stdin (or a file argument) and write the equivalent
CBOR to stdout, using Core Deterministic Encoding (RFC 8949 §4.2):
sorted map keys, smallest integer encoding, no indefinite-length
items. Both formats are deterministic, so the conversion is stable in
both directions.

With --reverse, read CBOR and write canonical bencode. CBOR values
with no bencode mapping (floats, booleans beyond 0/1 conventions,
null) are rejected rather than approximated.

The output is binary; writing it to an interactive terminal is
refused.`,
		Usage: "bencode convert [--reverse] [file]",
		Examples: []cli.Example{
			{
				Description: "Convert a torrent file to CBOR",
				Command:     "bencode convert ubuntu.torrent > ubuntu.cbor",
			},
			{
				Description: "Back again",
				Command:     "bencode convert --reverse ubuntu.cbor > ubuntu.torrent",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flags.BoolVar(&reverse, "reverse", false, "convert CBOR to bencode")
			return flags
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("convert takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if cli.StdoutIsTerminal() {
				return fmt.Errorf("refusing to write binary output to a terminal (pipe the output somewhere)")
			}
			if reverse {
				return cborToBencode(data, os.Stdout)
			}
			return bencodeToCBOR(data, os.Stdout)
		},
	}
}

func bencodeToCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected bencode data")
	}

	native, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("decode bencode: %w", err)
	}

	encoded, err := cborEncMode.Marshal(native)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}

func cborToBencode(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	var native any
	if err := cborDecMode.Unmarshal(data, &native); err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	encoded, err := codec.Marshal(native)
	if err != nil {
		return fmt.Errorf("encode bencode: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}
