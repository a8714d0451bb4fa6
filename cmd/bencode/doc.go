// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

// The bencode command inspects and produces canonical bencode data
// from the command line.
//
// Subcommands:
//
//   - decode: convert bencode to JSON.
//   - encode: convert JSON (or JSONC, or YAML with --yaml) to
//     canonical bencode.
//   - validate: verify input is canonical bencode, reporting the
//     byte offset of the first violation.
//   - convert: convert bencode to deterministic CBOR and back.
//   - infohash: compute the BitTorrent infohash of a metainfo file.
//   - digest: compute a BLAKE3 content address of the canonical
//     encoding.
//
// All subcommands accept input from stdin or from a trailing file
// path argument. With no subcommand at all, bencode acts as an alias
// for bencode decode, so "bencode < file.torrent" just works.
package main
