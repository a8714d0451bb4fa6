// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

// sampleTorrent is a minimal single-file metainfo document. The info
// dictionary is the substring d6:length...e, which is what the
// infohash covers.
const sampleTorrent = "d8:announce16:http://t.example4:infod6:lengthi4096e4:name5:a.bin12:piece lengthi262144e6:pieces20:aaaaaaaaaaaaaaaaaaaaee"

const sampleInfoDict = "d6:lengthi4096e4:name5:a.bin12:piece lengthi262144e6:pieces20:aaaaaaaaaaaaaaaaaaaae"

func TestInfohashV1(t *testing.T) {
	var output bytes.Buffer
	if err := infohash([]byte(sampleTorrent), &output, false); err != nil {
		t.Fatalf("infohash: %v", err)
	}

	want := sha1.Sum([]byte(sampleInfoDict))
	if got := strings.TrimSpace(output.String()); got != hex.EncodeToString(want[:]) {
		t.Errorf("infohash = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestInfohashV2(t *testing.T) {
	var output bytes.Buffer
	if err := infohash([]byte(sampleTorrent), &output, true); err != nil {
		t.Fatalf("infohash --v2: %v", err)
	}

	want := sha256.Sum256([]byte(sampleInfoDict))
	if got := strings.TrimSpace(output.String()); got != hex.EncodeToString(want[:]) {
		t.Errorf("infohash --v2 = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestInfohashErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"not a dictionary", "l4:spame"},
		{"no info key", "d8:announce16:http://t.examplee"},
		{"non-canonical", "d4:infod1:ai1ee8:announce0:e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := infohash([]byte(tt.input), &output, false); err == nil {
				t.Fatalf("infohash(%q) succeeded, want error", tt.input)
			}
		})
	}
}
