// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"bytes"
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/glazeapp/glaze/lib/testutil"
)

func TestLoadUncompressed(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html": "0123456789", // 10 bytes
		"style.css":  "abcde",      // 5 bytes
	})

	entries, err := Load(root, LoadOptions{Compression: CompressionNone})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Load returned %d entries, want 2", len(entries))
	}

	index := entries[0]
	style := entries[1]
	if index.Path != "index.html" || style.Path != "style.css" {
		t.Fatalf("unexpected entry order: %q, %q", index.Path, style.Path)
	}

	for _, entry := range entries {
		if entry.Compressed() {
			t.Errorf("%s: compression disabled but entry is compressed", entry.Path)
		}
		if entry.CompressedSize != 0 {
			t.Errorf("%s: compressed_size = %d, want 0", entry.Path, entry.CompressedSize)
		}
		want := sha256.Sum256(entry.Data)
		if entry.Digest != Digest(want) {
			t.Errorf("%s: digest does not match direct SHA-256 of contents", entry.Path)
		}
	}
	if index.Size != 10 || style.Size != 5 {
		t.Errorf("sizes = %d, %d; want 10, 5", index.Size, style.Size)
	}
}

func TestLoadCompressedRoundtrip(t *testing.T) {
	content := strings.Repeat("<div class=\"row\">cell</div>\n", 2000)
	root := testutil.WriteTree(t, map[string]string{"big.html": content})

	entries, err := Load(root, LoadOptions{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Load returned %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if !entry.Compressed() {
		t.Fatal("highly repetitive HTML should have compressed")
	}
	if entry.CompressedSize != int64(len(entry.Data)) {
		t.Errorf("compressed_size = %d, stored payload is %d bytes", entry.CompressedSize, len(entry.Data))
	}

	// Digest is over the ORIGINAL bytes: decompressing the payload
	// must yield bytes matching the recorded digest.
	payload, err := entry.Payload()
	if err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if !bytes.Equal(payload, []byte(content)) {
		t.Error("decompressed payload differs from the source file")
	}
	if ComputeDigest(payload) != entry.Digest {
		t.Error("digest of decompressed payload does not match recorded digest")
	}
}

func TestLoadOrderIndependentOfWorkerCount(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"m.js", "a.css", "z/deep.js", "b.html", "z/a.txt", "k.js"} {
		files[name] = strings.Repeat(name, 100)
	}
	root := testutil.WriteTree(t, files)

	serial, err := Load(root, LoadOptions{Compression: CompressionZstd, Workers: 1})
	if err != nil {
		t.Fatalf("serial Load failed: %v", err)
	}
	parallel, err := Load(root, LoadOptions{Compression: CompressionZstd, Workers: 8})
	if err != nil {
		t.Fatalf("parallel Load failed: %v", err)
	}

	if len(serial) != len(parallel) {
		t.Fatalf("entry counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i].Path != parallel[i].Path {
			t.Errorf("entry %d path differs: %q vs %q", i, serial[i].Path, parallel[i].Path)
		}
		if !bytes.Equal(serial[i].Data, parallel[i].Data) {
			t.Errorf("entry %d payload differs between worker counts", i)
		}
	}
}

func TestLoadEmptyRoot(t *testing.T) {
	entries, err := Load(t.TempDir(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load of empty root failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load of empty root returned %d entries", len(entries))
	}
}

func TestContributesCSPToken(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"app.js", true},
		{"module.mjs", true},
		{"style.css", true},
		{"index.html", false},
		{"logo.png", false},
	}
	for _, tt := range tests {
		entry := Entry{Path: tt.path}
		if got := entry.ContributesCSPToken(); got != tt.want {
			t.Errorf("ContributesCSPToken(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
