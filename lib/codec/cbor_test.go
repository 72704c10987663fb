// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

// sampleRecord is a representative bundle body fragment using cbor
// struct tags (the convention for emitted-artifact types).
type sampleRecord struct {
	Path       string `cbor:"path"`
	Digest     string `cbor:"digest"`
	Size       int64  `cbor:"size"`
	Compressed int64  `cbor:"compressed,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Path:   "index.html",
		Digest: "sha256-abc",
		Size:   1024,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Map encoding must be independent of Go's randomized iteration
	// order. Encode the same map repeatedly and require identical
	// bytes every time.
	value := map[string]int{
		"style.css":  5,
		"index.html": 10,
		"app.js":     77,
		"logo.svg":   3,
	}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for i := 0; i < 32; i++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal (iteration %d) failed: %v", i, err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("non-deterministic encoding on iteration %d", i)
		}
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	// A newer codegen may add fields; an older runtime must still
	// decode the fields it knows about.
	extended := struct {
		Path   string `cbor:"path"`
		Digest string `cbor:"digest"`
		Size   int64  `cbor:"size"`
		Extra  string `cbor:"extra"`
	}{
		Path:   "index.html",
		Digest: "sha256-abc",
		Size:   10,
		Extra:  "future field",
	}

	data, err := Marshal(extended)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Path != "index.html" || decoded.Size != 10 {
		t.Errorf("known fields lost: %+v", decoded)
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buffer bytes.Buffer

	encoder := NewEncoder(&buffer)
	records := []sampleRecord{
		{Path: "a.js", Digest: "sha256-a", Size: 1},
		{Path: "b.js", Digest: "sha256-b", Size: 2},
	}
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i := range records {
		var decoded sampleRecord
		if err := decoder.Decode(&decoded); err != nil {
			t.Fatalf("Decode record %d failed: %v", i, err)
		}
		if decoded != records[i] {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, decoded, records[i])
		}
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]string{"kind": "bundle"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if diagnostic == "" {
		t.Error("Diagnose returned empty string")
	}
}
