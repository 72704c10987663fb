// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
)

// LoadOptions controls the Load pipeline.
type LoadOptions struct {
	// Compression selects the algorithm applied to each payload.
	// CompressionNone disables compression entirely: payloads are
	// embedded as-is with no compression metadata.
	Compression CompressionTag

	// AllowPartial is passed through to [Walk]: continue past
	// unreadable files instead of failing the build.
	AllowPartial bool

	// Workers bounds the worker pool for per-file hashing and
	// compression. Zero means one worker per CPU.
	Workers int

	// Logger receives per-file debug records. Nil discards them.
	Logger *slog.Logger
}

// Load walks root and produces one Entry per regular file: original
// bytes read, digest computed over them, payload optionally
// compressed. Entries are returned in walk order (lexicographic by
// relative path) regardless of how the work was scheduled.
//
// The per-file stage is an independent map over files — no shared
// mutable state — so it runs on a bounded worker pool and is joined
// before returning. Any file error fails the whole load unless
// opts.AllowPartial is set.
func Load(root string, opts LoadOptions) ([]Entry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, walkErr := Walk(root, WalkOptions{AllowPartial: opts.AllowPartial})
	if walkErr != nil {
		var partial *PartialError
		if !errors.As(walkErr, &partial) {
			return nil, walkErr
		}
		for _, err := range partial.Errs {
			logger.Warn("skipping unreadable asset", "error", err)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	// Each worker writes only its own index in entries/errs, so the
	// only synchronization needed is the final join.
	entries := make([]Entry, len(files))
	errs := make([]error, len(files))
	indexes := make(chan int)

	var waitGroup sync.WaitGroup
	for w := 0; w < workers; w++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for i := range indexes {
				entries[i], errs[i] = loadOne(files[i], opts.Compression, logger)
			}
		}()
	}
	for i := range files {
		indexes <- i
	}
	close(indexes)
	waitGroup.Wait()

	for i, err := range errs {
		if err != nil {
			if opts.AllowPartial {
				logger.Warn("skipping unreadable asset", "path", files[i].RelPath, "error", err)
				continue
			}
			return nil, err
		}
	}

	if opts.AllowPartial {
		kept := entries[:0]
		for i := range entries {
			if errs[i] == nil {
				kept = append(kept, entries[i])
			}
		}
		return kept, nil
	}
	return entries, nil
}

// loadOne reads, hashes, and optionally compresses a single file.
func loadOne(file File, compression CompressionTag, logger *slog.Logger) (Entry, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return Entry{}, fmt.Errorf("reading asset %s: %w", file.RelPath, err)
	}

	digest := ComputeDigest(data)

	entry := Entry{
		Path:   file.RelPath,
		Data:   data,
		Digest: digest,
		Size:   int64(len(data)),
	}

	if compression != CompressionNone {
		payload, applied := CompressFallback(data, compression)
		entry.Data = payload
		entry.Compression = applied
		if applied != CompressionNone {
			entry.CompressedSize = int64(len(payload))
		}
		logger.Debug("asset loaded",
			"path", file.RelPath,
			"size", entry.Size,
			"compression", applied.String(),
			"stored", len(payload))
	} else {
		logger.Debug("asset loaded", "path", file.RelPath, "size", entry.Size)
	}

	return entry, nil
}
