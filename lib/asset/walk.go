// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is one entry produced by [Walk]: the path of a regular file
// relative to the walk root (always slash-separated, never absolute)
// and its canonicalized absolute path on disk.
type File struct {
	// RelPath is the slash-separated path relative to the walk root.
	// It is the unique key under which the asset is embedded and the
	// path the runtime uses for lookup.
	RelPath string

	// AbsPath is the canonicalized absolute path of the source file.
	AbsPath string
}

// WalkOptions controls Walk behavior.
type WalkOptions struct {
	// AllowPartial continues the walk when an individual file or
	// directory cannot be read, collecting per-file errors instead of
	// aborting. The default (false) fails the whole walk on the first
	// unreadable entry: a build must not silently embed an incomplete
	// asset tree.
	AllowPartial bool
}

// PartialError aggregates the per-file errors of a partial walk. It is
// only returned when WalkOptions.AllowPartial is set; the Files
// returned alongside it are still valid.
type PartialError struct {
	Errs []error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%d asset(s) could not be read: %v", len(e.Errs), errors.Join(e.Errs...))
}

func (e *PartialError) Unwrap() []error { return e.Errs }

// Walk enumerates all regular files under root and returns them sorted
// lexicographically by relative path. The ordering is a contract:
// everything downstream (entry order, CSP token order, bundle bytes)
// inherits it, and repeated builds from an identical tree must produce
// an identical sequence.
//
// Symlinks and other non-regular files are skipped. An unreadable root
// is always an error. An unreadable child fails the walk unless
// opts.AllowPartial is set, in which case the readable files are
// returned together with a *PartialError describing what was skipped.
func Walk(root string, opts WalkOptions) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving asset root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("reading asset root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", absRoot)
	}

	var files []File
	var partial []error

	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if opts.AllowPartial {
				partial = append(partial, fmt.Errorf("reading %s: %w", path, err))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}

		files = append(files, File{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// WalkDir visits entries in lexical order per directory, but that
	// interleaves "a/z" after "a-b". Sorting by the full relative
	// slash path gives one global, platform-independent ordering.
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	if len(partial) > 0 {
		return files, &PartialError{Errs: partial}
	}
	return files, nil
}

// NormalizePath folds an embedded asset path to the form used for
// duplicate detection: slash-separated and lowercased. Case folding
// matters because the bundle may be consumed on case-insensitive
// filesystems (macOS, Windows), where "Logo.png" and "logo.png" would
// collide at lookup time.
func NormalizePath(relPath string) string {
	return strings.ToLower(filepath.ToSlash(relPath))
}
