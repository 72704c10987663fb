// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"sort"

	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/config"
	"github.com/glazeapp/glaze/lib/icon"
	"github.com/glazeapp/glaze/lib/isolation"
)

// AssemblyViolation names the invariant an AssemblyError reports.
type AssemblyViolation string

const (
	// DuplicatePath: two entries fold to the same normalized path.
	DuplicatePath AssemblyViolation = "duplicate asset path"

	// MissingIcon: a (platform, size) pair the matrix requires has no
	// generated artifact.
	MissingIcon AssemblyViolation = "missing required icon"

	// UnexpectedIcon: an artifact covers a size the matrix does not
	// list, or belongs to a platform this build does not target. The
	// emitted icon set must contain exactly the required pairs.
	UnexpectedIcon AssemblyViolation = "unexpected icon"

	// MissingIsolation: isolation is enabled but no payload was
	// provided.
	MissingIsolation AssemblyViolation = "missing isolation payload"
)

// AssemblyError is a fatal invariant violation detected while merging
// upstream artifacts. It names the specific offending item so the
// build halts with one actionable message.
type AssemblyError struct {
	Violation AssemblyViolation
	Item      string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling runtime context: %s: %s", e.Violation, e.Item)
}

// Input carries everything Assemble merges. All byte buffers are
// moved, not copied: callers must not retain or mutate them
// afterwards.
type Input struct {
	// App is the application metadata snapshot from configuration.
	App config.AppConfig

	// CSP is the base policy to augment with computed hash tokens.
	CSP string

	// Entries are the loaded asset entries in walk order.
	Entries []asset.Entry

	// Icons are the generated icon artifacts.
	Icons []icon.Artifact

	// Platforms are the icon target platforms this build must cover.
	Platforms []icon.Platform

	// Matrix is the required (platform, size) matrix Icons are
	// checked against.
	Matrix icon.Matrix

	// IsolationEnabled records the feature toggle; when set,
	// Isolation must be non-nil.
	IsolationEnabled bool

	// Isolation is the generated bridge payload, nil when the
	// feature is disabled.
	Isolation *isolation.Payload

	// Compression is the tag applied to the isolation script entry,
	// matching what the asset pipeline used.
	Compression asset.CompressionTag
}

// Assemble merges the upstream artifacts into one RuntimeContext,
// checking every invariant fail-fast: unique entry paths (after case
// folding), exactly the required icon sizes per platform, and a
// present isolation payload when the feature is enabled. Any
// violation returns a fatal *AssemblyError naming the offending item.
func Assemble(input Input) (*RuntimeContext, error) {
	if input.IsolationEnabled && input.Isolation == nil {
		return nil, &AssemblyError{Violation: MissingIsolation, Item: "isolation is enabled but no payload was generated"}
	}

	entries := input.Entries
	var record *isolationRecord

	if input.Isolation != nil {
		// The bridge script becomes an ordinary entry so it is
		// hashed, compressed, and embedded uniformly.
		payload, applied := asset.CompressFallback(input.Isolation.Script, input.Compression)
		entry := asset.Entry{
			Path:        isolation.ScriptPath,
			Data:        payload,
			Digest:      input.Isolation.Digest,
			Size:        int64(len(input.Isolation.Script)),
			Compression: applied,
		}
		if applied != asset.CompressionNone {
			entry.CompressedSize = int64(len(payload))
		}
		entries = append(entries, entry)

		record = &isolationRecord{
			Key:    input.Isolation.Key,
			Nonce:  input.Isolation.Nonce,
			Path:   isolation.ScriptPath,
			Digest: input.Isolation.Digest,
		}
	}

	// Re-sort so the isolation entry lands in the stable
	// lexicographic order everything downstream depends on.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	// Unique paths after normalization: a case-folding collision
	// would make lookup ambiguous on case-insensitive filesystems.
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		normalized := asset.NormalizePath(entry.Path)
		if previous, ok := seen[normalized]; ok {
			return nil, &AssemblyError{
				Violation: DuplicatePath,
				Item:      fmt.Sprintf("%q collides with %q", entry.Path, previous),
			}
		}
		seen[normalized] = entry.Path
	}

	if err := checkIconCoverage(input.Icons, input.Platforms, input.Matrix); err != nil {
		return nil, err
	}

	// Partition CSP tokens. Entries are already sorted, so token
	// order — and therefore the policy string — is deterministic.
	var scriptTokens, styleTokens []string
	for _, entry := range entries {
		if entry.Path == isolation.ScriptPath {
			scriptTokens = append(scriptTokens, entry.Digest.CSPToken())
			continue
		}
		if !entry.ContributesCSPToken() {
			continue
		}
		if isStyle(entry.Path) {
			styleTokens = append(styleTokens, entry.Digest.CSPToken())
		} else {
			scriptTokens = append(scriptTokens, entry.Digest.CSPToken())
		}
	}

	return &RuntimeContext{
		app:       input.App,
		csp:       augmentCSP(input.CSP, scriptTokens, styleTokens),
		entries:   entries,
		icons:     input.Icons,
		isolation: record,
	}, nil
}

// checkIconCoverage verifies that the generated artifacts cover
// exactly the (platform, size) pairs the matrix requires for the
// configured platforms — no fewer (a partial icon set must never be
// emitted) and no more (extra sizes, or artifacts for a platform this
// build does not target, mean the matrix and the artifacts disagree
// about what this build produces).
func checkIconCoverage(artifacts []icon.Artifact, platforms []icon.Platform, matrix icon.Matrix) error {
	targeted := make(map[icon.Platform]bool, len(platforms))
	for _, platform := range platforms {
		targeted[platform] = true
	}

	covered := make(map[icon.Platform]map[int]bool)
	for _, artifact := range artifacts {
		if !targeted[artifact.Platform] {
			return &AssemblyError{
				Violation: UnexpectedIcon,
				Item:      fmt.Sprintf("%s is not a target platform of this build", artifact.Platform),
			}
		}
		sizes := covered[artifact.Platform]
		if sizes == nil {
			sizes = make(map[int]bool)
			covered[artifact.Platform] = sizes
		}
		for _, size := range artifact.Sizes {
			sizes[size] = true
		}
	}

	for _, platform := range platforms {
		required := make(map[int]bool)
		for _, size := range matrix.Sizes(platform) {
			required[size] = true
			if !covered[platform][size] {
				return &AssemblyError{
					Violation: MissingIcon,
					Item:      fmt.Sprintf("%s %dx%d", platform, size, size),
				}
			}
		}
		for size := range covered[platform] {
			if !required[size] {
				return &AssemblyError{
					Violation: UnexpectedIcon,
					Item:      fmt.Sprintf("%s %dx%d", platform, size, size),
				}
			}
		}
	}
	return nil
}

// isStyle reports whether a path contributes to style-src rather than
// script-src.
func isStyle(path string) bool {
	return len(path) > 4 && path[len(path)-4:] == ".css"
}
