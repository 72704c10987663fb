// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfoIncludesCommitAndDirtyMarker(t *testing.T) {
	restore := func(commit, dirty, buildTime, ver string) {
		GitCommit, GitDirty, BuildTime, Version = commit, dirty, buildTime, ver
	}
	defer restore(GitCommit, GitDirty, BuildTime, Version)

	GitCommit, GitDirty, BuildTime, Version = "abc1234", "false", "2026-08-29T00:00:00Z", "1.2.3"
	if got, want := Info(), "1.2.3 (abc1234, 2026-08-29T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, missing dirty marker", got)
	}
}

func TestFullIncludesGoAndPlatform(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Info()) {
		t.Errorf("Full() = %q, missing Info prefix", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version", full)
	}
	if !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q, missing platform", full)
	}
}
