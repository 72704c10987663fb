// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"strings"
)

// augmentCSP appends hash-source tokens to the script-src and
// style-src directives of a base policy, creating the directives when
// the base lacks them. Token order follows the stable entry order, so
// the augmented policy is deterministic.
//
// Every token produced by the pipeline must reach the effective
// policy — dropping one silently breaks the asset it authorizes — so
// this is the single place policy text is constructed.
func augmentCSP(base string, scriptTokens, styleTokens []string) string {
	directives := splitDirectives(base)

	directives = appendTokens(directives, "script-src", scriptTokens)
	directives = appendTokens(directives, "style-src", styleTokens)

	return strings.Join(directives, "; ")
}

// splitDirectives breaks a policy string into trimmed, non-empty
// directive strings, preserving order.
func splitDirectives(policy string) []string {
	var directives []string
	for _, directive := range strings.Split(policy, ";") {
		directive = strings.TrimSpace(directive)
		if directive != "" {
			directives = append(directives, directive)
		}
	}
	return directives
}

// appendTokens adds tokens to the named directive, creating it if
// absent. No tokens means no change — an empty script-src would
// otherwise be created even for asset trees with no scripts.
func appendTokens(directives []string, name string, tokens []string) []string {
	if len(tokens) == 0 {
		return directives
	}

	suffix := strings.Join(tokens, " ")
	for i, directive := range directives {
		if strings.HasPrefix(directive, name+" ") || directive == name {
			directives[i] = directive + " " + suffix
			return directives
		}
	}
	return append(directives, name+" "+suffix)
}
