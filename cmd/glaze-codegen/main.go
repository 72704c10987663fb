// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// glaze-codegen builds the embedded asset bundle for a Glaze
// application: it walks the frontend asset tree, hashes and
// optionally compresses every file, renders the platform icon sets,
// generates the isolation bridge script, and emits one deterministic
// bundle file the application shell embeds at build time.
//
// Usage:
//
//	glaze-codegen generate [flags]
//	glaze-codegen inspect [flags] <bundle>
//	glaze-codegen version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/glazeapp/glaze/lib/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger := newLogger()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "generate":
		err = generateCmd(args, logger)
	case "inspect":
		err = inspectCmd(args)
	case "version", "--version", "-v":
		if len(args) > 0 && args[0] == "--full" {
			fmt.Printf("glaze-codegen %s\n", version.Full())
		} else {
			fmt.Printf("glaze-codegen %s\n", version.Info())
		}
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the command logger. Text output when stderr is a
// terminal, JSON when piped or redirected so CI and build systems get
// machine-parseable records.
func newLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("GLAZE_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func printUsage() {
	fmt.Print(`glaze-codegen - Build the embedded asset bundle for a Glaze application

USAGE
    glaze-codegen <command> [flags]

COMMANDS
    generate   Build and emit the bundle from a glaze.conf.json
    inspect    Summarize an emitted bundle
    version    Show version (--full adds Go and platform detail)

EXAMPLES
    # Build the bundle described by the project config
    glaze-codegen generate --config glaze.conf.json

    # Reproducible build: derive isolation keys from a fixed seed
    glaze-codegen generate --config glaze.conf.json --seed release-1.2.3

    # Show what a bundle contains
    glaze-codegen inspect dist/app.glzb

ENVIRONMENT
    GLAZE_DEBUG   Enable debug logging

For more information, see: https://github.com/glazeapp/glaze
`)
}
