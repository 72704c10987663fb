// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/bundle"
	"github.com/glazeapp/glaze/lib/codec"
)

// inspectCmd implements the "inspect" command: verify a bundle and
// print its contents.
func inspectCmd(args []string) error {
	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	raw := flagSet.Bool("raw", false, "print the CBOR diagnostic notation of the bundle body instead of a summary")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: glaze-codegen inspect [flags] <bundle>")
	}
	path := flagSet.Arg(0)

	if *raw {
		return printRawBody(path)
	}

	context, hash, err := bundle.Read(path)
	if err != nil {
		return err
	}
	printSummary(context, hash)
	return nil
}

// printRawBody prints the bundle body in CBOR diagnostic notation.
func printRawBody(path string) error {
	encoded, _, err := bundle.ReadBody(path)
	if err != nil {
		return err
	}
	diag, err := codec.Diagnose(encoded)
	if err != nil {
		return fmt.Errorf("diagnosing bundle body: %w", err)
	}
	fmt.Println(diag)
	return nil
}

// inspectStyles holds the lipgloss styles for summary output. On a
// terminal, headings are bold and secondary detail is dimmed; when
// piped, the renderer's Ascii profile strips all styling.
type inspectStyles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
}

func newInspectStyles() inspectStyles {
	profile := termenv.Ascii
	if term.IsTerminal(int(os.Stdout.Fd())) {
		profile = termenv.ANSI
	}
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return inspectStyles{
		heading: renderer.NewStyle().Bold(true),
		label:   renderer.NewStyle().Width(12),
		dim:     renderer.NewStyle().Faint(true),
	}
}

func printSummary(context *bundle.RuntimeContext, hash bundle.Hash) {
	styles := newInspectStyles()
	app := context.App()

	fmt.Println(styles.heading.Render(fmt.Sprintf("%s %s (%s)", app.Name, app.Version, app.Identifier)))
	fmt.Printf("%s%s\n", styles.label.Render("ref"), hash.Ref())
	fmt.Printf("%s%s\n", styles.label.Render("hash"), styles.dim.Render(hash.String()))
	fmt.Printf("%s%s\n", styles.label.Render("isolation"), enabledWord(context.IsolationEnabled()))
	fmt.Printf("%s%s\n", styles.label.Render("csp"), context.CSP())

	entries := context.Entries()
	fmt.Printf("\n%s\n", styles.heading.Render(fmt.Sprintf("Entries (%d)", len(entries))))
	for i := range entries {
		entry := &entries[i]
		detail := fmt.Sprintf("%d bytes", entry.Size)
		if entry.Compressed() {
			detail = fmt.Sprintf("%d -> %d bytes (%s)", entry.Size, entry.CompressedSize, entry.Compression)
		}
		fmt.Printf("  %-40s %s\n", entry.Path, styles.dim.Render(detail))
	}

	icons := context.Icons()
	if len(icons) > 0 {
		fmt.Printf("\n%s\n", styles.heading.Render(fmt.Sprintf("Icons (%d)", len(icons))))
		for _, artifact := range icons {
			sizes := make([]string, len(artifact.Sizes))
			for i, size := range artifact.Sizes {
				sizes[i] = fmt.Sprintf("%d", size)
			}
			detail := fmt.Sprintf("%s, %d bytes", strings.Join(sizes, " "), len(artifact.Data))
			fmt.Printf("  %-10s %-35s %s\n", artifact.Platform, artifact.Name, styles.dim.Render(detail))
		}
	}
	totalSize(entries, styles)
}

func totalSize(entries []asset.Entry, styles inspectStyles) {
	var original, stored int64
	for i := range entries {
		original += entries[i].Size
		if entries[i].Compressed() {
			stored += entries[i].CompressedSize
		} else {
			stored += entries[i].Size
		}
	}
	fmt.Printf("\n%s%s\n", styles.label.Render("total"),
		styles.dim.Render(fmt.Sprintf("%d bytes original, %d bytes stored", original, stored)))
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
