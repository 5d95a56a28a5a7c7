// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/forkctl/forkctl/internal/artifact"
	"github.com/forkctl/forkctl/internal/differ"
	"github.com/forkctl/forkctl/internal/meta"
	"github.com/forkctl/forkctl/internal/registry"
)

// browseCommandAction is the action handler for the "browse" subcommand. It
// opens an interactive list of the diff artifacts currently on disk.
func browseCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("browse requires an interactive terminal")
	}

	store := artifact.NewStore(cmd.String("out"))

	reg, err := registry.Load(cmd.String("manifest"))
	if err != nil {
		return err
	}

	entries := browseEntries(store, reg)
	if len(entries) == 0 {
		fmt.Printf("no diff artifacts under %s\n", store.Dir())
		return nil
	}

	return differ.Browse(store, entries)
}

// browseEntries lists crates with an artifact on disk: registry crates
// first in registry order, then any strays the registry no longer tracks.
func browseEntries(store artifact.Store, reg registry.Registry) []differ.BrowseEntry {
	var entries []differ.BrowseEntry
	add := func(crate string) {
		body, err := store.Read(crate)
		if err != nil {
			log.Warnf("artifact for %s: %v", crate, err)
			return
		}
		entries = append(entries, differ.BrowseEntry{Crate: crate, Lines: differ.CountLines(body)})
	}

	tracked := make(map[string]bool, reg.Len())
	for _, crate := range reg.Names() {
		tracked[crate] = true
		if _, present := store.Exists(crate); present {
			add(crate)
		}
	}

	onDisk, err := store.List()
	if err != nil {
		log.Warnf("%v", err)
		return entries
	}
	for _, crate := range onDisk {
		if !tracked[crate] {
			add(crate)
		}
	}

	return entries
}

// browseCommandBuilder constructs the cli.Command for "browse".
func browseCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "browse diff artifacts interactively",
		UsageText: "forkctl browse [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			NewOutFlag("browse", meta.Config.Source),
			NewManifestFlag(),
		},
		Action: browseCommandAction,
	}
}
