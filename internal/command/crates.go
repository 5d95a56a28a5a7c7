// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/meta"
	"github.com/forkctl/forkctl/internal/registry"
)

// cratesDefaultAttrs specifies the default attributes displayed for
// registry entries.
var cratesDefaultAttrs = []string{"name", "source"}

// CrateRow is one registry entry as it flows through the output pipeline.
type CrateRow struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// cratesCommandAction is the action handler for the "crates" subcommand. It
// lists the registered crates and where the registry came from.
func cratesCommandAction(ctx context.Context, cmd *cli.Command) error {
	// Bare names feed shell completion, so skip the output pipeline.
	if cmd.Bool("names") {
		reg, err := registry.Load(cmd.String("manifest"))
		if err != nil {
			return err
		}
		for _, name := range reg.Names() {
			fmt.Println(name)
		}
		return nil
	}

	return NewActionRunner(
		"crates",
		reflect.TypeOf(CrateRow{}),
		cratesDefaultAttrs,
		func(_ context.Context, cmd *cli.Command) ([]CrateRow, error) {
			reg, err := registry.Load(cmd.String("manifest"))
			if err != nil {
				return nil, err
			}
			rows := make([]CrateRow, 0, reg.Len())
			for _, name := range reg.Names() {
				rows = append(rows, CrateRow{Name: name, Source: reg.Source()})
			}
			return rows, nil
		},
	).Run(ctx, cmd)
}

// cratesCommandBuilder constructs the cli.Command for "crates".
func cratesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "crates",
		Usage:     "list the registered crates",
		UsageText: "forkctl crates [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "names",
				Usage: "print bare crate names, one per line",
			},
			NewManifestFlag(),
		},
		Action: cratesCommandAction,
		Meta:   meta,
	}).Build()
}
