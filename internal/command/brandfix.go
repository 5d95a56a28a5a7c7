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

	"github.com/forkctl/forkctl/internal/brand"
	"github.com/forkctl/forkctl/internal/meta"
)

// brandfixCommandAction is the action handler for the "brandfix" subcommand.
// It rewrites the fork's brand name inside quoted string literals of the
// given files, the usual cleanup after merging upstream changes that
// reintroduce the upstream name in user-facing strings.
func brandfixCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "brandfix") {
		return nil
	}

	from := cmd.String("from")
	to := cmd.String("to")
	if from == "" || to == "" {
		return errors.New("both --from and --to are required")
	}

	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("no files given")
	}

	fixer := brand.NewFixer(from, to)
	total := 0
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			log.Warnf("skipping %s: not a file", path)
			continue
		}

		count, err := fixer.FixFile(path)
		if err != nil {
			log.Warnf("%v", err)
			continue
		}
		if count > 0 {
			fmt.Printf("fixed %s: %d\n", path, count)
			total += count
		}
	}
	log.Debugf("brandfix replaced %d occurrences", total)

	return nil
}

// brandfixCommandBuilder constructs the cli.Command for "brandfix".
func brandfixCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "brandfix",
		Usage:     "rewrite brand names inside quoted string literals",
		UsageText: "forkctl brandfix --from NAME --to NAME FILE...",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			&cli.StringFlag{
				Name:  "from",
				Usage: "brand name to replace",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "replacement brand name",
			},
		},
		Action: brandfixCommandAction,
	}
}
