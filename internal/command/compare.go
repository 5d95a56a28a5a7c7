// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/artifact"
	"github.com/forkctl/forkctl/internal/aws"
	"github.com/forkctl/forkctl/internal/differ"
	"github.com/forkctl/forkctl/internal/meta"
	"github.com/forkctl/forkctl/internal/publish"
	"github.com/forkctl/forkctl/internal/registry"
	"github.com/forkctl/forkctl/internal/report"
	"github.com/forkctl/forkctl/internal/resolver"
	"github.com/forkctl/forkctl/internal/stats"
)

// compareDefaultAttrs specifies the default attributes displayed for
// comparison results.
var compareDefaultAttrs = []string{"crate", "status", "size", "added", "removed", "artifact"}

// fileDefaultAttrs specifies the default attributes for the --files
// per-file breakdown.
var fileDefaultAttrs = []string{"file", "added", "removed"}

// Result is one crate's comparison outcome as it flows through the output
// pipeline.
type Result struct {
	Crate    string `json:"crate"`
	Status   string `json:"status"`
	Size     int    `json:"size"`
	Added    int    `json:"added"`
	Removed  int    `json:"removed"`
	Artifact string `json:"artifact"`
}

// FileResult is one file's added/removed breakdown within a crate artifact.
type FileResult struct {
	File    string `json:"file"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

func resultFromRow(row report.Row) Result {
	return Result{
		Crate:    row.Crate,
		Status:   row.Status.String(),
		Size:     row.Size,
		Added:    row.Added,
		Removed:  row.Removed,
		Artifact: row.Artifact,
	}
}

// compareCommandAction is the action handler for the "compare" subcommand.
// It dispatches to one of three modes: a single named crate, the full
// registry (--all), or a report rebuild from existing artifacts (--summary).
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "compare") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(Result{})) {
		return nil
	}

	reg, err := registry.Load(cmd.String("manifest"))
	if err != nil {
		return err
	}

	all, summary := cmd.Bool("all"), cmd.Bool("summary")
	switch {
	case all && summary:
		return errors.New("--all and --summary are mutually exclusive")
	case cmd.Bool("files") && (all || summary):
		return errors.New("--files requires a single crate")
	case all:
		return compareAll(ctx, cmd, reg)
	case summary:
		return compareSummary(ctx, cmd, reg)
	}

	var crate string
	if args := cmd.Args().Slice(); len(args) > 0 {
		crate = args[0]
	}
	if crate == "" {
		return fmt.Errorf("no crate given: pass a crate name, --all, or --summary\nregistered crates: %s",
			strings.Join(reg.Names(), ", "))
	}
	return compareSingle(ctx, cmd, reg, crate)
}

// compareSingle runs the pipeline for one named crate and prints its result.
// It never regenerates the summary report.
func compareSingle(ctx context.Context, cmd *cli.Command, reg registry.Registry, crate string) error {
	if !reg.Contains(crate) {
		return fmt.Errorf("unknown crate %q\nregistered crates: %s", crate, strings.Join(reg.Names(), ", "))
	}

	spec, err := ResolveTreeSpec(cmd)
	if err != nil {
		return err
	}

	store := artifact.NewStore(spec.OutDir)
	engine := differ.NewEngine(store, BuildExcludes(cmd))

	row, ok, err := compareCrate(ctx, engine, spec, crate)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("crate %s not found under %s or %s", crate, spec.UpstreamDir, spec.ForkDir)
	}

	if cmd.Bool("files") {
		return emitFileRows(cmd, store, row)
	}

	al := BuildAttrs(cmd, compareDefaultAttrs...)
	return EmitRows([]Result{resultFromRow(row)}, al, cmd)
}

// compareAll runs the pipeline for every registered crate in registry order,
// then writes the summary report. Per-crate trouble is warned and the crate
// skipped; the run itself always proceeds to the report.
func compareAll(ctx context.Context, cmd *cli.Command, reg registry.Registry) error {
	spec, err := ResolveTreeSpec(cmd)
	if err != nil {
		return err
	}

	store := artifact.NewStore(spec.OutDir)
	engine := differ.NewEngine(store, BuildExcludes(cmd))

	rows := make([]report.Row, 0, reg.Len())
	for _, crate := range reg.Names() {
		row, ok, err := compareCrate(ctx, engine, spec, crate)
		if err != nil {
			log.Warnf("crate %s: %v", crate, err)
			continue
		}
		if !ok {
			log.Warnf("crate %s: missing on both sides, skipped", crate)
			continue
		}
		rows = append(rows, row)
	}

	if err := writeSummary(store, rows); err != nil {
		return err
	}
	if err := publishIfRequested(ctx, cmd, store); err != nil {
		return err
	}
	return emitResults(cmd, rows)
}

// compareSummary rebuilds the report from artifacts already on disk without
// running any diffs.
func compareSummary(ctx context.Context, cmd *cli.Command, reg registry.Registry) error {
	store := artifact.NewStore(cmd.String("out"))

	rows := make([]report.Row, 0, reg.Len())
	for _, crate := range reg.Names() {
		rows = append(rows, summaryRow(store, crate))
	}

	if err := writeSummary(store, rows); err != nil {
		return err
	}
	if err := publishIfRequested(ctx, cmd, store); err != nil {
		return err
	}
	return emitResults(cmd, rows)
}

// compareCrate runs resolve → diff → stats for one crate. ok=false with a
// nil error means the crate is absent on both sides. Tool failures are
// returned as errors; the caller decides whether that aborts the run
// (single mode) or becomes a warning (all mode).
func compareCrate(ctx context.Context, engine differ.Engine, spec meta.TreeSpec, crate string) (report.Row, bool, error) {
	res := resolver.Resolve(spec.UpstreamDir, spec.ForkDir, crate)
	switch res.Classification() {
	case resolver.UpstreamOnly:
		return report.Row{Crate: crate, Status: report.ForkMissing}, true, nil
	case resolver.ForkOnly:
		return report.Row{Crate: crate, Status: report.UpstreamMissing}, true, nil
	case resolver.NeitherPresent:
		return report.Row{}, false, nil
	}

	outcome, err := engine.Compare(ctx, crate, res.UpstreamPath, res.ForkPath)
	if err != nil {
		return report.Row{}, false, err
	}

	row := report.Row{Crate: crate, Status: report.Identical}
	if outcome.Status == differ.Differs {
		row.Status = report.Differs
		row.Artifact = filepath.Base(outcome.ArtifactPath)
		row.Size = outcome.SizeLines

		st, err := stats.FromArtifact(outcome.ArtifactPath)
		if err != nil {
			log.Warnf("crate %s: %v", crate, err)
		} else {
			row.Added, row.Removed = st.Added, st.Removed
		}
	}
	return row, true, nil
}

// summaryRow reconstructs one crate's result from artifact presence alone.
// An absent artifact reads as identical, though it may just as well mean the
// crate has not been compared yet; summary mode cannot tell the two apart.
func summaryRow(store artifact.Store, crate string) report.Row {
	path, present := store.Exists(crate)
	if !present {
		return report.Row{Crate: crate, Status: report.Identical}
	}

	row := report.Row{Crate: crate, Status: report.Differs, Artifact: filepath.Base(path)}

	if body, err := store.Read(crate); err == nil {
		row.Size = differ.CountLines(body)
	}

	st, err := stats.FromArtifact(path)
	if err != nil {
		// A malformed artifact still reads as differing, with zero stats.
		log.Warnf("crate %s: %v", crate, err)
		return row
	}
	row.Added, row.Removed = st.Added, st.Removed
	return row
}

// writeSummary renders the report over rows and overwrites SUMMARY.md.
func writeSummary(store artifact.Store, rows []report.Row) error {
	data, err := report.Render(rows, time.Now())
	if err != nil {
		return err
	}
	if err := store.WriteSummary(data); err != nil {
		return err
	}
	log.Infof("report written: %s", store.SummaryPath())
	return nil
}

// emitFileRows renders the per-file breakdown for a crate. An identical
// crate yields an empty result set.
func emitFileRows(cmd *cli.Command, store artifact.Store, row report.Row) error {
	results := []FileResult{}
	if row.Status == report.Differs {
		body, err := store.Read(row.Crate)
		if err != nil {
			return err
		}
		fileStats, err := stats.Files(string(body))
		if err != nil {
			return fmt.Errorf("artifact for %s: %w", row.Crate, err)
		}
		for _, fs := range fileStats {
			results = append(results, FileResult{File: fs.Path, Added: fs.Added, Removed: fs.Removed})
		}
	}

	al := BuildAttrs(cmd, fileDefaultAttrs...)
	return EmitRows(results, al, cmd)
}

func emitResults(cmd *cli.Command, rows []report.Row) error {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, resultFromRow(row))
	}
	al := BuildAttrs(cmd, compareDefaultAttrs...)
	return EmitRows(results, al, cmd)
}

// publishIfRequested uploads SUMMARY.md and the current artifacts when
// --publish names an S3 target.
func publishIfRequested(ctx context.Context, cmd *cli.Command, store artifact.Store) error {
	raw := cmd.String("publish")
	if raw == "" {
		return nil
	}
	target, err := publish.ParseTarget(raw)
	if err != nil {
		return err
	}

	cfg, err := aws.LoadAWSConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	p := publish.New(aws.NewS3(cfg), target)
	uploaded, err := p.Report(ctx, store)
	if err != nil {
		return err
	}
	log.Infof("published %d objects to %s", uploaded, target)
	return nil
}

// compareCommandBuilder constructs the cli.Command for "compare", wiring
// metadata, flags, and action handlers.
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "compare",
		Usage:     "compare fork crates against upstream",
		UsageText: "forkctl compare [crate] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "compare every registered crate and write the summary report",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "rebuild the summary report from existing artifacts without diffing",
			},
			&cli.BoolFlag{
				Name:  "files",
				Usage: "per-file breakdown for a single crate",
			},
			&cli.StringFlag{
				Name:  "publish",
				Usage: "upload the report and artifacts to s3://bucket[/prefix]",
				Validator: func(value string) error {
					return FlagValidators(value, PublishValidator)
				},
			},
			NewUpstreamFlag("compare", meta.Config.Source),
			NewForkFlag("compare", meta.Config.Source),
			NewOutFlag("compare", meta.Config.Source),
			NewExcludeFlag(),
			NewManifestFlag(),
		},
		Action: compareCommandAction,
		Meta:   meta,
	}).Build()
}
