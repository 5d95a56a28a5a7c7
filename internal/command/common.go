// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/attrs"
	"github.com/forkctl/forkctl/internal/config"
	"github.com/forkctl/forkctl/internal/differ"
	"github.com/forkctl/forkctl/internal/meta"
	"github.com/forkctl/forkctl/internal/output"
	"github.com/forkctl/forkctl/internal/util"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the row schema for the provided type to stdout
// when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, nil)
		return true
	}
	return false
}

// EmitRows marshals a row slice as JSON and passes it to the common output
// routine, which applies --filter/--attrs/--sort and renders per --output.
func EmitRows(results any, al attrs.AttrList, cmd *cli.Command) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	var raw bytes.Buffer
	raw.Write(data)
	output.Spit(raw, al, cmd, os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr forkctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "forkctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// ResolveTreeSpec validates the upstream and fork roots from the command's
// flag chain (CLI flag, FORKCTL_* env, config file) and returns them as
// absolute directories together with the artifact output directory. An unset
// or invalid root is a usage error; nothing has been written at that point.
func ResolveTreeSpec(cmd *cli.Command) (meta.TreeSpec, error) {
	upstream := cmd.String("upstream")
	if upstream == "" {
		return meta.TreeSpec{}, errors.New(
			"upstream root not set: pass --upstream, set FORKCTL_UPSTREAM, or add an upstream key to the config")
	}
	fork := cmd.String("fork")
	if fork == "" {
		return meta.TreeSpec{}, errors.New(
			"fork root not set: pass --fork, set FORKCTL_FORK, or add a fork key to the config")
	}

	upstreamDir, err := util.ParseRootDir(upstream)
	if err != nil {
		return meta.TreeSpec{}, fmt.Errorf("upstream root %s: %w", upstream, err)
	}
	forkDir, err := util.ParseRootDir(fork)
	if err != nil {
		return meta.TreeSpec{}, fmt.Errorf("fork root %s: %w", fork, err)
	}

	return meta.TreeSpec{
		UpstreamDir: upstreamDir,
		ForkDir:     forkDir,
		OutDir:      cmd.String("out"),
	}, nil
}

// BuildExcludes assembles the exclusion globs for a run: the diff.exclude
// config key replaces the compiled-in defaults, and --exclude values append.
func BuildExcludes(cmd *cli.Command) []string {
	base, err := config.GetStringSlice("diff.exclude")
	if err != nil || len(base) == 0 {
		base = differ.DefaultExcludes
	}

	excludes := make([]string, 0, len(base))
	excludes = append(excludes, base...)
	excludes = append(excludes, cmd.StringSlice("exclude")...)
	return excludes
}
