// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/forkctl/forkctl/internal/config"
)

// TreeSpec holds the validated upstream and fork root directories one
// comparison run operates on, plus the artifact output directory. It is
// resolved from flags per invocation, never persisted.
type TreeSpec struct {
	UpstreamDir string
	ForkDir     string
	OutDir      string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
