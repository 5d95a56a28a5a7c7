// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"os"
	"path/filepath"

	"github.com/forkctl/forkctl/internal/log"
)

// Classification describes which sides of the comparison hold a crate
// directory. It is derived per run and never persisted.
type Classification int

const (
	BothPresent Classification = iota
	UpstreamOnly
	ForkOnly
	// NeitherPresent covers a stale registry entry; it should not occur on a
	// well-maintained pair of trees.
	NeitherPresent
)

// String returns a short human label for the classification.
func (c Classification) String() string {
	switch c {
	case BothPresent:
		return "both present"
	case UpstreamOnly:
		return "upstream only"
	case ForkOnly:
		return "fork only"
	case NeitherPresent:
		return "neither present"
	default:
		return "unknown"
	}
}

// Resolution carries the candidate directories for one crate and whether
// each side exists. Paths are always populated so diagnostics can name the
// location that was checked, even when it is absent.
type Resolution struct {
	Crate           string
	UpstreamPath    string
	ForkPath        string
	UpstreamPresent bool
	ForkPresent     bool
}

// Classification derives the three-way existence view (plus the degenerate
// neither-present case) from the per-side booleans.
func (r Resolution) Classification() Classification {
	switch {
	case r.UpstreamPresent && r.ForkPresent:
		return BothPresent
	case r.UpstreamPresent:
		return UpstreamOnly
	case r.ForkPresent:
		return ForkOnly
	default:
		return NeitherPresent
	}
}

// Resolve locates crate under the two roots. Each absent side is reported
// independently as a warning naming the path that was checked; the caller
// receives both facts rather than a collapsed "not found".
func Resolve(upstreamRoot, forkRoot, crate string) Resolution {
	res := Resolution{
		Crate:        crate,
		UpstreamPath: filepath.Join(upstreamRoot, crate),
		ForkPath:     filepath.Join(forkRoot, crate),
	}

	res.UpstreamPresent = isDir(res.UpstreamPath)
	res.ForkPresent = isDir(res.ForkPath)

	if !res.UpstreamPresent {
		log.Warnf("crate %s: upstream side missing: %s", crate, res.UpstreamPath)
	}
	if !res.ForkPresent {
		log.Warnf("crate %s: fork side missing: %s", crate, res.ForkPath)
	}

	return res
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
