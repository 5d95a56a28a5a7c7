// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package artifact manages the on-disk output directory: one deterministic
// `<crate>.diff` file per differing crate plus the rendered SUMMARY.md.
// Artifacts are the only state that outlives a run.
package artifact
