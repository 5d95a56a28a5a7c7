// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stats derives added/removed line counts from unified diff
// artifacts. Extraction is pure; nothing here touches the filesystem except
// FromArtifact, which reads one artifact file.
package stats
