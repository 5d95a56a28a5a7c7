// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package resolver locates a crate's directories under the upstream and fork
// roots and classifies their existence. Absence on either side is a warning,
// never an error; callers decide how to proceed.
package resolver
