// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares upstream and fork crate trees with diff(1) and
// records the results as unified diff artifacts.
package differ
