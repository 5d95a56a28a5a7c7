// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package registry defines the ordered list of crates tracked for
// fork/upstream comparison. Registry order is the canonical iteration and
// report-display order.
package registry
