// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report renders the Markdown divergence summary. The layout is a
// compatibility contract: given the same rows and generation time the
// output is byte-identical, so downstream tooling can diff summaries.
package report
