// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package brand rewrites brand names inside quoted string literals after an
// upstream merge. Only string literals are touched so identifiers, imports
// and paths keep compiling.
package brand
