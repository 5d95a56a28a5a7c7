// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package publish uploads the rendered divergence report and the current
// diff artifacts to an S3 location given as s3://bucket[/prefix]. Object
// keys mirror the artifact store layout, so a published run can be browsed
// the same way as the local output directory.
package publish
