// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// Status is the per-crate classification shown in the overview table.
type Status int

const (
	Identical Status = iota
	Differs
	UpstreamMissing
	ForkMissing
)

func (s Status) String() string {
	switch s {
	case Differs:
		return "differs"
	case UpstreamMissing:
		return "missing upstream"
	case ForkMissing:
		return "missing fork"
	default:
		return "identical"
	}
}

// Label returns the icon+label pair used in the overview table.
func (s Status) Label() string {
	switch s {
	case Differs:
		return "⚠️ differs"
	case UpstreamMissing:
		return "❌ missing upstream"
	case ForkMissing:
		return "❌ missing fork"
	default:
		return "✅ identical"
	}
}

// Row is one crate's result. Artifact, Size, Added, and Removed are only
// meaningful when Status is Differs.
type Row struct {
	Crate    string
	Status   Status
	Artifact string
	Size     int
	Added    int
	Removed  int
}

// Label renders the status cell.
func (r Row) Label() string {
	return r.Status.Label()
}

// SizeCell renders the diff-size cell: the artifact line count for a
// differing crate, a literal 0 for identical and missing ones.
func (r Row) SizeCell() string {
	if r.Status != Differs {
		return "0"
	}
	return fmt.Sprintf("%d lines", r.Size)
}

// NotesCell renders the notes cell: the artifact filename or a dash.
func (r Row) NotesCell() string {
	if r.Status != Differs || r.Artifact == "" {
		return "-"
	}
	return r.Artifact
}

const description = "This report tracks how the fork's crates diverge from their upstream " +
	"counterparts. Each crate is compared file by file, with build output, " +
	"dependency directories, and lock files excluded."

// The template's whitespace is load-bearing: every literal newline below
// maps one-to-one onto a newline in the rendered document.
const summaryTmpl = `# Fork Divergence Report

Generated: {{.Generated}} UTC

{{.Description}}

## Overview

| Crate | Status | Diff Size | Notes |
|-------|--------|-----------|-------|
{{range .Rows}}| {{.Crate}} | {{.Label}} | {{.SizeCell}} | {{.NotesCell}} |
{{end}}
## Crates with Differences
{{if .Differing}}{{range .Differing}}
### {{.Crate}}

Diff artifact: ` + "`{{.Artifact}}`" + `

Lines added: {{.Added}}
Lines removed: {{.Removed}}
{{end}}{{else}}
No crates differ from upstream.
{{end}}`

var summaryTemplate = template.Must(template.New("summary").Parse(summaryTmpl))

// Render produces the summary document for rows in their given order.
// The rows arrive in registry order and are emitted unsorted. generated is
// normalized to UTC, so equal instants render equal bytes regardless of
// the caller's zone.
func Render(rows []Row, generated time.Time) ([]byte, error) {
	var differing []Row
	for _, r := range rows {
		if r.Status == Differs {
			differing = append(differing, r)
		}
	}

	data := struct {
		Generated   string
		Description string
		Rows        []Row
		Differing   []Row
	}{
		Generated:   generated.UTC().Format("2006-01-02 15:04:05"),
		Description: description,
		Rows:        rows,
		Differing:   differing,
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}

	return buf.Bytes(), nil
}
