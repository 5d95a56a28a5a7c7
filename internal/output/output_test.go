// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/forkctl/forkctl/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		dataset   []map[string]interface{}
		spec      string
		wantOrder []string
	}{
		{
			name: "empty spec preserves order",
			dataset: []map[string]interface{}{
				{"crate": "tui"},
				{"crate": "cli"},
				{"crate": "core"},
			},
			spec:      "",
			wantOrder: []string{"tui", "cli", "core"},
		},
		{
			name: "string ascending",
			dataset: []map[string]interface{}{
				{"crate": "tui"},
				{"crate": "cli"},
				{"crate": "core"},
			},
			spec:      "crate",
			wantOrder: []string{"cli", "core", "tui"},
		},
		{
			name: "string descending",
			dataset: []map[string]interface{}{
				{"crate": "cli"},
				{"crate": "tui"},
				{"crate": "core"},
			},
			spec:      "-crate",
			wantOrder: []string{"tui", "core", "cli"},
		},
		{
			name: "numeric ascending",
			dataset: []map[string]interface{}{
				{"crate": "core", "size": float64(42)},
				{"crate": "tui", "size": float64(7)},
				{"crate": "exec", "size": float64(100)},
			},
			spec:      "size",
			wantOrder: []string{"tui", "core", "exec"},
		},
		{
			name: "numeric descending",
			dataset: []map[string]interface{}{
				{"crate": "core", "size": float64(42)},
				{"crate": "tui", "size": float64(7)},
				{"crate": "exec", "size": float64(100)},
			},
			spec:      "-size",
			wantOrder: []string{"exec", "core", "tui"},
		},
		{
			name: "case-insensitive by default",
			dataset: []map[string]interface{}{
				{"crate": "Tui"},
				{"crate": "cli"},
				{"crate": "CORE"},
			},
			spec:      "crate",
			wantOrder: []string{"cli", "CORE", "Tui"},
		},
		{
			name: "multi-field tiebreak",
			dataset: []map[string]interface{}{
				{"crate": "core", "status": "differs", "size": float64(10)},
				{"crate": "cli", "status": "identical", "size": float64(0)},
				{"crate": "tui", "status": "differs", "size": float64(3)},
			},
			spec:      "status,size",
			wantOrder: []string{"tui", "core", "cli"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortDataset(tt.dataset, tt.spec)

			got := make([]string, 0, len(tt.dataset))
			for _, row := range tt.dataset {
				got = append(got, row["crate"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"string", "core", nil, "core"},
		{"int", 42, nil, "42"},
		{"float64 renders as integer", float64(42.7), nil, "43"},
		{"bool", true, nil, "true"},
		{"nil default empty", nil, nil, ""},
		{"nil custom empty", nil, []string{"-"}, "-"},
		{"zero string custom empty", "", []string{"-"}, "-"},
		{"slice renders as JSON", []string{"a", "b"}, nil, `["a","b"]`},
		{"map renders as JSON", map[string]string{"k": "v"}, nil, `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterfaceToString(tt.value, tt.empty...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name   string
		holder string
		raw    string
		want   string
	}{
		{"plain", "", "crate", "crate"},
		{"with omitempty", "", "size,omitempty", "size"},
		{"excluded", "", "-", ""},
		{"empty", "", "", ""},
		{"holder prefix", "stats", "added", "stats.added"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.holder, tt.raw)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

type schemaStatsFixture struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

type schemaFixture struct {
	Crate    string              `json:"crate"`
	Status   string              `json:"status"`
	Size     int                 `json:"size,omitempty"`
	Excluded string              `json:"-"`
	Untagged string
	Stats    schemaStatsFixture  `json:"stats"`
	Detail   *schemaStatsFixture `json:"detail"`
}

func TestDumpSchemaWalker(t *testing.T) {
	tags := dumpSchemaWalker("", reflect.TypeOf(schemaFixture{}), 0)

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	assert.Contains(t, names, "crate")
	assert.Contains(t, names, "size")
	assert.Contains(t, names, "stats")
	assert.Contains(t, names, "stats.added")
	assert.Contains(t, names, "detail.removed")
	assert.NotContains(t, names, "-")
	assert.NotContains(t, names, "Untagged")
}

func TestDumpSchema(t *testing.T) {
	buf := new(bytes.Buffer)
	DumpSchema("", reflect.TypeOf(schemaFixture{}), buf)

	out := buf.String()
	crate := strings.Index(out, "crate")
	status := strings.Index(out, "status")
	require.NotEqual(t, -1, crate)
	require.NotEqual(t, -1, status)
	assert.Less(t, crate, status, "keys should be sorted")
}

func makeSpitCommand(output, filter, sortSpec string) *cli.Command {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: output},
			&cli.StringFlag{Name: "filter", Value: filter},
			&cli.StringFlag{Name: "sort", Value: sortSpec},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles", Value: true},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
	}
	cmd.Metadata = make(map[string]interface{})
	return cmd
}

func comparisonAttrs() attrs.AttrList {
	return attrs.AttrList{
		{Key: "crate", OutputKey: "crate", Include: true},
		{Key: "status", OutputKey: "status", Include: true},
		{Key: "size", OutputKey: "size", Include: true},
		{Key: "artifact", OutputKey: "artifact", Include: true},
	}
}

func buildRaw(t *testing.T, rows []map[string]interface{}) bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(rows)
	require.NoError(t, err)
	return *bytes.NewBuffer(data)
}

var spitRows = []map[string]interface{}{
	{"crate": "cli", "status": "identical", "size": 0, "artifact": nil},
	{"crate": "core", "status": "differs", "size": 42, "artifact": "core.diff"},
	{"crate": "tui", "status": "differs", "size": 7, "artifact": "tui.diff"},
}

func TestSpit_Raw(t *testing.T) {
	raw := buildRaw(t, spitRows)
	want := raw.String()

	buf := new(bytes.Buffer)
	Spit(raw, comparisonAttrs(), makeSpitCommand("raw", "", ""), buf)

	assert.Equal(t, want, buf.String())
}

func TestSpit_JSONFiltered(t *testing.T) {
	raw := buildRaw(t, spitRows)

	buf := new(bytes.Buffer)
	Spit(raw, comparisonAttrs(), makeSpitCommand("json", "status=differs", ""), buf)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "core", got[0]["crate"])
	assert.Equal(t, "tui", got[1]["crate"])
}

func TestSpit_JSONSorted(t *testing.T) {
	raw := buildRaw(t, spitRows)

	buf := new(bytes.Buffer)
	Spit(raw, comparisonAttrs(), makeSpitCommand("json", "", "-size"), buf)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "core", got[0]["crate"])
	assert.Equal(t, "tui", got[1]["crate"])
	assert.Equal(t, "cli", got[2]["crate"])
}

func TestSpit_YAML(t *testing.T) {
	raw := buildRaw(t, spitRows)

	buf := new(bytes.Buffer)
	Spit(raw, comparisonAttrs(), makeSpitCommand("yaml", "crate=core", ""), buf)

	out := buf.String()
	assert.Contains(t, out, "crate: core")
	assert.Contains(t, out, "status: differs")
	assert.NotContains(t, out, "tui")
}

func TestSpit_TransformApplied(t *testing.T) {
	raw := buildRaw(t, spitRows)

	al := comparisonAttrs()
	al[0].TransformSpec = "u"

	buf := new(bytes.Buffer)
	Spit(raw, al, makeSpitCommand("json", "crate=core", ""), buf)

	assert.Contains(t, buf.String(), "CORE")
}

func TestSpit_DefaultRendersTable(t *testing.T) {
	raw := buildRaw(t, spitRows)

	buf := new(bytes.Buffer)
	Spit(raw, comparisonAttrs(), makeSpitCommand("text", "", ""), buf)

	out := buf.String()
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "core.diff")
	assert.Contains(t, out, "crate", "titles should render column headers")
}

func TestTableWriter(t *testing.T) {
	tests := []struct {
		name      string
		resultSet []map[string]interface{}
		al        attrs.AttrList
		check     func(*testing.T, string)
	}{
		{
			name:      "empty result set returns early",
			resultSet: []map[string]interface{}{},
			al:        attrs.AttrList{},
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
		{
			name: "single row preserves data",
			resultSet: []map[string]interface{}{
				{"crate": "core", "status": "differs"},
			},
			al: attrs.AttrList{
				{OutputKey: "crate", Include: true},
				{OutputKey: "status", Include: true},
			},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "core")
				assert.Contains(t, out, "differs")
			},
		},
		{
			name: "respects include flag filtering",
			resultSet: []map[string]interface{}{
				{"crate": "core", "internal": "hidden-value"},
			},
			al: attrs.AttrList{
				{OutputKey: "crate", Include: true},
				{OutputKey: "internal", Include: false},
			},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "core")
				assert.NotContains(t, out, "hidden-value")
			},
		},
		{
			name: "missing values render placeholder",
			resultSet: []map[string]interface{}{
				{"crate": "cli"},
			},
			al: attrs.AttrList{
				{OutputKey: "crate", Include: true},
				{OutputKey: "artifact", Include: true},
			},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "-")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			TableWriter(tt.resultSet, tt.al, makeSpitCommand("text", "", ""), buf)
			tt.check(t, buf.String())
		})
	}
}

func TestTableWriter_HeaderAndFooter(t *testing.T) {
	cmd := makeSpitCommand("text", "", "")
	cmd.Metadata["header"] = "3 crates compared"
	cmd.Metadata["footer"] = "2 differ"

	buf := new(bytes.Buffer)
	TableWriter([]map[string]interface{}{{"crate": "core"}},
		attrs.AttrList{{OutputKey: "crate", Include: true}}, cmd, buf)

	out := buf.String()
	assert.Contains(t, out, "3 crates compared")
	assert.Contains(t, out, "2 differ")
}

func BenchmarkSortDataset(b *testing.B) {
	base := make([]map[string]interface{}, 0, 100)
	for i := 0; i < 100; i++ {
		base = append(base, map[string]interface{}{
			"crate": "crate-" + string(rune('a'+i%26)),
			"size":  float64(i % 17),
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dataset := make([]map[string]interface{}, len(base))
		copy(dataset, base)
		SortDataset(dataset, "size,-crate")
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{"core", 42, float64(7.3), true, nil}
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			_ = InterfaceToString(v, "-")
		}
	}
}
