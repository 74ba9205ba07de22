// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/where"
)

func sampleFilter() where.Filter {
	return where.Filter{
		"id":   int64(1),
		"name": map[string]any{"contains": "ban", "mode": "insensitive"},
		"tags": map[string]any{"some": []any{"a", "b"}},
	}
}

// noConfig points the config loader at a missing file so getters fall back to
// their defaults.
func noConfig(t *testing.T) {
	t.Helper()
	t.Setenv("WHEREPIPE_CFG_FILE", "testdata/does-not-exist.yaml")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

// runSpit parses args with the same flag set the parse command uses and
// returns what Spit wrote.
func runSpit(t *testing.T, filter where.Filter, args ...string) (string, error) {
	t.Helper()
	noConfig(t)

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "spit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "path"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "relative"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return Spit(filter, cmd, &buf)
		},
	}

	err := cmd.Run(context.Background(), append([]string{"spit"}, args...))
	return buf.String(), err
}

func TestSpitGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name string
		args []string
	}{
		{name: "spit_json", args: []string{"--output", "json"}},
		{name: "spit_raw", args: []string{"--output", "raw"}},
		{name: "spit_yaml", args: []string{"--output", "yaml"}},
		{name: "spit_path_json", args: []string{"--output", "json", "--path", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runSpit(t, sampleFilter(), tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(got))
		})
	}
}

func TestSpitText(t *testing.T) {
	got, err := runSpit(t, sampleFilter(), "--titles")
	require.NoError(t, err)

	for _, want := range []string{"key", "operator", "options", "name", "contains", "mode=insensitive", "some", `["a","b"]`} {
		assert.Contains(t, got, want)
	}
}

func TestSpitTextEmpty(t *testing.T) {
	got, err := runSpit(t, where.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSpitPathText(t *testing.T) {
	got, err := runSpit(t, sampleFilter(), "--path", "name.contains")
	require.NoError(t, err)
	assert.Equal(t, "ban\n", got)
}

func TestSpitPathMissing(t *testing.T) {
	_, err := runSpit(t, sampleFilter(), "--path", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `path "nope" not found`)
}

func TestRows(t *testing.T) {
	rows := Rows(sampleFilter())
	SortRows(rows, "")
	require.Len(t, rows, 3)

	assert.Equal(t, "id", rows[0]["key"])
	assert.Nil(t, rows[0]["operator"])
	assert.Equal(t, int64(1), rows[0]["value"])

	assert.Equal(t, "name", rows[1]["key"])
	assert.Equal(t, "contains", rows[1]["operator"])
	assert.Equal(t, "ban", rows[1]["value"])
	assert.Equal(t, "mode=insensitive", rows[1]["options"])

	assert.Equal(t, "tags", rows[2]["key"])
	assert.Equal(t, "some", rows[2]["operator"])
	assert.Equal(t, "", rows[2]["options"])
}

func TestRowsKeysDifferingInCase(t *testing.T) {
	filter := where.Filter{"name": "b", "Name": "a", "Age": int64(3), "id": int64(1)}

	for i := 0; i < 20; i++ {
		rows := Rows(filter)
		var keys []string
		for _, row := range rows {
			keys = append(keys, row["key"].(string))
		}
		require.Equal(t, []string{"Age", "id", "Name", "name"}, keys)
	}
}

func TestRowsRelation(t *testing.T) {
	rows := Rows(where.Filter{"author": map[string]any{"name": "bob"}})
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["operator"])
	assert.Equal(t, map[string]any{"name": "bob"}, rows[0]["value"])
}

func TestSortRows(t *testing.T) {
	testData := []map[string]interface{}{
		{"key": "zebra", "value": int64(3)},
		{"key": "Alpha", "value": 1.5},
		{"key": "beta", "value": int64(2)},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "default sorts by key", spec: "", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by key", spec: "-key", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "case sensitive", spec: "!key", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "ascending by value", spec: "value", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by value", spec: "-value", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "multiple fields", spec: "operator,key", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "case sensitive tiebreak", spec: "key,!key", wantOrder: []string{"Alpha", "beta", "zebra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortRows(data, tt.spec)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, data[i]["key"], "at index %d", i)
			}
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
		{name: "nil", value: nil, want: ""},
		{name: "nil with custom empty", value: nil, empty: []string{"-"}, want: "-"},
		{name: "empty string with custom empty", value: "", empty: []string{"-"}, want: "-"},
		{name: "string", value: "banana", want: "banana"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(-7), want: "-7"},
		{name: "float", value: 9.99, want: "9.99"},
		{name: "bool", value: true, want: "true"},
		{name: "list", value: []any{"a", int64(1)}, want: `["a",1]`},
		{name: "map", value: map[string]any{"name": "bob"}, want: `{"name":"bob"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestRelative(t *testing.T) {
	past := time.Now().Add(-72 * time.Hour).UTC().Format(time.RFC3339)
	assert.Equal(t, "3 days ago", Relative(past))

	assert.Equal(t, "banana", Relative("banana"))
	assert.Equal(t, int64(5), Relative(int64(5)))
}

func TestGetColors(t *testing.T) {
	noConfig(t)

	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestSpitRelative(t *testing.T) {
	past := time.Now().Add(-72 * time.Hour).UTC().Format("2006-01-02T15:04:05.000Z07:00")
	filter := where.Filter{"createdAt": map[string]any{"gte": past}}

	got, err := runSpit(t, filter, "--relative")
	require.NoError(t, err)
	assert.Contains(t, got, "3 days ago")
	assert.NotContains(t, got, past)
}

func TestSpitDocumentColumns(t *testing.T) {
	noConfig(t)

	rows := []map[string]interface{}{
		{"name": "lt", "type": "operator"},
		{"name": "int", "type": "tag", "produces": "int"},
	}
	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "doc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "path"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "relative"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return SpitDocument(rows, rows, []string{"name", "type", "produces"}, cmd, &buf)
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"doc", "--titles", "--sort=-name"}))
	out := buf.String()
	assert.Contains(t, out, "produces")
	assert.Less(t, strings.Index(out, "lt"), strings.Index(out, "int"))
}
