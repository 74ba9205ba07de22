// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/hollowco/wherepipe/internal/config"
	"github.com/hollowco/wherepipe/internal/where"
)

// Columns are the text table columns, in order.
var Columns = []string{"key", "operator", "value", "options"}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || value == "" {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Spit renders filter to w according to the command's --output, --path,
// --relative and --sort flags.
func Spit(filter where.Filter, cmd *cli.Command, w io.Writer) error {
	return SpitDocument(filter, Rows(filter), Columns, cmd, w)
}

// SpitDocument renders doc as JSON, raw JSON or YAML, or rows as a text table
// with the given columns. The --path flag selects part of doc.
func SpitDocument(doc interface{}, rows []map[string]interface{}, columns []string, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	output := cmd.String("output")

	selected := doc
	if path := cmd.String("path"); path != "" {
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		result := gjson.GetBytes(raw, path)
		if !result.Exists() {
			return fmt.Errorf("path %q not found", path)
		}
		log.Debugf("path %q selected %s", path, result.Raw)
		selected = result.Value()

		if output == "text" || output == "" {
			_, err := fmt.Fprintln(w, InterfaceToString(selected, "-"))
			return err
		}
	}

	switch output {
	case "raw":
		jsonOutput, err := json.Marshal(selected)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "json":
		jsonOutput, err := json.MarshalIndent(selected, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(selected)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		if cmd.Bool("relative") {
			for _, row := range rows {
				if value, ok := row["value"]; ok {
					row["value"] = Relative(value)
				}
			}
		}
		if spec := cmd.String("sort"); spec != "" {
			SortRows(rows, spec)
		}
		TableWriter(rows, columns, cmd, w)
		return nil
	}
}

// Rows flattens a filter into one row per key, ordered by key, with the
// columns named in Columns. Bare values have an empty operator.
func Rows(filter where.Filter) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(filter))

	for key, value := range filter {
		row := map[string]interface{}{"key": key, "value": value}

		if m, ok := value.(map[string]any); ok {
			for _, op := range where.Operators {
				arg, found := m[string(op)]
				if !found {
					continue
				}
				row["operator"] = string(op)
				row["value"] = arg

				var options []string
				for k, v := range m {
					if k != string(op) {
						options = append(options, k+"="+InterfaceToString(v))
					}
				}
				sort.Strings(options)
				row["options"] = strings.Join(options, ",")
				break
			}
		}

		rows = append(rows, row)
	}

	// Keys differing only in case fall back to a case sensitive order.
	SortRows(rows, "key,!key")
	return rows
}

// Relative renders an ISO-8601 timestamp as a relative time ("3 days ago").
// Anything else is returned unchanged.
func Relative(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return value
	}
	return humanize.Time(t)
}

// TableWriter renders the rows in a tabular form honoring color, titles and
// padding options. Output is written to w. If w is nil, os.Stdout is used.
func TableWriter(rows []map[string]interface{}, columns []string, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no rows to display.
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var cells [][]string
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, column := range columns {
			line = append(line, InterfaceToString(row[column], "-"))
		}
		cells = append(cells, line)
	}

	pad, _ := config.GetInt("padding", 1)
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering, falling back
// to defaults picked for the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
