// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/hollowco/wherepipe/internal/where"
)

// Identical is printed when two filters carry the same conditions.
const Identical = "The filters are identical."

// Diff compares two filters and writes an ASCII diff to w. Top-level keys
// named in ignore are dropped from both sides first. The returned bool reports
// whether the filters differ.
func Diff(w io.Writer, left, right where.Filter, ignore []string, coloring bool) (bool, error) {
	log.Debugf(">> differ()")

	if w == nil {
		w = os.Stdout
	}

	leftDoc, err := marshal(left, ignore)
	if err != nil {
		return false, err
	}
	rightDoc, err := marshal(right, ignore)
	if err != nil {
		return false, err
	}

	log.Debugf("len(docs): %d %d", len(leftDoc), len(rightDoc))

	delta, err := gojsondiff.New().Compare(leftDoc, rightDoc)
	if err != nil {
		return false, fmt.Errorf("failed to compare filters: %w", err)
	}

	if !delta.Modified() {
		_, err := fmt.Fprintln(w, Identical)
		return false, err
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(leftDoc, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal filter: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	_, err = fmt.Fprint(w, diffString)
	return true, err
}

// marshal encodes filter as a JSON object without the ignored keys. A nil
// filter encodes as an empty object so both sides stay comparable.
func marshal(filter where.Filter, ignore []string) ([]byte, error) {
	doc := make(map[string]any, len(filter))
	for k, v := range filter {
		doc[k] = v
	}
	for _, key := range ignore {
		delete(doc, key)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter: %w", err)
	}
	return b, nil
}
