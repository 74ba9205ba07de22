// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package where

import (
	"regexp"
	"strings"

	"github.com/hollowco/wherepipe/internal/coerce"
)

// Operator is a comparison or relation keyword that may prefix a value.
type Operator string

const (
	Lt         Operator = "lt"
	Lte        Operator = "lte"
	Gt         Operator = "gt"
	Gte        Operator = "gte"
	Equals     Operator = "equals"
	Not        Operator = "not"
	Contains   Operator = "contains"
	StartsWith Operator = "startsWith"
	EndsWith   Operator = "endsWith"
	Every      Operator = "every"
	Some       Operator = "some"
	None       Operator = "none"
	In         Operator = "in"
)

// Operators lists every operator in match order. The first operator whose
// keyword and a single space prefix the raw value wins.
var Operators = []Operator{
	Lt, Lte, Gt, Gte, Equals, Not,
	Contains, StartsWith, EndsWith,
	Every, Some, None, In,
}

// ModeInsensitive is the mode injected for text matching operators.
const ModeInsensitive = "insensitive"

// Options returns the sibling options the downstream query layer expects next
// to the operator, or nil when there are none.
func (op Operator) Options() map[string]any {
	switch op {
	case Contains, StartsWith, EndsWith:
		return map[string]any{"mode": ModeInsensitive}
	}
	return nil
}

// prefix is the text that introduces op in a raw value.
func (op Operator) prefix() string {
	return string(op) + " "
}

// matchOperator returns the first operator prefixing raw and the remainder
// after the prefix.
func matchOperator(raw string) (Operator, string, bool) {
	for _, op := range Operators {
		if rest, ok := strings.CutPrefix(raw, op.prefix()); ok {
			return op, rest, true
		}
	}
	return "", "", false
}

// isoTimestamp matches text starting like an ISO-8601 timestamp, whose colons
// must not be read as a relation separator.
var isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// Relation is a filter on a field of a related record, written as an
// operator argument of the form "field: value".
type Relation struct {
	Field string `yaml:"field" json:"field"`
	Value string `yaml:"value" json:"value"`
}

// Map returns the relation in the downstream shape {field: value}.
func (r Relation) Map() map[string]any {
	return map[string]any{r.Field: r.Value}
}

// asRelation reports whether v reads as a nested relation and splits it on
// its first colon.
func asRelation(v coerce.Value) (Relation, bool) {
	if !v.IsString() || v.Escaped {
		return Relation{}, false
	}

	s := v.Str
	if !strings.Contains(s, ":") || strings.HasSuffix(s, ":") || isoTimestamp.MatchString(s) {
		return Relation{}, false
	}

	field, value, _ := strings.Cut(s, ":")
	return Relation{Field: strings.TrimSpace(field), Value: strings.TrimSpace(value)}, true
}

// Rule is an operator applied to a value. Relation is set instead of Value
// when the argument is a nested relation.
type Rule struct {
	Operator Operator
	Value    coerce.Value
	Relation *Relation
}

// Map returns the rule in the downstream shape {op: value, ...options}.
func (r Rule) Map() map[string]any {
	options := r.Operator.Options()
	m := make(map[string]any, 1+len(options))

	if r.Relation != nil {
		m[string(r.Operator)] = r.Relation.Map()
	} else {
		m[string(r.Operator)] = r.Value.Interface()
	}

	for k, v := range options {
		m[k] = v
	}

	return m
}
