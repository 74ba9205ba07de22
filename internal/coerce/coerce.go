// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package coerce turns raw filter values such as int(1), date(2024-01-02) or
// array(a,b) into typed values.
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/hollowco/wherepipe/internal/literal"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
	KindList
)

// String returns the lower case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a coerced filter value. Only the field matching Kind is set. Dates
// are carried in Str as a normalized ISO-8601 UTC string.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
	// Escaped marks a string produced by string(...). Escaped strings are
	// never treated as nested relations.
	Escaped bool
}

// Interface returns v as a plain Go value: string, int64, float64, bool or
// []any.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindList:
		list := make([]any, len(v.List))
		for i, item := range v.List {
			list[i] = item.Interface()
		}
		return list
	default:
		return v.Str
	}
}

// IsString reports whether v is a string. Dates are not strings here even
// though they are carried as text.
func (v Value) IsString() bool {
	return v.Kind == KindString
}

// Tag is a recognized type tag and the kind it produces.
type Tag struct {
	Name string
	Kind Kind
}

// Tags lists the recognized type tags.
var Tags = []Tag{
	{Name: "int", Kind: KindInt},
	{Name: "float", Kind: KindFloat},
	{Name: "date", Kind: KindDate},
	{Name: "datetime", Kind: KindDate},
	{Name: "string", Kind: KindString},
	{Name: "boolean", Kind: KindBool},
	{Name: "bool", Kind: KindBool},
	{Name: "array", Kind: KindList},
}

// ISOLayout is the normalized form of coerced dates.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultDateLayouts are the layouts accepted by date(...) and datetime(...),
// tried in order. Zone-less layouts are read as UTC.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Coercer applies the type tag grammar. The zero value accepts only
// DefaultDateLayouts.
type Coercer struct {
	// DateLayouts are tried after DefaultDateLayouts.
	DateLayouts []string
}

// Default is the Coercer used by the package level functions.
var Default = &Coercer{}

// Coerce applies the type tag grammar to raw using Default.
func Coerce(raw string) Value {
	return Default.Coerce(raw)
}

// Again coerces v if it is a string and returns it unchanged otherwise, so
// that re-coercing an already typed value is a no-op.
func Again(v any) any {
	if s, ok := v.(string); ok {
		return Default.Coerce(s).Interface()
	}
	return v
}

// Coerce returns the typed value of raw. Anything that is not exactly
// tag(content) with a known tag and valid content comes back as the
// original string.
func (c *Coercer) Coerce(raw string) Value {
	passthrough := Value{Kind: KindString, Str: raw}
	if raw != strings.TrimSpace(raw) || !strings.HasSuffix(raw, ")") {
		return passthrough
	}

	tree, err := literal.Lex(raw)
	if err != nil {
		log.Debugf("value not tagged, keeping %q: %v", raw, err)
		return passthrough
	}
	return c.coerceSpan(tree.Root())
}

// coerceSpan coerces one lexed value. Array items are coerced from their
// spans in the same tree, so nesting never lexes the input again.
func (c *Coercer) coerceSpan(span literal.Span) Value {
	tag, inner, ok := span.Tagged()
	if !ok {
		return Value{Kind: KindString, Str: span.Text()}
	}

	if tag == "array" {
		items := inner.Split()
		list := make([]Value, len(items))
		for i, item := range items {
			list[i] = c.coerceSpan(item)
		}
		return Value{Kind: KindList, List: list}
	}

	if v, ok := c.scalar(tag, inner.Raw()); ok {
		return v
	}
	return Value{Kind: KindString, Str: span.Text()}
}

// scalar applies a non-array tag to its verbatim content.
func (c *Coercer) scalar(tag, content string) (Value, bool) {
	// Scalar tags need content.
	if content == "" {
		return Value{}, false
	}

	switch tag {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
		if err != nil {
			log.Debugf("int content %q not numeric", content)
			return Value{}, false
		}
		return Value{Kind: KindInt, Int: n}, true
	case "float":
		f, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			log.Debugf("float content %q not finite", content)
			return Value{}, false
		}
		return Value{Kind: KindFloat, Float: f}, true
	case "date", "datetime":
		t, ok := c.parseDate(strings.TrimSpace(content))
		if !ok {
			log.Debugf("date content %q not recognized", content)
			return Value{}, false
		}
		return Value{Kind: KindDate, Str: t.UTC().Format(ISOLayout)}, true
	case "string":
		return Value{Kind: KindString, Str: content, Escaped: true}, true
	case "boolean", "bool":
		return Value{Kind: KindBool, Bool: content == "true"}, true
	}

	return Value{}, false
}

func (c *Coercer) parseDate(s string) (time.Time, bool) {
	for _, layouts := range [][]string{DefaultDateLayouts, c.DateLayouts} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
