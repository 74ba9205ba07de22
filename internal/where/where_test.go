// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package where

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowco/wherepipe/internal/coerce"
	"github.com/hollowco/wherepipe/internal/literal"
)

func ptr(s string) *string {
	return &s
}

func TestResolveNil(t *testing.T) {
	got, err := Resolve(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveEmpty(t *testing.T) {
	got, err := Resolve(ptr(""))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Filter
	}{
		{
			name:  "typed and plain values",
			input: "id: int(1), firstName: banana",
			want:  Filter{"id": int64(1), "firstName": "banana"},
		},
		{
			name:  "comparison operator",
			input: "age: gte int(18)",
			want:  Filter{"age": map[string]any{"gte": int64(18)}},
		},
		{
			name:  "text operator adds insensitive mode",
			input: "name: contains banana",
			want:  Filter{"name": map[string]any{"contains": "banana", "mode": "insensitive"}},
		},
		{
			name:  "startsWith",
			input: "name: startsWith ba",
			want:  Filter{"name": map[string]any{"startsWith": "ba", "mode": "insensitive"}},
		},
		{
			name:  "array of bare numerals stays text",
			input: "tags: array(1,2,3)",
			want:  Filter{"tags": []any{"1", "2", "3"}},
		},
		{
			name:  "array of tagged ints",
			input: "tags: array(int(1),int(2))",
			want:  Filter{"tags": []any{int64(1), int64(2)}},
		},
		{
			name:  "in with array",
			input: "id: in array(int(1), int(2))",
			want:  Filter{"id": map[string]any{"in": []any{int64(1), int64(2)}}},
		},
		{
			name:  "nested relation",
			input: "author: some name: alice",
			want:  Filter{"author": map[string]any{"some": map[string]any{"name": "alice"}}},
		},
		{
			name:  "relation splits on the first colon only",
			input: "author: every url: http://x",
			want:  Filter{"author": map[string]any{"every": map[string]any{"url": "http://x"}}},
		},
		{
			name:  "trailing colon is not a relation",
			input: "label: equals a:",
			want:  Filter{"label": map[string]any{"equals": "a:"}},
		},
		{
			name:  "iso timestamp is not a relation",
			input: "created: lt 2024-01-02T03:04:05Z",
			want:  Filter{"created": map[string]any{"lt": "2024-01-02T03:04:05Z"}},
		},
		{
			name:  "coerced date",
			input: "created: gte date(2024-01-02)",
			want:  Filter{"created": map[string]any{"gte": "2024-01-02T00:00:00.000Z"}},
		},
		{
			name:  "escaped string is not a relation",
			input: "note: equals string(a: b)",
			want:  Filter{"note": map[string]any{"equals": "a: b"}},
		},
		{
			name:  "typed literal is never an operator",
			input: "note: string(lt 5)",
			want:  Filter{"note": "lt 5"},
		},
		{
			name:  "keyword without a space is plain text",
			input: "name: ltd",
			want:  Filter{"name": "ltd"},
		},
		{
			name:  "operator without argument",
			input: "name: not ",
			want:  Filter{"name": "not"},
		},
		{
			name:  "not with bool",
			input: "active: not bool(true)",
			want:  Filter{"active": map[string]any{"not": true}},
		},
		{
			name:  "false is stored",
			input: "active: bool(false)",
			want:  Filter{"active": false},
		},
		{
			name:  "zero is stored",
			input: "count: int(0)",
			want:  Filter{"count": int64(0)},
		},
		{
			name:  "empty value is dropped",
			input: "id:, name: x",
			want:  Filter{"name": "x"},
		},
		{
			name:  "first bare value wins",
			input: "a: 1, a: 2",
			want:  Filter{"a": "1"},
		},
		{
			name:  "operator rule replaces a bare value",
			input: "a: 1, a: lt int(2)",
			want:  Filter{"a": map[string]any{"lt": int64(2)}},
		},
		{
			name:  "bare value does not replace an operator rule",
			input: "a: lt int(2), a: 1",
			want:  Filter{"a": map[string]any{"lt": int64(2)}},
		},
		{
			name:  "malformed int degrades to text",
			input: "id: int(abc)",
			want:  Filter{"id": "int(abc)"},
		},
		{
			name:  "float",
			input: "price: lte float(9.99)",
			want:  Filter{"price": map[string]any{"lte": 9.99}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	inputs := []string{
		"id: int(1",
		"id: 1)",
		"id",
		"id: 1,",
		": x",
		"a(b): 1",
		"id: array(1]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Resolve(ptr(input))
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQueryFormat))

			var perr *literal.ParseError
			assert.False(t, errors.As(err, &perr), "parse error details must not leak")
		})
	}
}

func TestResolveStrayQuotesAndBrackets(t *testing.T) {
	tests := []struct {
		input string
		want  Filter
	}{
		{
			input: "title: contains 'til now",
			want:  Filter{"title": map[string]any{"contains": "'til now", "mode": "insensitive"}},
		},
		{
			input: "title: rock 'n roll",
			want:  Filter{"title": "rock 'n roll"},
		},
		{
			input: "name: contains [draft",
			want:  Filter{"name": map[string]any{"contains": "[draft", "mode": "insensitive"}},
		},
		{
			input: "title: 'til now, id: int(1)",
			want:  Filter{"title": "'til now", "id": int64(1)},
		},
		{
			input: "name: \"banana",
			want:  Filter{"name": "\"banana"},
		},
		{
			input: "note: {draft], id: int(2)",
			want:  Filter{"note": "{draft]", "id": int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDeeplyNestedArray(t *testing.T) {
	const depth = 100000

	input := "k: " + strings.Repeat("array(", depth) + "x" + strings.Repeat(")", depth)

	done := make(chan Filter, 1)
	go func() {
		got, err := ResolveString(input)
		assert.NoError(t, err)
		done <- got
	}()

	var got Filter
	select {
	case got = <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("resolving %d nested arrays did not finish in time", depth)
	}

	value := got["k"]
	for i := 0; i < depth; i++ {
		list, ok := value.([]any)
		require.True(t, ok, "level %d is %T", i, value)
		require.Len(t, list, 1)
		value = list[0]
	}
	assert.Equal(t, "x", value)
}

func TestEveryOperatorRoundTrip(t *testing.T) {
	for _, op := range Operators {
		t.Run(string(op), func(t *testing.T) {
			got, err := ResolveString("k: " + string(op) + " int(5)")
			require.NoError(t, err)
			require.Len(t, got, 1)

			want := map[string]any{string(op): coerce.Coerce("int(5)").Interface()}
			for k, v := range op.Options() {
				want[k] = v
			}
			assert.Equal(t, want, got["k"])
		})
	}
}

func TestFirstOperatorWins(t *testing.T) {
	// "lte x" must not be read as "lt" followed by "e x".
	got, err := ResolveString("k: lte x")
	require.NoError(t, err)
	assert.Equal(t, Filter{"k": map[string]any{"lte": "x"}}, got)

	// Only the leading keyword is an operator; the rest is its argument.
	got, err = ResolveString("k: not in x")
	require.NoError(t, err)
	assert.Equal(t, Filter{"k": map[string]any{"not": "in x"}}, got)
}

func TestOperatorOptions(t *testing.T) {
	for _, op := range []Operator{Contains, StartsWith, EndsWith} {
		assert.Equal(t, map[string]any{"mode": ModeInsensitive}, op.Options(), op)
	}
	for _, op := range []Operator{Lt, Lte, Gt, Gte, Equals, Not, Every, Some, None, In} {
		assert.Nil(t, op.Options(), op)
	}
}

func TestResolverRule(t *testing.T) {
	r := NewResolver()

	rule, ok := r.Rule("some name: alice")
	require.True(t, ok)
	assert.Equal(t, Some, rule.Operator)
	require.NotNil(t, rule.Relation)
	assert.Equal(t, Relation{Field: "name", Value: "alice"}, *rule.Relation)

	_, ok = r.Rule("int(1)")
	assert.False(t, ok)

	_, ok = r.Rule("banana")
	assert.False(t, ok)
}

func TestResolverDateLayouts(t *testing.T) {
	r := NewResolver("02/01/2006")

	got, err := r.ResolveString("due: lt date(31/01/2024)")
	require.NoError(t, err)
	assert.Equal(t, Filter{"due": map[string]any{"lt": "2024-01-31T00:00:00.000Z"}}, got)

	got, err = ResolveString("due: lt date(31/01/2024)")
	require.NoError(t, err)
	assert.Equal(t, Filter{"due": map[string]any{"lt": "date(31/01/2024)"}}, got)
}

func TestResolveConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ResolveString("age: gte int(18), name: contains ban")
			assert.NoError(t, err)
			assert.Len(t, got, 2)
		}()
	}
	wg.Wait()
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrInvalidQueryFormat))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
