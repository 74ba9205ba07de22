// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package literal

import (
	"fmt"
	"strings"
)

// Tree is a lexed literal with every group matched to its closing token, so
// nested values can be walked without lexing them again.
type Tree struct {
	input  string
	tokens []Token
	// partner holds the index of the matching delimiter for grouping tokens
	// and -1 for everything else.
	partner []int
}

// Lex tokenizes input and matches its groups. Parentheses must balance. A
// bracket or brace without a partner is demoted to plain text.
func Lex(input string) (*Tree, error) {
	tree := &Tree{input: input, tokens: newLexer(input).tokenize()}
	if err := tree.match(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (t *Tree) match() error {
	t.partner = make([]int, len(t.tokens))
	for i := range t.partner {
		t.partner[i] = -1
	}

	var open []int
	for i, token := range t.tokens {
		switch token.Type {
		case TokenOpen:
			open = append(open, i)
		case TokenClose:
			want := token.Value[0]
			for len(open) > 0 && closers[t.tokens[open[len(open)-1]].Value[0]] != want && want == ')' {
				t.demote(open[len(open)-1])
				open = open[:len(open)-1]
			}

			if len(open) == 0 || closers[t.tokens[open[len(open)-1]].Value[0]] != want {
				if want == ')' {
					return &ParseError{
						Message:  fmt.Sprintf("unexpected %q", token.Value),
						Position: token.Position,
						Length:   1,
					}
				}
				t.demote(i)
				continue
			}

			top := open[len(open)-1]
			open = open[:len(open)-1]
			t.partner[top] = i
			t.partner[i] = top
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		token := t.tokens[open[i]]
		if token.Value == "(" {
			return &ParseError{
				Message:  fmt.Sprintf("unclosed %q", token.Value),
				Position: token.Position,
				Length:   len(t.input) - token.Position,
			}
		}
		t.demote(open[i])
	}

	return nil
}

func (t *Tree) demote(i int) {
	t.tokens[i].Type = TokenText
}

// Root spans the whole input.
func (t *Tree) Root() Span {
	return Span{tree: t, lo: 0, hi: len(t.tokens) - 1}
}

// Span is the run of tokens [lo, hi) of a Tree. Spans produced by Split and
// Tagged never cut through a group.
type Span struct {
	tree *Tree
	lo   int
	hi   int
}

// Raw returns the verbatim input covered by the span.
func (s Span) Raw() string {
	tokens := s.tree.tokens
	return s.tree.input[tokens[s.lo].Position:tokens[s.hi].Position]
}

// Text returns the trimmed input covered by the span.
func (s Span) Text() string {
	return strings.TrimSpace(s.Raw())
}

// blank reports whether the span holds nothing but whitespace.
func (s Span) blank() bool {
	for i := s.lo; i < s.hi; i++ {
		token := s.tree.tokens[i]
		if token.Type != TokenText || strings.TrimSpace(token.Value) != "" {
			return false
		}
	}
	return true
}

// Split cuts the span on top-level commas. A blank span yields no segments.
func (s Span) Split() []Span {
	if s.blank() {
		return []Span{}
	}

	var segments []Span
	start := s.lo
	for i := s.lo; i < s.hi; i++ {
		switch s.tree.tokens[i].Type {
		case TokenOpen:
			i = s.tree.partner[i]
		case TokenComma:
			segments = append(segments, Span{tree: s.tree, lo: start, hi: i})
			start = i + 1
		}
	}
	return append(segments, Span{tree: s.tree, lo: start, hi: s.hi})
}

// Tagged reports whether the trimmed span has the exact form name(content)
// and returns the name and the span between the parentheses.
func (s Span) Tagged() (name string, content Span, ok bool) {
	tokens := s.tree.tokens

	end := s.hi
	for end > s.lo && tokens[end-1].Type == TokenText && strings.TrimSpace(tokens[end-1].Value) == "" {
		end--
	}
	if end-s.lo < 3 {
		return "", Span{}, false
	}

	first, open := tokens[s.lo], tokens[s.lo+1]
	name = strings.TrimLeft(first.Value, " \t\n\r")
	if first.Type != TokenText || !isIdentifier(name) {
		return "", Span{}, false
	}
	if open.Type != TokenOpen || open.Value != "(" || s.tree.partner[s.lo+1] != end-1 {
		return "", Span{}, false
	}

	return name, Span{tree: s.tree, lo: s.lo + 2, hi: end - 1}, true
}
