// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package literal

import (
	"fmt"
	"strings"
)

// Pair is a single key and its raw, untyped value as written in the literal.
type Pair struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// ParseError reports malformed literal syntax. Position and Length locate the
// offending span in bytes.
type ParseError struct {
	Message  string
	Position int
	Length   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Parse splits a filter literal into its ordered key/value pairs. Commas
// inside () groups, balanced [] or {} groups and quoted spans do not split.
// Keys and values are trimmed and keys may be quoted. A blank input yields no
// pairs.
func Parse(input string) ([]Pair, error) {
	if strings.TrimSpace(input) == "" {
		return []Pair{}, nil
	}

	tree, err := Lex(input)
	if err != nil {
		return nil, err
	}

	return newParser(tree).parse()
}

// Split splits s on top-level commas using the same grouping rules as Parse.
// Segments are trimmed. A blank s yields no segments.
func Split(s string) ([]string, error) {
	tree, err := Lex(s)
	if err != nil {
		return nil, err
	}

	spans := tree.Root().Split()
	segments := make([]string, len(spans))
	for i, span := range spans {
		segments[i] = span.Text()
	}
	return segments, nil
}

// Tagged reports whether s has the exact form name(content), where the
// parenthesis following name is closed by the final byte of s. It returns the
// name and the verbatim content between the parentheses.
func Tagged(s string) (name, content string, ok bool) {
	if s != strings.TrimSpace(s) {
		return "", "", false
	}

	tree, err := Lex(s)
	if err != nil {
		return "", "", false
	}

	name, inner, ok := tree.Root().Tagged()
	if !ok {
		return "", "", false
	}
	return name, inner.Raw(), true
}

// parser is a recursive descent parser over a lexed Tree.
//
// Grammar:
//
//	filter → pair (',' pair)*
//	pair   → key ':' value
//	key    → (text | quoted)+
//	value  → (text | quoted | ':' | group)*
//	group  → open value-or-comma* close
type parser struct {
	tree *Tree
	pos  int
}

func newParser(tree *Tree) *parser {
	return &parser{tree: tree}
}

func (p *parser) current() Token {
	return p.tree.tokens[min(p.pos, len(p.tree.tokens)-1)]
}

func (p *parser) advance() Token {
	token := p.current()
	p.pos++
	return token
}

func (p *parser) parse() ([]Pair, error) {
	var pairs []Pair
	for {
		pair, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)

		if p.current().Type == TokenEOF {
			return pairs, nil
		}
		p.advance() // ','
	}
}

// parsePair parses: key ':' value
func (p *parser) parsePair() (Pair, error) {
	start := p.current()
	if start.Type == TokenComma || start.Type == TokenEOF {
		return Pair{}, &ParseError{
			Message:  "empty pair",
			Position: start.Position,
			Length:   max(start.Length, 1),
		}
	}

	key, err := p.parseKey()
	if err != nil {
		return Pair{}, err
	}

	valueStart := p.current().Position
	p.skipValue()
	value := strings.TrimSpace(p.tree.input[valueStart:p.current().Position])

	return Pair{Key: key, Value: value}, nil
}

// parseKey parses the key and consumes the ':' that follows it.
func (p *parser) parseKey() (string, error) {
	start := p.current().Position
	for {
		token := p.current()
		switch token.Type {
		case TokenText, TokenQuoted:
			p.advance()
		case TokenColon:
			key := unquote(strings.TrimSpace(p.tree.input[start:token.Position]))
			if key == "" {
				return "", &ParseError{
					Message:  "empty key",
					Position: start,
					Length:   token.Position - start + 1,
				}
			}
			p.advance()
			return key, nil
		case TokenComma, TokenEOF:
			return "", &ParseError{
				Message:  "missing ':' after key",
				Position: start,
				Length:   max(token.Position-start, 1),
			}
		default:
			return "", &ParseError{
				Message:  fmt.Sprintf("unexpected %q in key", token.Value),
				Position: token.Position,
				Length:   1,
			}
		}
	}
}

// skipValue consumes tokens up to a top-level comma or the end of input.
// Groups are skipped whole.
func (p *parser) skipValue() {
	for {
		token := p.current()
		switch token.Type {
		case TokenComma, TokenEOF:
			return
		case TokenOpen:
			p.pos = p.tree.partner[p.pos] + 1
		default:
			p.advance()
		}
	}
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '_', 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		case '0' <= ch && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
