// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package literal

// TokenType identifies a lexical token of a filter literal.
type TokenType int

const (
	TokenText TokenType = iota
	TokenQuoted
	TokenOpen
	TokenClose
	TokenComma
	TokenColon
	TokenEOF
)

// Token is a lexical token. Position and Length are byte offsets into the
// original input so callers can slice verbatim text back out of it.
type Token struct {
	Type     TokenType
	Value    string
	Position int
	Length   int
}

// closers maps each opening delimiter to its closing partner.
var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// lexer tokenizes a filter literal.
type lexer struct {
	input string
	pos   int
	// unclosed records quote bytes already known to have no closing partner
	// in the rest of the input.
	unclosed [256]bool
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// tokenize converts the input into a token slice terminated by TokenEOF.
// Whitespace is not a separator; it stays inside text tokens. A quote without
// a closing partner is plain text.
func (l *lexer) tokenize() []Token {
	var tokens []Token

	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch ch {
		case '(', '[', '{':
			tokens = append(tokens, l.single(TokenOpen))
		case ')', ']', '}':
			tokens = append(tokens, l.single(TokenClose))
		case ',':
			tokens = append(tokens, l.single(TokenComma))
		case ':':
			tokens = append(tokens, l.single(TokenColon))
		case '"', '\'':
			if token, ok := l.readQuoted(ch); ok {
				tokens = append(tokens, token)
				continue
			}
			tokens = append(tokens, l.readText())
		default:
			tokens = append(tokens, l.readText())
		}
	}

	return append(tokens, Token{Type: TokenEOF, Position: l.pos})
}

func (l *lexer) single(t TokenType) Token {
	token := Token{Type: t, Value: l.input[l.pos : l.pos+1], Position: l.pos, Length: 1}
	l.pos++
	return token
}

// readQuoted reads a quoted span including both quotes. A backslash escapes
// the next byte. If the quote is never closed nothing is consumed and ok is
// false.
func (l *lexer) readQuoted(quote byte) (token Token, ok bool) {
	if l.unclosed[quote] {
		return Token{}, false
	}

	start := l.pos
	for pos := start + 1; pos < len(l.input); pos++ {
		switch l.input[pos] {
		case '\\':
			pos++
		case quote:
			l.pos = pos + 1
			return Token{
				Type:     TokenQuoted,
				Value:    l.input[start:l.pos],
				Position: start,
				Length:   l.pos - start,
			}, true
		}
	}

	l.unclosed[quote] = true
	return Token{}, false
}

// readText reads a run of bytes up to the next structural byte. A quote
// only opens a quoted span after whitespace, so apostrophes inside words
// (O'Brien) stay text. The byte at the start is always consumed.
func (l *lexer) readText() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isStructural(ch) || (isQuote(ch) && isSpace(l.input[l.pos-1]) && !l.unclosed[ch]) {
			break
		}
		l.pos++
	}
	return Token{
		Type:     TokenText,
		Value:    l.input[start:l.pos],
		Position: start,
		Length:   l.pos - start,
	}
}

func isStructural(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', ',', ':':
		return true
	}
	return false
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
