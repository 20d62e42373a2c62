package catalog

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokNumber
	tokString
	// tokBadString is a string literal that hit a newline or the end of input
	// before its closing quote.
	tokBadString
	tokPunct
)

type token struct {
	kind tokenKind
	// text is the raw identifier/number, the decoded string value, or the punctuation rune.
	text string
	line int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

// scanner splits loosely structured JavaScript-like text into tokens. It never fails:
// anything it does not understand comes out as single-rune punctuation.
type scanner struct {
	src     []rune
	pos     int
	line    int
	pending []token
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src), line: 1}
}

// unread pushes a token back so the next call to next returns it.
func (s *scanner) unread(t token) {
	s.pending = append(s.pending, t)
}

func (s *scanner) peek() token {
	t := s.next()
	s.unread(t)
	return t
}

func (s *scanner) next() token {
	if n := len(s.pending); n > 0 {
		t := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return t
	}

	s.skipSpaceAndComments()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, line: s.line}
	}

	r := s.src[s.pos]
	switch {
	case r == '"' || r == '\'' || r == '`':
		return s.scanString(r)
	case isDigit(r), r == '-' && isDigit(s.at(s.pos+1)):
		return s.scanNumber()
	case isIdentStart(r):
		return s.scanIdent()
	default:
		s.pos++
		return token{kind: tokPunct, text: string(r), line: s.line}
	}
}

func (s *scanner) at(i int) rune {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == '\n':
			s.line++
			s.pos++
		case unicode.IsSpace(r):
			s.pos++
		case r == '/' && s.at(s.pos+1) == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case r == '/' && s.at(s.pos+1) == '*':
			s.pos += 2
			for s.pos < len(s.src) && !(s.src[s.pos] == '*' && s.at(s.pos+1) == '/') {
				if s.src[s.pos] == '\n' {
					s.line++
				}
				s.pos++
			}
			s.pos += 2
			if s.pos > len(s.src) {
				s.pos = len(s.src)
			}
		default:
			return
		}
	}
}

func (s *scanner) scanString(quote rune) token {
	line := s.line
	s.pos++ // opening quote
	var b strings.Builder
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == quote:
			s.pos++
			return token{kind: tokString, text: b.String(), line: line}
		case r == '\n' && quote != '`':
			// Leave the newline for skipSpaceAndComments so line counting stays right.
			return token{kind: tokBadString, text: b.String(), line: line}
		case r == '\\' && s.pos+1 < len(s.src):
			b.WriteRune(unescape(s.src[s.pos+1]))
			if s.src[s.pos+1] == '\n' {
				s.line++
			}
			s.pos += 2
		default:
			if r == '\n' {
				s.line++
			}
			b.WriteRune(r)
			s.pos++
		}
	}
	return token{kind: tokBadString, text: b.String(), line: line}
}

func (s *scanner) scanNumber() token {
	start := s.pos
	if s.src[s.pos] == '-' {
		s.pos++
	}
	for isDigit(s.at(s.pos)) {
		s.pos++
	}
	kind := tokInt
	if s.at(s.pos) == '.' && isDigit(s.at(s.pos+1)) {
		kind = tokNumber
		s.pos++
		for isDigit(s.at(s.pos)) {
			s.pos++
		}
	}
	return token{kind: kind, text: string(s.src[start:s.pos]), line: s.line}
}

func (s *scanner) scanIdent() token {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	return token{kind: tokIdent, text: string(s.src[start:s.pos]), line: s.line}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
