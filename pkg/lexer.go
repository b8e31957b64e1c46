package kaleido

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type TokenType uint64

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenIdentifier
	TokenNumber

	TokenLess
	TokenMinus
	TokenPlus
	TokenStar

	TokenOpenParentheses
	TokenCloseParentheses
	TokenComma
	TokenSemicolon

	TokenDef
	TokenExtern
)

var tokenNames = map[TokenType]string{
	TokenEOF:              "EOF",
	TokenIdentifier:       "identifier",
	TokenNumber:           "number",
	TokenLess:             "'<'",
	TokenMinus:            "'-'",
	TokenPlus:             "'+'",
	TokenStar:             "'*'",
	TokenOpenParentheses:  "'('",
	TokenCloseParentheses: "')'",
	TokenComma:            "','",
	TokenSemicolon:        "';'",
	TokenDef:              "def",
	TokenExtern:           "extern",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

var keywordTable = map[string]TokenType{
	"def":    TokenDef,
	"extern": TokenExtern,
}

var operatorTable = map[rune]TokenType{
	'<': TokenLess,
	'-': TokenMinus,
	'+': TokenPlus,
	'*': TokenStar,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	',': TokenComma,
	';': TokenSemicolon,
}

type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Token is a comparable value; Num is only meaningful for TokenNumber.
type Token struct {
	Typ   TokenType
	Value string
	Num   float64
	Loc   Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenIdentifier:
		return "identifier '" + t.Value + "'"
	case TokenNumber:
		return "number " + t.Value
	default:
		return t.Typ.String()
	}
}

// TokenSource is a forward-only stream of tokens.
type TokenSource interface {
	Next() (Token, error)
}

type Lexer struct {
	reader *bufio.Reader
	loc    Location
	prev   Location
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		loc:    Location{Line: 1, Col: 1},
	}
}

func (l *Lexer) Next() (Token, error) {
	for {
		switch r := l.peek(); {
		case r == EOF:
			if l.err != nil {
				return Token{}, l.err
			}

			return Token{Typ: TokenEOF, Loc: l.loc}, nil
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			l.skipComment()
		case isDigit(r) || r == '.':
			return l.number()
		case isLetter(r):
			return l.identifier(), nil
		default:
			return l.operator()
		}
	}
}

// RunBlocking lexes the whole input, stopping at EOF or the first error.
func (l *Lexer) RunBlocking() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func (l *Lexer) skipComment() {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}
}

func (l *Lexer) number() (Token, error) {
	start := l.loc

	var num strings.Builder
	for r := l.peek(); isDigit(r) || r == '.'; r = l.peek() {
		num.WriteRune(l.next())
	}

	v, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return Token{}, &LexError{Loc: start, Text: num.String(), Err: ErrMalformedNumber}
	}

	return Token{Typ: TokenNumber, Value: num.String(), Num: v, Loc: start}, nil
}

func (l *Lexer) identifier() Token {
	start := l.loc

	var id strings.Builder
	for r := l.peek(); isLetter(r) || isDigit(r) || r == '_'; r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return Token{Typ: t, Value: id.String(), Loc: start}
	}

	return Token{Typ: TokenIdentifier, Value: id.String(), Loc: start}
}

func (l *Lexer) operator() (Token, error) {
	start := l.loc
	r := l.next()

	if tok, ok := operatorTable[r]; ok {
		return Token{Typ: tok, Value: string(r), Loc: start}, nil
	}

	return Token{}, &LexError{Loc: start, Text: string(r), Err: ErrUnrecognizedChar}
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r == EOF {
		return EOF
	}

	_ = l.reader.UnreadRune()
	l.loc = l.prev

	return r
}

func (l *Lexer) next() rune {
	if l.err != nil {
		return EOF
	}

	r, _, err := l.reader.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = fmt.Errorf("reading source: %w", err)
		}

		return EOF
	}

	l.prev = l.loc
	if r == '\n' {
		l.loc.Line++
		l.loc.Col = 1
	} else {
		l.loc.Col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// TokenStream adds single-token lookahead on top of a TokenSource.
type TokenStream struct {
	src TokenSource
	buf *Token
}

func NewTokenStream(src TokenSource) *TokenStream {
	return &TokenStream{src: src}
}

func (s *TokenStream) Peek() (Token, error) {
	if s.buf == nil {
		tok, err := s.src.Next()
		if err != nil {
			return Token{}, err
		}

		s.buf = &tok
	}

	return *s.buf, nil
}

func (s *TokenStream) Next() (Token, error) {
	if s.buf != nil {
		tok := *s.buf
		s.buf = nil

		return tok, nil
	}

	return s.src.Next()
}
