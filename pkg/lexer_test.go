package kaleido

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kaleido.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   error
		expect []Token
	}{
		{
			"def foo(x y) x+y",
			nil,
			[]Token{
				{Typ: TokenDef, Value: "def", Loc: Location{1, 1}},
				{Typ: TokenIdentifier, Value: "foo", Loc: Location{1, 5}},
				{Typ: TokenOpenParentheses, Value: "(", Loc: Location{1, 8}},
				{Typ: TokenIdentifier, Value: "x", Loc: Location{1, 9}},
				{Typ: TokenIdentifier, Value: "y", Loc: Location{1, 11}},
				{Typ: TokenCloseParentheses, Value: ")", Loc: Location{1, 12}},
				{Typ: TokenIdentifier, Value: "x", Loc: Location{1, 14}},
				{Typ: TokenPlus, Value: "+", Loc: Location{1, 15}},
				{Typ: TokenIdentifier, Value: "y", Loc: Location{1, 16}},
			},
		},
		{
			"extern sin(a);",
			nil,
			[]Token{
				{Typ: TokenExtern, Value: "extern", Loc: Location{1, 1}},
				{Typ: TokenIdentifier, Value: "sin", Loc: Location{1, 8}},
				{Typ: TokenOpenParentheses, Value: "(", Loc: Location{1, 11}},
				{Typ: TokenIdentifier, Value: "a", Loc: Location{1, 12}},
				{Typ: TokenCloseParentheses, Value: ")", Loc: Location{1, 13}},
				{Typ: TokenSemicolon, Value: ";", Loc: Location{1, 14}},
			},
		},
		{
			"# a comment\n1.5 < x2*y_z,-",
			nil,
			[]Token{
				{Typ: TokenNumber, Value: "1.5", Num: 1.5, Loc: Location{2, 1}},
				{Typ: TokenLess, Value: "<", Loc: Location{2, 5}},
				{Typ: TokenIdentifier, Value: "x2", Loc: Location{2, 7}},
				{Typ: TokenStar, Value: "*", Loc: Location{2, 9}},
				{Typ: TokenIdentifier, Value: "y_z", Loc: Location{2, 10}},
				{Typ: TokenComma, Value: ",", Loc: Location{2, 13}},
				{Typ: TokenMinus, Value: "-", Loc: Location{2, 14}},
			},
		},
		{
			"",
			nil,
			nil,
		},
		{
			"1.2.3",
			ErrMalformedNumber,
			nil,
		},
		{
			"x @ y",
			ErrUnrecognizedChar,
			nil,
		},
	}

	for _, c := range cases {
		l := NewLexer(strings.NewReader(c.data))

		toks, err := l.RunBlocking()
		if c.fail != nil {
			assert.ErrorIs(t, err, c.fail)
		} else {
			assert.NoError(t, err)
		}

		assert.Equal(t, c.expect, toks)
	}
}

func TestLexerSkipsBadInput(t *testing.T) {
	l := NewLexer(strings.NewReader("@ x 1..2 y"))

	_, err := l.Next()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "@", lexErr.Text)

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", tok.Value)

	_, err = l.Next()
	assert.ErrorIs(t, err, ErrMalformedNumber)

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, "y", tok.Value)

	for i := 0; i < 2; i++ {
		tok, err = l.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Typ)
	}
}

func TestLexerReaderError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLexer(iotest.ErrReader(boom))

	_, err := l.Next()
	assert.ErrorIs(t, err, boom)

	var lexErr *LexError
	assert.False(t, errors.As(err, &lexErr))
}

func TestTokenStream(t *testing.T) {
	s := NewTokenStream(NewLexer(strings.NewReader("a b")))

	first, err := s.Peek()
	require.NoError(t, err)
	again, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, first, tok)
	assert.Equal(t, "a", tok.Value)

	tok, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok.Value)

	tok, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, tok.Typ)
}

func TestTokenStreamPeekError(t *testing.T) {
	s := NewTokenStream(NewLexer(strings.NewReader("@ a")))

	_, err := s.Peek()
	assert.ErrorIs(t, err, ErrUnrecognizedChar)

	tok, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Value)
}

func TestLexerRandomTokens(t *testing.T) {
	l := NewLexer(strings.NewReader(test.GetRandomTokens(2000)))

	toks, err := l.RunBlocking()
	require.NoError(t, err)

	seen := make(map[TokenType]bool)
	for _, tok := range toks {
		seen[tok.Typ] = true
	}

	for _, typ := range []TokenType{TokenDef, TokenExtern, TokenIdentifier, TokenNumber, TokenSemicolon, TokenComma, TokenLess} {
		assert.True(t, seen[typ], "missing %s", typ)
	}
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		l := NewLexer(strings.NewReader(data))

		var err error
		b.StartTimer()

		benchResult, err = l.RunBlocking()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}
