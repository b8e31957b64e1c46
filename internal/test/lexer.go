package test

import (
	"math/rand"
	"strings"
)

var validTokens = []string{
	"def", "extern", "foo", "bar", "x", "y",
	"(", ")", ",", ";", "<", "+", "-", "*",
	"1", "2.5", "314.159", "# comment\n", "\n",
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validTokens[rand.Intn(len(validTokens))])
	}

	return strings.Join(toks, sep)
}

var operators = []string{"<", "+", "-", "*"}

// GetRandomExpression returns a well formed expression with the given number
// of binary operators, e.g. "x * (2 + f(y))".
func GetRandomExpression(ops int) string {
	var str strings.Builder
	str.WriteString(operand())

	for i := 0; i < ops; i++ {
		str.WriteString(" " + operators[rand.Intn(len(operators))] + " ")
		str.WriteString(operand())
	}

	return str.String()
}

func operand() string {
	switch rand.Intn(4) {
	case 0:
		return "x"
	case 1:
		return "2.5"
	case 2:
		return "(y - 1)"
	default:
		return "f(x, 3)"
	}
}
