package kaleido

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDump(t *testing.T) {
	cases := []struct {
		node   interface{}
		expect string
	}{
		{number(2.5), "2.5"},
		{variable("x"), "x"},
		{binary(BinaryLess, variable("a"), number(1)), "(< a 1)"},
		{&CallExpr{Callee: "f", Args: []Expr{}}, "(call f)"},
		{&CallExpr{Callee: "f", Args: []Expr{number(1), variable("y")}}, "(call f 1 y)"},
		{&Prototype{Name: "sin", Params: []string{"x"}}, "(sin x)"},
		{
			&Function{
				Proto: &Prototype{Name: "f", Params: []string{"x", "y"}},
				Body:  binary(BinaryAddition, variable("x"), binary(BinaryMultiplication, variable("y"), number(2))),
			},
			"(def (f x y) (+ x (* y 2)))",
		},
		{nil, "<nil>"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, Dump(c.node))
	}
}
