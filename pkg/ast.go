package kaleido

import (
	"strconv"
	"strings"
)

type BinaryOp string

const (
	BinaryLess           BinaryOp = "<"
	BinarySubtraction    BinaryOp = "-"
	BinaryAddition       BinaryOp = "+"
	BinaryMultiplication BinaryOp = "*"
)

// Expr is implemented only by the expression nodes in this file.
type Expr interface {
	expr()
}

type NumberExpr struct {
	Value float64
}

type VariableExpr struct {
	Name string
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*NumberExpr) expr()   {}
func (*VariableExpr) expr() {}
func (*BinaryExpr) expr()   {}
func (*CallExpr) expr()     {}

type Prototype struct {
	Name   string
	Params []string
}

type Function struct {
	Proto *Prototype
	Body  Expr
}

// Dump renders a node as an S-expression, e.g. (+ a (* b c)).
func Dump(node interface{}) string {
	var str strings.Builder
	dump(&str, node)

	return str.String()
}

func dump(str *strings.Builder, node interface{}) {
	switch n := node.(type) {
	case *NumberExpr:
		str.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *VariableExpr:
		str.WriteString(n.Name)
	case *BinaryExpr:
		str.WriteString("(" + string(n.Operation) + " ")
		dump(str, n.Op1)
		str.WriteString(" ")
		dump(str, n.Op2)
		str.WriteString(")")
	case *CallExpr:
		str.WriteString("(call " + n.Callee)
		for _, arg := range n.Args {
			str.WriteString(" ")
			dump(str, arg)
		}
		str.WriteString(")")
	case *Prototype:
		str.WriteString("(" + n.Name)
		for _, param := range n.Params {
			str.WriteString(" " + param)
		}
		str.WriteString(")")
	case *Function:
		str.WriteString("(def ")
		dump(str, n.Proto)
		str.WriteString(" ")
		dump(str, n.Body)
		str.WriteString(")")
	default:
		str.WriteString("<nil>")
	}
}
