package kaleido

import (
	"strconv"
)

const DefaultAnonPrefix = "__anon_expr"

type ParserOption func(p *Parser)

func WithAnonPrefix(prefix string) ParserOption {
	return func(p *Parser) {
		p.anonPrefix = prefix
	}
}

func WithPrecedenceTable(table PrecedenceTable) ParserOption {
	return func(p *Parser) {
		p.table = table
	}
}

// Parser builds one syntactic unit per call. Recursion depth follows the
// nesting of the input, so pathologically deep expressions can exhaust the
// goroutine stack.
type Parser struct {
	tokens     *TokenStream
	table      PrecedenceTable
	anonPrefix string
	anonCount  int
}

func NewParser(src TokenSource, opts ...ParserOption) *Parser {
	p := &Parser{
		tokens:     NewTokenStream(src),
		table:      NewPrecedenceTable(),
		anonPrefix: DefaultAnonPrefix,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Parser) Peek() (Token, error) {
	return p.tokens.Peek()
}

func (p *Parser) Next() (Token, error) {
	return p.tokens.Next()
}

// Definition parses 'def' prototype expression.
func (p *Parser) Definition() (*Function, error) {
	if err := p.eat(TokenDef); err != nil {
		return nil, err
	}

	proto, err := p.prototype()
	if err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto, Body: body}, nil
}

// Extern parses 'extern' prototype.
func (p *Parser) Extern() (*Prototype, error) {
	if err := p.eat(TokenExtern); err != nil {
		return nil, err
	}

	return p.prototype()
}

// TopLevel parses a bare expression and wraps it in a nullary function with
// a name unique to this parser.
func (p *Parser) TopLevel() (*Function, error) {
	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	p.anonCount++

	return &Function{
		Proto: &Prototype{
			Name:   p.anonPrefix + strconv.Itoa(p.anonCount),
			Params: []string{},
		},
		Body: body,
	}, nil
}

// skip drops a token that an earlier Peek already buffered, so it cannot
// fail.
func (p *Parser) skip() {
	_, _ = p.tokens.Next()
}

// eat consumes the next token even when it is not the expected one.
func (p *Parser) eat(expected TokenType) error {
	tok, err := p.tokens.Next()
	if err != nil {
		return err
	}

	if tok.Typ != expected {
		return &UnexpectedTokenError{Expected: expected.String(), Got: tok}
	}

	return nil
}

func (p *Parser) ident() (string, error) {
	tok, err := p.tokens.Next()
	if err != nil {
		return "", err
	}

	if tok.Typ != TokenIdentifier {
		return "", &UnexpectedTokenError{Expected: "identifier", Got: tok}
	}

	return tok.Value, nil
}

func (p *Parser) prototype() (*Prototype, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	params, err := p.params()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return &Prototype{Name: name, Params: params}, nil
}

// params reads consecutive identifiers and leaves the first non-identifier
// in the stream.
func (p *Parser) params() ([]string, error) {
	params := []string{}
	for {
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Typ != TokenIdentifier {
			return params, nil
		}

		p.skip() // Already buffered
		params = append(params, tok.Value)
	}
}

func (p *Parser) expr() (Expr, error) {
	lhs, err := p.primary()
	if err != nil {
		return nil, err
	}

	return p.binaryRight(0, lhs)
}

func (p *Parser) primary() (Expr, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Typ {
	case TokenNumber:
		p.skip()
		return &NumberExpr{Value: tok.Num}, nil
	case TokenOpenParentheses:
		return p.parenthesisedExpr()
	case TokenIdentifier:
		return p.identifierExpr()
	default:
		return nil, &UnexpectedTokenError{Expected: "an expression", Got: tok}
	}
}

func (p *Parser) parenthesisedExpr() (Expr, error) {
	if err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) identifierExpr() (Expr, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	tok, err := p.tokens.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Typ != TokenOpenParentheses {
		return &VariableExpr{Name: name}, nil
	}

	p.skip() // Skip the opening parenthesis

	args, err := p.args()
	if err != nil {
		return nil, err
	}

	if err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return &CallExpr{Callee: name, Args: args}, nil
}

// args parses a comma separated list up to, but not including, the closing
// parenthesis.
func (p *Parser) args() ([]Expr, error) {
	args := []Expr{}

	tok, err := p.tokens.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Typ == TokenCloseParentheses {
		return args, nil
	}

	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Typ != TokenComma {
			return args, nil
		}

		p.skip() // Skip the comma
	}
}

// binaryOp classifies the next token without consuming it.
func (p *Parser) binaryOp() (BinaryOp, bool, error) {
	tok, err := p.tokens.Peek()
	if err != nil {
		return "", false, err
	}

	switch tok.Typ {
	case TokenLess:
		return BinaryLess, true, nil
	case TokenMinus:
		return BinarySubtraction, true, nil
	case TokenPlus:
		return BinaryAddition, true, nil
	case TokenStar:
		return BinaryMultiplication, true, nil
	default:
		return "", false, nil
	}
}

// binaryRight folds operators binding at least as tight as minPrec into lhs.
// Operators of equal precedence associate to the left.
func (p *Parser) binaryRight(minPrec int, lhs Expr) (Expr, error) {
	for {
		op, ok, err := p.binaryOp()
		if err != nil {
			return nil, err
		}

		if !ok {
			return lhs, nil
		}

		prec, err := p.table.Precedence(op)
		if err != nil {
			return nil, err
		}

		if prec < minPrec {
			return lhs, nil
		}

		p.skip() // Skip the operator

		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}

		next, ok, err := p.binaryOp()
		if err != nil {
			return nil, err
		}

		if ok {
			nextPrec, err := p.table.Precedence(next)
			if err != nil {
				return nil, err
			}

			if nextPrec > prec {
				rhs, err = p.binaryRight(prec+1, rhs)
				if err != nil {
					return nil, err
				}
			}
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}
