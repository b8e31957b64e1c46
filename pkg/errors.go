package kaleido

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedNumber   = errors.New("malformed number")
	ErrUnrecognizedChar  = errors.New("unrecognized character")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUndefinedOperator = errors.New("undefined operator")

	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrArity           = errors.New("incorrect number of arguments")
	ErrRedefinition    = errors.New("function cannot be redefined")
	ErrBadExpr         = errors.New("unsupported expression")
	ErrDuplicateParam  = errors.New("duplicate parameter")
)

// LexError reports input the lexer could not turn into a token. The
// offending text has already been consumed.
type LexError struct {
	Loc  Location
	Text string
	Err  error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s %s: '%s'", e.Loc, e.Err, e.Text)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

type UnexpectedTokenError struct {
	Expected string
	Got      Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s unexpected token %s, expecting %s", e.Got.Loc, e.Got, e.Expected)
}

func (e *UnexpectedTokenError) Is(target error) bool {
	return target == ErrUnexpectedToken
}

type UndefinedOperatorError struct {
	Op BinaryOp
}

func (e *UndefinedOperatorError) Error() string {
	return fmt.Sprintf("undefined operator '%s'", e.Op)
}

func (e *UndefinedOperatorError) Is(target error) bool {
	return target == ErrUndefinedOperator
}

// CodegenError ties a code generation failure to the name it concerns.
type CodegenError struct {
	Name string
	Err  error
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Name)
}

func (e *CodegenError) Unwrap() error {
	return e.Err
}
