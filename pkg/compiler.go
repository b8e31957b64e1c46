package kaleido

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type UnitKind int

const (
	UnitDefinition UnitKind = iota
	UnitExtern
	UnitTopLevel
)

func (k UnitKind) String() string {
	switch k {
	case UnitDefinition:
		return "definition"
	case UnitExtern:
		return "extern"
	default:
		return "top-level expression"
	}
}

// Unit is one successfully parsed top-level construct. Exactly one of
// Function and Extern is set.
type Unit struct {
	Kind     UnitKind
	Function *Function
	Extern   *Prototype
}

func (u Unit) String() string {
	if u.Kind == UnitExtern {
		return "(extern " + Dump(u.Extern) + ")"
	}

	return Dump(u.Function)
}

type UnitError struct {
	Index int
	Err   error
}

func (e UnitError) Error() string {
	return e.Err.Error()
}

func (e UnitError) Unwrap() error {
	return e.Err
}

type Program struct {
	Units  []Unit
	Errors []UnitError
	IR     *LLVMIRBuilder
}

type Compiler struct {
	cfg    *Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func NewCompiler(cfg *Config, logger *slog.Logger, out, errOut io.Writer) *Compiler {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Compiler{
		cfg:    cfg,
		logger: logger,
		out:    out,
		errOut: errOut,
	}
}

func (c *Compiler) Compile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	return c.CompileFromReader(f)
}

// CompileFromReader parses units until EOF. Unit errors are collected in the
// returned Program; only a failing reader aborts the run.
func (c *Compiler) CompileFromReader(reader io.Reader) (*Program, error) {
	p := NewParser(NewLexer(reader), WithAnonPrefix(c.cfg.AnonPrefix))
	prog := &Program{}
	if c.cfg.Emit == EmitIR {
		prog.IR = NewLLVMIRBuilder()
	}

	index := 0
	for {
		tok, err := p.Peek()
		if err != nil {
			index++
			if fatal := c.fail(p, prog, index-1, err); fatal != nil {
				return prog, fatal
			}

			continue
		}

		var unit Unit
		switch tok.Typ {
		case TokenEOF:
			return prog, c.emit(prog)
		case TokenSemicolon:
			p.Next() // Top-level separator
			continue
		case TokenDef:
			unit.Kind = UnitDefinition
			unit.Function, err = p.Definition()
		case TokenExtern:
			unit.Kind = UnitExtern
			unit.Extern, err = p.Extern()
		default:
			unit.Kind = UnitTopLevel
			unit.Function, err = p.TopLevel()
		}

		index++

		if err != nil {
			if fatal := c.fail(p, prog, index-1, err); fatal != nil {
				return prog, fatal
			}

			continue
		}

		if err := c.accept(prog, unit); err != nil {
			c.report(prog, index-1, err)
		}
	}
}

func (c *Compiler) accept(prog *Program, unit Unit) error {
	switch unit.Kind {
	case UnitDefinition:
		fmt.Fprintln(c.errOut, "Parsed a function definition.")
	case UnitExtern:
		fmt.Fprintln(c.errOut, "Parsed an extern.")
	case UnitTopLevel:
		fmt.Fprintln(c.errOut, "Parsed a top-level expr.")
	}

	c.logger.Debug("parsed unit", "kind", unit.Kind.String(), "ast", unit.String())
	prog.Units = append(prog.Units, unit)

	if prog.IR == nil {
		return nil
	}

	var err error
	if unit.Kind == UnitExtern {
		_, err = prog.IR.Extern(unit.Extern)
	} else {
		_, err = prog.IR.Function(unit.Function)
	}

	return err
}

func (c *Compiler) report(prog *Program, index int, err error) {
	fmt.Fprintf(c.errOut, "Error: %s\n", err)
	c.logger.Warn("unit failed", "index", index, "error", err)
	prog.Errors = append(prog.Errors, UnitError{Index: index, Err: err})
}

// fail records a unit error and resynchronizes the stream. Errors that are
// neither lexical nor syntactic come from the reader and are returned.
func (c *Compiler) fail(p *Parser, prog *Program, index int, err error) error {
	var lexErr *LexError
	switch {
	case errors.As(err, &lexErr):
		// The lexer already skipped the bad input
		c.report(prog, index, err)
		return nil
	case errors.Is(err, ErrUnexpectedToken), errors.Is(err, ErrUndefinedOperator):
		c.report(prog, index, err)

		if _, err := p.Next(); err != nil {
			var lexErr *LexError
			if errors.As(err, &lexErr) {
				return nil
			}

			return err
		}

		return nil
	default:
		return err
	}
}

func (c *Compiler) emit(prog *Program) error {
	switch c.cfg.Emit {
	case EmitAST:
		for _, unit := range prog.Units {
			if _, err := fmt.Fprintln(c.out, unit.String()); err != nil {
				return err
			}
		}
	case EmitIR:
		if _, err := fmt.Fprint(c.out, prog.IR.String()); err != nil {
			return err
		}
	}

	return nil
}
