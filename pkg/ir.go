package kaleido

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// LLVMIRBuilder lowers parsed units into a single LLVM module where every
// value is a double.
type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	return &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}
}

func (b *LLVMIRBuilder) Module() *ir.Module {
	return b.mod
}

func (b *LLVMIRBuilder) String() string {
	return b.mod.String()
}

func (b *LLVMIRBuilder) lookupFunc(name string) *ir.Func {
	for _, f := range b.mod.Funcs {
		if f.Name() == name {
			return f
		}
	}

	return nil
}

func (b *LLVMIRBuilder) removeFunc(target *ir.Func) {
	funcs := b.mod.Funcs[:0]
	for _, f := range b.mod.Funcs {
		if f != target {
			funcs = append(funcs, f)
		}
	}

	b.mod.Funcs = funcs
}

// Extern declares proto, or returns the existing function of the same name.
func (b *LLVMIRBuilder) Extern(proto *Prototype) (*ir.Func, error) {
	seen := make(map[string]bool, len(proto.Params))
	for _, name := range proto.Params {
		if seen[name] {
			return nil, &CodegenError{Name: name, Err: ErrDuplicateParam}
		}

		seen[name] = true
	}

	if f := b.lookupFunc(proto.Name); f != nil {
		if len(f.Params) != len(proto.Params) {
			return nil, &CodegenError{Name: proto.Name, Err: ErrArity}
		}

		return f, nil
	}

	var params []*ir.Param
	for _, name := range proto.Params {
		params = append(params, ir.NewParam(name, types.Double))
	}

	return b.mod.NewFunc(proto.Name, types.Double, params...), nil
}

func (b *LLVMIRBuilder) Function(fn *Function) (*ir.Func, error) {
	declared := b.lookupFunc(fn.Proto.Name) != nil

	f, err := b.Extern(fn.Proto)
	if err != nil {
		return nil, err
	}

	if len(f.Blocks) != 0 {
		return nil, &CodegenError{Name: fn.Proto.Name, Err: ErrRedefinition}
	}

	prevBlock := b.block
	prevVals := b.values
	b.block = f.NewBlock("entry")
	b.values = NewValueLookup()

	defer func() {
		b.block = prevBlock
		b.values = prevVals
	}()

	names := make([]string, len(f.Params))
	for i, param := range f.Params {
		// A definition may complete an extern declared with other names
		names[i] = param.Name()
		param.SetName(fn.Proto.Params[i])
		b.values.Set(fn.Proto.Params[i], param)
	}

	ret, err := b.expression(fn.Body)
	if err != nil {
		if !declared {
			b.removeFunc(f)
			return nil, err
		}

		// Fall back to the prior declaration
		f.Blocks = nil
		for i, param := range f.Params {
			param.SetName(names[i])
		}

		return nil, err
	}

	b.block.NewRet(ret)

	return f, nil
}

func (b *LLVMIRBuilder) expression(expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return constant.NewFloat(types.Double, e.Value), nil
	case *VariableExpr:
		v, ok := b.values.Get(e.Name)
		if !ok {
			return nil, &CodegenError{Name: e.Name, Err: ErrUnknownVariable}
		}

		return v, nil
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *CallExpr:
		return b.functionCall(e)
	default:
		return nil, &CodegenError{Name: Dump(expr), Err: ErrBadExpr}
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.expression(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.expression(expr.Op2)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewFAdd(v1, v2), nil
	case BinarySubtraction:
		return b.block.NewFSub(v1, v2), nil
	case BinaryMultiplication:
		return b.block.NewFMul(v1, v2), nil
	case BinaryLess:
		cmp := b.block.NewFCmp(enum.FPredULT, v1, v2)
		return b.block.NewUIToFP(cmp, types.Double), nil
	default:
		return nil, &UndefinedOperatorError{Op: expr.Operation}
	}
}

func (b *LLVMIRBuilder) functionCall(expr *CallExpr) (value.Value, error) {
	callee := b.lookupFunc(expr.Callee)
	if callee == nil {
		return nil, &CodegenError{Name: expr.Callee, Err: ErrUnknownFunction}
	}

	if len(callee.Params) != len(expr.Args) {
		return nil, &CodegenError{Name: expr.Callee, Err: ErrArity}
	}

	var args []value.Value
	for _, arg := range expr.Args {
		v, err := b.expression(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return b.block.NewCall(callee, args...), nil
}
