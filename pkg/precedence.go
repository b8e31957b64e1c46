package kaleido

// PrecedenceTable maps binary operators to their binding strength. Higher
// binds tighter.
type PrecedenceTable map[BinaryOp]int

func NewPrecedenceTable() PrecedenceTable {
	return PrecedenceTable{
		BinaryLess:           10,
		BinaryAddition:       20,
		BinarySubtraction:    20,
		BinaryMultiplication: 40,
	}
}

func (t PrecedenceTable) Precedence(op BinaryOp) (int, error) {
	prec, ok := t[op]
	if !ok {
		return 0, &UndefinedOperatorError{Op: op}
	}

	return prec, nil
}
