package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// AllocatedNum is a wire together with its witness value, when one exists.
type AllocatedNum struct {
	variable Variable
	value    *fr.Element
}

// AllocNum allocates a new wire whose witness is supplied by compute.
func AllocNum(cs ConstraintSystem, compute WitnessFunc) (AllocatedNum, error) {
	v, val, err := cs.AllocateVariable(compute)
	if err != nil {
		return AllocatedNum{}, err
	}
	return AllocatedNum{variable: v, value: val}, nil
}

// Variable returns the wire backing n.
func (n AllocatedNum) Variable() Variable {
	return n.variable
}

// Value returns the witness value of n, or ErrAssignmentMissing when the
// circuit is being built without assignments.
func (n AllocatedNum) Value() (fr.Element, error) {
	if n.value == nil {
		return fr.Element{}, ErrAssignmentMissing
	}
	return *n.value, nil
}

// Num is a tagged numeric value: either a compile-time constant field
// element or a reference to an allocated wire. Gadget operations dispatch on
// the tag; constant branches evaluate directly while variable branches emit
// constraints.
type Num struct {
	constant *fr.Element
	variable AllocatedNum
}

// ConstantNum wraps a compile-time constant.
func ConstantNum(c fr.Element) Num {
	return Num{constant: &c}
}

// VariableNum wraps an allocated wire.
func VariableNum(v AllocatedNum) Num {
	return Num{variable: v}
}

// IsConstant reports whether n carries a compile-time constant.
func (n Num) IsConstant() bool {
	return n.constant != nil
}

// Constant returns the constant value. Panics if n is a variable.
func (n Num) Constant() fr.Element {
	if n.constant == nil {
		panic("plonk: Constant called on a variable Num")
	}
	return *n.constant
}

// Allocated returns the underlying allocated wire. Panics if n is a constant.
func (n Num) Allocated() AllocatedNum {
	if n.constant != nil {
		panic("plonk: Allocated called on a constant Num")
	}
	return n.variable
}

// Value returns the concrete value of n regardless of tag.
func (n Num) Value() (fr.Element, error) {
	if n.constant != nil {
		return *n.constant, nil
	}
	return n.variable.Value()
}
