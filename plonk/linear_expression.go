package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// LinearCombination is a deferred affine expression over wires: a constant
// term plus a sparse list of scaled wires. It is not materialized in the
// constraint system until IntoNum forces it down to a single wire, so purely
// affine phases (round-constant addition, diffusion mixing) cost no
// constraints.
//
// The witness value of the expression is tracked incrementally while terms
// are accumulated; it becomes unavailable as soon as a term with no
// assignment is added. The zero value is a valid empty combination.
type LinearCombination struct {
	terms    []Term
	constant fr.Element

	value   fr.Element
	unknown bool
}

// AddConstant adds c to the constant term.
func (lc *LinearCombination) AddConstant(c fr.Element) {
	lc.constant.Add(&lc.constant, &c)
	if !lc.unknown {
		lc.value.Add(&lc.value, &c)
	}
}

// AddTerm accumulates coeff·n into the combination. Constant values fold
// into the constant term; variables append a scaled term.
func (lc *LinearCombination) AddTerm(n Num, coeff fr.Element) {
	if n.IsConstant() {
		var tmp fr.Element
		c := n.Constant()
		tmp.Mul(&coeff, &c)
		lc.AddConstant(tmp)
		return
	}
	el := n.Allocated()
	lc.terms = append(lc.terms, Term{Variable: el.Variable(), Coeff: coeff})
	if lc.unknown {
		return
	}
	val, err := el.Value()
	if err != nil {
		lc.unknown = true
		return
	}
	var tmp fr.Element
	tmp.Mul(&coeff, &val)
	lc.value.Add(&lc.value, &tmp)
}

// Value returns the tracked witness value of the combination.
func (lc *LinearCombination) Value() (fr.Element, error) {
	if lc.unknown {
		return fr.Element{}, ErrAssignmentMissing
	}
	return lc.value, nil
}

// Clone returns a deep copy with its own term storage.
func (lc *LinearCombination) Clone() LinearCombination {
	out := *lc
	out.terms = make([]Term, len(lc.terms))
	copy(out.terms, lc.terms)
	return out
}

// IntoNum forces the combination down to a single wire. A term-free
// combination collapses to a constant without touching the constraint
// system; otherwise a fresh wire is allocated with the tracked value as
// witness and one linear gate ties it to the combination.
func (lc *LinearCombination) IntoNum(cs ConstraintSystem) (Num, error) {
	if len(lc.terms) == 0 {
		return ConstantNum(lc.constant), nil
	}

	out, err := AllocNum(cs, lc.Value)
	if err != nil {
		return Num{}, err
	}

	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)

	terms := make([]Term, 0, len(lc.terms)+1)
	terms = append(terms, lc.terms...)
	terms = append(terms, Term{Variable: out.Variable(), Coeff: minusOne})
	if err := cs.EnforceLinear(terms, lc.constant); err != nil {
		return Num{}, err
	}

	return VariableNum(out), nil
}
