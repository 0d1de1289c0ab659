// Package gadget arithmetizes the Rescue sponge hash for a PLONK-style
// constraint system: direction-restricted S-box gadgets, the round-function
// gadget over deferred linear combinations, and the absorb/squeeze sponge
// state machine. The produced circuit matches the native hash in the rescue
// package value for value.
package gadget

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkish/rescue/plonk"
	"github.com/plonkish/rescue/rescue"
)

// SBox constrains one nonlinear layer element. Each implementation is valid
// in exactly one direction, reported by AppliesForward; invoking the other
// direction is a programming error and panics. The forceNoCustomGate flag
// disables the specialized-gate fast path, for which no generic replacement
// exists in this revision.
type SBox interface {
	AppliesForward() bool
	ApplyConstraints(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error)
	ApplyConstraintsInReverse(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error)
}

func customGateAvailable(cs plonk.ConstraintSystem, forceNoCustomGate bool) bool {
	// the degree-5 gate spans four wires on one row
	return !forceNoCustomGate && cs.HasCustomGates() && cs.StateWidth() >= 4
}

// QuinticSBox constrains el -> el⁵. Forward only.
type QuinticSBox struct{}

func (QuinticSBox) AppliesForward() bool { return true }

func (QuinticSBox) ApplyConstraints(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error) {
	if customGateAvailable(cs, forceNoCustomGate) {
		return quinticViaCustomGate(cs, el)
	}
	panic("gadget: no generic constraint path exists for the quintic s-box; the degree-5 custom gate is required")
}

func (QuinticSBox) ApplyConstraintsInReverse(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error) {
	panic("gadget: the fifth power can only be applied in the forward direction")
}

func quinticViaCustomGate(cs plonk.ConstraintSystem, el plonk.Num) (plonk.Num, error) {
	if el.IsConstant() {
		c := el.Constant()
		var r fr.Element
		r.Square(&c)
		r.Square(&r)
		r.Mul(&r, &c)
		return plonk.ConstantNum(r), nil
	}

	out, err := plonk.FifthPower(cs, el.Allocated(), nil)
	if err != nil {
		return plonk.Num{}, err
	}
	return plonk.VariableNum(out), nil
}

// PowerSBox constrains el -> el^Power where Power is the inverse of 5 modulo
// the group order, i.e. it undoes a fifth power. Reverse only: the output is
// allocated by direct exponentiation and proven by running it through the
// forward degree-5 gate pinned to the original input.
type PowerSBox struct {
	Power big.Int
}

func (s PowerSBox) AppliesForward() bool { return false }

func (s PowerSBox) ApplyConstraints(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error) {
	panic("gadget: the inverse fifth power can only be applied in the backward direction")
}

func (s PowerSBox) ApplyConstraintsInReverse(cs plonk.ConstraintSystem, el plonk.Num, forceNoCustomGate bool) (plonk.Num, error) {
	if customGateAvailable(cs, forceNoCustomGate) {
		return s.powerViaCustomGate(cs, el)
	}
	panic("gadget: no generic constraint path exists for the inverse-power s-box; the degree-5 custom gate is required")
}

func (s PowerSBox) powerViaCustomGate(cs plonk.ConstraintSystem, el plonk.Num) (plonk.Num, error) {
	if el.IsConstant() {
		c := el.Constant()
		var r fr.Element
		r.Exp(c, &s.Power)
		return plonk.ConstantNum(r), nil
	}

	in := el.Allocated()
	out, err := plonk.AllocNum(cs, func() (fr.Element, error) {
		base, err := in.Value()
		if err != nil {
			return fr.Element{}, err
		}
		var r fr.Element
		r.Exp(base, &s.Power)
		return r, nil
	})
	if err != nil {
		return plonk.Num{}, err
	}

	// prove out⁵ == in with the forward gate, output pinned to the input
	if _, err := plonk.FifthPower(cs, out, &in); err != nil {
		return plonk.Num{}, err
	}

	return plonk.VariableNum(out), nil
}

// forCircuit maps a parameter set's native S-box onto its circuit
// counterpart.
func forCircuit(s rescue.SBox) SBox {
	switch b := s.(type) {
	case rescue.QuinticSBox:
		return QuinticSBox{}
	case *rescue.PowerSBox:
		return PowerSBox{Power: b.Power}
	default:
		panic("gadget: unknown s-box kind")
	}
}
