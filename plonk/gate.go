package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FifthPower raises el to the fifth power using the specialized degree-5
// gate: the square and fourth-power intermediates are allocated and one gate
// row binds (el, el², el⁴, el⁵). When target is nil the output wire is
// allocated with witness el⁵; otherwise the gate's output is pinned to
// target, which proves target == el⁵ without a further allocation. The
// pinned form is what lets one primitive serve both S-box directions.
//
// Callers are responsible for checking cs.HasCustomGates and a state width
// of at least 4 before invoking the gate.
func FifthPower(cs ConstraintSystem, el AllocatedNum, target *AllocatedNum) (AllocatedNum, error) {
	squared, err := AllocNum(cs, func() (fr.Element, error) {
		v, err := el.Value()
		if err != nil {
			return fr.Element{}, err
		}
		var r fr.Element
		r.Square(&v)
		return r, nil
	})
	if err != nil {
		return AllocatedNum{}, err
	}

	quad, err := AllocNum(cs, func() (fr.Element, error) {
		v, err := squared.Value()
		if err != nil {
			return fr.Element{}, err
		}
		var r fr.Element
		r.Square(&v)
		return r, nil
	})
	if err != nil {
		return AllocatedNum{}, err
	}

	var out AllocatedNum
	if target != nil {
		out = *target
	} else {
		out, err = AllocNum(cs, func() (fr.Element, error) {
			base, err := el.Value()
			if err != nil {
				return fr.Element{}, err
			}
			q, err := quad.Value()
			if err != nil {
				return fr.Element{}, err
			}
			var r fr.Element
			r.Mul(&q, &base)
			return r, nil
		})
		if err != nil {
			return AllocatedNum{}, err
		}
	}

	if err := cs.EnforceFifthPowerGate(el.Variable(), squared.Variable(), quad.Variable(), out.Variable()); err != nil {
		return AllocatedNum{}, err
	}

	return out, nil
}
