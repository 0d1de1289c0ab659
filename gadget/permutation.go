package gadget

import (
	"github.com/plonkish/rescue/plonk"
	"github.com/plonkish/rescue/rescue"
)

// Permute constrains one application of the Rescue permutation and returns
// the new state. Each input slot is forced to a single wire (at most one
// constraint per slot), run through the round's S-box, and re-formed as a
// deferred combination of the diffusion-matrix row and the next round
// constant, so the mixing step itself costs no constraints.
//
// The round order and the even/odd S-box assignment come from the parameter
// set and match the native rescue.Permute value for value.
func Permute(cs plonk.ConstraintSystem, state []plonk.LinearCombination, params *rescue.Parameters) ([]plonk.LinearCombination, error) {
	width := params.StateWidth()
	if len(state) != width {
		panic("gadget: state length does not match the parameter set width")
	}

	cur := make([]plonk.LinearCombination, width)
	for i := range state {
		cur[i] = state[i].Clone()
	}

	rc := params.RoundConstants(0)
	for i := range cur {
		cur[i].AddConstant(rc[i])
	}

	sbox0 := forCircuit(params.SBox0())
	sbox1 := forCircuit(params.SBox1())

	for round := 0; round < 2*params.NumRounds(); round++ {
		sbox := sbox0
		if round&1 == 1 {
			sbox = sbox1
		}

		afterNonlin := make([]plonk.Num, width)
		for i := range cur {
			input, err := cur[i].IntoNum(cs)
			if err != nil {
				return nil, err
			}
			var out plonk.Num
			if sbox.AppliesForward() {
				out, err = sbox.ApplyConstraints(cs, input, false)
			} else {
				out, err = sbox.ApplyConstraintsInReverse(cs, input, false)
			}
			if err != nil {
				return nil, err
			}
			afterNonlin[i] = out
		}

		rc := params.RoundConstants(round + 1)
		next := make([]plonk.LinearCombination, width)
		for i := 0; i < width; i++ {
			row := params.MDSRow(i)
			var lc plonk.LinearCombination
			for k := range afterNonlin {
				lc.AddTerm(afterNonlin[k], row[k])
			}
			lc.AddConstant(rc[i])
			next[i] = lc
		}
		cur = next
	}

	return cur, nil
}
