// Package rescue implements the Rescue algebraic sponge hash natively over
// the bn254 scalar field. It serves as the value-for-value reference for the
// circuit gadget in the gadget package, and supplies the parameter sets both
// sides consume.
package rescue

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// SBox is the nonlinear layer of one permutation round, applied element-wise
// to the state.
type SBox interface {
	// Transform applies the power map to x in place.
	Transform(x *fr.Element)
}

// QuinticSBox is the forward power map x -> x⁵.
type QuinticSBox struct{}

func (QuinticSBox) Transform(x *fr.Element) {
	var t fr.Element
	t.Square(x)
	t.Square(&t)
	x.Mul(&t, x)
}

// PowerSBox raises x to a stored exponent, here the multiplicative inverse
// of 5 modulo the group order, so that it undoes the quintic map.
type PowerSBox struct {
	Power big.Int
}

func (s *PowerSBox) Transform(x *fr.Element) {
	x.Exp(*x, &s.Power)
}

// Parameters bundles everything the permutation and the sponge need: rate,
// state width, half-round count, the round-constant table, the diffusion
// (MDS) matrix and the two S-boxes bound to even and odd rounds. A parameter
// set is immutable once constructed and safe to share between the native
// hash and the circuit gadget.
type Parameters struct {
	rate       int
	stateWidth int
	numRounds  int

	// one vector per round plus the initial injection, each stateWidth long
	roundConstants [][]fr.Element
	mds            [][]fr.Element

	sbox0 SBox
	sbox1 SBox
}

// Rate returns the number of state slots exposed to absorption and squeezing.
func (p *Parameters) Rate() int { return p.rate }

// StateWidth returns rate + capacity.
func (p *Parameters) StateWidth() int { return p.stateWidth }

// NumRounds returns the half-round count; the permutation runs twice as many
// rounds, alternating the two S-boxes.
func (p *Parameters) NumRounds() int { return p.numRounds }

// RoundConstants returns the constant vector injected before round `round`
// (index 0 is the initial injection).
func (p *Parameters) RoundConstants(round int) []fr.Element {
	return p.roundConstants[round]
}

// MDSRow returns row i of the diffusion matrix.
func (p *Parameters) MDSRow(i int) []fr.Element {
	return p.mds[i]
}

// SBox0 returns the S-box applied on even rounds.
func (p *Parameters) SBox0() SBox { return p.sbox0 }

// SBox1 returns the S-box applied on odd rounds.
func (p *Parameters) SBox1() SBox { return p.sbox1 }
