package rescue

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
)

// NewParametersBN254 instantiates a Rescue parameter set over the bn254
// scalar field. Round constants are expanded deterministically from a domain
// tag with blake2b; the diffusion matrix is a Cauchy matrix, hence
// invertible. The even-round S-box is the inverse power map, the odd-round
// S-box the quintic map.
func NewParametersBN254(rate, capacity, numRounds int) *Parameters {
	if rate < 1 || capacity < 1 || numRounds < 1 {
		panic("rescue: rate, capacity and numRounds must be positive")
	}
	width := rate + capacity

	p := &Parameters{
		rate:       rate,
		stateWidth: width,
		numRounds:  numRounds,
		sbox0:      &PowerSBox{Power: *inverseFifthExponent()},
		sbox1:      QuinticSBox{},
	}

	tag := fmt.Sprintf("Rescue-BN254/r%d/c%d/n%d", rate, capacity, numRounds)
	counter := uint64(0)
	next := func() fr.Element {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], counter)
		counter++
		sum := blake2b.Sum256(append([]byte(tag), buf[:]...))
		var e fr.Element
		e.SetBytes(sum[:])
		return e
	}

	p.roundConstants = make([][]fr.Element, 2*numRounds+1)
	for r := range p.roundConstants {
		p.roundConstants[r] = make([]fr.Element, width)
		for i := range p.roundConstants[r] {
			p.roundConstants[r][i] = next()
		}
	}

	// Cauchy matrix 1/(x_i + y_j) with x_i = i and y_j = width + j: the x_i
	// are pairwise distinct, the y_j are pairwise distinct and every sum is
	// nonzero, so the matrix is invertible.
	p.mds = make([][]fr.Element, width)
	for i := range p.mds {
		p.mds[i] = make([]fr.Element, width)
		for j := range p.mds[i] {
			var e fr.Element
			e.SetUint64(uint64(i + width + j))
			p.mds[i][j].Inverse(&e)
		}
	}

	return p
}

// GetDefaultParameters returns the parameter set used throughout the tests:
// rate 2, capacity 2, 8 half-rounds.
func GetDefaultParameters() *Parameters {
	return NewParametersBN254(2, 2, 8)
}

// inverseFifthExponent computes 5⁻¹ mod (p-1), the exponent undoing x⁵ over
// the multiplicative group of the field.
func inverseFifthExponent() *big.Int {
	groupOrder := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	inv := new(big.Int).ModInverse(big.NewInt(5), groupOrder)
	if inv == nil {
		panic("rescue: 5 is not invertible modulo the group order")
	}
	return inv
}
