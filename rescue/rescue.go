package rescue

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Permute applies the Rescue permutation to state in place. The state length
// must equal the parameter set's state width.
func Permute(params *Parameters, state []fr.Element) {
	if len(state) != params.stateWidth {
		panic("rescue: state length does not match the parameter set width")
	}

	rc := params.RoundConstants(0)
	for i := range state {
		state[i].Add(&state[i], &rc[i])
	}

	scratch := make([]fr.Element, params.stateWidth)
	for round := 0; round < 2*params.numRounds; round++ {
		sbox := params.sbox0
		if round&1 == 1 {
			sbox = params.sbox1
		}
		for i := range state {
			sbox.Transform(&state[i])
		}

		rc := params.RoundConstants(round + 1)
		for i := range scratch {
			row := params.MDSRow(i)
			acc := rc[i]
			var tmp fr.Element
			for k := range state {
				tmp.Mul(&row[k], &state[k])
				acc.Add(&acc, &tmp)
			}
			scratch[i] = acc
		}
		copy(state, scratch)
	}
}

type opMode uint8

const (
	modeAccumulating opMode = iota
	modeSqueezed
)

// StatefulRescue is the native sponge: it absorbs field elements into the
// rate portion of the state, running the permutation each time a full rate
// block is pending, and squeezes digest elements from the rate-sized prefix
// of the permuted state. It is the reference the circuit gadget must match
// value for value.
type StatefulRescue struct {
	params *Parameters
	state  []fr.Element
	mode   opMode
	// pending absorption values in accumulating mode, remaining output in
	// squeezed mode
	buf []fr.Element
}

// NewStateful returns a fresh sponge with zeroed state, ready to absorb.
func NewStateful(params *Parameters) *StatefulRescue {
	return &StatefulRescue{
		params: params,
		state:  make([]fr.Element, params.stateWidth),
		mode:   modeAccumulating,
		buf:    make([]fr.Element, 0, params.rate),
	}
}

func (h *StatefulRescue) absorbSingle(value fr.Element) {
	switch h.mode {
	case modeAccumulating:
		rate := h.params.rate
		if len(h.buf) < rate {
			h.buf = append(h.buf, value)
			return
		}
		for i := 0; i < rate; i++ {
			h.state[i].Add(&h.state[i], &h.buf[i])
		}
		Permute(h.params, h.state)
		h.buf = append(h.buf[:0], value)
	case modeSqueezed:
		// unread output is dropped
		h.mode = modeAccumulating
		h.buf = append(h.buf[:0], value)
	default:
		panic("rescue: invalid sponge mode")
	}
}

// Absorb feeds input into the sponge, padding it with the multiplicative
// identity up to a multiple of the rate. It may be called repeatedly.
func (h *StatefulRescue) Absorb(input []fr.Element) {
	rate := h.params.rate
	blocks := len(input) / rate
	if len(input)%rate != 0 {
		blocks++
	}

	one := fr.One()
	padded := make([]fr.Element, len(input), blocks*rate)
	copy(padded, input)
	for len(padded) < blocks*rate {
		padded = append(padded, one)
	}

	for _, v := range padded {
		h.absorbSingle(v)
	}
}

// SqueezeSingle returns the next digest element. The pending absorption
// buffer must hold a full rate block (Absorb pads to that); squeezing a
// depleted output buffer is a usage error.
func (h *StatefulRescue) SqueezeSingle() fr.Element {
	switch h.mode {
	case modeAccumulating:
		rate := h.params.rate
		if len(h.buf) != rate {
			panic("rescue: sponge must hold a full rate block before squeezing")
		}
		for i := 0; i < rate; i++ {
			h.state[i].Add(&h.state[i], &h.buf[i])
		}
		Permute(h.params, h.state)

		out := h.state[0]
		h.buf = append(h.buf[:0], h.state[1:rate]...)
		h.mode = modeSqueezed
		return out
	case modeSqueezed:
		if len(h.buf) == 0 {
			panic("rescue: squeezed state is depleted")
		}
		out := h.buf[0]
		h.buf = h.buf[1:]
		return out
	default:
		panic("rescue: invalid sponge mode")
	}
}

// Hash absorbs input and returns the first digest element.
func Hash(params *Parameters, input []fr.Element) fr.Element {
	h := NewStateful(params)
	h.Absorb(input)
	return h.SqueezeSingle()
}
