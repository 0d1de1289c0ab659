package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/plonkish/rescue/logger"
	"github.com/plonkish/rescue/plonk"
	"github.com/plonkish/rescue/rescue"
)

type spongeMode uint8

const (
	// pending absorption values, 0..=rate of them
	modeAccumulating spongeMode = iota
	// remaining squeeze output, 0..=rate-1 combinations
	modeSqueezed
)

// Sponge is the stateful Rescue hash gadget. It owns a state vector of
// deferred linear combinations (always state-width long) and is either
// accumulating input or holding squeezed output, never both. A fresh sponge
// has a zeroed state and an empty accumulation buffer; it stays usable for
// its entire lifetime, switching between the two modes as Absorb and
// SqueezeSingle are called.
type Sponge struct {
	params *rescue.Parameters
	state  []plonk.LinearCombination
	mode   spongeMode

	// pending is live in accumulating mode, output in squeezed mode
	pending []plonk.Num
	output  []plonk.LinearCombination
}

// NewSponge returns a sponge bound to params, ready to absorb.
func NewSponge(params *rescue.Parameters) *Sponge {
	log := logger.Logger()
	log.Debug().
		Int("rate", params.Rate()).
		Int("stateWidth", params.StateWidth()).
		Int("rounds", 2*params.NumRounds()).
		Msg("new rescue sponge gadget")

	return &Sponge{
		params:  params,
		state:   make([]plonk.LinearCombination, params.StateWidth()),
		mode:    modeAccumulating,
		pending: make([]plonk.Num, 0, params.Rate()),
	}
}

func (s *Sponge) absorbSingle(cs plonk.ConstraintSystem, value plonk.Num) error {
	switch s.mode {
	case modeAccumulating:
		rate := s.params.Rate()
		if len(s.pending) < rate {
			s.pending = append(s.pending, value)
			return nil
		}
		if err := s.foldAndPermute(cs); err != nil {
			return err
		}
		s.pending = append(s.pending[:0], value)
		return nil
	case modeSqueezed:
		// unread squeeze output is dropped
		s.output = nil
		s.mode = modeAccumulating
		s.pending = append(s.pending[:0], value)
		return nil
	default:
		panic("gadget: invalid sponge mode")
	}
}

// foldAndPermute adds the pending rate block into the state and runs the
// permutation gadget.
func (s *Sponge) foldAndPermute(cs plonk.ConstraintSystem) error {
	one := fr.One()
	for i := 0; i < s.params.Rate(); i++ {
		s.state[i].AddTerm(s.pending[i], one)
	}
	newState, err := Permute(cs, s.state, s.params)
	if err != nil {
		return err
	}
	s.state = newState
	return nil
}

// Absorb feeds input into the sponge, padding it with the multiplicative
// identity up to a multiple of the rate. It may be called repeatedly; a
// permutation runs each time a full rate block is displaced.
func (s *Sponge) Absorb(cs plonk.ConstraintSystem, input []plonk.AllocatedNum) error {
	rate := s.params.Rate()
	blocks := len(input) / rate
	if len(input)%rate != 0 {
		blocks++
	}

	one := fr.One()
	values := make([]plonk.Num, 0, blocks*rate)
	for _, el := range input {
		values = append(values, plonk.VariableNum(el))
	}
	for len(values) < blocks*rate {
		values = append(values, plonk.ConstantNum(one))
	}

	for _, v := range values {
		if err := s.absorbSingle(cs, v); err != nil {
			return err
		}
	}
	return nil
}

// SqueezeSingle returns the next digest element as a deferred linear
// combination; callers force it to a wire only when they need one. In
// accumulating mode the pending buffer must hold a full rate block (Absorb's
// padding guarantees that) and the permutation runs; in squeezed mode the
// buffered output is popped without re-running the permutation.
func (s *Sponge) SqueezeSingle(cs plonk.ConstraintSystem) (plonk.LinearCombination, error) {
	switch s.mode {
	case modeAccumulating:
		rate := s.params.Rate()
		if len(s.pending) != rate {
			panic("gadget: sponge must hold a full rate block before squeezing")
		}
		if err := s.foldAndPermute(cs); err != nil {
			return plonk.LinearCombination{}, err
		}

		out := s.state[0].Clone()
		buffered := make([]plonk.LinearCombination, 0, rate-1)
		for i := 1; i < rate; i++ {
			buffered = append(buffered, s.state[i].Clone())
		}
		s.pending = s.pending[:0]
		s.output = buffered
		s.mode = modeSqueezed
		return out, nil
	case modeSqueezed:
		if len(s.output) == 0 {
			panic("gadget: squeezed state is depleted")
		}
		out := s.output[0]
		s.output = s.output[1:]
		return out, nil
	default:
		panic("gadget: invalid sponge mode")
	}
}
