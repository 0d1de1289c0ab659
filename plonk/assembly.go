package plonk

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"

	"github.com/plonkish/rescue/logger"
)

// ErrCustomGatesDisabled is returned when a specialized gate is registered
// on an assembly built without custom-gate support.
var ErrCustomGatesDisabled = errors.New("plonk: assembly does not support custom gates")

type linearGate struct {
	terms    []Term
	constant fr.Element
}

type quinticGate struct {
	x, x2, x4, x5 Variable
}

// Assembly is an in-memory ConstraintSystem. It records every registered
// gate and, in witnessed mode, every wire assignment, so that a finished
// circuit can be checked for self-consistency with Satisfied. It has no
// proving backend; compilation to polynomials is an outer concern.
type Assembly struct {
	witnessed   bool
	stateWidth  int
	customGates bool

	nbWires  int
	values   []fr.Element
	assigned *bitset.BitSet

	linear  []linearGate
	quintic []quinticGate

	log zerolog.Logger
}

// Option configures an Assembly.
type Option func(*Assembly)

// WithStateWidth sets the number of wire columns per gate row.
func WithStateWidth(w int) Option {
	return func(a *Assembly) { a.stateWidth = w }
}

// WithoutCustomGates disables specialized gate registration.
func WithoutCustomGates() Option {
	return func(a *Assembly) { a.customGates = false }
}

// ShapeOnly builds the assembly without invoking witness closures; only the
// gate structure is recorded. Satisfied reports ErrAssignmentMissing on such
// an assembly.
func ShapeOnly() Option {
	return func(a *Assembly) { a.witnessed = false }
}

// NewAssembly returns a witnessed assembly with a state width of 4 and
// custom gates enabled.
func NewAssembly(opts ...Option) *Assembly {
	a := &Assembly{
		witnessed:   true,
		stateWidth:  4,
		customGates: true,
		assigned:    bitset.New(64),
		log:         logger.Logger().With().Str("component", "assembly").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AllocateVariable implements ConstraintSystem.
func (a *Assembly) AllocateVariable(compute WitnessFunc) (Variable, *fr.Element, error) {
	v := Variable{index: a.nbWires}
	if !a.witnessed {
		a.nbWires++
		return v, nil, nil
	}
	val, err := compute()
	if err != nil {
		return Variable{}, nil, fmt.Errorf("allocating wire %d: %w", v.index, err)
	}
	a.nbWires++
	a.values = append(a.values, val)
	a.assigned.Set(uint(v.index))
	return v, &val, nil
}

// EnforceLinear implements ConstraintSystem.
func (a *Assembly) EnforceLinear(terms []Term, constant fr.Element) error {
	g := linearGate{terms: make([]Term, len(terms)), constant: constant}
	copy(g.terms, terms)
	a.linear = append(a.linear, g)
	return nil
}

// EnforceFifthPowerGate implements ConstraintSystem.
func (a *Assembly) EnforceFifthPowerGate(x, x2, x4, x5 Variable) error {
	if !a.customGates {
		return ErrCustomGatesDisabled
	}
	if a.stateWidth < 4 {
		return fmt.Errorf("plonk: degree-5 gate needs a state width of 4, assembly has %d", a.stateWidth)
	}
	a.quintic = append(a.quintic, quinticGate{x: x, x2: x2, x4: x4, x5: x5})
	return nil
}

// StateWidth implements ConstraintSystem.
func (a *Assembly) StateWidth() int { return a.stateWidth }

// HasCustomGates implements ConstraintSystem.
func (a *Assembly) HasCustomGates() bool { return a.customGates }

// NbConstraints returns the number of registered gates.
func (a *Assembly) NbConstraints() int { return len(a.linear) + len(a.quintic) }

// NbWires returns the number of allocated wires.
func (a *Assembly) NbWires() int { return a.nbWires }

// WireValue returns the assignment of v.
func (a *Assembly) WireValue(v Variable) (fr.Element, error) {
	if !a.witnessed || !a.assigned.Test(uint(v.index)) {
		return fr.Element{}, ErrAssignmentMissing
	}
	return a.values[v.index], nil
}

// Satisfied checks every registered gate against the recorded assignments.
// It returns nil when the circuit is self-consistent, a descriptive error
// naming the first violated gate otherwise.
func (a *Assembly) Satisfied() error {
	if !a.witnessed {
		return fmt.Errorf("shape-only assembly: %w", ErrAssignmentMissing)
	}

	for i, g := range a.linear {
		sum := g.constant
		for _, t := range g.terms {
			v, err := a.WireValue(t.Variable)
			if err != nil {
				return fmt.Errorf("linear gate %d references wire %d: %w", i, t.Variable.index, err)
			}
			var tmp fr.Element
			tmp.Mul(&t.Coeff, &v)
			sum.Add(&sum, &tmp)
		}
		if !sum.IsZero() {
			return fmt.Errorf("linear gate %d is not satisfied: evaluates to %s", i, sum.String())
		}
	}

	for i, g := range a.quintic {
		x, err := a.WireValue(g.x)
		if err != nil {
			return fmt.Errorf("degree-5 gate %d: %w", i, err)
		}
		x2, err := a.WireValue(g.x2)
		if err != nil {
			return fmt.Errorf("degree-5 gate %d: %w", i, err)
		}
		x4, err := a.WireValue(g.x4)
		if err != nil {
			return fmt.Errorf("degree-5 gate %d: %w", i, err)
		}
		x5, err := a.WireValue(g.x5)
		if err != nil {
			return fmt.Errorf("degree-5 gate %d: %w", i, err)
		}

		var tmp fr.Element
		tmp.Square(&x)
		if !tmp.Equal(&x2) {
			return fmt.Errorf("degree-5 gate %d: square wire mismatch", i)
		}
		tmp.Square(&x2)
		if !tmp.Equal(&x4) {
			return fmt.Errorf("degree-5 gate %d: fourth-power wire mismatch", i)
		}
		tmp.Mul(&x4, &x)
		if !tmp.Equal(&x5) {
			return fmt.Errorf("degree-5 gate %d: fifth-power wire mismatch", i)
		}
	}

	a.log.Debug().
		Int("nbWires", a.nbWires).
		Int("nbLinear", len(a.linear)).
		Int("nbQuintic", len(a.quintic)).
		Msg("assembly satisfied")

	return nil
}
