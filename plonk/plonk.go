// Package plonk defines the capability surface a PLONK-style constraint
// system must offer to the rescue gadget, together with the numeric types
// (allocated wires, tagged values, deferred linear combinations) the gadget
// manipulates, and an in-memory Assembly implementation used to build and
// check circuits without an outer proving stack.
package plonk

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrAssignmentMissing is returned when a witness value is requested but no
// assignment exists, typically during a shape-only (setup) construction pass.
var ErrAssignmentMissing = errors.New("plonk: variable assignment is missing")

// Variable is an opaque reference to a wire in the constraint system.
type Variable struct {
	index int
}

// WireID returns the wire index backing v.
func (v Variable) WireID() int {
	return v.index
}

// Term is a wire scaled by a field coefficient.
type Term struct {
	Variable Variable
	Coeff    fr.Element
}

// WitnessFunc computes the witness value for a freshly allocated wire. It
// may fail with ErrAssignmentMissing when no assignment is available.
type WitnessFunc func() (fr.Element, error)

// ConstraintSystem is the capability interface consumed by circuit gadgets.
//
// Implementations decide whether witness closures run: a witnessed system
// invokes them and keeps the values, a shape-only system skips them and
// records gates only. Capability flags (StateWidth, HasCustomGates) are
// static properties of the circuit configuration; gadgets read them once per
// dispatch decision.
type ConstraintSystem interface {
	// AllocateVariable creates a new wire. In a witnessed system the
	// closure runs and its value is returned alongside the wire; a closure
	// failure aborts the allocation. In a shape-only system the closure is
	// skipped and the returned value is nil.
	AllocateVariable(compute WitnessFunc) (Variable, *fr.Element, error)

	// EnforceLinear registers the gate Σ term.Coeff·term.Variable + constant == 0.
	EnforceLinear(terms []Term, constant fr.Element) error

	// EnforceFifthPowerGate registers one specialized degree-5 gate row
	// binding four wires to x2 == x², x4 == x2², x5 == x4·x. Callers must
	// check HasCustomGates and StateWidth >= 4 beforehand.
	EnforceFifthPowerGate(x, x2, x4, x5 Variable) error

	// StateWidth reports the number of wire columns per gate row.
	StateWidth() int

	// HasCustomGates reports whether specialized gates may be registered.
	HasCustomGates() bool
}
