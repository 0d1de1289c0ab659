package plonk

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func constWitness(v uint64) WitnessFunc {
	return func() (fr.Element, error) {
		return fr.NewElement(v), nil
	}
}

func TestAllocNum(t *testing.T) {
	cs := NewAssembly()

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)
	val, err := a.Value()
	require.NoError(t, err)
	want := fr.NewElement(3)
	require.True(t, val.Equal(&want))
	require.Equal(t, 1, cs.NbWires())
}

func TestWitnessFailurePropagates(t *testing.T) {
	cs := NewAssembly()

	boom := errors.New("no assignment for this input")
	_, err := AllocNum(cs, func() (fr.Element, error) {
		return fr.Element{}, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestShapeOnlySkipsWitnessClosures(t *testing.T) {
	cs := NewAssembly(ShapeOnly())

	a, err := AllocNum(cs, func() (fr.Element, error) {
		t.Fatal("witness closure must not run in a shape-only pass")
		return fr.Element{}, nil
	})
	require.NoError(t, err)

	_, err = a.Value()
	require.ErrorIs(t, err, ErrAssignmentMissing)

	require.ErrorIs(t, cs.Satisfied(), ErrAssignmentMissing)
}

func TestLinearCombinationIntoNum(t *testing.T) {
	cs := NewAssembly()

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)

	var lc LinearCombination
	lc.AddTerm(VariableNum(a), fr.NewElement(2))
	lc.AddConstant(fr.NewElement(5))

	forced, err := lc.IntoNum(cs)
	require.NoError(t, err)
	require.False(t, forced.IsConstant())

	got, err := forced.Value()
	require.NoError(t, err)
	want := fr.NewElement(11)
	require.True(t, got.Equal(&want))

	require.Equal(t, 1, cs.NbConstraints())
	require.NoError(t, cs.Satisfied())
}

func TestConstantCombinationCostsNothing(t *testing.T) {
	cs := NewAssembly()

	var lc LinearCombination
	lc.AddConstant(fr.NewElement(7))
	lc.AddTerm(ConstantNum(fr.NewElement(4)), fr.NewElement(3))

	forced, err := lc.IntoNum(cs)
	require.NoError(t, err)
	require.True(t, forced.IsConstant())

	want := fr.NewElement(19)
	got := forced.Constant()
	require.True(t, got.Equal(&want))
	require.Zero(t, cs.NbConstraints())
	require.Zero(t, cs.NbWires())
}

func TestFifthPowerGate(t *testing.T) {
	cs := NewAssembly()

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)

	out, err := FifthPower(cs, a, nil)
	require.NoError(t, err)

	got, err := out.Value()
	require.NoError(t, err)
	want := fr.NewElement(243)
	require.True(t, got.Equal(&want))

	require.NoError(t, cs.Satisfied())
}

func TestFifthPowerGatePinnedTarget(t *testing.T) {
	cs := NewAssembly()

	root, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)
	target, err := AllocNum(cs, constWitness(243))
	require.NoError(t, err)

	out, err := FifthPower(cs, root, &target)
	require.NoError(t, err)
	require.Equal(t, target.Variable(), out.Variable())
	require.NoError(t, cs.Satisfied())
}

func TestSatisfiedRejectsBrokenWitness(t *testing.T) {
	cs := NewAssembly()

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)
	_, err = FifthPower(cs, a, nil)
	require.NoError(t, err)
	require.NoError(t, cs.Satisfied())

	// corrupt the output wire
	cs.values[cs.nbWires-1] = fr.NewElement(244)
	require.Error(t, cs.Satisfied())
}

func TestCustomGatesDisabled(t *testing.T) {
	cs := NewAssembly(WithoutCustomGates())
	require.False(t, cs.HasCustomGates())

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)
	_, err = FifthPower(cs, a, nil)
	require.ErrorIs(t, err, ErrCustomGatesDisabled)
}

func TestNarrowStateWidthRejectsGate(t *testing.T) {
	cs := NewAssembly(WithStateWidth(3))

	a, err := AllocNum(cs, constWitness(3))
	require.NoError(t, err)
	_, err = FifthPower(cs, a, nil)
	require.Error(t, err)
}
