package gadget

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/plonkish/rescue/plonk"
	"github.com/plonkish/rescue/rescue"
)

func allocValue(t *testing.T, cs plonk.ConstraintSystem, v fr.Element) plonk.AllocatedNum {
	t.Helper()
	el, err := plonk.AllocNum(cs, func() (fr.Element, error) { return v, nil })
	require.NoError(t, err)
	return el
}

func TestQuinticSBoxConstantInput(t *testing.T) {
	cs := plonk.NewAssembly()

	out, err := QuinticSBox{}.ApplyConstraints(cs, plonk.ConstantNum(fr.NewElement(3)), false)
	require.NoError(t, err)
	require.True(t, out.IsConstant())

	got := out.Constant()
	want := fr.NewElement(243)
	require.True(t, got.Equal(&want))
	require.Zero(t, cs.NbConstraints())
}

func TestQuinticSBoxVariableInput(t *testing.T) {
	cs := plonk.NewAssembly()

	var x fr.Element
	_, err := x.SetRandom()
	require.NoError(t, err)
	el := allocValue(t, cs, x)

	out, err := QuinticSBox{}.ApplyConstraints(cs, plonk.VariableNum(el), false)
	require.NoError(t, err)

	var want fr.Element
	want.Square(&x)
	want.Square(&want)
	want.Mul(&want, &x)
	got, err := out.Value()
	require.NoError(t, err)
	require.True(t, got.Equal(&want))
	require.NoError(t, cs.Satisfied())
}

func TestPowerSBoxUndoesQuintic(t *testing.T) {
	params := rescue.GetDefaultParameters()
	cs := plonk.NewAssembly()

	var x fr.Element
	_, err := x.SetRandom()
	require.NoError(t, err)
	el := allocValue(t, cs, x)

	fifth, err := QuinticSBox{}.ApplyConstraints(cs, plonk.VariableNum(el), false)
	require.NoError(t, err)

	inverse := forCircuit(params.SBox0())
	require.False(t, inverse.AppliesForward())

	back, err := inverse.ApplyConstraintsInReverse(cs, fifth, false)
	require.NoError(t, err)

	got, err := back.Value()
	require.NoError(t, err)
	require.True(t, got.Equal(&x))
	require.NoError(t, cs.Satisfied())
}

func TestSBoxWrongDirectionPanics(t *testing.T) {
	params := rescue.GetDefaultParameters()
	cs := plonk.NewAssembly()
	el := plonk.ConstantNum(fr.NewElement(3))

	require.Panics(t, func() {
		_, _ = QuinticSBox{}.ApplyConstraintsInReverse(cs, el, false)
	})
	require.Panics(t, func() {
		_, _ = forCircuit(params.SBox0()).ApplyConstraints(cs, el, false)
	})
}

func TestForcedGenericPathPanics(t *testing.T) {
	cs := plonk.NewAssembly()
	el := plonk.ConstantNum(fr.NewElement(3))

	require.Panics(t, func() {
		_, _ = QuinticSBox{}.ApplyConstraints(cs, el, true)
	})
}

func TestMissingCustomGateCapabilityPanics(t *testing.T) {
	el := plonk.ConstantNum(fr.NewElement(3))

	require.Panics(t, func() {
		_, _ = QuinticSBox{}.ApplyConstraints(plonk.NewAssembly(plonk.WithoutCustomGates()), el, false)
	})
	require.Panics(t, func() {
		_, _ = QuinticSBox{}.ApplyConstraints(plonk.NewAssembly(plonk.WithStateWidth(3)), el, false)
	})
}

type oddSBox struct{}

func (oddSBox) Transform(*fr.Element) {}

func TestForCircuitUnknownKindPanics(t *testing.T) {
	require.Panics(t, func() { forCircuit(oddSBox{}) })
}
