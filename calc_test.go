package colors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeEnv(min, max float64) *calcEnv {
	return &calcEnv{vars: map[string]float64{}, min: min, max: max}
}

func TestCalcArithmetic(t *testing.T) {
	v, err := evalCalc("1 + 2 * 3", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = evalCalc("(1 + 2) * 3", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	v, err = evalCalc("-4 + 10", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestCalcFunctions(t *testing.T) {
	v, err := evalCalc("sqrt(16)", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = evalCalc("max(1, 5, 3)", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = evalCalc("min(1, 5, -3)", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, -3.0, v)

	v, err = evalCalc("pow(2, 8)", rangeEnv(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 256.0, v)
}

func TestCalcConstantsAndIdentifiers(t *testing.T) {
	env := rangeEnv(0, 100)
	env.vars["r"] = 42

	v, err := evalCalc("r", env)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = evalCalc("pi", env)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, v, 1e-12)

	v, err = evalCalc("nan", env)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = evalCalc("infinity", env)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	_, err = evalCalc("unknownvar", env)
	require.Error(t, err)
}

func TestCalcNegativeInfinityShortCircuitsToMin(t *testing.T) {
	env := rangeEnv(0, 255)
	v, err := evalCalc("-infinity", env)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	symmetric := rangeEnv(-125, 125)
	v, err = evalCalc("-infinity", symmetric)
	require.NoError(t, err)
	assert.Equal(t, -125.0, v)

	v, err = evalCalc("-infinity + 10", rangeEnv(0, 255))
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestCalcPercentRemapping(t *testing.T) {
	env := rangeEnv(0, 255)
	v, err := evalCalc("50%", env)
	require.NoError(t, err)
	assert.InDelta(t, 127.5, v, 1e-9)

	symmetric := rangeEnv(-100, 100)
	v, err = evalCalc("50%", symmetric)
	require.NoError(t, err)
	assert.InDelta(t, 50, v, 1e-9)
}

func TestCalcAngleUnits(t *testing.T) {
	env := rangeEnv(0, 360)
	v, err := evalCalc("1turn", env)
	require.NoError(t, err)
	assert.InDelta(t, 360, v, 1e-9)

	v, err = evalCalc("200grad", env)
	require.NoError(t, err)
	assert.InDelta(t, 180, v, 1e-9)

	v, err = evalCalc("3.14159265rad", env)
	require.NoError(t, err)
	assert.InDelta(t, 180, v, 1e-4)
}

func TestCalcRelativeSyntaxForbidsPercentAndUnits(t *testing.T) {
	env := rangeEnv(0, 255)
	env.relative = true

	_, err := evalCalc("50%", env)
	require.Error(t, err)

	_, err = evalCalc("90deg", env)
	require.Error(t, err)
}

func TestCalcUnknownFunctionErrors(t *testing.T) {
	_, err := evalCalc("bogus(1)", rangeEnv(0, 1))
	require.Error(t, err)
}

func TestCalcMismatchedParensErrors(t *testing.T) {
	_, err := evalCalc("(1 + 2", rangeEnv(0, 1))
	require.Error(t, err)
}

func TestCalcExtraTokensErrors(t *testing.T) {
	_, err := evalCalc("1 + 2 3", rangeEnv(0, 1))
	require.Error(t, err)
}

func TestCalcRandomWithinUnitRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		v, err := evalCalc("random()", rangeEnv(0, 1))
		require.NoError(t, err)
		assert.True(t, v >= 0 && v < 1)
	}
}
