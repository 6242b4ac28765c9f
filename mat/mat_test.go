package mat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat3MulVec3Identity(t *testing.T) {
	identity := Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	v := Vec3{1, 2, 3}
	assert.Equal(t, v, identity.MulVec3(v))
}

func TestMat3MulVec3Scale(t *testing.T) {
	scale := Mat3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	v := Vec3{1, 2, 3}
	assert.Equal(t, Vec3{2, 6, 12}, scale.MulVec3(v))
}

func TestMat3MulAssociativity(t *testing.T) {
	a := Mat3{1, 2, 0, 0, 1, 0, 0, 0, 1}
	b := Mat3{1, 0, 1, 0, 1, 2, 0, 0, 1}
	v := Vec3{3, 4, 5}

	viaCompose := a.Mul(b).MulVec3(v)
	viaSequential := a.MulVec3(b.MulVec3(v))
	for i := range viaCompose {
		assert.InDelta(t, viaSequential[i], viaCompose[i], 1e-12)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(15, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
}

func TestWrapDegrees(t *testing.T) {
	assert.InDelta(t, 0, WrapDegrees(360), 1e-12)
	assert.InDelta(t, 10, WrapDegrees(370), 1e-12)
	assert.InDelta(t, 350, WrapDegrees(-10), 1e-12)
	assert.InDelta(t, 0, WrapDegrees(0), 1e-12)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 1.0, Round(1.2345, 0))
	assert.Equal(t, 1.2345, Round(1.2345, -1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
}

func TestEasingEndpoints(t *testing.T) {
	for _, easing := range []Easing{LinearEasing, EaseInEasing, EaseOutEasing, EaseInOutEasing} {
		assert.InDelta(t, 0, easing(0), 1e-12)
		assert.InDelta(t, 1, easing(1), 1e-12)
	}
}

func TestGammaIdentityAtOne(t *testing.T) {
	assert.Equal(t, 0.42, Gamma(0.42, 1))
}

func TestGammaMonotonic(t *testing.T) {
	lo := Gamma(0.25, 3)
	hi := Gamma(0.75, 3)
	assert.True(t, lo < hi)
	assert.False(t, math.IsNaN(lo))
	assert.Equal(t, 0.0, Gamma(0, 3))
}
