package colors

import (
	"math"
	"testing"

	"github.com/ganemedelabs/saturon/mat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: hex round-trips through rgb.
func TestFromHexToRGB(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("#ff5733")
	require.NoError(t, err)
	s, err := c.To("rgb", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "rgb(255 87 51)", s)
}

// Scenario 2: hue mixing, shorter vs longer arc.
func TestMixHueShorterLonger(t *testing.T) {
	r := NewDefaultRegistry()
	a, err := r.From("hsl(0 100 50)")
	require.NoError(t, err)
	b, err := r.From("hsl(120 100 50)")
	require.NoError(t, err)

	shorter, err := a.Mix(b, MixOptions{Amount: 0.5, Hue: "shorter", Easing: mat.LinearEasing, Gamma: 1})
	require.NoError(t, err)
	s, err := shorter.To("hsl", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "hsl(60 100 50)", s)

	longer, err := a.Mix(b, MixOptions{Amount: 0.5, Hue: "longer", Easing: mat.LinearEasing, Gamma: 1})
	require.NoError(t, err)
	s, err = longer.To("hsl", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "hsl(240 100 50)", s)
}

// Scenario 3: color-mix with uneven percentages and alpha premultiplication.
func TestColorMixUnevenWeights(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("color-mix(in hsl, hsl(0 100 50) 30%, hsl(120 100 50) 50%)")
	require.NoError(t, err)
	s, err := c.To("hsl", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "hsl(75 100 50 / 0.8)", s)
}

// Scenario 4: relative syntax with calc() referencing origin components.
func TestRelativeCalc(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("rgb(from #ff0000 calc(r * 0.5) calc(g + 50) calc(b + 75))")
	require.NoError(t, err)
	precision := 4
	s, err := c.To("rgb", FormatOptions{Fit: "clip", Precision: &precision})
	require.NoError(t, err)
	assert.Equal(t, "rgb(127.5 50 75)", s)
}

// Scenario 5: WCAG contrast between white and black is exactly 21.
func TestContrastWhiteBlack(t *testing.T) {
	r := NewDefaultRegistry()
	white, err := r.From("#fff")
	require.NoError(t, err)
	black, err := r.From("#000")
	require.NoError(t, err)
	ratio, err := white.Contrast(black)
	require.NoError(t, err)
	assert.InDelta(t, 21, ratio, 1e-6)
}

// Scenario 6: display-p3 red escapes the sRGB gamut but not XYZ.
func TestInGamutDisplayP3Red(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("color(display-p3 1 0 0)")
	require.NoError(t, err)
	inSRGB, err := c.InGamut("srgb", 1e-5)
	require.NoError(t, err)
	assert.False(t, inSRGB)
	inXYZ, err := c.InGamut("xyz", 1e-5)
	require.NoError(t, err)
	assert.True(t, inXYZ)
}

// Scenario 7: none and calc(NaN) both fold to 0 inside hsl().
func TestNoneAndCalcNaN(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("hsl(none calc(NaN) 50%)")
	require.NoError(t, err)
	s, err := c.To("hsl", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "hsl(0 0 50)", s)
}

// Scenario 8: a registered named color formats back to its (letters-only) name.
func TestRegisterNamedColorRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	require.NoError(t, r.RegisterNamedColor("dusk mint", [3]int{123, 167, 151}))
	c, err := r.From("rgb(123 167 151)")
	require.NoError(t, err)
	s, err := c.To("named-color", DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "duskmint", s)
}

// Regression: a percent alpha must remap through [0,1] exactly once,
// not be divided by 100 a second time on top of evaluateComponentToken's
// own KindRange remap.
func TestParsePercentAlpha(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("rgb(255 0 0 / 50%)")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.alpha, 1e-12)

	c, err = r.From("rgb(255 0 0 / 100%)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.alpha, 1e-12)
}

// Invariant: to_bridge/from_bridge round-trip for every registered
// model within 1e-5 per component.
func TestBridgeRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	samples := map[string][]mat.Vec3{
		"rgb":   {{10, 200, 30}, {0, 0, 0}, {255, 255, 255}},
		"hsl":   {{0, 50, 50}, {180, 100, 20}},
		"hwb":   {{90, 10, 10}},
		"lab":   {{50, 20, -30}},
		"lch":   {{50, 40, 120}},
		"oklab": {{0.5, 0.1, -0.05}},
		"oklch": {{0.5, 0.1, 270}},
	}
	for model, coords := range samples {
		m, ok := r.Model(model)
		require.True(t, ok, model)
		for _, v := range coords {
			if m.ToBridge == nil || m.FromBridge == nil {
				continue
			}
			round := m.FromBridge(m.ToBridge(v))
			for i := range v {
				assert.InDelta(t, v[i], round[i], 1e-5, "%s component %d", model, i)
			}
		}
	}
}

// Invariant: mix at amount 0 returns self, at amount 1 returns other.
func TestMixEndpoints(t *testing.T) {
	r := NewDefaultRegistry()
	a, _ := r.From("rgb(10 20 30)")
	b, _ := r.From("rgb(200 210 220)")

	m0, err := a.Mix(b, MixOptions{Amount: 0, Hue: "shorter", Easing: mat.EaseInEasing, Gamma: 3})
	require.NoError(t, err)
	assert.True(t, m0.Equals(a, 1e-9))

	m1, err := a.Mix(b, MixOptions{Amount: 1, Hue: "shorter", Easing: mat.EaseInEasing, Gamma: 3})
	require.NoError(t, err)
	assert.True(t, m1.Equals(b, 1e-9))
}

// Invariant: random() output always respects the component's legal range.
func TestRandomWithinRange(t *testing.T) {
	r := NewDefaultRegistry()
	for i := 0; i < 200; i++ {
		c, err := r.Random(RandomOptions{Model: "hsl"})
		require.NoError(t, err)
		m, _ := r.Model("hsl")
		for _, def := range m.Components {
			v := c.coords[def.Index]
			if def.Kind == KindAngle {
				assert.True(t, v >= 0 && v < 360)
				continue
			}
			lo, hi := def.Range()
			assert.True(t, v >= lo-1e-9 && v <= hi+1e-9)
		}
		assert.True(t, c.alpha >= 0 && c.alpha <= 1)
	}
}

// Invariant: register then unregister restores the type's absence.
func TestRegisterUnregisterRestoresAbsence(t *testing.T) {
	r := NewDefaultRegistry()
	_, ok := r.Type("plum-velvet")
	assert.False(t, ok)

	require.NoError(t, r.RegisterNamedColor("plum velvet", [3]int{91, 44, 77}))
	_, ok = r.NamedColorRGB("plum velvet")
	assert.True(t, ok)

	r.Unregister("plum velvet")
	_, ok = r.NamedColorRGB("plum velvet")
	assert.False(t, ok)
}

// Invariant: registering a new model invalidates the cached BFS graph,
// so a path through the newly-added node resolves rather than serving
// a stale graph built before that node existed.
func TestCacheInvalidationOnMutation(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Path("rgb", "lab") // warms the graph/paths cache
	require.NoError(t, err)

	require.NoError(t, r.RegisterColorFunction("testhue", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "rgb",
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
	}))

	path, err := r.Path("testhue", "lab")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, "testhue", path[0])
	assert.Equal(t, "lab", path[len(path)-1])
	assert.Contains(t, path, "rgb")
}

func TestDeltaEZeroForIdenticalColor(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("oklch(0.7 0.1 200)")
	require.NoError(t, err)
	d, err := c.DeltaEOK(c)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-9)
	d2, err := c.DeltaE2000(c)
	require.NoError(t, err)
	assert.InDelta(t, 0, d2, 1e-9)
}

func TestClipFitStaysInGamut(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("color(display-p3 1 0 0)")
	require.NoError(t, err)
	fitted, err := c.Within("srgb", "clip")
	require.NoError(t, err)
	inGamut, err := fitted.InGamut("srgb", 1e-5)
	require.NoError(t, err)
	assert.True(t, inGamut)
}

func TestCssGamutMapStaysInGamut(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("color(display-p3 1 0 0)")
	require.NoError(t, err)
	fitted, err := c.Within("srgb", "css-gamut-map")
	require.NoError(t, err)
	inGamut, err := fitted.InGamut("srgb", 1e-4)
	require.NoError(t, err)
	assert.True(t, inGamut)
}

func TestChromaReductionStaysInGamut(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("color(display-p3 1 0 0)")
	require.NoError(t, err)
	fitted, err := c.Within("srgb", "chroma-reduction")
	require.NoError(t, err)
	inGamut, err := fitted.InGamut("srgb", 1e-4)
	require.NoError(t, err)
	assert.True(t, inGamut)
}

func TestEqualsAcrossModels(t *testing.T) {
	r := NewDefaultRegistry()
	a, err := r.From("#ff0000")
	require.NoError(t, err)
	b, err := r.From("hsl(0 100 50)")
	require.NoError(t, err)
	assert.True(t, a.Equals(b, 1e-4))
}

func TestWithUpdatesSingleComponent(t *testing.T) {
	r := NewDefaultRegistry()
	c, err := r.From("rgb(10 20 30)")
	require.NoError(t, err)
	updated, err := c.With(Update{Values: map[string]float64{"g": 99}})
	require.NoError(t, err)
	obj, err := updated.ToObject(DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, 10.0, obj["r"])
	assert.Equal(t, 99.0, obj["g"])
	assert.Equal(t, 30.0, obj["b"])
}

func TestInvalidColorStringErrors(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.From("not-a-color(1 2 3)")
	require.Error(t, err)
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindParse, engErr.Kind)
}

func TestIsValidRestrictedToType(t *testing.T) {
	r := NewDefaultRegistry()
	assert.True(t, r.IsValid("#ff0000", "hex-color"))
	assert.False(t, r.IsValid("rgb(0 0 0)", "hex-color"))
	assert.True(t, r.IsValid("rgb(0 0 0)", ""))
}

func TestPanicOnUnresolvedBuiltinBridge(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
	}()
	reg := NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(reg.registerBuiltinModel("dangling", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "nowhere",
	}))
	reg.validateBridges()
}

func TestRelativeLuminanceMonotonic(t *testing.T) {
	r := NewDefaultRegistry()
	darker, err := r.From("rgb(10 10 10)")
	require.NoError(t, err)
	lighter, err := r.From("rgb(240 240 240)")
	require.NoError(t, err)
	ratio, err := lighter.Contrast(darker)
	require.NoError(t, err)
	assert.Greater(t, ratio, 1.0)
	assert.False(t, math.IsNaN(ratio))
}
