package colors

import "github.com/ganemedelabs/saturon/mat"

// TargetGamut names the color space whose ranges bound a model's
// legal output, or the sentinel Unbounded for models (LAB, LCH,
// OKLAB, OKLCH, the XYZ variants) with no intrinsic gamut.
const Unbounded = "unbounded"

// BridgeFunc transforms a model's 3-coordinate vector to or from its
// declared bridge model.
type BridgeFunc func(mat.Vec3) mat.Vec3

// ColorModelConverter is the registered description of a color model:
// its named components, its declared bridge, and the pure functions
// that cross that bridge edge.
type ColorModelConverter struct {
	Name           string
	Components     []ComponentDefinition
	ComponentIndex map[string]int
	Bridge         string
	ToBridge       BridgeFunc
	FromBridge     BridgeFunc
	TargetGamut    string // Unbounded, a color-space name, or "" meaning own name
	SupportsLegacy bool
	AlphaVariant   string
	IsSpace        bool // true when registered via RegisterColorSpace: formats as color(name ...)
}

// ColorSpaceConverter is the superset registered for the color()
// function family: a ColorModelConverter whose bridge edge is
// composed from a 3x3 matrix and an optional transfer function pair.
type ColorSpaceConverter struct {
	*ColorModelConverter
	ToBridgeMatrix   mat.Mat3
	FromBridgeMatrix mat.Mat3
	ToLinear         func(float64) float64
	FromLinear       func(float64) float64
}

// ColorConverter is what the parser ultimately dispatches on: either
// a model/space converter, or a specialised base with its own
// is_valid/parse/format triple and no declared components.
type ColorConverter struct {
	Name       string
	IsModel    bool
	Model      *ColorModelConverter
	IsValid func(s string) bool
	Parse   func(s string) (mat.Vec3, float64, error)
	// ParseInto is used by the color(), color-mix() and light-dark()
	// bases: each resolves to a model chosen by its input rather than a
	// statically-declared Bridge, so it reports which model to wrap as
	// directly instead of going through ToBridge.
	ParseInto  func(s string) (model string, coords mat.Vec3, alpha float64, err error)
	Bridge     string
	ToBridge   BridgeFunc
	FromBridge BridgeFunc
	Format     func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error)
}

// HasFormat reports whether this converter can format back to a
// string (requires both FromBridge and Format per the data model's
// "if either is present, both must be" rule).
func (c *ColorConverter) HasFormat() bool {
	return c.FromBridge != nil && c.Format != nil
}

func identityBridge(v mat.Vec3) mat.Vec3 { return v }

// composeSpaceConverter builds the ColorModelConverter a registered
// color-space exposes to the rest of the engine: component transfer
// function then matrix multiply, or its inverse.
func composeSpaceConverter(sc *ColorSpaceConverter) *ColorModelConverter {
	toLinear := sc.ToLinear
	fromLinear := sc.FromLinear
	if toLinear == nil {
		toLinear = func(v float64) float64 { return v }
	}
	if fromLinear == nil {
		fromLinear = func(v float64) float64 { return v }
	}
	m := *sc.ColorModelConverter
	m.IsSpace = true
	m.ToBridge = func(v mat.Vec3) mat.Vec3 {
		lin := mat.Vec3{toLinear(v[0]), toLinear(v[1]), toLinear(v[2])}
		return sc.ToBridgeMatrix.MulVec3(lin)
	}
	m.FromBridge = func(v mat.Vec3) mat.Vec3 {
		lin := sc.FromBridgeMatrix.MulVec3(v)
		return mat.Vec3{fromLinear(lin[0]), fromLinear(lin[1]), fromLinear(lin[2])}
	}
	return &m
}
