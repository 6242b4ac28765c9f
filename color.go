package colors

import (
	"log/slog"
	"math"

	"github.com/ganemedelabs/saturon/mat"
)

// Color is an immutable (model, coords) value; alpha is held in its
// own field next to the three coordinates. All mutators return a fresh
// Color.
type Color struct {
	reg    *Registry
	model  string
	coords mat.Vec3
	alpha  float64
}

// New validates model and builds a Color from a 3- or 4-length
// coordinate slice, defaulting alpha to 1 when omitted.
func (r *Registry) New(model string, coords []float64) (Color, error) {
	m, ok := r.Model(model)
	if !ok {
		return Color{}, newErr(KindLookup, model, "unknown model")
	}
	if len(coords) != 3 && len(coords) != 4 {
		return Color{}, newErr(KindValidation, model, "coords must have length 3 or 4")
	}
	c := Color{reg: r, model: m.Name, alpha: 1}
	copy(c.coords[:], coords[:3])
	if len(coords) == 4 {
		c.alpha = coords[3]
	}
	return c, nil
}

// MustNew panics instead of returning an error.
func (r *Registry) MustNew(model string, coords []float64) Color {
	c, err := r.New(model, coords)
	if err != nil {
		panic(err)
	}
	return c
}

// From normalizes s and scans registered color-types in insertion
// order; the first is_valid match wins, per §4.7.
func (r *Registry) From(s string) (Color, error) {
	s = clean(s)
	for _, conv := range r.TypesInOrder() {
		if !conv.IsValid(s) {
			continue
		}
		if conv.ParseInto != nil {
			model, coords, alpha, err := conv.ParseInto(s)
			if err != nil {
				return Color{}, err
			}
			return Color{reg: r, model: model, coords: normalizeCoordsInput(coords), alpha: alpha}, nil
		}
		coords, alpha, err := conv.Parse(s)
		if err != nil {
			return Color{}, err
		}
		coords = normalizeCoordsInput(coords)
		if conv.IsModel {
			return Color{reg: r, model: conv.Model.Name, coords: coords, alpha: alpha}, nil
		}
		bridged := coords
		if conv.ToBridge != nil {
			bridged = conv.ToBridge(coords)
		}
		return Color{reg: r, model: conv.Bridge, coords: bridged, alpha: alpha}, nil
	}
	return Color{}, newErr(KindParse, s, "unsupported or invalid color format")
}

// MustFrom panics instead of returning an error.
func (r *Registry) MustFrom(s string) Color {
	c, err := r.From(s)
	if err != nil {
		panic(err)
	}
	return c
}

// LogFrom logs the error (if any) via slog and returns the zero
// Color, mirroring the teacher's Log* wrapper family.
func (r *Registry) LogFrom(s string) Color {
	c, err := r.From(s)
	if err != nil {
		slog.Error("colors: From failed", "input", s, "error", err)
		return Color{}
	}
	return c
}

// normalizeCoordsInput folds NaN to 0 and leaves +-Inf as is, since
// range-aware +-Inf folding happens
// per-component inside the parser/calc evaluator, which already knows
// each component's range.
func normalizeCoordsInput(v mat.Vec3) mat.Vec3 {
	for i, c := range v {
		if math.IsNaN(c) {
			v[i] = 0
		}
	}
	return v
}

// ClassifyType scans registered types and returns the name of the
// first match. In strict mode, a match whose parse+construction
// round-trip fails is skipped rather than returned (DESIGN.md Open
// Question 1).
func (r *Registry) ClassifyType(s string, strict bool) (string, error) {
	s = clean(s)
	for _, conv := range r.TypesInOrder() {
		if !conv.IsValid(s) {
			continue
		}
		if !strict {
			return conv.Name, nil
		}
		if conv.ParseInto != nil {
			if _, _, _, err := conv.ParseInto(s); err != nil {
				continue
			}
			return conv.Name, nil
		}
		if _, _, err := conv.Parse(s); err != nil {
			continue
		}
		return conv.Name, nil
	}
	return "", newErr(KindParse, s, "unsupported or invalid color format")
}

// IsValid reports whether s can be constructed into a Color,
// optionally restricted to a single named type.
func (r *Registry) IsValid(s string, typ string) bool {
	if typ != "" {
		conv, ok := r.Type(typ)
		if !ok {
			return false
		}
		cleaned := clean(s)
		if !conv.IsValid(cleaned) {
			return false
		}
		if conv.ParseInto != nil {
			_, _, _, err := conv.ParseInto(cleaned)
			return err == nil
		}
		_, _, err := conv.Parse(cleaned)
		return err == nil
	}
	_, err := r.From(s)
	return err == nil
}

// In converts the Color into the given model via the conversion
// graph.
func (c Color) In(model string) (Color, error) {
	m, ok := c.reg.Model(model)
	if !ok {
		return Color{}, newErr(KindLookup, model, "unknown model")
	}
	coords, err := c.reg.Convert(c.model, m.Name, c.coords)
	if err != nil {
		return Color{}, err
	}
	return Color{reg: c.reg, model: m.Name, coords: coords, alpha: c.alpha}, nil
}

// To formats the Color as type (a model name or a color-base name)
// using opts.
func (c Color) To(typ string, opts FormatOptions) (string, error) {
	conv, ok := c.reg.Base(typ)
	if !ok {
		conv, ok = c.reg.Type(typ)
	}
	if !ok {
		return "", newErr(KindLookup, typ, "unknown color type")
	}
	if !conv.HasFormat() {
		return "", newErr(KindValidation, typ, "type has no formatter")
	}
	if conv.IsModel {
		moved, err := c.In(conv.Model.Name)
		if err != nil {
			return "", err
		}
		return conv.Format(moved.coords, moved.alpha, opts)
	}
	moved, err := c.In(conv.Bridge)
	if err != nil {
		return "", err
	}
	bridgeModel, ok := c.reg.Model(conv.Bridge)
	if !ok {
		return "", newErr(KindLookup, conv.Bridge, "unknown bridge model")
	}
	fitted, err := c.reg.applyFit(moved.coords, bridgeModel, opts)
	if err != nil {
		return "", err
	}
	coords := fitted
	if conv.FromBridge != nil {
		coords = conv.FromBridge(coords)
	}
	return conv.Format(coords, moved.alpha, opts)
}

// ToArray normalizes and fits the coordinates, returning the 4-vector
// [c1, c2, c3, alpha].
func (c Color) ToArray(opts FormatOptions) ([4]float64, error) {
	m, ok := c.reg.Model(c.model)
	if !ok {
		return [4]float64{}, newErr(KindLookup, c.model, "unknown model")
	}
	coords := c.coords
	for _, def := range m.Components {
		min, max := def.Range()
		switch v := coords[def.Index]; {
		case math.IsNaN(v):
			coords[def.Index] = 0
		case math.IsInf(v, 1):
			coords[def.Index] = max
		case math.IsInf(v, -1):
			coords[def.Index] = min
		}
	}
	fitted, err := c.reg.applyFit(coords, m, opts)
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{fitted[0], fitted[1], fitted[2], mat.Clamp(c.alpha, 0, 1)}, nil
}

// ToObject is ToArray's keyed-mapping counterpart.
func (c Color) ToObject(opts FormatOptions) (map[string]float64, error) {
	arr, err := c.ToArray(opts)
	if err != nil {
		return nil, err
	}
	m, _ := c.reg.Model(c.model)
	out := map[string]float64{"alpha": arr[3]}
	for _, def := range m.Components {
		out[def.Name] = arr[def.Index]
	}
	return out, nil
}

// Update is the With() argument sum type: exactly one of Values,
// Array, or Func should be set.
type Update struct {
	Values map[string]float64
	Array  []float64
	Func   func(map[string]float64) map[string]float64
}

// With applies a partial update and returns a fresh Color.
func (c Color) With(u Update) (Color, error) {
	m, ok := c.reg.Model(c.model)
	if !ok {
		return Color{}, newErr(KindLookup, c.model, "unknown model")
	}
	coords := c.coords
	alpha := c.alpha

	values := u.Values
	if u.Func != nil {
		cur := map[string]float64{"alpha": alpha}
		for _, def := range m.Components {
			cur[def.Name] = coords[def.Index]
		}
		values = u.Func(cur)
	}
	if values != nil {
		for name, v := range values {
			if math.IsNaN(v) {
				v = 0
			}
			if name == "alpha" {
				alpha = v
				continue
			}
			idx, ok := m.ComponentIndex[name]
			if !ok {
				return Color{}, newErr(KindValidation, name, "unknown component")
			}
			coords[idx] = v
		}
	} else if u.Array != nil {
		for i, v := range u.Array {
			if i == 3 {
				alpha = v
				continue
			}
			if i < 3 {
				if math.IsNaN(v) {
					v = 0
				}
				coords[i] = v
			}
		}
	}
	return Color{reg: c.reg, model: c.model, coords: coords, alpha: alpha}, nil
}

// MixOptions controls Mix's interpolation per §4.7.
type MixOptions struct {
	Amount float64
	Hue    string // "shorter" (default), "longer", "increasing", "decreasing"
	Easing mat.Easing
	Gamma  float64
}

// DefaultMixOptions mirrors the spec's declared defaults.
func DefaultMixOptions() MixOptions {
	return MixOptions{Amount: 0.5, Hue: "shorter", Easing: mat.LinearEasing, Gamma: 1.0}
}

// Mix blends c with other per §4.7: easing+gamma on amount, hue-aware
// interpolation for an angle component named "h", and alpha
// premultiplication when either input isn't fully opaque.
func (c Color) Mix(other Color, opts MixOptions) (Color, error) {
	m, ok := c.reg.Model(c.model)
	if !ok {
		return Color{}, newErr(KindLookup, c.model, "unknown model")
	}
	otherIn, err := other.In(c.model)
	if err != nil {
		return Color{}, err
	}

	t := mat.Clamp(opts.Amount, 0, 1)
	// DESIGN.md Open Question 2: endpoints bypass easing/gamma.
	if t == 0 {
		return c, nil
	}
	if t == 1 {
		return Color{reg: c.reg, model: c.model, coords: otherIn.coords, alpha: otherIn.alpha}, nil
	}
	easing := opts.Easing
	if easing == nil {
		easing = mat.LinearEasing
	}
	gamma := opts.Gamma
	if gamma == 0 {
		gamma = 1
	}
	tPrime := mat.Gamma(easing(t), gamma)

	a1, a2 := c.alpha, otherIn.alpha
	aOut := a1*(1-tPrime) + a2*tPrime

	hueIdx := -1
	for _, def := range m.Components {
		if def.Kind == KindAngle && def.Name == "h" {
			hueIdx = def.Index
		}
	}

	var out mat.Vec3
	for _, def := range m.Components {
		idx := def.Index
		if idx == hueIdx {
			out[idx] = mixHue(c.coords[idx], otherIn.coords[idx], tPrime, opts.Hue)
			continue
		}
		if a1 < 1 || a2 < 1 {
			if aOut == 0 {
				out[idx] = 0
				continue
			}
			out[idx] = (c.coords[idx]*a1*(1-tPrime) + otherIn.coords[idx]*a2*tPrime) / aOut
		} else {
			out[idx] = mat.Lerp(c.coords[idx], otherIn.coords[idx], tPrime)
		}
	}

	finalAlpha := aOut
	if a1 == 1 && a2 == 1 {
		finalAlpha = 1
	}
	return Color{reg: c.reg, model: c.model, coords: out, alpha: finalAlpha}, nil
}

func mixHue(h1, h2, t float64, method string) float64 {
	h1 = mat.WrapDegrees(h1)
	h2 = mat.WrapDegrees(h2)
	delta := h2 - h1
	switch method {
	case "longer":
		d := math.Mod(delta, 360)
		if d < 0 {
			d += 360
		}
		if d > 0 && d < 180 {
			d -= 360
		} else if d == 0 {
			d = 0
		}
		return mat.WrapDegrees(h1 + d*t)
	case "increasing":
		d := math.Mod(delta, 360)
		if d < 0 {
			d += 360
		}
		return mat.WrapDegrees(h1 + d*t)
	case "decreasing":
		d := math.Mod(delta, 360)
		if d > 0 {
			d -= 360
		}
		return mat.WrapDegrees(h1 + d*t)
	default: // "shorter"
		d := math.Mod(delta+180, 360) - 180
		if d < -180 {
			d += 360
		}
		return mat.WrapDegrees(h1 + d*t)
	}
}

// Within projects into gamut's space, fits, then converts back.
func (c Color) Within(gamut, method string) (Color, error) {
	moved, err := c.In(gamut)
	if err != nil {
		return Color{}, err
	}
	gm, _ := c.reg.Model(gamut)
	fitted, err := c.reg.applyFit(moved.coords, gm, FormatOptions{Fit: method})
	if err != nil {
		return Color{}, err
	}
	fittedColor := Color{reg: c.reg, model: gamut, coords: fitted, alpha: moved.alpha}
	return fittedColor.In(c.model)
}

// InGamut reports whether c lies inside gamut's range within epsilon.
func (c Color) InGamut(gamut string, epsilon float64) (bool, error) {
	gm, ok := c.reg.Model(gamut)
	if !ok {
		return false, newErr(KindLookup, gamut, "unknown model")
	}
	if gm.TargetGamut == Unbounded {
		return true, nil
	}
	moved, err := c.In(gamut)
	if err != nil {
		return false, err
	}
	for _, def := range gm.Components {
		if def.Kind == KindAngle {
			continue
		}
		min, max := def.Range()
		if moved.coords[def.Index] < min-epsilon || moved.coords[def.Index] > max+epsilon {
			return false, nil
		}
	}
	return true, nil
}

// Equals compares coords directly when both Colors share a model,
// else compares both in XYZ-D65.
func (c Color) Equals(other Color, epsilon float64) bool {
	if c.model == other.model {
		return approxEqVec(c.coords, other.coords, epsilon)
	}
	a, err1 := c.In("xyz-d65")
	b, err2 := other.In("xyz-d65")
	if err1 != nil || err2 != nil {
		return false
	}
	return approxEqVec(a.coords, b.coords, epsilon)
}

func approxEqVec(a, b mat.Vec3, epsilon float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

// Contrast computes the WCAG 2.1 contrast ratio against other, using
// each color's XYZ-D65 Y channel as relative luminance.
func (c Color) Contrast(other Color) (float64, error) {
	a, err := c.In("xyz-d65")
	if err != nil {
		return 0, err
	}
	b, err := other.In("xyz-d65")
	if err != nil {
		return 0, err
	}
	l1, l2 := a.coords[1], b.coords[1]
	lighter, darker := math.Max(l1, l2), math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05), nil
}

// DeltaEOK returns the OKLab-space Euclidean distance x100.
func (c Color) DeltaEOK(other Color) (float64, error) {
	a, err := c.In("oklab")
	if err != nil {
		return 0, err
	}
	b, err := other.In("oklab")
	if err != nil {
		return 0, err
	}
	return deltaEOK(a.coords, b.coords), nil
}

// DeltaE76 returns the plain Euclidean LAB distance.
func (c Color) DeltaE76(other Color) (float64, error) {
	a, b, err := c.labPair(other)
	if err != nil {
		return 0, err
	}
	return deltaE76(a, b), nil
}

// DeltaE94 returns the CIE94 distance.
func (c Color) DeltaE94(other Color) (float64, error) {
	a, b, err := c.labPair(other)
	if err != nil {
		return 0, err
	}
	return deltaE94(a, b), nil
}

// DeltaE2000 returns the CIEDE2000 distance.
func (c Color) DeltaE2000(other Color) (float64, error) {
	a, b, err := c.labPair(other)
	if err != nil {
		return 0, err
	}
	return deltaE2000(a, b), nil
}

func (c Color) labPair(other Color) (mat.Vec3, mat.Vec3, error) {
	a, err := c.In("lab")
	if err != nil {
		return mat.Vec3{}, mat.Vec3{}, err
	}
	b, err := other.In("lab")
	if err != nil {
		return mat.Vec3{}, mat.Vec3{}, err
	}
	return a.coords, b.coords, nil
}

// Model returns the Color's current registered model name.
func (c Color) Model() string { return c.model }

// Alpha returns the Color's alpha component.
func (c Color) Alpha() float64 { return c.alpha }
