package colors

import "github.com/ganemedelabs/saturon/mat"

// FitOptions carries the method/precision pair fit() accepts.
type FitOptions struct {
	Method    string
	Precision *int
}

// applyFit implements §4.6's fit(): clip/chroma-reduction/css-gamut-map
// on the 3 coordinates, then rounds per the resolved precision rule
// (DESIGN.md Open Question 3).
func (r *Registry) applyFit(coords mat.Vec3, m *ColorModelConverter, opts FormatOptions) (mat.Vec3, error) {
	method := opts.Fit
	if method == "" {
		method = currentConfig().Defaults.Fit
	}
	if method == "" {
		method = "clip"
	}

	var fitted mat.Vec3
	switch method {
	case "none":
		fitted = coords
	case "clip":
		fitted = clipToModel(coords, m)
	default:
		fn, ok := r.FitMethod(method)
		if !ok {
			return mat.Vec3{}, newErr(KindLookup, method, "unknown fit method")
		}
		out, err := fn([3]float64(coords), m.Name, r)
		if err != nil {
			return mat.Vec3{}, err
		}
		fitted = mat.Vec3(out)
	}

	for _, def := range m.Components {
		precision := def.Precision
		if opts.Precision != nil {
			precision = *opts.Precision
		}
		if precision == NoRounding {
			continue
		}
		fitted[def.Index] = mat.Round(fitted[def.Index], precision)
	}
	return fitted, nil
}

func clipToModel(coords mat.Vec3, m *ColorModelConverter) mat.Vec3 {
	out := coords
	for _, def := range m.Components {
		if def.Kind == KindAngle {
			out[def.Index] = mat.WrapDegrees(out[def.Index])
			continue
		}
		min, max := def.Range()
		out[def.Index] = mat.Clamp(out[def.Index], min, max)
	}
	return out
}

// registerBuiltinFitMethods installs chroma-reduction and
// css-gamut-map. "none" and "clip" are handled
// inline in applyFit and are not registered as FitFunc entries.
func registerBuiltinFitMethods(r *Registry) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(r.RegisterFitMethod("chroma-reduction", chromaReductionFit))
	must(r.RegisterFitMethod("css-gamut-map", cssGamutMapFit))
}

// inTargetGamut reports whether coords (in model m's own space) lie
// within that model's declared target gamut, projecting through the
// conversion graph when the gamut is a different model than m.
func inTargetGamut(reg *Registry, coords [3]float64, model string, epsilon float64) (bool, error) {
	m, ok := reg.Model(model)
	if !ok {
		return false, newErr(KindLookup, model, "unknown model")
	}
	gamut := m.TargetGamut
	if gamut == "" {
		gamut = model
	}
	if gamut == Unbounded {
		return true, nil
	}
	gm, ok := reg.Model(gamut)
	if !ok {
		return false, newErr(KindLookup, gamut, "unknown gamut")
	}
	v, err := reg.Convert(model, gamut, mat.Vec3(coords))
	if err != nil {
		return false, err
	}
	for _, def := range gm.Components {
		if def.Kind == KindAngle {
			continue
		}
		min, max := def.Range()
		if v[def.Index] < min-epsilon || v[def.Index] > max+epsilon {
			return false, nil
		}
	}
	return true, nil
}

// chromaReductionFit bisects OKLCH chroma downward until the color is
// in-gamut, grounded on hct/bisect.go's BisectToLimit narrowing loop
// and hct/contrast.go's epsilon convergence idiom.
func chromaReductionFit(coords [3]float64, model string, reg *Registry) ([3]float64, error) {
	m, ok := reg.Model(model)
	if !ok {
		return coords, newErr(KindLookup, model, "unknown model")
	}
	if m.TargetGamut == Unbounded {
		return coords, nil
	}
	inGamut, err := inTargetGamut(reg, coords, model, 1e-5)
	if err != nil {
		return coords, err
	}
	if inGamut {
		return coords, nil
	}

	oklch, err := reg.Convert(model, "oklch", mat.Vec3(coords))
	if err != nil {
		return coords, err
	}
	l, h := mat.Clamp(oklch[0], 0, 1), oklch[2]
	low, high := 0.0, 1.0

	for iter := 0; iter < 40; iter++ {
		mid := (low + high) / 2
		candidate := mat.Vec3{l, mid, h}
		cConv, err := reg.Convert("oklch", model, candidate)
		if err != nil {
			return coords, err
		}
		inGamut, err := inTargetGamut(reg, [3]float64(cConv), model, 1e-5)
		if err != nil {
			return coords, err
		}
		if inGamut {
			low = mid
			continue
		}
		clipped := clipToModel(cConv, m)
		clippedOKLab, err := reg.Convert(model, "oklab", clipped)
		if err != nil {
			return coords, err
		}
		seedOKLab, err := reg.Convert("oklch", "oklab", candidate)
		if err != nil {
			return coords, err
		}
		if deltaEOK(clippedOKLab, seedOKLab) < 2 {
			return [3]float64(clipped), nil
		}
		high = mid
	}
	final, err := reg.Convert("oklch", model, mat.Vec3{l, low, h})
	if err != nil {
		return coords, err
	}
	return [3]float64(final), nil
}

// cssGamutMapFit implements the W3C Color 4 §13.2 algorithm: bisect
// OKLCH chroma with a JND=0.02 early exit, grounded the same way as
// chromaReductionFit but following the published convergence rule.
func cssGamutMapFit(coords [3]float64, model string, reg *Registry) ([3]float64, error) {
	m, ok := reg.Model(model)
	if !ok {
		return coords, newErr(KindLookup, model, "unknown model")
	}
	if m.TargetGamut == Unbounded {
		return coords, nil
	}

	const jnd = 0.02
	const epsilon = 0.0001

	oklab, err := reg.Convert(model, "oklab", mat.Vec3(coords))
	if err != nil {
		return coords, err
	}
	if oklab[0] >= 1 {
		white, _ := reg.Convert("oklab", model, mat.Vec3{1, 0, 0})
		return [3]float64(white), nil
	}
	if oklab[0] <= 0 {
		black, _ := reg.Convert("oklab", model, mat.Vec3{0, 0, 0})
		return [3]float64(black), nil
	}

	inGamut, err := inTargetGamut(reg, coords, model, 1e-5)
	if err != nil {
		return coords, err
	}
	if inGamut {
		return coords, nil
	}

	oklch, err := reg.Convert(model, "oklch", mat.Vec3(coords))
	if err != nil {
		return coords, err
	}
	l, cSeed, h := oklch[0], oklch[1], oklch[2]

	clipped := clipToModel(mat.Vec3(coords), m)
	clippedOKLab, _ := reg.Convert(model, "oklab", clipped)
	if deltaEOK(clippedOKLab, oklab) < jnd {
		return [3]float64(clipped), nil
	}

	low, high := 0.0, cSeed
	var result mat.Vec3 = clipped
	for high-low > epsilon {
		mid := (low + high) / 2
		candidate := mat.Vec3{l, mid, h}
		cConv, err := reg.Convert("oklch", model, candidate)
		if err != nil {
			return coords, err
		}
		ok, err := inTargetGamut(reg, [3]float64(cConv), model, 1e-5)
		if err != nil {
			return coords, err
		}
		if ok {
			low = mid
			result = cConv
			continue
		}
		clippedCand := clipToModel(cConv, m)
		clippedLab, _ := reg.Convert(model, "oklab", clippedCand)
		candLab, _ := reg.Convert("oklch", "oklab", candidate)
		if deltaEOK(clippedLab, candLab) < jnd {
			result = clippedCand
			low = mid
			continue
		}
		high = mid
	}
	return [3]float64(result), nil
}
