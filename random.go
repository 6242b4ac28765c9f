package colors

import (
	"math"

	"github.com/ganemedelabs/saturon/mat"
)

// RandomOptions controls Color::random per §4.7: Model picks the
// target model (uniform over every registered model when empty);
// Limits narrows a component's sampling range; Bias remaps the
// uniform [0,1] draw through a monotonic curve before it's mapped into
// range; Base/Deviation switch that component to a Box-Muller normal
// draw instead of a uniform one.
type RandomOptions struct {
	Model     string
	Limits    map[string][2]float64
	Bias      map[string]mat.Easing
	Base      map[string]float64
	Deviation map[string]float64
}

// Random draws a Color per the rules in RandomOptions's doc comment,
// validating that every option-map key names a real component of the
// chosen model (or "alpha") before sampling.
func (r *Registry) Random(opts RandomOptions) (Color, error) {
	modelName := opts.Model
	if modelName == "" {
		names := r.Get("color-functions")
		if len(names) == 0 {
			return Color{}, newErr(KindLookup, "random", "no registered models to sample from")
		}
		modelName = names[randomSource.Intn(len(names))]
	}
	m, ok := r.Model(modelName)
	if !ok {
		return Color{}, newErr(KindLookup, modelName, "unknown model")
	}

	validNames := map[string]bool{"alpha": true}
	for _, def := range m.Components {
		validNames[def.Name] = true
	}
	for _, optionMap := range []map[string]bool{
		keysOf(opts.Limits), keysOfEasing(opts.Bias), keysOfFloat(opts.Base), keysOfFloat(opts.Deviation),
	} {
		for name := range optionMap {
			if !validNames[name] {
				return Color{}, newErr(KindValidation, name, "not a real component of this model")
			}
		}
	}

	sampleOne := func(name string, lo, hi float64) float64 {
		if base, hasBase := opts.Base[name]; hasBase {
			if dev, hasDev := opts.Deviation[name]; hasDev {
				return boxMuller(base, dev)
			}
		}
		if limit, ok := opts.Limits[name]; ok {
			lo, hi = math.Max(lo, limit[0]), math.Min(hi, limit[1])
			if lo > hi {
				lo, hi = hi, lo
			}
		}
		t := randomSource.Float64()
		if bias, ok := opts.Bias[name]; ok {
			t = bias(t)
		}
		return lo + t*(hi-lo)
	}

	var coords mat.Vec3
	for _, def := range m.Components {
		lo, hi := def.Range()
		coords[def.Index] = sampleOne(def.Name, lo, hi)
	}
	alpha := sampleOne("alpha", 0, 1)

	for _, def := range m.Components {
		if def.Kind == KindAngle {
			coords[def.Index] = mat.WrapDegrees(coords[def.Index])
			continue
		}
		lo, hi := def.Range()
		coords[def.Index] = mat.Clamp(coords[def.Index], lo, hi)
	}
	alpha = mat.Clamp(alpha, 0, 1)

	return Color{reg: r, model: m.Name, coords: coords, alpha: alpha}, nil
}

func keysOf(m map[string][2]float64) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func keysOfFloat(m map[string]float64) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func keysOfEasing(m map[string]mat.Easing) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}
