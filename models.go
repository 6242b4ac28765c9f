package colors

import "github.com/ganemedelabs/saturon/mat"

// registerBuiltinModels installs rgb/hsl/hwb/lab/lch/oklab/oklch per
// SPEC_FULL.md §6's component-default table, grounded on the
// transfer functions and matrices in mat/.
func registerBuiltinModels(r *Registry) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.registerBuiltinModel("rgb", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "r", Index: 0, Kind: KindRange, Min: 0, Max: 255, Precision: 0},
			{Name: "g", Index: 1, Kind: KindRange, Min: 0, Max: 255, Precision: 0},
			{Name: "b", Index: 2, Kind: KindRange, Min: 0, Max: 255, Precision: 0},
		},
		Bridge:         "xyz-d65",
		TargetGamut:    "srgb",
		SupportsLegacy: true,
		AlphaVariant:   "rgba",
		ToBridge: func(v mat.Vec3) mat.Vec3 {
			lin := mat.Vec3{mat.LinSRGB(v[0] / 255), mat.LinSRGB(v[1] / 255), mat.LinSRGB(v[2] / 255)}
			return mat.LinSRGBToXYZ.MulVec3(lin)
		},
		FromBridge: func(v mat.Vec3) mat.Vec3 {
			lin := mat.XYZToLinSRGB.MulVec3(v)
			return mat.Vec3{mat.GamSRGB(lin[0]) * 255, mat.GamSRGB(lin[1]) * 255, mat.GamSRGB(lin[2]) * 255}
		},
	}))

	must(r.registerBuiltinModel("hsl", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "h", Index: 0, Kind: KindAngle, Precision: 1},
			{Name: "s", Index: 1, Kind: KindPercentage, Precision: 1},
			{Name: "l", Index: 2, Kind: KindPercentage, Precision: 1},
		},
		Bridge:         "rgb",
		TargetGamut:    "srgb",
		SupportsLegacy: true,
		AlphaVariant:   "hsla",
		ToBridge: func(v mat.Vec3) mat.Vec3 {
			rgb := mat.HSLToRGB(v)
			return mat.Vec3{rgb[0] * 255, rgb[1] * 255, rgb[2] * 255}
		},
		FromBridge: func(v mat.Vec3) mat.Vec3 {
			return mat.RGBToHSL(mat.Vec3{v[0] / 255, v[1] / 255, v[2] / 255})
		},
	}))

	must(r.registerBuiltinModel("hwb", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "h", Index: 0, Kind: KindAngle, Precision: 1},
			{Name: "w", Index: 1, Kind: KindPercentage, Precision: 1},
			{Name: "b", Index: 2, Kind: KindPercentage, Precision: 1},
		},
		Bridge:      "rgb",
		TargetGamut: "srgb",
		ToBridge: func(v mat.Vec3) mat.Vec3 {
			rgb := mat.HWBToRGB(v)
			return mat.Vec3{rgb[0] * 255, rgb[1] * 255, rgb[2] * 255}
		},
		FromBridge: func(v mat.Vec3) mat.Vec3 {
			return mat.RGBToHWB(mat.Vec3{v[0] / 255, v[1] / 255, v[2] / 255})
		},
	}))

	must(r.registerBuiltinModel("lab", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "l", Index: 0, Kind: KindPercentage, Precision: 5},
			{Name: "a", Index: 1, Kind: KindRange, Min: -125, Max: 125, Precision: 5},
			{Name: "b", Index: 2, Kind: KindRange, Min: -125, Max: 125, Precision: 5},
		},
		Bridge:      "xyz-d50",
		TargetGamut: Unbounded,
		ToBridge:    mat.LabToXYZD50,
		FromBridge:  mat.XYZD50ToLab,
	}))

	must(r.registerBuiltinModel("lch", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "l", Index: 0, Kind: KindPercentage, Precision: 5},
			{Name: "c", Index: 1, Kind: KindRange, Min: 0, Max: 150, Precision: 5},
			{Name: "h", Index: 2, Kind: KindAngle, Precision: 5},
		},
		Bridge:      "lab",
		TargetGamut: Unbounded,
		ToBridge:    mat.LCHToLab,
		FromBridge:  mat.LabToLCH,
	}))

	must(r.registerBuiltinModel("oklab", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "l", Index: 0, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "a", Index: 1, Kind: KindRange, Min: -0.4, Max: 0.4, Precision: 5},
			{Name: "b", Index: 2, Kind: KindRange, Min: -0.4, Max: 0.4, Precision: 5},
		},
		Bridge:      "xyz-d65",
		TargetGamut: Unbounded,
		ToBridge:    mat.OKLabToXYZD65,
		FromBridge:  mat.XYZD65ToOKLab,
	}))

	must(r.registerBuiltinModel("oklch", &ColorModelConverter{
		Components: []ComponentDefinition{
			{Name: "l", Index: 0, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "c", Index: 1, Kind: KindRange, Min: 0, Max: 0.4, Precision: 5},
			{Name: "h", Index: 2, Kind: KindAngle, Precision: 5},
		},
		Bridge:      "oklab",
		TargetGamut: Unbounded,
		ToBridge:    mat.LCHToLab,
		FromBridge:  mat.LabToLCH,
	}))
}
