package colors

import "github.com/ganemedelabs/saturon/mat"

var identityMat = mat.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// registerBuiltinSpaces installs the color() family spaces per
// SPEC_FULL.md §6, composing the matrices and transfer functions from
// mat/transfer.go. xyz-d65 and srgb-linear declare each other as
// bridge, forming the hub of the conversion graph; the other RGB spaces
// bridge straight to xyz-d65, except prophoto-rgb, whose matrices are
// D50-relative and which bridges to xyz-d50 (as lab does).
func registerBuiltinSpaces(r *Registry) {
	unitComponents := func() []ComponentDefinition {
		return []ComponentDefinition{
			{Name: "r", Index: 0, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "g", Index: 1, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "b", Index: 2, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
		}
	}
	xyzComponents := func() []ComponentDefinition {
		return []ComponentDefinition{
			{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "y", Index: 1, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
			{Name: "z", Index: 2, Kind: KindRange, Min: 0, Max: 1, Precision: 5},
		}
	}

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.registerBuiltinSpace("srgb", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d65"},
		ToBridgeMatrix:      mat.LinSRGBToXYZ,
		FromBridgeMatrix:    mat.XYZToLinSRGB,
		ToLinear:            mat.LinSRGB,
		FromLinear:          mat.GamSRGB,
	}))
	must(r.registerBuiltinSpace("xyz-d65", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: xyzComponents(), Bridge: "srgb-linear", TargetGamut: Unbounded},
		ToBridgeMatrix:      mat.XYZToLinSRGB,
		FromBridgeMatrix:    mat.LinSRGBToXYZ,
	}))
	must(r.registerBuiltinSpace("srgb-linear", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d65"},
		ToBridgeMatrix:      mat.LinSRGBToXYZ,
		FromBridgeMatrix:    mat.XYZToLinSRGB,
	}))
	must(r.registerBuiltinSpace("display-p3", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d65"},
		ToBridgeMatrix:      mat.LinP3ToXYZ,
		FromBridgeMatrix:    mat.XYZToLinP3,
		ToLinear:            mat.LinP3,
		FromLinear:          mat.GamP3,
	}))
	must(r.registerBuiltinSpace("rec2020", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d65"},
		ToBridgeMatrix:      mat.LinRec2020ToXYZ,
		FromBridgeMatrix:    mat.XYZToLinRec2020,
		ToLinear:            mat.LinRec2020,
		FromLinear:          mat.GamRec2020,
	}))
	must(r.registerBuiltinSpace("a98-rgb", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d65"},
		ToBridgeMatrix:      mat.LinA98RGBToXYZ,
		FromBridgeMatrix:    mat.XYZToLinA98RGB,
		ToLinear:            mat.LinA98RGB,
		FromLinear:          mat.GamA98RGB,
	}))
	must(r.registerBuiltinSpace("prophoto-rgb", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: unitComponents(), Bridge: "xyz-d50"},
		ToBridgeMatrix:      mat.LinProPhotoToXYZ,
		FromBridgeMatrix:    mat.XYZToLinProPhoto,
		ToLinear:            mat.LinProPhoto,
		FromLinear:          mat.GamProPhoto,
	}))
	must(r.registerBuiltinSpace("xyz-d50", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: xyzComponents(), Bridge: "xyz-d65", TargetGamut: Unbounded},
		ToBridgeMatrix:      mat.D50ToD65,
		FromBridgeMatrix:    mat.D65ToD50,
	}))
	must(r.registerBuiltinSpace("xyz", &ColorSpaceConverter{
		ColorModelConverter: &ColorModelConverter{Components: xyzComponents(), Bridge: "xyz-d65", TargetGamut: Unbounded},
		ToBridgeMatrix:      identityMat,
		FromBridgeMatrix:    identityMat,
	}))
}
