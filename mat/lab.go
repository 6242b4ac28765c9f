package mat

import "math"

// CIE LAB <-> XYZ-D50 and OKLab <-> XYZ-D65, grounded on the CSS
// Color 4 published sample conversions.

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
	d50X       = 0.3457 / 0.3585
	d50Z       = (1.0 - 0.3457 - 0.3585) / 0.3585
)

func XYZD50ToLab(v Vec3) Vec3 {
	x, y, z := v[0]/d50X, v[1], v[2]/d50Z
	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16) / 116
	}
	fx, fy, fz := f(x), f(y), f(z)
	l := 116*fy - 16
	a := 500 * (fx - fy)
	b := 200 * (fy - fz)
	return Vec3{l, a, b}
}

func LabToXYZD50(v Vec3) Vec3 {
	l, a, b := v[0], v[1], v[2]
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	finv := func(t float64) float64 {
		if t*t*t > labEpsilon {
			return t * t * t
		}
		return (116*t - 16) / labKappa
	}
	x := finv(fx) * d50X
	y := finv(fy)
	z := finv(fz) * d50Z
	return Vec3{x, y, z}
}

func LabToLCH(v Vec3) Vec3 {
	l, a, b := v[0], v[1], v[2]
	c := math.Hypot(a, b)
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return Vec3{l, c, h}
}

func LCHToLab(v Vec3) Vec3 {
	l, c, h := v[0], v[1], v[2]
	rad := h * math.Pi / 180
	return Vec3{l, c * math.Cos(rad), c * math.Sin(rad)}
}

var xyzToLMS = Mat3{
	0.8190224432164319, 0.3619062562801221, -0.12887378261216414,
	0.0329836671980271, 0.9292868468965546, 0.03614466696886136,
	0.048177199566046255, 0.26423952494422764, 0.6335478258136937,
}

var lmsToOKLab = Mat3{
	0.2104542553, 0.7936177850, -0.0040720468,
	1.9779984951, -2.4285922050, 0.4505937099,
	0.0259040371, 0.7827717662, -0.8086757660,
}

var oklabToLMS = Mat3{
	1, 0.3963377773761749, 0.2158037573099136,
	1, -0.1055613458156586, -0.0638541728258133,
	1, -0.0894841775298119, -1.2914855480194092,
}

var lmsToXYZ = Mat3{
	1.2268798733741557, -0.5578149965554813, 0.28139105017721583,
	-0.04057576262431372, 1.1122868293970594, -0.07171106666151701,
	-0.07637294974672142, -0.4214933239627914, 1.5869240244272418,
}

func cbrtVec(v Vec3) Vec3 {
	return Vec3{math.Cbrt(v[0]), math.Cbrt(v[1]), math.Cbrt(v[2])}
}

func cubeVec(v Vec3) Vec3 {
	return Vec3{v[0] * v[0] * v[0], v[1] * v[1] * v[1], v[2] * v[2] * v[2]}
}

func XYZD65ToOKLab(v Vec3) Vec3 {
	lms := cbrtVec(xyzToLMS.MulVec3(v))
	return lmsToOKLab.MulVec3(lms)
}

func OKLabToXYZD65(v Vec3) Vec3 {
	lms := cubeVec(oklabToLMS.MulVec3(v))
	return lmsToXYZ.MulVec3(lms)
}
