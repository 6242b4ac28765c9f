package mat

import "math"

// HSL <-> sRGB (gamma-encoded, [0,1] range per channel), and HWB <->
// sRGB, grounded on the CSS Color 4 published sample conversions.

func hueToRGB(t1, t2, hue float64) float64 {
	hue = math.Mod(hue, 6)
	if hue < 0 {
		hue += 6
	}
	switch {
	case hue < 1:
		return t1 + (t2-t1)*hue
	case hue < 3:
		return t2
	case hue < 4:
		return t1 + (t2-t1)*(4-hue)
	default:
		return t1
	}
}

// HSLToRGB takes (h in degrees, s in [0,100], l in [0,100]) and
// returns RGB in [0,1].
func HSLToRGB(v Vec3) Vec3 {
	h, s, l := v[0], v[1]/100, v[2]/100
	if s == 0 {
		return Vec3{l, l, l}
	}
	var t2 float64
	if l <= 0.5 {
		t2 = l * (1 + s)
	} else {
		t2 = l + s - l*s
	}
	t1 := 2*l - t2
	hh := h / 60
	r := hueToRGB(t1, t2, hh+2)
	g := hueToRGB(t1, t2, hh)
	b := hueToRGB(t1, t2, hh-2)
	return Vec3{r, g, b}
}

// RGBToHSL is the inverse of HSLToRGB.
func RGBToHSL(v Vec3) Vec3 {
	r, g, b := v[0], v[1], v[2]
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	d := max - min
	var h, s float64
	if d != 0 {
		switch max {
		case r:
			h = math.Mod((g-b)/d, 6)
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
		if l != 0 && l != 1 {
			s = d / (1 - math.Abs(2*l-1))
		}
	}
	return Vec3{h, s * 100, l * 100}
}

// HWBToRGB takes (h in degrees, w in [0,100], b in [0,100]).
func HWBToRGB(v Vec3) Vec3 {
	h, w, blk := v[0], v[1]/100, v[2]/100
	if w+blk >= 1 {
		gray := w / (w + blk)
		return Vec3{gray, gray, gray}
	}
	rgb := HSLToRGB(Vec3{h, 100, 50})
	scale := 1 - w - blk
	return Vec3{
		rgb[0]*scale + w,
		rgb[1]*scale + w,
		rgb[2]*scale + w,
	}
}

// RGBToHWB is the inverse of HWBToRGB.
func RGBToHWB(v Vec3) Vec3 {
	r, g, b := v[0], v[1], v[2]
	hsl := RGBToHSL(v)
	white := math.Min(r, math.Min(g, b))
	black := 1 - math.Max(r, math.Max(g, b))
	return Vec3{hsl[0], white * 100, black * 100}
}
