package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ganemedelabs/saturon/mat"
)

func registerBuiltinBases(r *Registry) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(registerHexColor(r))
	must(registerNamedColorBase(r))
	must(registerTransparent(r))
	must(registerCurrentColor(r))
	must(registerSystemColor(r))
	must(registerColorFunctionDispatcher(r))
	must(registerColorMix(r))
	must(registerDeviceCMYK(r))
	must(registerLightDark(r))
	must(registerContrastColor(r))
}

// --- hex-color ---------------------------------------------------

func registerHexColor(r *Registry) error {
	isHex := func(s string) bool {
		if !strings.HasPrefix(s, "#") {
			return false
		}
		digits := s[1:]
		if len(digits) != 3 && len(digits) != 4 && len(digits) != 6 && len(digits) != 8 {
			return false
		}
		for _, c := range digits {
			if !strings.ContainsRune("0123456789abcdef", c) {
				return false
			}
		}
		return true
	}
	parse := func(s string) (mat.Vec3, float64, error) {
		digits := s[1:]
		if len(digits) == 3 || len(digits) == 4 {
			var doubled strings.Builder
			for _, c := range digits {
				doubled.WriteRune(c)
				doubled.WriteRune(c)
			}
			digits = doubled.String()
		}
		channel := func(h string) float64 {
			v, _ := strconv.ParseUint(h, 16, 8)
			return float64(v)
		}
		r := channel(digits[0:2])
		g := channel(digits[2:4])
		b := channel(digits[4:6])
		alpha := 1.0
		if len(digits) == 8 {
			alpha = channel(digits[6:8]) / 255
		}
		return mat.Vec3{r, g, b}, alpha, nil
	}
	conv := &ColorConverter{
		Bridge:  "rgb",
		IsValid: isHex,
		Parse:   parse,
		ToBridge: func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			clamp8 := func(v float64) int {
				i := int(mat.Round(mat.Clamp(v, 0, 255), 0))
				return i
			}
			hex := fmt.Sprintf("#%02X%02X%02X", clamp8(coords[0]), clamp8(coords[1]), clamp8(coords[2]))
			if alpha < 1 {
				hex += fmt.Sprintf("%02X", clamp8(mat.Clamp(alpha, 0, 1)*255))
			}
			return hex, nil
		},
	}
	return r.RegisterColorBase("hex-color", conv)
}

// --- named-color ---------------------------------------------------

func registerNamedColorBase(r *Registry) error {
	conv := &ColorConverter{
		Bridge: "rgb",
		IsValid: func(s string) bool {
			_, ok := r.NamedColorRGB(s)
			return ok
		},
		Parse: func(s string) (mat.Vec3, float64, error) {
			rgb, ok := r.NamedColorRGB(s)
			if !ok {
				return mat.Vec3{}, 0, newErr(KindParse, s, "unknown named color")
			}
			return mat.Vec3{float64(rgb[0]), float64(rgb[1]), float64(rgb[2])}, 1, nil
		},
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			rgb := [3]int{
				int(mat.Round(coords[0], 0)),
				int(mat.Round(coords[1], 0)),
				int(mat.Round(coords[2], 0)),
			}
			name, ok := r.NameForRGB(rgb)
			if !ok {
				return "", newErr(KindLookup, fmt.Sprintf("%v", rgb), "no registered name for this exact rgb triple")
			}
			return name, nil
		},
	}
	return r.RegisterColorBase("named-color", conv)
}

// --- transparent / currentcolor ------------------------------------

func registerTransparent(r *Registry) error {
	conv := &ColorConverter{
		Bridge:     "rgb",
		IsValid:    func(s string) bool { return s == "transparent" },
		Parse:      func(s string) (mat.Vec3, float64, error) { return mat.Vec3{0, 0, 0}, 0, nil },
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			if alpha == 0 && coords == (mat.Vec3{0, 0, 0}) {
				return "transparent", nil
			}
			return "", newErr(KindValidation, "transparent", "color is not the transparent keyword")
		},
	}
	return r.RegisterColorBase("transparent", conv)
}

func registerCurrentColor(r *Registry) error {
	conv := &ColorConverter{
		Bridge:     "rgb",
		IsValid:    func(s string) bool { return s == "currentcolor" },
		Parse:      func(s string) (mat.Vec3, float64, error) { return mat.Vec3{0, 0, 0}, 1, nil },
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			return "currentcolor", nil
		},
	}
	return r.RegisterColorType("currentcolor", conv)
}

// --- <system-color> --------------------------------------------------

func registerSystemColor(r *Registry) error {
	conv := &ColorConverter{
		Bridge: "rgb",
		IsValid: func(s string) bool {
			_, ok := currentConfig().SystemColors[strings.ToLower(s)]
			return ok
		},
		Parse: func(s string) (mat.Vec3, float64, error) {
			pair, ok := currentConfig().SystemColors[strings.ToLower(s)]
			if !ok {
				return mat.Vec3{}, 0, newErr(KindLookup, s, "unknown system color")
			}
			chosen := pair[0]
			if currentConfig().Theme == "dark" {
				chosen = pair[1]
			}
			return mat.Vec3{float64(chosen[0]), float64(chosen[1]), float64(chosen[2])}, 1, nil
		},
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			return "", newErr(KindValidation, "system-color", "system colors format as their resolved value, not their keyword")
		},
	}
	return r.RegisterColorType("<system-color>", conv)
}

// --- color() dispatcher ----------------------------------------------

func registerColorFunctionDispatcher(r *Registry) error {
	conv := &ColorConverter{
		IsValid: func(s string) bool {
			return strings.HasPrefix(s, "color(") && strings.HasSuffix(s, ")")
		},
		ParseInto: func(s string) (string, mat.Vec3, float64, error) {
			open := strings.IndexByte(s, '(')
			payload := s[open+1 : len(s)-1]
			tokens := tokenizeFunctionPayload(payload)
			fs, err := parseFunctionShape(tokens, true)
			if err != nil {
				return "", mat.Vec3{}, 0, err
			}
			sp, ok := r.Model(fs.space)
			if !ok {
				return "", mat.Vec3{}, 0, newErr(KindLookup, fs.space, "unknown color space")
			}
			coords, alpha, err := r.parseModelCall(sp, s, nil, nil)
			if err != nil {
				return "", mat.Vec3{}, 0, err
			}
			return sp.Name, coords, alpha, nil
		},
	}
	return r.RegisterColorType("color", conv)
}

// --- color-mix() -------------------------------------------------------

func registerColorMix(r *Registry) error {
	conv := &ColorConverter{
		IsValid: func(s string) bool {
			return strings.HasPrefix(s, "color-mix(") && strings.HasSuffix(s, ")")
		},
		ParseInto: func(s string) (string, mat.Vec3, float64, error) {
			c, err := parseColorMix(r, s)
			if err != nil {
				return "", mat.Vec3{}, 0, err
			}
			return c.model, c.coords, c.alpha, nil
		},
	}
	if err := r.RegisterColorBase("color-mix", conv); err != nil {
		return err
	}
	return nil
}

func parseColorMix(r *Registry, s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	payload := s[open+1 : len(s)-1]
	parts := splitTopLevelCommas(payload)
	if len(parts) != 3 {
		return Color{}, newErr(KindParse, s, "color-mix expects 3 comma-separated parts")
	}
	inClause := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(inClause, "in ") {
		return Color{}, newErr(KindParse, inClause, "color-mix must start with \"in <model>\"")
	}
	inWords := strings.Fields(strings.TrimPrefix(inClause, "in "))
	if len(inWords) == 0 {
		return Color{}, newErr(KindParse, inClause, "missing model in color-mix")
	}
	model := inWords[0]
	hueMethod := "shorter"
	if len(inWords) >= 3 && inWords[2] == "hue" {
		hueMethod = inWords[1]
	}
	m, ok := r.Model(model)
	if !ok {
		return Color{}, newErr(KindLookup, model, "unknown model")
	}
	hasAngle := false
	for _, def := range m.Components {
		if def.Kind == KindAngle {
			hasAngle = true
		}
	}
	if !hasAngle && hueMethod != "shorter" {
		return Color{}, newErr(KindValidation, hueMethod, "hue interpolation method requires a model with an angle component")
	}

	c1, p1, err := parseColorMixPart(r, parts[1])
	if err != nil {
		return Color{}, err
	}
	c2, p2, err := parseColorMixPart(r, parts[2])
	if err != nil {
		return Color{}, err
	}

	havep1, havep2 := !isNaNWeight(p1), !isNaNWeight(p2)
	if !havep1 && !havep2 {
		p1, p2 = 0.5, 0.5
	} else if !havep1 {
		p1 = 1 - p2
	} else if !havep2 {
		p2 = 1 - p1
	}
	total := p1 + p2
	if total <= 0 {
		return Color{}, newErr(KindValidation, "color-mix", "weights must sum to more than 0")
	}
	alphaMultiplier := 1.0
	if total < 1 {
		alphaMultiplier = total
	}
	p1, p2 = p1/total, p2/total

	mixed, err := c1.Mix(c2, MixOptions{Amount: p2, Hue: hueMethod, Easing: mixLinear, Gamma: 1})
	if err != nil {
		return Color{}, err
	}
	if alphaMultiplier < 1 {
		mixed, err = mixed.With(Update{Values: map[string]float64{"alpha": mixed.alpha * alphaMultiplier}})
		if err != nil {
			return Color{}, err
		}
	}
	return mixed, nil
}

func mixLinear(t float64) float64 { return t }

func isNaNWeight(p float64) bool { return p < 0 }

func parseColorMixPart(r *Registry, part string) (Color, float64, error) {
	part = strings.TrimSpace(part)
	fields := strings.Fields(part)
	weight := -1.0 // sentinel "absent"
	colorStr := part
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if strings.HasSuffix(last, "%") {
			v, err := strconv.ParseFloat(strings.TrimSuffix(last, "%"), 64)
			if err == nil {
				weight = v / 100
				colorStr = strings.Join(fields[:len(fields)-1], " ")
			}
		}
	}
	c, err := r.From(colorStr)
	if err != nil {
		return Color{}, 0, err
	}
	return c, weight, nil
}

func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// --- device-cmyk() ------------------------------------------------------

func registerDeviceCMYK(r *Registry) error {
	conv := &ColorConverter{
		Bridge: "rgb",
		IsValid: func(s string) bool {
			return strings.HasPrefix(s, "device-cmyk(") && strings.HasSuffix(s, ")")
		},
		Parse: func(s string) (mat.Vec3, float64, error) {
			open := strings.IndexByte(s, '(')
			payload := s[open+1 : len(s)-1]
			flat := strings.ReplaceAll(strings.ReplaceAll(payload, ",", " "), "/", " ")
			nums := strings.Fields(flat)
			if len(nums) < 4 {
				return mat.Vec3{}, 0, newErr(KindParse, s, "device-cmyk requires c m y k")
			}
			vals := make([]float64, 4)
			for i := 0; i < 4; i++ {
				v, err := strconv.ParseFloat(strings.TrimSuffix(nums[i], "%"), 64)
				if err != nil {
					return mat.Vec3{}, 0, newErr(KindParse, nums[i], "invalid cmyk component")
				}
				if strings.HasSuffix(nums[i], "%") {
					v /= 100
				}
				vals[i] = v
			}
			c, m, y, k := vals[0], vals[1], vals[2], vals[3]
			red := (1 - minF(1, c*(1-k)+k)) * 255
			green := (1 - minF(1, m*(1-k)+k)) * 255
			blue := (1 - minF(1, y*(1-k)+k)) * 255
			alpha := 1.0
			if len(nums) > 4 {
				av, err := strconv.ParseFloat(strings.TrimSuffix(nums[4], "%"), 64)
				if err == nil {
					if strings.HasSuffix(nums[4], "%") {
						av /= 100
					}
					alpha = av
				}
			}
			return mat.Vec3{red, green, blue}, alpha, nil
		},
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			c := 1 - coords[0]/255
			m := 1 - coords[1]/255
			y := 1 - coords[2]/255
			return fmt.Sprintf("device-cmyk(%g %g %g 0, rgb(%.0f %.0f %.0f))", c, m, y, coords[0], coords[1], coords[2]), nil
		},
	}
	return r.RegisterColorType("device-cmyk", conv)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// --- light-dark() --------------------------------------------------------

func registerLightDark(r *Registry) error {
	conv := &ColorConverter{
		IsValid: func(s string) bool {
			return strings.HasPrefix(s, "light-dark(") && strings.HasSuffix(s, ")")
		},
		ParseInto: func(s string) (string, mat.Vec3, float64, error) {
			open := strings.IndexByte(s, '(')
			payload := s[open+1 : len(s)-1]
			parts := splitTopLevelCommas(payload)
			if len(parts) != 2 {
				return "", mat.Vec3{}, 0, newErr(KindParse, s, "light-dark expects 2 comma-separated colors")
			}
			chosen := strings.TrimSpace(parts[0])
			if currentConfig().Theme == "dark" {
				chosen = strings.TrimSpace(parts[1])
			}
			c, err := r.From(chosen)
			if err != nil {
				return "", mat.Vec3{}, 0, err
			}
			return c.model, c.coords, c.alpha, nil
		},
	}
	return r.RegisterColorType("light-dark", conv)
}

// --- contrast-color() ------------------------------------------------------

func registerContrastColor(r *Registry) error {
	conv := &ColorConverter{
		Bridge: "rgb",
		IsValid: func(s string) bool {
			return strings.HasPrefix(s, "contrast-color(") && strings.HasSuffix(s, ")")
		},
		Parse: func(s string) (mat.Vec3, float64, error) {
			open := strings.IndexByte(s, '(')
			inner := s[open+1 : len(s)-1]
			c, err := r.From(inner)
			if err != nil {
				return mat.Vec3{}, 0, err
			}
			xyz, err := c.In("xyz-d65")
			if err != nil {
				return mat.Vec3{}, 0, err
			}
			if xyz.coords[1] > 0.5 {
				return mat.Vec3{0, 0, 0}, 1, nil
			}
			return mat.Vec3{255, 255, 255}, 1, nil
		},
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			if coords == (mat.Vec3{0, 0, 0}) {
				return "black", nil
			}
			return "white", nil
		},
	}
	return r.RegisterColorType("contrast-color", conv)
}
