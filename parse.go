package colors

import (
	"math"
	"strconv"
	"strings"

	"github.com/ganemedelabs/saturon/mat"
)

// tokenizeFunctionPayload splits a color-function's inner payload
// into tokens: balanced-paren calls and bracketed origins stay whole,
// "," and "/" are their own tokens, everything else is split on
// whitespace.
func tokenizeFunctionPayload(payload string) []string {
	var tokens []string
	i := 0
	for i < len(payload) {
		c := payload[i]
		switch {
		case c == ' ':
			i++
		case c == ',' || c == '/':
			tokens = append(tokens, string(c))
			i++
		case c == '(':
			tok, end := extractBalancedExpression(payload, i)
			tokens = append(tokens, tok)
			i = end
		default:
			start := i
			for i < len(payload) && payload[i] != ' ' && payload[i] != ',' && payload[i] != '/' {
				if payload[i] == '(' {
					// identifier immediately followed by a call, e.g. calc(...)
					name := payload[start:i]
					inner, end := extractBalancedExpression(payload, i)
					tokens = append(tokens, name+inner)
					i = end
					goto next
				}
				i++
			}
			tokens = append(tokens, payload[start:i])
		next:
		}
	}
	return tokens
}

// functionShape is the parsed skeleton of a color-function call,
// before component evaluation.
type functionShape struct {
	origin       string // raw origin token, "" if not relative
	space        string // color() space name, "" otherwise
	compTokens   []string
	alphaTok     string // "" if omitted
	commaForm    bool
	relative     bool
}

func parseFunctionShape(tokens []string, isColorFn bool) (*functionShape, error) {
	fs := &functionShape{}
	i := 0
	if i < len(tokens) && tokens[i] == "from" {
		fs.relative = true
		i++
		if i >= len(tokens) {
			return nil, newErr(KindParse, "from", "missing origin color")
		}
		fs.origin = tokens[i]
		i++
	}
	if isColorFn {
		if i >= len(tokens) {
			return nil, newErr(KindParse, "color", "missing color space")
		}
		fs.space = tokens[i]
		i++
	}
	// remaining tokens: c1 [,] c2 [,] c3 [,|/ alpha]
	var comps []string
	for i < len(tokens) {
		t := tokens[i]
		switch t {
		case ",":
			fs.commaForm = true
		case "/":
			i++
			if i < len(tokens) {
				fs.alphaTok = tokens[i]
			}
			i++
			continue
		default:
			comps = append(comps, t)
		}
		i++
	}
	if fs.commaForm && len(comps) == 4 {
		fs.alphaTok = comps[3]
		comps = comps[:3]
	}
	if len(comps) != 3 {
		return nil, newErr(KindParse, strings.Join(comps, " "), "expected exactly 3 components")
	}
	fs.compTokens = comps
	return fs, nil
}

// evaluateComponentToken implements §4.4's evaluate_component: given a
// raw token, the target component definition, the origin environment,
// and whether we're in legacy-comma mode, produce the numeric value.
func evaluateComponentToken(tok string, def ComponentDefinition, env map[string]float64, legacy, relative bool) (float64, error) {
	if tok == "none" {
		if legacy {
			return 0, newErr(KindParse, tok, "'none' is not allowed in legacy comma syntax")
		}
		return 0, nil
	}
	if v, ok := env[tok]; ok {
		return v, nil
	}
	min, max := def.Range()
	if strings.HasPrefix(tok, "calc(") && strings.HasSuffix(tok, ")") {
		inner := tok[len("calc(") : len(tok)-1]
		cenv := &calcEnv{vars: env, min: min, max: max, isPercentType: def.Kind == KindPercentage, relative: relative}
		return evalCalc(inner, cenv)
	}
	if tok == "infinity" {
		return max, nil
	}
	if tok == "-infinity" {
		return min, nil
	}
	if strings.HasSuffix(tok, "%") {
		num, err := strconv.ParseFloat(tok[:len(tok)-1], 64)
		if err != nil {
			return 0, newErr(KindParse, tok, "invalid percentage")
		}
		if def.Kind == KindPercentage {
			return num, nil
		}
		if def.Kind == KindAngle {
			if relative || legacy {
				return 0, newErr(KindParse, tok, "percentage not allowed here")
			}
			return num / 100 * 360, nil
		}
		if min < 0 && max > 0 {
			return num / 100 * (max - min) / 2, nil
		}
		return num/100*(max-min) + min, nil
	}
	for _, unit := range []string{"deg", "grad", "rad", "turn"} {
		if strings.HasSuffix(tok, unit) && def.Kind == KindAngle {
			num, err := strconv.ParseFloat(tok[:len(tok)-len(unit)], 64)
			if err != nil {
				return 0, newErr(KindParse, tok, "invalid angle")
			}
			return degreesForUnit(num, unit), nil
		}
	}
	if legacy && def.Kind == KindPercentage {
		return 0, newErr(KindParse, tok, "percentage-typed component requires a '%' in legacy comma syntax")
	}
	num, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, newErr(KindParse, tok, "invalid number")
	}
	if math.IsNaN(num) {
		return 0, nil
	}
	return num, nil
}

// wrapModelConverter synthesizes the ColorConverter that dispatches
// is_valid/parse/format for a registered model, per §4.1's
// register_color_function contract.
func (r *Registry) wrapModelConverter(m *ColorModelConverter) *ColorConverter {
	name := m.Name
	return &ColorConverter{
		IsModel: true,
		Model:   m,
		Bridge:  m.Bridge,
		ToBridge: m.ToBridge,
		FromBridge: m.FromBridge,
		IsValid: func(s string) bool {
			prefix := name + "("
			if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
				return true
			}
			if m.AlphaVariant != "" {
				aprefix := m.AlphaVariant + "("
				if strings.HasPrefix(s, aprefix) && strings.HasSuffix(s, ")") {
					return true
				}
			}
			return false
		},
		Parse: func(s string) (mat.Vec3, float64, error) {
			return r.parseModelCall(m, s, nil, nil)
		},
		Format: func(coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
			return r.formatModel(m, coords, alpha, opts)
		},
	}
}

// parseModelCall parses one name(...) call for model m. Relative
// syntax is resolved here: the origin is parsed, converted into the
// target model, and its component names plus alpha populate the
// calc/identifier environment. originEnv and overrideSpace are not read.
func (r *Registry) parseModelCall(m *ColorModelConverter, s string, originEnv map[string]float64, overrideSpace *string) (mat.Vec3, float64, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return mat.Vec3{}, 0, newErr(KindParse, s, "malformed function call")
	}
	fnName := s[:open]
	payload := s[open+1 : len(s)-1]
	isColorFn := fnName == "color"
	tokens := tokenizeFunctionPayload(payload)
	fs, err := parseFunctionShape(tokens, isColorFn)
	if err != nil {
		return mat.Vec3{}, 0, err
	}

	env := map[string]float64{}
	targetModel := m
	if fs.relative {
		origin, err := r.From(fs.origin)
		if err != nil {
			return mat.Vec3{}, 0, wrapErr(KindParse, fs.origin, err)
		}
		if isColorFn && fs.space != "" {
			sp, ok := r.Model(fs.space)
			if !ok {
				return mat.Vec3{}, 0, newErr(KindLookup, fs.space, "unknown color space")
			}
			targetModel = sp
		}
		oc, err := origin.In(targetModel.Name)
		if err != nil {
			return mat.Vec3{}, 0, err
		}
		for cname, idx := range targetModel.ComponentIndex {
			env[cname] = oc.coords[idx]
		}
		env["alpha"] = oc.alpha
	} else if isColorFn && fs.space != "" {
		sp, ok := r.Model(fs.space)
		if !ok {
			return mat.Vec3{}, 0, newErr(KindLookup, fs.space, "unknown color space")
		}
		targetModel = sp
	}

	legacyAttempt := fs.commaForm
	if legacyAttempt && !targetModel.SupportsLegacy {
		return mat.Vec3{}, 0, newErr(KindParse, s, "legacy comma syntax is not supported by this model")
	}

	var coords mat.Vec3
	byName := map[string]int{}
	for n, idx := range targetModel.ComponentIndex {
		byName[n] = idx
	}
	ordered := make([]ComponentDefinition, len(targetModel.Components))
	copy(ordered, targetModel.Components)

	if len(fs.compTokens) != 3 {
		return mat.Vec3{}, 0, newErr(KindParse, s, "expected exactly 3 components")
	}

	if legacyAttempt {
		var sawPercent, sawNumber bool
		for i, tok := range fs.compTokens {
			if ordered[i].Kind != KindRange {
				continue
			}
			if strings.HasSuffix(tok, "%") {
				sawPercent = true
			} else if _, inEnv := env[tok]; !inEnv {
				sawNumber = true
			}
		}
		if sawPercent && sawNumber {
			return mat.Vec3{}, 0, newErr(KindParse, s, "legacy comma syntax requires the non-angle components to be all percentages or all numbers")
		}
	}

	for i, tok := range fs.compTokens {
		def := ordered[i]
		v, err := evaluateComponentToken(tok, def, env, legacyAttempt, fs.relative)
		if err != nil {
			return mat.Vec3{}, 0, err
		}
		coords[def.Index] = v
	}

	alpha := 1.0
	if fs.alphaTok != "" {
		alphaDef := ComponentDefinition{Kind: KindRange, Min: 0, Max: 1}
		v, err := evaluateComponentToken(fs.alphaTok, alphaDef, env, legacyAttempt, fs.relative)
		if err != nil {
			return mat.Vec3{}, 0, err
		}
		alpha = mat.Clamp(v, 0, 1)
	}

	if isColorFn && targetModel.Name != m.Name {
		conv, err := r.Convert(targetModel.Name, m.Name, coords)
		if err != nil {
			return mat.Vec3{}, 0, err
		}
		coords = conv
	}
	return coords, alpha, nil
}
