package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ganemedelabs/saturon/mat"
)

// FormatOptions controls Color::to's string rendering, per §6's
// Formatting options table.
type FormatOptions struct {
	Legacy    bool
	Fit       string
	Precision *int // nil means "use each component's own precision"
	Units     bool
}

// DefaultFormatOptions mirrors the spec's declared defaults. Fit is left
// empty so applyFit uses the configured Defaults.Fit (clip when unset).
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Legacy: false, Units: false}
}

func formatNumber(v float64, precision int) string {
	r := mat.Round(v, precision)
	s := strconv.FormatFloat(r, 'f', -1, 64)
	return s
}

func componentSuffix(def ComponentDefinition, units, legacy bool) string {
	if def.Kind == KindPercentage && (units || legacy) {
		return "%"
	}
	if def.Kind == KindAngle && units {
		return "deg"
	}
	return ""
}

// formatModel implements §4.4's format: fit, round, then emit the
// legacy, modern, or color() shape as appropriate.
func (r *Registry) formatModel(m *ColorModelConverter, coords mat.Vec3, alpha float64, opts FormatOptions) (string, error) {
	fitted, err := r.applyFit(coords, m, opts)
	if err != nil {
		return "", err
	}

	precisionFor := func(def ComponentDefinition) int {
		if opts.Precision != nil {
			return *opts.Precision
		}
		if def.Precision == NoRounding {
			return 10
		}
		return def.Precision
	}

	parts := make([]string, 3)
	for i, def := range m.Components {
		v := fitted[def.Index]
		s := formatNumber(v, precisionFor(def))
		s += componentSuffix(def, opts.Units, opts.Legacy)
		parts[i] = s
	}
	alphaClipped := mat.Clamp(alpha, 0, 1)
	alphaStr := formatNumber(alphaClipped, 3)

	switch {
	case m.IsSpace:
		body := fmt.Sprintf("color(%s %s)", m.Name, strings.Join(parts, " "))
		if alphaClipped < 1 {
			body = fmt.Sprintf("color(%s %s / %s)", m.Name, strings.Join(parts, " "), alphaStr)
		}
		return body, nil
	case opts.Legacy && m.SupportsLegacy:
		name := m.Name
		if alphaClipped < 1 && m.AlphaVariant != "" {
			name = m.AlphaVariant
			return fmt.Sprintf("%s(%s, %s)", name, strings.Join(parts, ", "), alphaStr), nil
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", ")), nil
	default:
		if alphaClipped < 1 {
			return fmt.Sprintf("%s(%s / %s)", m.Name, strings.Join(parts, " "), alphaStr), nil
		}
		return fmt.Sprintf("%s(%s)", m.Name, strings.Join(parts, " ")), nil
	}
}
