package colors

// NewDefaultRegistry returns a Registry pre-populated with every
// built-in color space, model, base, named color, and fit method, per
// §6. The built-in table is installed as one atomic batch: spaces and
// models skip the "bridge must already be registered" check that
// every later, user-driven registration enforces, then validateBridges
// confirms the whole batch resolved before any caller can observe it.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltinSpaces(r)
	registerBuiltinModels(r)
	r.validateBridges()
	registerBuiltinNamedColors(r)
	registerBuiltinBases(r)
	registerBuiltinFitMethods(r)
	return r
}

// Default is the process-wide registry every package-level
// convenience function (From, MustFrom, ...) delegates to, mirroring
// the teacher's package-level mutable Palette/Scheme pattern of
// exposing one ready-to-use instance alongside the constructor.
var Default = NewDefaultRegistry()

// From parses s against the default registry.
func From(s string) (Color, error) { return Default.From(s) }

// MustFrom panics instead of returning an error.
func MustFrom(s string) Color { return Default.MustFrom(s) }

// LogFrom logs the error (if any) instead of returning it.
func LogFrom(s string) Color { return Default.LogFrom(s) }

// New builds a Color directly from a model name and coordinates
// against the default registry.
func New(model string, coords []float64) (Color, error) { return Default.New(model, coords) }

// MustNew panics instead of returning an error.
func MustNew(model string, coords []float64) Color { return Default.MustNew(model, coords) }

// Random draws a Color against the default registry.
func Random(opts RandomOptions) (Color, error) { return Default.Random(opts) }
