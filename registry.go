package colors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FitFunc is a registered gamut-fit strategy; see fit.go.
type FitFunc func(coords [3]float64, model string, reg *Registry) ([3]float64, error)

// Registry holds every process-wide mutable table the engine reads
// from: color types (the full dispatch list Color::from scans),
// color bases, color functions (models), color spaces, named colors,
// and fit methods. Mutations go only through the Register*/Unregister
// entry points below; reads never mutate.
//
// Guarded by an RWMutex per the multi-threaded-embedder guidance:
// registration is expected to happen during initialization, but the
// lock makes concurrent reads during conversion safe regardless.
type Registry struct {
	mu sync.RWMutex

	typeOrder []string
	types     map[string]*ColorConverter

	baseOrder []string
	bases     map[string]*ColorConverter

	models map[string]*ColorModelConverter
	spaces map[string]*ColorSpaceConverter

	namedColors    map[string][3]int
	namedByRGB     map[[3]int]string
	fitMethods     map[string]FitFunc

	graph map[string][]string
	paths map[string][]string
}

// NewRegistry returns an empty registry with no built-ins installed.
// Use NewDefaultRegistry for a registry pre-populated per spec §6.
func NewRegistry() *Registry {
	return &Registry{
		types:       map[string]*ColorConverter{},
		bases:       map[string]*ColorConverter{},
		models:      map[string]*ColorModelConverter{},
		spaces:      map[string]*ColorSpaceConverter{},
		namedColors: map[string][3]int{},
		namedByRGB:  map[[3]int]string{},
		fitMethods:  map[string]FitFunc{},
	}
}

func normalizeBaseName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Join(strings.Fields(name), "-")
	return strings.ToLower(name)
}

func normalizeFunctionName(name string) string {
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), "")
}

func normalizeNamedColor(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *Registry) invalidateCaches() {
	r.graph = nil
	r.paths = nil
}

// RegisterColorType installs a generic color-type entry (used for the
// non-base, non-model types: currentcolor, <system-color>, etc., and
// internally for every model/base too, since Color::from scans types
// in insertion order).
func (r *Registry) RegisterColorType(name string, conv *ColorConverter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeBaseName(name)
	if _, ok := r.types[key]; ok {
		return newErr(KindRegistration, key, "name already used")
	}
	conv.Name = key
	r.types[key] = conv
	r.typeOrder = append(r.typeOrder, key)
	r.invalidateCaches()
	return nil
}

// RegisterColorBase installs a color-base entry (hex-color,
// named-color, color-mix, transparent, plus every model/space, since
// those are bases too) and mirrors it into the type table.
func (r *Registry) RegisterColorBase(name string, conv *ColorConverter) error {
	r.mu.Lock()
	key := normalizeBaseName(name)
	if _, ok := r.bases[key]; ok {
		r.mu.Unlock()
		return newErr(KindRegistration, key, "name already used")
	}
	conv.Name = key
	r.bases[key] = conv
	r.baseOrder = append(r.baseOrder, key)
	r.invalidateCaches()
	r.mu.Unlock()
	return r.RegisterColorType(name, conv)
}

// RegisterColorFunction installs a model (rgb, hsl, lab, ...): it
// lower-cases component keys, rejects the reserved "none" component
// name, requires unique component names and a registered bridge, then
// synthesizes the ColorConverter that wraps parse/format (see parse.go
// and format.go) and installs it as both a color-function and a
// color-base.
func (r *Registry) RegisterColorFunction(name string, m *ColorModelConverter) error {
	return r.registerColorFunction(name, m, true)
}

// registerBuiltinModel installs a built-in model without requiring
// its bridge to already be registered. The full built-in table is
// installed as one atomic batch at process start (see
// NewDefaultRegistry in bootstrap.go), which validates every bridge
// resolves only once the whole batch is in; enforcing the "bridge must
// already exist" rule mid-batch would make it impossible to register the
// two ends of any mutual edge (e.g. srgb-linear <-> xyz-d65) in either
// order.
func (r *Registry) registerBuiltinModel(name string, m *ColorModelConverter) error {
	return r.registerColorFunction(name, m, false)
}

func (r *Registry) registerColorFunction(name string, m *ColorModelConverter, checkBridge bool) error {
	key := normalizeFunctionName(name)

	r.mu.Lock()
	if _, exists := r.models[key]; exists {
		r.mu.Unlock()
		return newErr(KindRegistration, key, "name already used")
	}
	seen := map[string]bool{}
	var seenIdx [3]bool
	m.ComponentIndex = map[string]int{}
	for i := range m.Components {
		m.Components[i].Name = strings.ToLower(m.Components[i].Name)
		cname := m.Components[i].Name
		if cname == "none" {
			r.mu.Unlock()
			return newErr(KindValidation, cname, "component name 'none' is reserved")
		}
		if seen[cname] {
			r.mu.Unlock()
			return newErr(KindValidation, cname, "duplicate component name")
		}
		seen[cname] = true
		idx := m.Components[i].Index
		if idx < 0 || idx >= len(seenIdx) {
			r.mu.Unlock()
			return newErr(KindValidation, cname, "component index out of range")
		}
		if seenIdx[idx] {
			r.mu.Unlock()
			return newErr(KindValidation, cname, "duplicate component index")
		}
		seenIdx[idx] = true
		m.ComponentIndex[cname] = idx
	}
	if len(m.Components) > 0 {
		for i := 0; i < len(m.Components); i++ {
			if !seenIdx[i] {
				r.mu.Unlock()
				return newErr(KindValidation, key, "component indices must be contiguous across 0..N-1")
			}
		}
	}
	if m.Bridge == key {
		r.mu.Unlock()
		return newErr(KindValidation, key, "a model cannot bridge to itself")
	}
	if checkBridge && m.Bridge != "" {
		if _, ok := r.models[m.Bridge]; !ok {
			r.mu.Unlock()
			return newErr(KindValidation, m.Bridge, "unresolved bridge")
		}
	}
	m.Name = key
	r.models[key] = m
	r.invalidateCaches()
	r.mu.Unlock()

	conv := r.wrapModelConverter(m)
	return r.RegisterColorBase(key, conv)
}

// validateBridges checks, after a batch of registerBuiltinModel
// calls, that every model's declared bridge resolved to a real
// registered model. Panics on failure since it only ever runs against
// the engine's own built-in table during package init.
func (r *Registry) validateBridges() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, m := range r.models {
		if m.Bridge == "" {
			continue
		}
		if _, ok := r.models[m.Bridge]; !ok {
			panic(fmt.Sprintf("colors: built-in model %q declares unresolved bridge %q", name, m.Bridge))
		}
	}
}

// RegisterColorSpace installs a color() space (srgb, display-p3, ...):
// checks that the embedded model converter is present (the Mat3 type
// fixes both matrices at 3x3), composes the model converter from the
// matrices and the transfer functions, then installs it exactly like
// RegisterColorFunction.
func (r *Registry) RegisterColorSpace(name string, sc *ColorSpaceConverter) error {
	return r.registerColorSpace(name, sc, true)
}

func (r *Registry) registerBuiltinSpace(name string, sc *ColorSpaceConverter) error {
	return r.registerColorSpace(name, sc, false)
}

func (r *Registry) registerColorSpace(name string, sc *ColorSpaceConverter, checkBridge bool) error {
	key := normalizeFunctionName(name)
	if sc.ColorModelConverter == nil {
		return newErr(KindValidation, key, "missing model converter")
	}
	model := composeSpaceConverter(sc)
	if model.TargetGamut == "" {
		model.TargetGamut = key
	}

	r.mu.Lock()
	r.spaces[key] = sc
	r.mu.Unlock()

	return r.registerColorFunction(name, model, checkBridge)
}

// RegisterNamedColor installs a CSS named color, rejecting the
// insert if the RGB triple is already registered under a different
// name.
func (r *Registry) RegisterNamedColor(name string, rgb [3]int) error {
	return r.registerNamedColor(name, rgb, true)
}

// registerBuiltinNamedColor installs a built-in named color without
// rejecting RGB synonyms (e.g. aqua/cyan, fuchsia/magenta, gray/grey
// spellings all share an exact RGB triple in the CSS table). The
// first-registered name of a shared triple stays the canonical one
// NameForRGB reports; every synonym still parses.
func (r *Registry) registerBuiltinNamedColor(name string, rgb [3]int) error {
	return r.registerNamedColor(name, rgb, false)
}

func (r *Registry) registerNamedColor(name string, rgb [3]int, checkRGB bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeNamedColor(name)
	if checkRGB {
		if existing, ok := r.namedByRGB[rgb]; ok && existing != key {
			return newErr(KindRegistration, key, fmt.Sprintf("rgb %v already registered as %q", rgb, existing))
		}
	}
	if _, ok := r.namedColors[key]; ok {
		return newErr(KindRegistration, key, "name already used")
	}
	r.namedColors[key] = rgb
	if _, ok := r.namedByRGB[rgb]; !ok {
		r.namedByRGB[rgb] = key
	}
	return nil
}

// RegisterFitMethod installs a named gamut-fit strategy.
func (r *Registry) RegisterFitMethod(name string, fn FitFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeFunctionName(name)
	if _, ok := r.fitMethods[key]; ok {
		return newErr(KindRegistration, key, "name already used")
	}
	r.fitMethods[key] = fn
	return nil
}

// Unregister removes every given name from every table it appears in
// and invalidates the derived caches.
func (r *Registry) Unregister(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, raw := range names {
		for _, key := range []string{normalizeBaseName(raw), normalizeFunctionName(raw), normalizeNamedColor(raw)} {
			if _, ok := r.types[key]; ok {
				delete(r.types, key)
				r.typeOrder = removeString(r.typeOrder, key)
			}
			if _, ok := r.bases[key]; ok {
				delete(r.bases, key)
				r.baseOrder = removeString(r.baseOrder, key)
			}
			delete(r.models, key)
			delete(r.spaces, key)
			delete(r.fitMethods, key)
			if rgb, ok := r.namedColors[key]; ok {
				delete(r.namedColors, key)
				delete(r.namedByRGB, rgb)
			}
		}
	}
	r.invalidateCaches()
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Model looks up a registered model converter by name.
func (r *Registry) Model(name string) (*ColorModelConverter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[normalizeFunctionName(name)]
	return m, ok
}

// Type looks up a registered color-type converter by name.
func (r *Registry) Type(name string) (*ColorConverter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[normalizeBaseName(name)]
	return c, ok
}

// Base looks up a registered color-base converter by name.
func (r *Registry) Base(name string) (*ColorConverter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.bases[normalizeBaseName(name)]
	return c, ok
}

// TypesInOrder returns every registered color-type converter in
// insertion order, the order Color::from scans.
func (r *Registry) TypesInOrder() []*ColorConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ColorConverter, 0, len(r.typeOrder))
	for _, k := range r.typeOrder {
		out = append(out, r.types[k])
	}
	return out
}

// NamedColorRGB looks up a named color's RGB triple.
func (r *Registry) NamedColorRGB(name string) ([3]int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rgb, ok := r.namedColors[normalizeNamedColor(name)]
	return rgb, ok
}

// NameForRGB returns the unique registered name for an exact integer
// RGB triple, if any.
func (r *Registry) NameForRGB(rgb [3]int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.namedByRGB[rgb]
	return name, ok
}

// FitMethod looks up a registered gamut-fit strategy.
func (r *Registry) FitMethod(name string) (FitFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fitMethods[normalizeFunctionName(name)]
	return fn, ok
}

// Register batch-installs several entries of one kind ("color-types",
// "color-bases", "color-functions"/"color-models", "color-spaces",
// "named-colors", "fit-methods"), dispatching each entry to the
// matching single-entry Register* call. Stops and returns the first
// error; entries already installed before that point stay installed,
// matching the single-entry calls' own no-rollback behavior.
func (r *Registry) Register(kind string, entries map[string]any) error {
	for name, entry := range entries {
		var err error
		switch kind {
		case "color-types":
			conv, ok := entry.(*ColorConverter)
			if !ok {
				return newErr(KindValidation, name, "expected *ColorConverter for color-types")
			}
			err = r.RegisterColorType(name, conv)
		case "color-bases":
			conv, ok := entry.(*ColorConverter)
			if !ok {
				return newErr(KindValidation, name, "expected *ColorConverter for color-bases")
			}
			err = r.RegisterColorBase(name, conv)
		case "color-functions", "color-models":
			m, ok := entry.(*ColorModelConverter)
			if !ok {
				return newErr(KindValidation, name, "expected *ColorModelConverter for color-functions")
			}
			err = r.RegisterColorFunction(name, m)
		case "color-spaces":
			sc, ok := entry.(*ColorSpaceConverter)
			if !ok {
				return newErr(KindValidation, name, "expected *ColorSpaceConverter for color-spaces")
			}
			err = r.RegisterColorSpace(name, sc)
		case "named-colors":
			rgb, ok := entry.([3]int)
			if !ok {
				return newErr(KindValidation, name, "expected [3]int for named-colors")
			}
			err = r.RegisterNamedColor(name, rgb)
		case "fit-methods":
			fn, ok := entry.(FitFunc)
			if !ok {
				return newErr(KindValidation, name, "expected FitFunc for fit-methods")
			}
			err = r.RegisterFitMethod(name, fn)
		default:
			return newErr(KindValidation, kind, "unknown registry kind")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Get lists the registered entry names for one of the registry's
// kinds ("color-types", "color-bases", "color-functions",
// "color-spaces", "named-colors", "fit-methods"). Types and bases come
// back in registration order; the other kinds are sorted.
func (r *Registry) Get(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	switch kind {
	case "color-types":
		return append([]string(nil), r.typeOrder...)
	case "color-bases":
		return append([]string(nil), r.baseOrder...)
	case "color-functions", "color-models":
		for k := range r.models {
			keys = append(keys, k)
		}
	case "color-spaces":
		for k := range r.spaces {
			keys = append(keys, k)
		}
	case "named-colors":
		for k := range r.namedColors {
			keys = append(keys, k)
		}
	case "fit-methods":
		for k := range r.fitMethods {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
