package colors

import "sync"

// Configuration is the ambient, swappable, package-level state that
// <system-color>, light-dark(), and default-fit
// lookups read from. Grounded on the teacher's Context interface and
// its package-level mutable Palette/Scheme globals: both are "ambient,
// swappable, package-level state" patterns for exactly this kind of
// theme-dependent lookup.
type Configuration struct {
	Theme        string                 // "light" or "dark"
	SystemColors map[string][2][3]int   // name -> [light, dark] RGB
	Defaults     struct {
		Fit string
	}
}

var (
	configMu sync.RWMutex
	config   = defaultConfiguration()
)

func defaultConfiguration() Configuration {
	return Configuration{
		Theme: "light",
		SystemColors: map[string][2][3]int{
			"canvas":        {{255, 255, 255}, {0, 0, 0}},
			"canvastext":    {{0, 0, 0}, {255, 255, 255}},
			"linktext":      {{0, 0, 238}, {61, 148, 255}},
			"graytext":      {{128, 128, 128}, {170, 170, 170}},
			"highlight":     {{181, 213, 255}, {0, 96, 160}},
			"highlighttext": {{0, 0, 0}, {255, 255, 255}},
			"buttonface":    {{240, 240, 240}, {56, 56, 56}},
			"buttontext":    {{0, 0, 0}, {255, 255, 255}},
			"field":         {{255, 255, 255}, {59, 59, 59}},
			"fieldtext":     {{0, 0, 0}, {255, 255, 255}},
		},
	}
	// Defaults.Fit left "": applyFit treats "" as "clip" per §4.6.
}

// currentConfig returns a snapshot of the active configuration, safe
// for the caller to read without holding any lock: SystemColors is
// cloned so a concurrent Configure can't mutate a map the caller is
// still iterating.
func currentConfig() Configuration {
	configMu.RLock()
	defer configMu.RUnlock()
	snapshot := config
	snapshot.SystemColors = make(map[string][2][3]int, len(config.SystemColors))
	for k, v := range config.SystemColors {
		snapshot.SystemColors[k] = v
	}
	return snapshot
}

// Configure recursively merges patch into the active configuration:
// maps merge key-by-key, the SystemColors pair arrays are replaced
// wholesale (never merged element-by-element), and zero-value fields
// in patch are treated as "unset" and ignored.
func Configure(patch Configuration) {
	configMu.Lock()
	defer configMu.Unlock()
	if patch.Theme != "" {
		config.Theme = patch.Theme
	}
	for name, pair := range patch.SystemColors {
		if config.SystemColors == nil {
			config.SystemColors = map[string][2][3]int{}
		}
		config.SystemColors[name] = pair
	}
	if patch.Defaults.Fit != "" {
		config.Defaults.Fit = patch.Defaults.Fit
	}
}

// ResetConfiguration restores the built-in default configuration,
// mainly useful for tests that mutate the theme or system-color table.
func ResetConfiguration() {
	configMu.Lock()
	defer configMu.Unlock()
	config = defaultConfiguration()
}
