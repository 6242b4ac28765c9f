package colors

import (
	"log/slog"
	"reflect"
)

// Plugin contributes new entries to a Registry: a plugin never patches
// Color at runtime, it only registers converters through the public
// entry points below.
type Plugin func(r *Registry) error

// Use applies one or more plugins to r in order. Each plugin's error
// is logged and that plugin is skipped; a faulty plugin never aborts
// the rest of the batch. At least one plugin must be given. Duplicate
// plugins (the same function value passed twice) are applied once,
// identified by their underlying code pointer since func values are
// not otherwise comparable.
func Use(r *Registry, plugins ...Plugin) error {
	if len(plugins) == 0 {
		return newErr(KindValidation, "use", "at least one plugin argument is required")
	}
	seen := map[uintptr]bool{}
	for i, p := range plugins {
		ptr := reflect.ValueOf(p).Pointer()
		if seen[ptr] {
			continue
		}
		seen[ptr] = true
		if err := p(r); err != nil {
			slog.Error("colors: plugin failed", "index", i, "error", err)
		}
	}
	return nil
}
