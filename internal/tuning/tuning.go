// Package tuning loads the render tuning table: per-mode LOD thresholds and
// the kinds that are never sprite-cached. The table lives in a TOML file:
//
//	never_cache = ["burrower"]
//
//	[modes.balanced]
//	low = 30
//	super_low = 100
//
// Modes missing from the file keep their shipped defaults.
package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/Garsondee/Drop-Siege/internal/render"
)

var (
	ErrUnknownMode   = errors.New("unknown performance mode")
	ErrBadThresholds = errors.New("thresholds must satisfy 0 <= low <= super_low")
	ErrEmptyKind     = errors.New("empty kind in never_cache")
)

// Table is the decoded tuning file.
type Table struct {
	Modes      map[string]render.Thresholds `toml:"modes"`
	NeverCache []string                     `toml:"never_cache"`
}

// Default returns the shipped table.
func Default() *Table {
	t := &Table{
		Modes:      make(map[string]render.Thresholds),
		NeverCache: []string{string(render.KindBurrower)},
	}
	for mode, th := range render.DefaultThresholds() {
		t.Modes[string(mode)] = th
	}
	return t
}

// Parse decodes and validates a tuning table. Unknown keys are rejected so
// a typo does not silently fall back to a default.
func Parse(data []byte) (*Table, error) {
	var raw Table
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode tuning: %w", err)
	}

	t := Default()
	for name, th := range raw.Modes {
		if !knownMode(name) {
			return nil, fmt.Errorf("mode %q: %w", name, ErrUnknownMode)
		}
		if th.Low < 0 || th.SuperLow < th.Low {
			return nil, fmt.Errorf("mode %q low=%d super_low=%d: %w", name, th.Low, th.SuperLow, ErrBadThresholds)
		}
		t.Modes[name] = th
	}
	if raw.NeverCache != nil {
		for _, k := range raw.NeverCache {
			if k == "" {
				return nil, ErrEmptyKind
			}
		}
		t.NeverCache = raw.NeverCache
	}
	return t, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Marshal encodes t as TOML.
func (t *Table) Marshal() ([]byte, error) {
	data, err := toml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode tuning: %w", err)
	}
	return data, nil
}

// Thresholds converts the mode table to render types.
func (t *Table) Thresholds() map[render.PerformanceMode]render.Thresholds {
	out := make(map[render.PerformanceMode]render.Thresholds, len(t.Modes))
	for name, th := range t.Modes {
		out[render.PerformanceMode(name)] = th
	}
	return out
}

// NeverCacheKinds converts the never-cache list, sorted and de-duplicated.
func (t *Table) NeverCacheKinds() []render.Kind {
	seen := make(map[render.Kind]bool, len(t.NeverCache))
	out := make([]render.Kind, 0, len(t.NeverCache))
	for _, k := range t.NeverCache {
		kind := render.Kind(k)
		if seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Options returns render config options that install t.
func (t *Table) Options() []render.Option {
	return []render.Option{
		render.WithThresholdTable(t.Thresholds()),
		render.WithNeverCache(t.NeverCacheKinds()...),
	}
}

func knownMode(name string) bool {
	for _, m := range render.Modes() {
		if string(m) == name {
			return true
		}
	}
	return false
}
