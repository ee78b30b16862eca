package render

import "sort"

// Thresholds is the enemy-count pair at which LOD steps up.
type Thresholds struct {
	Low      int `toml:"low"`
	SuperLow int `toml:"super_low"`
}

// DetailLevel maps a live enemy count to an LOD tier in {0,1,2}.
func DetailLevel(count int, th Thresholds) int {
	switch {
	case count > th.SuperLow:
		return 2
	case count > th.Low:
		return 1
	default:
		return 0
	}
}

// defaultThresholds is the shipped tuning table.
var defaultThresholds = map[PerformanceMode]Thresholds{
	ModeQuality:     {Low: 60, SuperLow: 150},
	ModeBalanced:    {Low: 30, SuperLow: 100},
	ModePerformance: {Low: 15, SuperLow: 50},
}

// DefaultThresholds returns a copy of the shipped per-mode table.
func DefaultThresholds() map[PerformanceMode]Thresholds {
	out := make(map[PerformanceMode]Thresholds, len(defaultThresholds))
	for k, v := range defaultThresholds {
		out[k] = v
	}
	return out
}

// Modes returns the known performance modes in a stable order.
func Modes() []PerformanceMode {
	return []PerformanceMode{ModeQuality, ModeBalanced, ModePerformance}
}

// NextMode cycles quality → balanced → performance → quality.
func NextMode(m PerformanceMode) PerformanceMode {
	modes := Modes()
	for i, x := range modes {
		if x == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeBalanced
}

// Config is the injectable tuning for a Pipeline.
type Config struct {
	thresholds map[PerformanceMode]Thresholds
	neverCache map[Kind]bool
	log        *RenderLog
}

// Option configures a Config.
type Option func(*Config)

// WithThresholds replaces the pair for one mode.
func WithThresholds(mode PerformanceMode, th Thresholds) Option {
	return func(c *Config) {
		c.thresholds[mode] = th
	}
}

// WithThresholdTable replaces the whole per-mode table.
func WithThresholdTable(table map[PerformanceMode]Thresholds) Option {
	return func(c *Config) {
		c.thresholds = make(map[PerformanceMode]Thresholds, len(table))
		for k, v := range table {
			c.thresholds[k] = v
		}
	}
}

// WithNeverCache sets the enemy kinds that are always drawn live
// regardless of LOD.
func WithNeverCache(kinds ...Kind) Option {
	return func(c *Config) {
		c.neverCache = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			c.neverCache[k] = true
		}
	}
}

// WithLog attaches an event log.
func WithLog(l *RenderLog) Option {
	return func(c *Config) {
		c.log = l
	}
}

// NewConfig builds a Config from the defaults and opts.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		thresholds: DefaultThresholds(),
		neverCache: map[Kind]bool{KindBurrower: true},
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = NewRenderLog(0)
	}
	return c
}

// Thresholds returns the pair for mode, falling back to balanced.
func (c *Config) Thresholds(mode PerformanceMode) Thresholds {
	if th, ok := c.thresholds[mode]; ok {
		return th
	}
	if th, ok := c.thresholds[ModeBalanced]; ok {
		return th
	}
	return defaultThresholds[ModeBalanced]
}

// NeverCache reports whether kind is excluded from sprite caching.
func (c *Config) NeverCache(kind Kind) bool { return c.neverCache[kind] }

// NeverCacheKinds returns the excluded kinds, sorted.
func (c *Config) NeverCacheKinds() []Kind {
	out := make([]Kind, 0, len(c.neverCache))
	for k := range c.neverCache {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Log returns the attached event log.
func (c *Config) Log() *RenderLog { return c.log }

// Apply reconfigures c in place; holders of c see the change on their next
// frame.
func (c *Config) Apply(opts ...Option) {
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = NewRenderLog(0)
	}
}
