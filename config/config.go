// Package config controls the optional prefiltering layer pattern.Matches
// can use ahead of the structural walk: whether to extract a literal
// byte run from a compiled pattern at all, and how aggressively.
//
// Trace matching itself (match.IsMatch, match.ToplevelMatches,
// match.InternalMatches) has no tunable behavior — it is a pure,
// deterministic structural comparison, spec.md leaves no parameter for
// it to expose. Config exists for the literal/prefilter layer, plus the
// depth limit of pattern.DebugTreeWithConfig, mirroring the teacher
// engine's meta.Config for its own optional prefilter stage.
package config

// Config controls literal extraction and prefilter selection ahead of
// structural matching.
//
// Example:
//
//	cfg := config.DefaultConfig()
//	cfg.EnablePrefilter = false // always fall back to a full scan
type Config struct {
	// EnablePrefilter enables literal-based prefiltering before the
	// structural walk. When false, match.InternalMatches scans every
	// candidate position unconditionally.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length, in bytes, a literal run
	// extracted from a pattern's trace must have to be worth
	// prefiltering on. Shorter literals match too often to narrow the
	// search meaningfully.
	// Default: 2
	MinLiteralLen int

	// MaxLiterals caps how many literal runs literal.Extractor.Extract
	// returns for a single pattern trace. A pattern with more literal
	// runs than this keeps only its MaxLiterals longest ones.
	// Default: 64
	MaxLiterals int

	// MaxRecursionDepth limits the subtree nesting depth
	// pattern.DebugTreeWithConfig decodes. Prevents unbounded recursion
	// on a pathologically deep pattern. Literal extraction is a linear
	// scan and does not use it.
	// Default: 256
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults: prefilter
// enabled, a minimum literal length of 2 (so a single discriminant byte
// is not prefiltered on), and generous limits for ordinary pattern depth.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:   true,
		MinLiteralLen:     2,
		MaxLiterals:       64,
		MaxRecursionDepth: 256,
	}
}

// Validate checks that c's parameters are within usable ranges.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxRecursionDepth: 10 to 1,000
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{Field: "MinLiteralLen", Message: "must be between 1 and 64"}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
		}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 1,000"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "comacro: invalid config: " + e.Field + ": " + e.Message
}
