package atlas

// Config holds cache configuration.
type Config struct {
	// Width, Height are the atlas texture size in pixels.
	// Default: 512x512
	Width, Height int

	// ScaleTolerance is how far apart, in pixels per em, two sizes of the
	// same glyph may be and still share one rasterization.
	// Default: 0.1
	ScaleTolerance float64

	// PositionTolerance is how far apart, in pixels, two sub-pixel offsets
	// of the same glyph may be and still share one rasterization.
	// Default: 0.1
	PositionTolerance float64

	// Padding is the gap left between packed glyphs to prevent bleeding
	// under linear filtering.
	// Default: 1
	Padding int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:             512,
		Height:            512,
		ScaleTolerance:    0.1,
		PositionTolerance: 0.1,
		Padding:           1,
	}
}

// maxDimension bounds the texture size to what every GPU backend accepts.
const maxDimension = 8192

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 1 {
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	}
	if c.Width > maxDimension {
		return &ConfigError{Field: "Width", Reason: "must be at most 8192"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	}
	if c.Height > maxDimension {
		return &ConfigError{Field: "Height", Reason: "must be at most 8192"}
	}
	if !(c.ScaleTolerance > 0) {
		return &ConfigError{Field: "ScaleTolerance", Reason: "must be positive"}
	}
	if !(c.PositionTolerance > 0) || c.PositionTolerance > 1 {
		return &ConfigError{Field: "PositionTolerance", Reason: "must be in (0, 1]"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}
