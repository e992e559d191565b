package svg

// Options configures the exporter.
type Options struct {
	// Precision is the number of decimal places written for coordinates.
	// Default 2.
	Precision int

	// Padding is the margin, in drawing units, added around the drawing
	// extents. Default 10.
	Padding float64

	// Grid is the spacing of the background grid in drawing units.
	// Zero disables the grid.
	Grid float64
}

// Option configures the exporter.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Precision: 2, Padding: 10}
}

// WithPrecision sets the decimal precision of written coordinates.
// Negative values are ignored.
func WithPrecision(digits int) Option {
	return func(o *Options) {
		if digits >= 0 {
			o.Precision = digits
		}
	}
}

// WithPadding sets the margin around the drawing extents.
// Negative values are ignored.
func WithPadding(units float64) Option {
	return func(o *Options) {
		if units >= 0 {
			o.Padding = units
		}
	}
}

// WithGrid enables a background grid with the given spacing.
// Non-positive values disable it.
func WithGrid(spacing float64) Option {
	return func(o *Options) {
		if spacing > 0 {
			o.Grid = spacing
		}
	}
}
