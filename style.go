package draft

// StrokePattern enumerates the line patterns a drawing entity can be
// stroked with. The zero value is a solid line.
type StrokePattern int

// Stroke patterns.
const (
	PatternSolid StrokePattern = iota
	PatternDashed
	PatternDotted
	PatternDashDot
	PatternHidden
	PatternCenter
)

// String returns the lowercase name of the pattern.
func (p StrokePattern) String() string {
	switch p {
	case PatternSolid:
		return "solid"
	case PatternDashed:
		return "dashed"
	case PatternDotted:
		return "dotted"
	case PatternDashDot:
		return "dash-dot"
	case PatternHidden:
		return "hidden"
	case PatternCenter:
		return "center"
	default:
		return "solid"
	}
}

// DashArray returns the alternating dash/gap lengths for the pattern in
// stroke-width units, or nil for a solid line. Exporters scale these by the
// entity's stroke width to produce the target format's dash representation.
func (p StrokePattern) DashArray() []float64 {
	switch p {
	case PatternDashed:
		return []float64{5, 3}
	case PatternDotted:
		return []float64{1, 2}
	case PatternDashDot:
		return []float64{5, 2, 1, 2}
	case PatternHidden:
		return []float64{3, 3}
	case PatternCenter:
		return []float64{8, 2, 2, 2}
	default:
		return nil
	}
}

// TextAlign is the horizontal alignment of annotation text relative to its
// anchor point.
type TextAlign int

// Text alignments.
const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// String returns the lowercase name of the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Style carries the rendering attributes attached to every entity.
// Colors are hex strings ("#RRGGBB" or "#RGB") or CSS color names;
// see ParseColor. An empty FillColor means no fill.
type Style struct {
	StrokeColor string
	StrokeWidth float64
	Pattern     StrokePattern

	FillColor string
	// FillOpacity is in (0,1]; the zero value renders opaque.
	FillOpacity float64

	// Text attributes, used by annotation and dimension entities.
	FontSize   float64
	FontFamily string
	Align      TextAlign
}

// DefaultStyle returns the style applied to newly created entities:
// a solid black hairline with 12-unit left-aligned text.
func DefaultStyle() Style {
	return Style{
		StrokeColor: "#000000",
		StrokeWidth: 1,
		Pattern:     PatternSolid,
		FillOpacity: 1,
		FontSize:    12,
		FontFamily:  "sans-serif",
	}
}

// fontSizeOrDefault returns the style's font size, falling back to 5
// drawing units when unset. The fallback matches the padding applied to
// dimension bounds.
func (s Style) fontSizeOrDefault() float64 {
	if s.FontSize > 0 {
		return s.FontSize
	}
	return 5
}
