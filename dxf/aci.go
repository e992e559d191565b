package dxf

import "github.com/draft2d/draft"

// The AutoCAD Color Index palette, restricted to the nine classic indices.
// The mapping is lossy in both directions: unmapped indices import as
// black, and colors without an exact palette match export as index 7.
var aciPalette = [...]struct {
	index int
	color draft.RGB
}{
	{1, draft.RGB{R: 255, G: 0, B: 0}},     // red
	{2, draft.RGB{R: 255, G: 255, B: 0}},   // yellow
	{3, draft.RGB{R: 0, G: 255, B: 0}},     // green
	{4, draft.RGB{R: 0, G: 255, B: 255}},   // cyan
	{5, draft.RGB{R: 0, G: 0, B: 255}},     // blue
	{6, draft.RGB{R: 255, G: 0, B: 255}},   // magenta
	{7, draft.RGB{R: 255, G: 255, B: 255}}, // white
	{8, draft.RGB{R: 128, G: 128, B: 128}}, // gray
	{9, draft.RGB{R: 192, G: 192, B: 192}}, // light gray
}

// ColorFromACI converts an AutoCAD Color Index to RGB. Indices outside
// the palette map to black.
func ColorFromACI(index int) draft.RGB {
	if index < 0 {
		index = -index
	}
	for _, e := range aciPalette {
		if e.index == index {
			return e.color
		}
	}
	return draft.RGB{}
}

// ACIFromColor converts a color to its AutoCAD Color Index. Colors
// without an exact palette entry map to 7 (white), the conventional
// default pen.
func ACIFromColor(c draft.RGB) int {
	for _, e := range aciPalette {
		if e.color == c {
			return e.index
		}
	}
	return 7
}
