package chart

// DefaultPalette is the color sequence used when no colors are configured.
var DefaultPalette = []string{
	"#2196F3",
	"#4CAF50",
	"#F44336",
	"#FFC107",
	"#FF9800",
	"#9C27B0",
	"#E91E63",
	"#9E9E9E",
	"#00BCD4",
	"#CDDC39",
}

// Palette resolves slice and series indexes to colors.
type Palette struct {
	colors []string
}

// NewPalette builds a palette from a full replacement list. An empty list
// falls back to DefaultPalette.
func NewPalette(colors []string) Palette {
	if len(colors) == 0 {
		return Palette{colors: DefaultPalette}
	}
	return Palette{colors: colors}
}

// ColorAt returns the color for index, cycling when index exceeds the palette.
func (p Palette) ColorAt(index int) string {
	colors := p.colors
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	n := len(colors)
	i := index % n
	if i < 0 {
		i += n
	}
	return colors[i]
}

// Len reports the number of distinct colors.
func (p Palette) Len() int {
	if len(p.colors) == 0 {
		return len(DefaultPalette)
	}
	return len(p.colors)
}
