package chart

const (
	defaultTextColor   = "#000000"
	defaultAxisColor   = "#000000"
	defaultInnerRadius = 100.0
)

// Options is the sparse styling configuration of a chart. The zero value
// renders with every default.
type Options struct {
	Width  int `yaml:"width,omitempty" validate:"gte=0"`
	Height int `yaml:"height,omitempty" validate:"gte=0"`

	// Labels overrides the display label of each item, or of each point for
	// line charts.
	Labels []string `yaml:"labels,omitempty"`
	// Colors replaces the palette: one color per item, or per series for line
	// charts.
	Colors []string `yaml:"colors,omitempty" validate:"omitempty,dive,required"`
	// AxisColors holds exactly the keys "x" and "y".
	AxisColors map[string]string `yaml:"axisColors,omitempty" validate:"omitempty,dive,required"`

	LabelsColor string `yaml:"labelsColor,omitempty"`
	DataColor   string `yaml:"dataColor,omitempty"`

	// BannerInfo toggles the legend row of line charts. Nil means shown.
	BannerInfo *bool `yaml:"bannerInfo,omitempty"`
	// DataText overrides the printed value per series and point.
	DataText map[string]map[string]string `yaml:"dataText,omitempty"`
	// PointsColor overrides the marker color per series and point.
	PointsColor map[string]map[string]string `yaml:"pointsColor,omitempty" validate:"omitempty,dive,dive,required"`
	// Legend lists the series shown in the legend row. Nil lists every named
	// series.
	Legend []string `yaml:"legend,omitempty"`

	// PaletteLabels colors category labels with their item's palette color
	// instead of LabelsColor. Nil means on for bar and off for horizontal-bar.
	PaletteLabels *bool `yaml:"paletteLabels,omitempty"`
	// InnerRadius pushes doughnut labels away from the center.
	InnerRadius *float64 `yaml:"innerRadius,omitempty" validate:"omitempty,gte=0"`
}

func (o Options) width(def float64) float64 {
	if o.Width > 0 {
		return float64(o.Width)
	}
	return def
}

func (o Options) height(def float64) float64 {
	if o.Height > 0 {
		return float64(o.Height)
	}
	return def
}

func (o Options) palette() Palette {
	return NewPalette(o.Colors)
}

func (o Options) axisColor(axis string) string {
	if c, ok := o.AxisColors[axis]; ok && c != "" {
		return c
	}
	return defaultAxisColor
}

func (o Options) labelsColor() string {
	return fallback(o.LabelsColor, defaultTextColor)
}

func (o Options) dataColor() string {
	return fallback(o.DataColor, defaultTextColor)
}

func (o Options) bannerInfo() bool {
	return o.BannerInfo == nil || *o.BannerInfo
}

func (o Options) paletteLabels(def bool) bool {
	if o.PaletteLabels == nil {
		return def
	}
	return *o.PaletteLabels
}

func (o Options) innerRadius() float64 {
	if o.InnerRadius == nil {
		return defaultInnerRadius
	}
	return *o.InnerRadius
}

// label returns the display label for position i.
func (o Options) label(i int, def string) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return def
}

func (o Options) override(table map[string]map[string]string, series, point string) (string, bool) {
	v, ok := table[series][point]
	return v, ok
}

// Bool returns a pointer to b, for the optional toggles.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
