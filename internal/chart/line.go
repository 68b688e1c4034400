package chart

import "math"

const (
	lineDefaultWidth  = 400.0
	lineDefaultHeight = 500.0
	lineMinSlot       = 60.0
	lineOriginX       = 50.0
	lineTop           = 50.0
	lineStrokeWidth   = 3.0
	pointRadius       = 4.0
	bannerRadius      = 5.0
	bannerOffset      = 90.0
	firstLabelShift   = 8.0
)

// lineLayout draws one polyline per series over a shared vertical scale.
type lineLayout struct{}

func (lineLayout) Layout(data Dataset, opts Options) Drawing {
	series := data.asSeries()
	labels := series[0].Labels()
	points := float64(len(labels))

	width := math.Max(opts.width(lineDefaultWidth), 100+lineMinSlot*points)
	height := opts.height(lineDefaultHeight)
	baseY := height / 2
	plotWidth := width - 100
	plotHeight := baseY - lineTop
	maxValue := seriesMax(series)
	scale := ComputeTicks(maxValue)
	palette := opts.palette()

	xAt := func(j int) float64 {
		return lineOriginX + interpolate(j, len(labels))*plotWidth
	}
	yAt := func(v float64) float64 {
		return baseY - proportion(v, maxValue)*plotHeight
	}

	d := &drawing{width: width, height: height}
	d.add(
		Line{X1: lineOriginX, Y1: baseY, X2: width + 20, Y2: baseY, Stroke: opts.axisColor("x")},
		Line{X1: lineOriginX, Y1: baseY, X2: lineOriginX, Y2: lineTop, Stroke: opts.axisColor("y")},
	)

	for _, tick := range scale.Ticks {
		y := baseY - scale.Position(tick.Value, plotHeight)
		d.add(
			Line{X1: lineOriginX - 10, Y1: y, X2: lineOriginX + 0.5, Y2: y, Stroke: opts.axisColor("y"), StrokeWidth: 0.5},
			Text{X: lineOriginX - 20, Y: y + 5, Content: tick.Label, FontSize: 12, Fill: opts.labelsColor(), Anchor: "end"},
		)
	}

	for k, s := range series {
		color := palette.ColorAt(k)
		var prevX, prevY float64
		for j, p := range s.Points {
			x, y := xAt(j), yAt(p.Value)
			if j > 0 {
				d.add(Line{X1: prevX, Y1: prevY, X2: x, Y2: y, Stroke: color, StrokeWidth: lineStrokeWidth})
			}
			prevX, prevY = x, y

			marker := color
			if c, ok := opts.override(opts.PointsColor, s.Name, p.Label); ok {
				marker = c
			}
			content := formatValue(p.Value)
			if t, ok := opts.override(opts.DataText, s.Name, p.Label); ok {
				content = t
			}
			textX := x
			if j == 0 {
				textX += firstLabelShift
			}
			d.add(
				Circle{CX: x, CY: y, R: pointRadius, Fill: marker},
				Text{X: textX, Y: y - 10, Content: content, FontSize: 12, Fill: color, Anchor: "middle", Bold: true},
			)
		}
	}

	labelY := baseY + 10
	verticalOffset := 10*math.Abs(math.Sin(radians(labelRotation))) + 30
	for j, label := range labels {
		x := xAt(j) - 18
		d.add(Text{
			X:        x,
			Y:        labelY + verticalOffset,
			Content:  opts.label(j, label),
			FontSize: 14,
			Fill:     opts.labelsColor(),
			Anchor:   "middle",
			Rotate:   labelRotation,
			PivotX:   x,
			PivotY:   labelY,
		})
	}

	if opts.bannerInfo() {
		legend := legendEntries(series, opts.Legend)
		bannerY := baseY + bannerOffset
		for i, k := range legend {
			x := lineOriginX + interpolate(i, len(legend))*plotWidth
			color := palette.ColorAt(k)
			d.add(
				Circle{CX: x, CY: bannerY, R: bannerRadius, Fill: color},
				Text{X: x, Y: bannerY + 20, Content: series[k].Name, FontSize: 12, Fill: color, Anchor: "middle"},
			)
		}
	}
	return d.done()
}

// interpolate places index j of n evenly across [0, 1]. A single position
// sits at the origin.
func interpolate(j, n int) float64 {
	if n <= 1 {
		return float64(j) / float64(max(n, 1))
	}
	return float64(j) / float64(n-1)
}

// legendEntries returns the series indexes shown in the legend, in dataset
// order. Unnamed series never appear.
func legendEntries(series []Series, include []string) []int {
	var wanted map[string]bool
	if include != nil {
		wanted = make(map[string]bool, len(include))
		for _, name := range include {
			wanted[name] = true
		}
	}
	entries := make([]int, 0, len(series))
	for k, s := range series {
		if s.Name == "" {
			continue
		}
		if wanted != nil && !wanted[s.Name] {
			continue
		}
		entries = append(entries, k)
	}
	return entries
}

func seriesMax(series []Series) float64 {
	highest := math.Inf(-1)
	for _, s := range series {
		if m := maxOf(s.Points); m > highest {
			highest = m
		}
	}
	if math.IsInf(highest, -1) {
		return 0
	}
	return highest
}
