package chart

import "math"

const (
	barDefaultWidth  = 400.0
	barDefaultHeight = 300.0
	barMinSlot       = 30.0

	barOriginX = 50.0
	barTop     = 50.0
	barBottom  = 50.0

	hbarOriginX = 100.0
	hbarMargin  = 20.0
	hbarGap     = 10.0

	labelRotation = -45.0
)

// barLayout draws vertical bars, or horizontal ones growing right from the
// y-axis.
type barLayout struct {
	horizontal bool
}

func (l barLayout) Layout(data Dataset, opts Options) Drawing {
	if l.horizontal {
		return layoutHorizontalBars(data.Items, opts)
	}
	return layoutBars(data.Items, opts)
}

func layoutBars(items []Item, opts Options) Drawing {
	n := float64(len(items))
	width := math.Max(opts.width(barDefaultWidth), 100+barMinSlot*n)
	height := opts.height(barDefaultHeight)
	baseY := height - barBottom
	plotHeight := baseY - barTop
	maxValue := maxOf(items)
	scale := ComputeTicks(maxValue)
	palette := opts.palette()

	d := &drawing{width: width, height: height}
	d.add(
		Line{X1: barOriginX, Y1: baseY, X2: width + 20, Y2: baseY, Stroke: opts.axisColor("x")},
		Line{X1: barOriginX, Y1: baseY, X2: barOriginX, Y2: barTop, Stroke: opts.axisColor("y")},
	)

	for _, tick := range scale.Ticks {
		y := baseY - scale.Position(tick.Value, plotHeight)
		d.add(
			Line{X1: barOriginX - 10, Y1: y, X2: barOriginX + 0.5, Y2: y, Stroke: opts.axisColor("y"), StrokeWidth: 0.5},
			Text{X: barOriginX - 20, Y: y + 5, Content: tick.Label, FontSize: 12, Fill: opts.labelsColor(), Anchor: "end"},
		)
	}

	slot := (width - 100) / n
	spacing := clamp(40/n, 5, 10)
	barWidth := slot - spacing
	for i, item := range items {
		x := barOriginX + float64(i)*slot + spacing/2
		h := math.Max(0, proportion(item.Value, maxValue)*plotHeight)
		y := baseY - h
		d.add(
			Rect{X: x, Y: y, Width: barWidth, Height: h, Fill: palette.ColorAt(i)},
			Text{X: x + barWidth/2, Y: y + h/2, Content: formatValue(item.Value), FontSize: 14, Fill: opts.dataColor(), Anchor: "middle", Baseline: "middle"},
		)
	}

	paletteLabels := opts.paletteLabels(true)
	labelY := baseY + 30
	verticalOffset := 10 * math.Abs(math.Sin(radians(labelRotation)))
	for i, item := range items {
		center := barOriginX + (float64(i)+0.5)*slot
		fill := opts.labelsColor()
		if paletteLabels {
			fill = palette.ColorAt(i)
		}
		d.add(Text{
			X:        center - slot/4,
			Y:        labelY + verticalOffset,
			Content:  opts.label(i, item.Label),
			FontSize: 14,
			Fill:     fill,
			Anchor:   "middle",
			Rotate:   labelRotation,
			PivotX:   center,
			PivotY:   labelY,
		})
	}
	return d.done()
}

func layoutHorizontalBars(items []Item, opts Options) Drawing {
	n := float64(len(items))
	width := opts.width(barDefaultWidth)
	height := math.Max(opts.height(barDefaultHeight), 100+barMinSlot*n)
	baseY := height - hbarMargin
	plotWidth := width - 120
	thickness := (height - 2*hbarMargin - hbarGap*n) / n
	maxValue := maxOf(items)
	scale := ComputeTicks(maxValue)
	palette := opts.palette()

	d := &drawing{width: width, height: height}
	d.add(
		Line{X1: hbarOriginX, Y1: baseY, X2: hbarOriginX, Y2: hbarMargin, Stroke: opts.axisColor("y")},
		Line{X1: hbarOriginX, Y1: baseY, X2: width + 20, Y2: baseY, Stroke: opts.axisColor("x")},
	)

	tickLabelY := baseY + 20
	for _, tick := range scale.Ticks {
		x := hbarOriginX + scale.Position(tick.Value, plotWidth)
		d.add(
			Line{X1: x, Y1: baseY, X2: x, Y2: baseY + 10.5, Stroke: opts.axisColor("x"), StrokeWidth: 0.5},
			Text{
				X: x, Y: tickLabelY, Content: tick.Label, FontSize: 12, Fill: opts.labelsColor(),
				Anchor: "middle", Baseline: "text-before-edge",
				Rotate: labelRotation, PivotX: x, PivotY: tickLabelY,
			},
		)
	}

	for i, item := range items {
		y := rowY(i, baseY, thickness)
		length := math.Max(0, proportion(item.Value, maxValue)*plotWidth)
		d.add(
			Rect{X: hbarOriginX, Y: y, Width: length, Height: thickness, Fill: palette.ColorAt(i)},
			Text{X: hbarOriginX + length/2, Y: y + thickness/2, Content: formatValue(item.Value), FontSize: 12, Fill: opts.dataColor(), Anchor: "middle", Baseline: "middle"},
		)
	}

	paletteLabels := opts.paletteLabels(false)
	for i, item := range items {
		fill := opts.labelsColor()
		if paletteLabels {
			fill = palette.ColorAt(i)
		}
		d.add(Text{
			X:        hbarOriginX - 5,
			Y:        rowY(i, baseY, thickness) + thickness/2,
			Content:  opts.label(i, item.Label),
			FontSize: 14,
			Fill:     fill,
			Anchor:   "end",
			Baseline: "middle",
		})
	}
	return d.done()
}

// rowY is the top edge of the i-th horizontal bar, counted up from the x-axis.
func rowY(i int, baseY, thickness float64) float64 {
	return baseY - thickness - float64(i)*(thickness+hbarGap)
}

func maxOf(items []Item) float64 {
	if len(items) == 0 {
		return 0
	}
	highest := items[0].Value
	for _, item := range items[1:] {
		if item.Value > highest {
			highest = item.Value
		}
	}
	return highest
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
