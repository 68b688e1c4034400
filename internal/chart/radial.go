package chart

import "math"

const (
	radialDefaultSize = 400.0
	doughnutLabelRing = 0.8
)

// radialLayout draws pie slices. The doughnut variant only moves the labels
// outward; no hole is cut.
type radialLayout struct {
	doughnut bool
}

type slice struct {
	index      int
	item       Item
	start, end float64
}

func (l radialLayout) Layout(data Dataset, opts Options) Drawing {
	width := opts.width(radialDefaultSize)
	height := opts.height(radialDefaultSize)
	cx, cy := width/2, height/2

	d := &drawing{width: width, height: height}
	slices := sliceItems(data.Items)
	if len(slices) == 0 {
		return d.done()
	}

	palette := opts.palette()
	for k, s := range slices {
		fill := palette.ColorAt(k)
		// explicit colors pair with items, so a skipped item keeps its color slot
		if opts.Colors != nil {
			fill = palette.ColorAt(s.index)
		}
		d.add(Arc{CX: cx, CY: cy, RX: width / 2, RY: height / 2, StartAngle: s.start, EndAngle: s.end, Fill: fill})
	}

	labelRX, labelRY := width/4, height/4
	if l.doughnut {
		inner := opts.innerRadius()
		labelRX = (inner + width/4) * doughnutLabelRing
		labelRY = (inner + height/4) * doughnutLabelRing
	}
	for _, s := range slices {
		mid := radians((s.start + s.end) / 2)
		content := formatValue(s.item.Value)
		if opts.Labels != nil {
			content = opts.label(s.index, s.item.Label) + " (" + content + ")"
		}
		d.add(Text{
			X:        cx + math.Cos(mid)*labelRX,
			Y:        cy + math.Sin(mid)*labelRY,
			Content:  content,
			FontSize: 14,
			Fill:     opts.labelsColor(),
			Anchor:   "middle",
			Baseline: "middle",
		})
	}
	return d.done()
}

// sliceItems assigns each positive item its share of the full circle.
// Non-positive items are dropped without consuming any angle.
func sliceItems(items []Item) []slice {
	total := 0.0
	for _, item := range items {
		if item.Value > 0 {
			total += item.Value
		}
	}
	if total <= 0 {
		return nil
	}
	slices := make([]slice, 0, len(items))
	start := 0.0
	for i, item := range items {
		if item.Value <= 0 {
			continue
		}
		end := start + item.Value/total*360
		slices = append(slices, slice{index: i, item: item, start: start, end: end})
		start = end
	}
	return slices
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
