package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarLayoutTwoItems(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", 10, "b", 20)...), Options{})
	require.NoError(t, err)

	assert.Equal(t, 400.0, d.Width)
	assert.Equal(t, 300.0, d.Height)

	rects := commandsOf[Rect](d)
	require.Len(t, rects, 2)
	assert.InDelta(t, 100, rects[0].Height, 1e-9)
	assert.InDelta(t, 200, rects[1].Height, 1e-9)
	assert.InDelta(t, 150, rects[0].Y, 1e-9)
	assert.InDelta(t, 50, rects[1].Y, 1e-9)
	assert.InDelta(t, 140, rects[0].Width, 1e-9)
	assert.InDelta(t, 55, rects[0].X, 1e-9)
	assert.InDelta(t, 205, rects[1].X, 1e-9)
	assert.Equal(t, "#2196F3", rects[0].Fill)
	assert.Equal(t, "#4CAF50", rects[1].Fill)

	axis := d.Commands[:2]
	assert.Equal(t, Line{X1: 50, Y1: 250, X2: 420, Y2: 250, Stroke: "#000000"}, axis[0])
	assert.Equal(t, Line{X1: 50, Y1: 250, X2: 50, Y2: 50, Stroke: "#000000"}, axis[1])

	assert.Len(t, textsWithContent(d, "0"), 1)
	assert.Len(t, textsWithContent(d, "20"), 2, "tick label and bar value")
}

func TestBarTickPositionsMatchBarHeights(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", 10, "b", 20)...), Options{})
	require.NoError(t, err)

	var tickY float64
	for _, l := range commandsOf[Line](d) {
		if l.StrokeWidth == 0.5 {
			tickY = l.Y1
		}
	}
	top := commandsOf[Rect](d)[1]
	assert.InDelta(t, top.Y, tickY, 1e-9)
}

func TestBarLayoutGrowsWidthWithItemCount(t *testing.T) {
	data := make([]Item, 20)
	for i := range data {
		data[i] = Item{Label: strings.Repeat("x", i+1), Value: float64(i)}
	}
	d, err := Lay(KindBar, Categorical(data...), Options{Width: 300})
	require.NoError(t, err)
	assert.Equal(t, 700.0, d.Width)

	rects := commandsOf[Rect](d)
	require.Len(t, rects, 20)
	for i := 1; i < len(rects); i++ {
		assert.Greater(t, rects[i].X, rects[i-1].X+rects[i-1].Width, "bars must not overlap")
	}
}

func TestBarLabelsAreRotatedAndPaletteColored(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", 1, "b", 2)...), Options{Labels: []string{"Alpha", "Beta"}})
	require.NoError(t, err)

	labels := textsWithContent(d, "Alpha")
	require.Len(t, labels, 1)
	assert.Equal(t, -45.0, labels[0].Rotate)
	assert.InDelta(t, 125, labels[0].PivotX, 1e-9)
	assert.InDelta(t, 280, labels[0].PivotY, 1e-9)
	assert.Equal(t, "#2196F3", labels[0].Fill)

	d, err = Lay(KindBar, Categorical(items("a", 1)...), Options{PaletteLabels: Bool(false), LabelsColor: "#333333"})
	require.NoError(t, err)
	assert.Equal(t, "#333333", textsWithContent(d, "a")[0].Fill)
}

func TestBarSingleZeroItem(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", 0)...), Options{})
	require.NoError(t, err)

	rects := commandsOf[Rect](d)
	require.Len(t, rects, 1)
	assert.Zero(t, rects[0].Height)

	ticks := 0
	for _, l := range commandsOf[Line](d) {
		if l.StrokeWidth == 0.5 {
			ticks++
			assert.InDelta(t, 250, l.Y1, 1e-9)
		}
	}
	assert.Equal(t, 2, ticks)
	assert.Len(t, textsWithContent(d, "0"), 3, "two ticks and the bar value")
}

func TestBarNegativeValueDrawsEmptyBar(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", -5, "b", 5)...), Options{})
	require.NoError(t, err)
	rects := commandsOf[Rect](d)
	assert.Zero(t, rects[0].Height)
	assert.InDelta(t, 200, rects[1].Height, 1e-9)
}

func TestBarAxisColors(t *testing.T) {
	d, err := Lay(KindBar, Categorical(items("a", 1)...), Options{AxisColors: map[string]string{"x": "red", "y": "blue"}})
	require.NoError(t, err)
	assert.Equal(t, "red", d.Commands[0].(Line).Stroke)
	assert.Equal(t, "blue", d.Commands[1].(Line).Stroke)
}

func TestHorizontalBarLayout(t *testing.T) {
	d, err := Lay(KindHorizontalBar, Categorical(items("a", 10, "b", 20)...), Options{})
	require.NoError(t, err)

	assert.Equal(t, 400.0, d.Width)
	assert.Equal(t, 300.0, d.Height)

	rects := commandsOf[Rect](d)
	require.Len(t, rects, 2)
	assert.InDelta(t, 120, rects[0].Height, 1e-9)
	assert.InDelta(t, 160, rects[0].Y, 1e-9)
	assert.InDelta(t, 30, rects[1].Y, 1e-9)
	assert.InDelta(t, 140, rects[0].Width, 1e-9)
	assert.InDelta(t, 280, rects[1].Width, 1e-9)
	for _, r := range rects {
		assert.Equal(t, 100.0, r.X)
	}

	label := textsWithContent(d, "a")
	require.Len(t, label, 1)
	assert.Zero(t, label[0].Rotate)
	assert.Equal(t, "end", label[0].Anchor)
	assert.Equal(t, "#000000", label[0].Fill)
}

func TestHorizontalBarGrowsHeight(t *testing.T) {
	data := make([]Item, 10)
	for i := range data {
		data[i] = Item{Label: string(rune('a' + i)), Value: 1}
	}
	d, err := Lay(KindHorizontalBar, Categorical(data...), Options{})
	require.NoError(t, err)
	assert.Equal(t, 400.0, d.Height)
	for _, r := range commandsOf[Rect](d) {
		assert.Greater(t, r.Height, 0.0)
		assert.GreaterOrEqual(t, r.Y, 20.0)
	}
}
