package chart

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// canvasMargin pads the envelope so axes drawn to width+20 stay visible.
const canvasMargin = 20

// Emit writes d as a standalone SVG document. Commands are written in order;
// coordinates are snapped to whole pixels, except arc paths which keep two
// decimals.
func Emit(w io.Writer, d Drawing) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(d.Width)+canvasMargin, px(d.Height)+canvasMargin)
	for _, cmd := range d.Commands {
		switch c := cmd.(type) {
		case Line:
			canvas.Line(px(c.X1), px(c.Y1), px(c.X2), px(c.Y2), lineAttrs(c)...)
		case Rect:
			canvas.Rect(px(c.X), px(c.Y), px(c.Width), px(c.Height), attr("fill", c.Fill))
		case Arc:
			canvas.Path(arcPath(c), attr("fill", c.Fill))
		case Circle:
			canvas.Circle(px(c.CX), px(c.CY), px(c.R), attr("fill", c.Fill))
		case Text:
			canvas.Text(px(c.X), px(c.Y), c.Content, textAttrs(c)...)
		}
	}
	canvas.End()
	return ew.err
}

// Markup returns d serialized as an SVG string.
func Markup(d Drawing) string {
	var b strings.Builder
	_ = Emit(&b, d)
	return b.String()
}

func lineAttrs(c Line) []string {
	attrs := []string{attr("stroke", c.Stroke)}
	if c.StrokeWidth > 0 {
		attrs = append(attrs, attr("stroke-width", strconv.FormatFloat(c.StrokeWidth, 'f', -1, 64)))
	}
	return attrs
}

func textAttrs(c Text) []string {
	attrs := []string{
		attr("font-family", "Arial"),
		attr("font-size", strconv.Itoa(c.FontSize)),
	}
	if c.Bold {
		attrs = append(attrs, attr("font-weight", "bold"))
	}
	if c.Anchor != "" {
		attrs = append(attrs, attr("text-anchor", c.Anchor))
	}
	if c.Baseline != "" {
		attrs = append(attrs, attr("dominant-baseline", c.Baseline))
	}
	attrs = append(attrs, attr("fill", c.Fill))
	if c.Rotate != 0 {
		attrs = append(attrs, attr("transform", fmt.Sprintf("rotate(%s, %d, %d)", strconv.FormatFloat(c.Rotate, 'f', -1, 64), px(c.PivotX), px(c.PivotY))))
	}
	return attrs
}

// arcPath builds the slice outline: center, out to the start angle, along
// the ellipse to the end angle, and closed. A full turn is split in two arcs
// because an arc between identical points draws nothing.
func arcPath(c Arc) string {
	x1, y1 := ellipsePoint(c, c.StartAngle)
	if c.Sweep() >= 360-1e-9 {
		xm, ym := ellipsePoint(c, c.StartAngle+180)
		return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 0,1 %.2f,%.2f A%.2f,%.2f 0 0,1 %.2f,%.2f Z",
			c.CX, c.CY, x1, y1, c.RX, c.RY, xm, ym, c.RX, c.RY, x1, y1)
	}
	x2, y2 := ellipsePoint(c, c.EndAngle)
	large := 0
	if c.LargeArc() {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d,1 %.2f,%.2f Z",
		c.CX, c.CY, x1, y1, c.RX, c.RY, large, x2, y2)
}

func ellipsePoint(c Arc, deg float64) (float64, float64) {
	rad := radians(deg)
	return c.CX + math.Cos(rad)*c.RX, c.CY + math.Sin(rad)*c.RY
}

func attr(name, value string) string {
	return name + `="` + template.HTMLEscapeString(value) + `"`
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
