package chart

// Command is a single positioned drawing primitive. The set of commands is
// closed: Line, Rect, Arc, Circle and Text.
type Command interface {
	command()
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
	Fill                string
}

// Arc is a filled elliptical slice swept clockwise from StartAngle to
// EndAngle, in degrees, around (CX, CY).
type Arc struct {
	CX, CY     float64
	RX, RY     float64
	StartAngle float64
	EndAngle   float64
	Fill       string
}

// Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
	Fill      string
}

// Text is a run of text. When Rotate is non-zero the text is rotated by
// Rotate degrees around (PivotX, PivotY).
type Text struct {
	X, Y     float64
	Content  string
	FontSize int
	Fill     string
	Anchor   string
	Baseline string
	Bold     bool

	Rotate         float64
	PivotX, PivotY float64
}

func (Line) command()   {}
func (Rect) command()   {}
func (Arc) command()    {}
func (Circle) command() {}
func (Text) command()   {}

// Sweep returns the angular extent of the slice.
func (a Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

// LargeArc reports whether the slice covers more than half the ellipse.
func (a Arc) LargeArc() bool {
	return a.Sweep() > 180
}

// Drawing is the ordered command list produced by a layout together with the
// canvas size it was laid out for. Later commands paint over earlier ones.
type Drawing struct {
	Width    float64
	Height   float64
	Commands []Command
}

// drawing accumulates commands for one layout call.
type drawing struct {
	width, height float64
	commands      []Command
}

func (d *drawing) add(cmds ...Command) {
	d.commands = append(d.commands, cmds...)
}

func (d *drawing) done() Drawing {
	return Drawing{Width: d.width, Height: d.height, Commands: d.commands}
}
