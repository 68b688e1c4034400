// Package chart lays out small datasets as bar, horizontal-bar, pie, doughnut
// and line charts and serializes the result as SVG.
package chart

import (
	"fmt"
	"strings"
)

// Kind selects a layout strategy.
type Kind string

// Supported chart kinds.
const (
	KindBar           Kind = "bar"
	KindHorizontalBar Kind = "horizontal-bar"
	KindPie           Kind = "pie"
	KindDoughnut      Kind = "doughnut"
	KindLine          Kind = "line"
)

// Strategy turns a validated dataset into an ordered drawing.
type Strategy interface {
	Layout(data Dataset, opts Options) Drawing
}

var strategies = map[Kind]Strategy{
	KindBar:           barLayout{},
	KindHorizontalBar: barLayout{horizontal: true},
	KindPie:           radialLayout{},
	KindDoughnut:      radialLayout{doughnut: true},
	KindLine:          lineLayout{},
}

// Kinds lists the supported chart kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindBar, KindHorizontalBar, KindPie, KindDoughnut, KindLine}
}

// ParseKind resolves a chart type name.
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := strategies[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedChartType, name)
	}
	return kind, nil
}

// StrategyFor returns the layout strategy of kind.
func StrategyFor(kind Kind) (Strategy, error) {
	s, ok := strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartType, string(kind))
	}
	return s, nil
}

// Lay validates the input and returns the drawing without serializing it.
func Lay(kind Kind, data Dataset, opts Options) (Drawing, error) {
	strategy, err := StrategyFor(kind)
	if err != nil {
		return Drawing{}, err
	}
	if err := Validate(kind, data, opts); err != nil {
		return Drawing{}, err
	}
	return strategy.Layout(data, opts), nil
}

// Render validates the input, lays it out and returns the SVG markup.
func Render(kind Kind, data Dataset, opts Options) (string, error) {
	d, err := Lay(kind, data, opts)
	if err != nil {
		return "", err
	}
	return Markup(d), nil
}
