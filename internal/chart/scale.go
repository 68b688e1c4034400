package chart

import (
	"math"
	"strconv"
)

const (
	minTicks = 2
	maxTicks = 11
)

// Tick is one graduation on a value axis. Value drives geometry, Label is
// what gets printed.
type Tick struct {
	Value float64
	Label string
}

// Scale is the outcome of the tick computation for one value axis.
type Scale struct {
	Max   float64
	Ticks []Tick
}

// ComputeTicks produces between 2 and 11 evenly spaced ticks from zero up to
// maxValue. The last tick is not guaranteed to be a round number.
func ComputeTicks(maxValue float64) Scale {
	if math.IsNaN(maxValue) || math.IsInf(maxValue, 0) || maxValue < 0 {
		maxValue = 0
	}
	count := maxTicks
	if maxValue < maxTicks {
		count = min(int(math.Ceil(maxValue))+1, maxTicks)
	}
	count = max(count, minTicks)

	// an all-zero axis keeps every tick at zero
	interval := maxValue / float64(count-1)

	ticks := make([]Tick, count)
	for i := range ticks {
		value := float64(i) * interval
		ticks[i] = Tick{Value: value, Label: formatTick(value)}
	}
	return Scale{Max: maxValue, Ticks: ticks}
}

// Count returns the number of ticks.
func (s Scale) Count() int {
	return len(s.Ticks)
}

// Position maps value onto an axis of the given extent using the same
// proportion-of-max rule as the bars.
func (s Scale) Position(value, extent float64) float64 {
	return proportion(value, s.Max) * extent
}

// proportion guards the division for an all-zero dataset.
func proportion(value, maxValue float64) float64 {
	if maxValue <= 0 {
		maxValue = 1
	}
	return value / maxValue
}

func formatTick(v float64) string {
	if v != math.Trunc(v) {
		v = math.Round(v*100) / 100
	}
	return formatValue(v)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
