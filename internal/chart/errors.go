package chart

import "errors"

var (
	// ErrUnsupportedChartType is returned for a kind outside the known strategies.
	ErrUnsupportedChartType = errors.New("chart: unsupported chart type")
	// ErrEmptyDataset is returned when there is nothing to draw.
	ErrEmptyDataset = errors.New("chart: empty dataset")
	// ErrDegenerateSeries is returned when series disagree on their point labels
	// or the dataset shape does not fit the chart kind.
	ErrDegenerateSeries = errors.New("chart: degenerate series")
	// ErrOptionCardinalityMismatch is returned when an override does not line up
	// with the dataset it overrides.
	ErrOptionCardinalityMismatch = errors.New("chart: option cardinality mismatch")
	// ErrInvalidOption is returned when an option value fails validation.
	ErrInvalidOption = errors.New("chart: invalid option")
	// ErrNonFiniteValue is returned for NaN or infinite data values.
	ErrNonFiniteValue = errors.New("chart: non-finite value")
)
