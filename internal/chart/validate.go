package chart

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that data and opts satisfy the invariants of kind. It runs
// before any geometry is computed, so a failing render never yields partial
// markup.
func Validate(kind Kind, data Dataset, opts Options) error {
	if _, ok := strategies[kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedChartType, string(kind))
	}
	if err := validateOptionFields(opts); err != nil {
		return err
	}
	if kind == KindLine {
		return validateSeries(data, opts)
	}
	return validateCategorical(kind, data, opts)
}

func validateOptionFields(opts Options) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOption, strings.Join(fields, ", "))
}

func validateCategorical(kind Kind, data Dataset, opts Options) error {
	if data.IsMultiSeries() {
		return fmt.Errorf("%w: %s chart expects a categorical dataset", ErrDegenerateSeries, kind)
	}
	n := len(data.Items)
	if n == 0 {
		return ErrEmptyDataset
	}
	for _, item := range data.Items {
		if err := checkFinite(item.Label, item.Value); err != nil {
			return err
		}
	}
	if err := checkCount("labels", opts.Labels, n); err != nil {
		return err
	}
	if err := checkCount("colors", opts.Colors, n); err != nil {
		return err
	}
	if err := checkAxisColors(opts.AxisColors); err != nil {
		return err
	}
	if opts.DataText != nil || opts.PointsColor != nil || opts.Legend != nil {
		return fmt.Errorf("%w: %s chart has no series to key dataText, pointsColor or legend by", ErrOptionCardinalityMismatch, kind)
	}
	return nil
}

func validateSeries(data Dataset, opts Options) error {
	series := data.asSeries()
	if len(series) == 0 || len(series[0].Points) == 0 {
		return ErrEmptyDataset
	}
	shared := series[0].Labels()
	names := make(map[string]struct{}, len(series))
	for _, s := range series {
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("%w: duplicate series %q", ErrDegenerateSeries, s.Name)
		}
		names[s.Name] = struct{}{}
		if !slices.Equal(s.Labels(), shared) {
			return fmt.Errorf("%w: series %q does not share the point labels of %q", ErrDegenerateSeries, s.Name, series[0].Name)
		}
		for _, p := range s.Points {
			if err := checkFinite(s.Name+"."+p.Label, p.Value); err != nil {
				return err
			}
		}
	}

	if err := checkCount("labels", opts.Labels, len(shared)); err != nil {
		return err
	}
	if err := checkCount("colors", opts.Colors, len(series)); err != nil {
		return err
	}
	if err := checkAxisColors(opts.AxisColors); err != nil {
		return err
	}
	if err := checkKeyed("dataText", opts.DataText, names, shared); err != nil {
		return err
	}
	if err := checkKeyed("pointsColor", opts.PointsColor, names, shared); err != nil {
		return err
	}
	for _, name := range opts.Legend {
		if _, ok := names[name]; !ok {
			return fmt.Errorf("%w: legend names unknown series %q", ErrOptionCardinalityMismatch, name)
		}
	}
	return nil
}

func checkFinite(path string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q", ErrNonFiniteValue, path)
	}
	return nil
}

func checkCount(option string, values []string, want int) error {
	if values == nil || len(values) == want {
		return nil
	}
	return fmt.Errorf("%w: %s has %d entries, dataset has %d", ErrOptionCardinalityMismatch, option, len(values), want)
}

func checkAxisColors(colors map[string]string) error {
	if colors == nil {
		return nil
	}
	_, hasX := colors["x"]
	_, hasY := colors["y"]
	if len(colors) != 2 || !hasX || !hasY {
		return fmt.Errorf("%w: axisColors must hold exactly the keys x and y", ErrOptionCardinalityMismatch)
	}
	return nil
}

func checkKeyed(option string, table map[string]map[string]string, series map[string]struct{}, points []string) error {
	for name, byPoint := range table {
		if _, ok := series[name]; !ok {
			return fmt.Errorf("%w: %s names unknown series %q", ErrOptionCardinalityMismatch, option, name)
		}
		for point := range byPoint {
			if !slices.Contains(points, point) {
				return fmt.Errorf("%w: %s names unknown point %q in series %q", ErrOptionCardinalityMismatch, option, point, name)
			}
		}
	}
	return nil
}
