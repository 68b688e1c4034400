package chart

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var errDatasetShape = errors.New("chart: dataset must map labels to numbers or series to points")

// Item is one labelled value.
type Item struct {
	Label string
	Value float64
}

// Series is a named ordered run of points sharing the chart's x-axis.
type Series struct {
	Name   string
	Points []Item
}

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}

// Dataset is the input to a chart. Exactly one of Items (categorical) or
// Series (multi-series) is populated.
type Dataset struct {
	Items  []Item
	Series []Series
}

// Categorical builds a categorical dataset from ordered items.
func Categorical(items ...Item) Dataset {
	return Dataset{Items: items}
}

// MultiSeries builds a multi-series dataset.
func MultiSeries(series ...Series) Dataset {
	return Dataset{Series: series}
}

// IsMultiSeries reports whether the dataset carries named series.
func (d Dataset) IsMultiSeries() bool {
	return len(d.Series) > 0
}

// Len returns the number of categorical items or series.
func (d Dataset) Len() int {
	if d.IsMultiSeries() {
		return len(d.Series)
	}
	return len(d.Items)
}

// Labels returns the categorical labels, or the shared point labels of a
// multi-series dataset.
func (d Dataset) Labels() []string {
	if d.IsMultiSeries() {
		return d.Series[0].Labels()
	}
	labels := make([]string, len(d.Items))
	for i, item := range d.Items {
		labels[i] = item.Label
	}
	return labels
}

// asSeries lifts a categorical dataset into a single unnamed series.
func (d Dataset) asSeries() []Series {
	if d.IsMultiSeries() {
		return d.Series
	}
	return []Series{{Points: d.Items}}
}

// UnmarshalYAML decodes an ordered mapping, keeping the document's key order.
// JSON objects decode the same way.
func (d *Dataset) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return errDatasetShape
	}
	var out Dataset
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if _, dup := seen[key]; dup {
			return fmt.Errorf("chart: duplicate dataset key %q", key)
		}
		seen[key] = struct{}{}

		switch value.Kind {
		case yaml.ScalarNode:
			if len(out.Series) > 0 {
				return errDatasetShape
			}
			v, err := decodeNumber(key, value)
			if err != nil {
				return err
			}
			out.Items = append(out.Items, Item{Label: key, Value: v})
		case yaml.MappingNode:
			if len(out.Items) > 0 {
				return errDatasetShape
			}
			points, err := decodePoints(key, value)
			if err != nil {
				return err
			}
			out.Series = append(out.Series, Series{Name: key, Points: points})
		default:
			return errDatasetShape
		}
	}
	*d = out
	return nil
}

func decodePoints(series string, node *yaml.Node) ([]Item, error) {
	points := make([]Item, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("chart: duplicate point %q in series %q", key, series)
		}
		seen[key] = struct{}{}
		if value.Kind != yaml.ScalarNode {
			return nil, errDatasetShape
		}
		v, err := decodeNumber(series+"."+key, value)
		if err != nil {
			return nil, err
		}
		points = append(points, Item{Label: key, Value: v})
	}
	return points, nil
}

func decodeNumber(path string, node *yaml.Node) (float64, error) {
	var v float64
	if err := node.Decode(&v); err != nil {
		return 0, fmt.Errorf("chart: value at %q is not a number: %w", path, err)
	}
	return v, nil
}

// MarshalYAML encodes the dataset as an ordered mapping.
func (d Dataset) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if d.IsMultiSeries() {
		for _, s := range d.Series {
			points := &yaml.Node{Kind: yaml.MappingNode}
			for _, p := range s.Points {
				points.Content = append(points.Content, keyNode(p.Label), numberNode(p.Value))
			}
			root.Content = append(root.Content, keyNode(s.Name), points)
		}
		return root, nil
	}
	for _, item := range d.Items {
		root.Content = append(root.Content, keyNode(item.Label), numberNode(item.Value))
	}
	return root, nil
}

func keyNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func numberNode(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: formatValue(v)}
}
