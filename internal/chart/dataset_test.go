package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDatasetDecodeKeepsOrder(t *testing.T) {
	var d Dataset
	require.NoError(t, yaml.Unmarshal([]byte("zeta: 3\nalpha: 1.5\nmid: 0\n"), &d))
	assert.False(t, d.IsMultiSeries())
	assert.Equal(t, []Item{{"zeta", 3}, {"alpha", 1.5}, {"mid", 0}}, d.Items)
}

func TestDatasetDecodeJSON(t *testing.T) {
	var d Dataset
	require.NoError(t, yaml.Unmarshal([]byte(`{"b": 20, "a": 10}`), &d))
	assert.Equal(t, []string{"b", "a"}, d.Labels())
}

func TestDatasetDecodeMultiSeries(t *testing.T) {
	src := `
north: {jan: 1, feb: 2}
south: {jan: 3, feb: 4}
`
	var d Dataset
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))
	require.True(t, d.IsMultiSeries())
	require.Len(t, d.Series, 2)
	assert.Equal(t, "north", d.Series[0].Name)
	assert.Equal(t, []string{"jan", "feb"}, d.Series[1].Labels())
	assert.Equal(t, 4.0, d.Series[1].Points[1].Value)
	assert.Equal(t, 2, d.Len())
}

func TestDatasetDecodeRejectsBadShapes(t *testing.T) {
	for _, src := range []string{
		"a: 1\nb: {x: 1}\n",
		"a: {x: 1}\nb: 2\n",
		"- 1\n- 2\n",
		"a: [1, 2]\n",
		"a: one\n",
		"a: 1\na: 2\n",
		"s: {x: 1, x: 2}\n",
	} {
		var d Dataset
		assert.Error(t, yaml.Unmarshal([]byte(src), &d), src)
	}
}

func TestDatasetEncodeKeepsOrder(t *testing.T) {
	out, err := yaml.Marshal(Categorical(Item{"b", 2}, Item{"a", 1.5}, Item{"10", 3}))
	require.NoError(t, err)
	assert.Equal(t, "b: 2\na: 1.5\n\"10\": 3\n", string(out))

	var back Dataset
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, []string{"b", "a", "10"}, back.Labels())
}

func TestOptionsDecode(t *testing.T) {
	src := `
width: 640
labels: [one, two]
axisColors: {x: red, y: blue}
bannerInfo: false
dataText:
  north: {jan: "n/a"}
innerRadius: 40
`
	var opts Options
	require.NoError(t, yaml.Unmarshal([]byte(src), &opts))
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, []string{"one", "two"}, opts.Labels)
	assert.Equal(t, "blue", opts.axisColor("y"))
	assert.False(t, opts.bannerInfo())
	assert.Equal(t, "n/a", opts.DataText["north"]["jan"])
	assert.Equal(t, 40.0, opts.innerRadius())
}
