// Package render serves chart markup through a versioned Redis cache,
// collapsing identical concurrent requests into one render.
package render

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/odyssey-erp/svgchart/internal/chart"
)

// namespace scopes chart ids so they never collide with other SHA1 uuids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/odyssey-erp/svgchart/render"))

// Request is one chart to render.
type Request struct {
	Kind    chart.Kind    `yaml:"kind"`
	Data    chart.Dataset `yaml:"data"`
	Options chart.Options `yaml:"options,omitempty"`
}

// canonicalRequest is the wire and hashed form of a Request. An empty Legend
// hides every series while a nil one lists them all, yet both encode the same
// without the marker.
type canonicalRequest struct {
	Request     `yaml:",inline"`
	EmptyLegend bool `yaml:"emptyLegend,omitempty"`
}

// EncodeRequest serializes req as YAML, keeping dataset order and the
// difference between an empty and an absent legend.
func EncodeRequest(req Request) ([]byte, error) {
	data, err := yaml.Marshal(canonicalRequest{
		Request:     req,
		EmptyLegend: req.Options.Legend != nil && len(req.Options.Legend) == 0,
	})
	if err != nil {
		return nil, fmt.Errorf("render: encode request: %w", err)
	}
	return data, nil
}

// DecodeRequest parses the output of EncodeRequest.
func DecodeRequest(data []byte) (Request, error) {
	var canonical canonicalRequest
	if err := yaml.Unmarshal(data, &canonical); err != nil {
		return Request{}, fmt.Errorf("render: decode request: %w", err)
	}
	req := canonical.Request
	if canonical.EmptyLegend {
		req.Options.Legend = []string{}
	}
	return req, nil
}

// ChartID derives a content address for req. Requests that render to the
// same markup share an id: dataset order is significant, option map order
// is not.
func ChartID(req Request) (uuid.UUID, error) {
	canonical, err := EncodeRequest(req)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(namespace, canonical), nil
}
