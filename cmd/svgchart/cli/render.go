package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odyssey-erp/svgchart/internal/chart"
	"github.com/odyssey-erp/svgchart/internal/render"
)

type requestFile struct {
	Kind    string        `yaml:"kind"`
	Data    chart.Dataset `yaml:"data"`
	Options chart.Options `yaml:"options"`
}

// LoadRequest decodes a YAML or JSON chart request. A non-empty kind
// overrides the one in the document.
func LoadRequest(r io.Reader, kind string) (render.Request, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc requestFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return render.Request{}, errors.New("render cli: request is empty")
		}
		return render.Request{}, fmt.Errorf("render cli: decode request: %w", err)
	}
	if kind == "" {
		kind = doc.Kind
	}
	if kind == "" {
		return render.Request{}, errors.New("render cli: chart kind missing, set kind in the request or pass --kind")
	}
	parsed, err := chart.ParseKind(kind)
	if err != nil {
		return render.Request{}, err
	}
	return render.Request{Kind: parsed, Data: doc.Data, Options: doc.Options}, nil
}

// LoadRequestFile reads a request from path, or stdin when path is "-".
func LoadRequestFile(path, kind string, stdin io.Reader) (render.Request, error) {
	if path == "-" {
		return LoadRequest(stdin, kind)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return render.Request{}, fmt.Errorf("render cli: %w", err)
	}
	return LoadRequest(bytes.NewReader(raw), kind)
}

// Render produces the markup of req.
func Render(req render.Request) (string, error) {
	return chart.Render(req.Kind, req.Data, req.Options)
}

// WriteMarkup writes markup to path, or to w when path is empty.
func WriteMarkup(w io.Writer, path, markup string) error {
	if path == "" {
		_, err := io.WriteString(w, markup)
		return err
	}
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("render cli: %w", err)
	}
	return nil
}
