package renderer

import (
	"encoding/json"
	"io"

	"github.com/boopdotpng/amdgpu-lsp/query"
)

// JSONRenderer renders resolution results in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

type jsonResult struct {
	Outcome string      `json:"outcome"`
	Entry   interface{} `json:"entry,omitempty"`
	Variant string      `json:"variant"`
}

func (r *JSONRenderer) Render(result *query.Result, output io.Writer) error {
	outcome := "found"
	switch result.Outcome {
	case query.NotFound:
		outcome = "not_found"
	case query.FilteredOut:
		outcome = "filtered_out"
	}
	payload := jsonResult{Outcome: outcome, Variant: result.Variant.Label()}
	if result.Entry != nil {
		payload.Entry = result.Entry
	}
	return json.NewEncoder(output).Encode(payload)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
