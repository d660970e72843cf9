// Package renderer turns resolved knowledge-base records into the
// presentation shapes the protocol dispatcher hands to editors: hover
// markdown, parameter-labeled signatures and completion labels.
package renderer

import (
	"io"

	"github.com/boopdotpng/amdgpu-lsp/query"
)

// Renderer defines the interface for rendering resolved records in
// different formats.
type Renderer interface {
	// Render writes the presentation of a resolution result to the
	// provided writer.
	Render(result *query.Result, output io.Writer) error

	// Format returns the name of the output format (e.g., "json",
	// "markdown").
	Format() string
}
