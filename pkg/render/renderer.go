// Package render defines the contract presentation backends implement over a
// compiled form, plus a registry so hosts can discover and select them by
// name.
package render

import (
	"context"

	"github.com/appform-io/formkit/pkg/compiler"
)

// Renderer converts a compiled form's plan into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *compiler.CompiledForm) ([]byte, error)
}
