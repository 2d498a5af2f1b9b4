// Package render compiles templates into executables that produce markup
// from a message context.
package render

import (
	"fmt"

	"github.com/mailgun/raymond/v2"
)

// Template is a compiled template.
type Template interface {
	Exec(ctx any) (string, error)
}

// Engine compiles template source together with the partials it may include.
type Engine interface {
	Compile(src string, partials map[string]string) (Template, error)
}

// Handlebars is the default engine. Partials are registered per template so
// separate builds never share state.
type Handlebars struct{}

func (Handlebars) Compile(src string, partials map[string]string) (Template, error) {
	tpl, err := raymond.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("handlebars: %w", err)
	}
	tpl.RegisterPartials(partials)
	return &handlebarsTemplate{tpl: tpl}, nil
}

type handlebarsTemplate struct {
	tpl *raymond.Template
}

func (t *handlebarsTemplate) Exec(ctx any) (string, error) {
	out, err := t.tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("handlebars: %w", err)
	}
	return out, nil
}
