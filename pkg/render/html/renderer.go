// Package html renders a compiled form's plan as structural, unstyled HTML.
// Styling and interactive behaviour remain the host application's concern;
// the output is the markup skeleton a form page wraps.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templates fs.FS
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templates = os.DirFS(path)
		}
	}
}

// Renderer renders compiled forms through a pongo2 template set.
type Renderer struct {
	set *pongo2.TemplateSet
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templates: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	set := pongo2.NewSet("formkit-html", pongo2.NewFSLoader(cfg.templates))
	return &Renderer{set: set}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the media type of rendered output.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the form markup for a compiled form's plan.
func (r *Renderer) Render(ctx context.Context, cf *compiler.CompiledForm) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cf == nil {
		return nil, fmt.Errorf("html renderer: compiled form is nil")
	}

	content, err := r.renderNodes(cf.Plan())
	if err != nil {
		return nil, err
	}
	meta := cf.Metadata()
	out, err := r.execute("templates/form.tmpl", pongo2.Context{
		"title":       meta.Title,
		"description": meta.Description,
		"content":     content,
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) renderNodes(nodes []formdef.Node) (string, error) {
	var builder strings.Builder
	for _, node := range nodes {
		rendered, err := r.renderNode(node)
		if err != nil {
			return "", err
		}
		builder.WriteString(rendered)
	}
	return builder.String(), nil
}

func (r *Renderer) renderNode(node formdef.Node) (string, error) {
	switch typed := node.(type) {
	case *formdef.Section:
		children, err := r.renderNodes(typed.Content)
		if err != nil {
			return "", err
		}
		return r.execute("templates/section.tmpl", pongo2.Context{
			"label":    typed.Label,
			"children": children,
		})
	case *formdef.Layout:
		children, err := r.renderNodes(typed.Content)
		if err != nil {
			return "", err
		}
		return r.execute("templates/layout.tmpl", pongo2.Context{
			"children": children,
		})
	case *formdef.Question:
		return r.renderQuestion(typed)
	default:
		return "", fmt.Errorf("html renderer: unsupported node %T", node)
	}
}

func (r *Renderer) renderQuestion(q *formdef.Question) (string, error) {
	view := pongo2.Context{
		"id":          q.ID,
		"name":        q.Name,
		"widget":      widgetFor(q.QuestionType),
		"inputType":   inputTypeFor(q.QuestionType),
		"label":       labelMarkup(q),
		"required":    q.Required,
		"placeholder": q.Placeholder,
		"description": q.Description,
		"options":     optionsFor(q),
	}
	return r.execute("templates/question.tmpl", view)
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tmpl, err := r.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("html renderer: load template %q: %w", name, err)
	}
	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("html renderer: execute template %q: %w", name, err)
	}
	return out, nil
}

func widgetFor(qt formdef.QuestionType) string {
	switch qt {
	case formdef.TypeParagraph:
		return "textarea"
	case formdef.TypeMultipleChoice:
		return "radio"
	case formdef.TypeCheckbox:
		return "checkbox"
	case formdef.TypeSelect:
		return "select"
	case formdef.TypeMultiSelect:
		return "multiselect"
	default:
		return "input"
	}
}

func inputTypeFor(qt formdef.QuestionType) string {
	switch qt {
	case formdef.TypeNumber:
		return "number"
	case formdef.TypeDate:
		return "date"
	case formdef.TypeURL:
		return "url"
	case formdef.TypeUpload:
		return "file"
	default:
		return "text"
	}
}

func optionsFor(q *formdef.Question) []question.Option {
	src, err := question.ParseOptions(q.Options)
	if err != nil {
		return nil
	}
	if src.Remote != nil {
		return src.Remote.YearOptions()
	}
	return src.Static
}
