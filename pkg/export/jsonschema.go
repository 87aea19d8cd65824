// Package export derives a JSON Schema view of a form's validation contract
// so a backend can double-validate submissions against the same constraints
// the client compiled.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
)

// Schema exports a definition as an object schema with one property per
// question, keyed by question name. The definition is fully validated first;
// an invalid definition yields a *formdef.DefinitionError.
func Schema(def *formdef.FormDefinition, reg *question.Registry) (*openapi3.Schema, error) {
	if reg == nil {
		reg = question.DefaultRegistry()
	}
	if issues := compiler.ValidateDefinition(def, reg); len(issues) > 0 {
		return nil, &formdef.DefinitionError{Issues: issues}
	}

	root := openapi3.NewObjectSchema()
	root.Title = def.Metadata.Title
	root.Description = def.Metadata.Description

	if err := walkNodes(root, def.Content); err != nil {
		return nil, err
	}
	return root, nil
}

// MarshalSchema renders the exported schema as indented JSON.
func MarshalSchema(def *formdef.FormDefinition, reg *question.Registry) ([]byte, error) {
	schema, err := Schema(def, reg)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal schema: %w", err)
	}
	return data, nil
}

func walkNodes(root *openapi3.Schema, nodes []formdef.Node) error {
	for _, node := range nodes {
		switch typed := node.(type) {
		case *formdef.Section:
			if err := walkNodes(root, typed.Content); err != nil {
				return err
			}
		case *formdef.Layout:
			if err := walkNodes(root, typed.Content); err != nil {
				return err
			}
		case *formdef.Question:
			property, err := questionSchema(typed)
			if err != nil {
				return err
			}
			root.WithProperty(typed.Name, property)
			if typed.Required {
				root.Required = append(root.Required, typed.Name)
			}
		}
	}
	return nil
}

func questionSchema(q *formdef.Question) (*openapi3.Schema, error) {
	var schema *openapi3.Schema
	switch q.QuestionType {
	case formdef.TypeShortAnswer:
		schema = openapi3.NewStringSchema()
		var cfg struct {
			MinLength *int `json:"minLength"`
			MaxLength *int `json:"maxLength"`
		}
		decodeConfig(q.Validation, &cfg)
		if cfg.MinLength != nil && *cfg.MinLength >= 0 {
			schema.MinLength = uint64(*cfg.MinLength)
		}
		if cfg.MaxLength != nil && *cfg.MaxLength >= 0 {
			limit := uint64(*cfg.MaxLength)
			schema.MaxLength = &limit
		}
	case formdef.TypeParagraph:
		schema = openapi3.NewStringSchema()
		// Paragraph bounds count words, which JSON Schema cannot express;
		// carried as extensions for consumers that understand them.
		var cfg struct {
			MinLength *int `json:"minLength"`
			MaxLength *int `json:"maxLength"`
		}
		decodeConfig(q.Validation, &cfg)
		if cfg.MinLength != nil || cfg.MaxLength != nil {
			schema.Extensions = map[string]any{}
			if cfg.MinLength != nil {
				schema.Extensions["x-min-words"] = *cfg.MinLength
			}
			if cfg.MaxLength != nil {
				schema.Extensions["x-max-words"] = *cfg.MaxLength
			}
		}
	case formdef.TypeNumber:
		schema = openapi3.NewFloat64Schema()
		var cfg struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		}
		decodeConfig(q.Validation, &cfg)
		schema.Min = cfg.Min
		schema.Max = cfg.Max
	case formdef.TypeMultipleChoice, formdef.TypeSelect:
		schema = openapi3.NewStringSchema()
		schema.Enum = optionEnum(q)
	case formdef.TypeCheckbox, formdef.TypeMultiSelect:
		item := openapi3.NewStringSchema()
		item.Enum = optionEnum(q)
		schema = openapi3.NewArraySchema()
		schema.Items = item.NewRef()
		if q.Required {
			schema.MinItems = 1
		}
	case formdef.TypeUpload:
		item := openapi3.NewStringSchema()
		item.Format = "binary"
		schema = openapi3.NewArraySchema()
		schema.Items = item.NewRef()
		var cfg struct {
			MaxSize *float64 `json:"maxSize"`
		}
		decodeConfig(q.Validation, &cfg)
		maxMiB := float64(question.DefaultMaxUploadMiB)
		if cfg.MaxSize != nil {
			maxMiB = *cfg.MaxSize
		}
		schema.Extensions = map[string]any{"x-max-size-bytes": int64(maxMiB * 1024 * 1024)}
		if q.Required {
			schema.MinItems = 1
		}
	case formdef.TypeDate:
		schema = openapi3.NewStringSchema()
		schema.Format = "date"
	case formdef.TypeURL:
		schema = openapi3.NewStringSchema()
		schema.Format = "uri"
		var cfg struct {
			MaxLength *int `json:"maxLength"`
		}
		decodeConfig(q.Validation, &cfg)
		if cfg.MaxLength != nil && *cfg.MaxLength >= 0 {
			limit := uint64(*cfg.MaxLength)
			schema.MaxLength = &limit
		}
		if q.Regex != "" {
			schema.Pattern = q.Regex
		}
	default:
		return nil, fmt.Errorf("export: unsupported question type %q", q.QuestionType)
	}

	schema.Description = q.Description
	if q.Label != "" {
		schema.Title = q.Label
	}
	return schema, nil
}

func optionEnum(q *formdef.Question) []any {
	src, err := question.ParseOptions(q.Options)
	if err != nil {
		return nil
	}
	options := src.Static
	if options == nil && src.Remote != nil {
		options = src.Remote.YearOptions()
	}
	if len(options) == 0 {
		return nil
	}
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return values
}

func decodeConfig(raw json.RawMessage, target any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, target)
}
