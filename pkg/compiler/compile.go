package compiler

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
	"github.com/appform-io/formkit/pkg/rule"
)

// CompiledForm is the immutable validation contract derived once from a
// definition: the rule map keyed by question name plus the render plan
// handed to presentation layers. It is safe for any number of concurrent
// validation calls; there are no writers after Compile returns.
type CompiledForm struct {
	metadata formdef.Metadata
	names    []string
	rules    map[string]rule.Rule
	plan     []formdef.Node
}

// Compile validates the definition and folds its content tree into a
// CompiledForm. Traversal is depth-first, left to right; sections and
// layouts are transparent containers. Any definition issue aborts the whole
// compile with a *formdef.DefinitionError — no partial form is produced.
func Compile(def *formdef.FormDefinition, reg *question.Registry) (*CompiledForm, error) {
	if reg == nil {
		reg = question.DefaultRegistry()
	}
	if issues := ValidateDefinition(def, reg); len(issues) > 0 {
		return nil, &formdef.DefinitionError{Issues: issues}
	}

	cf := &CompiledForm{
		metadata: def.Metadata,
		rules:    make(map[string]rule.Rule),
		plan:     def.Content,
	}
	cf.fold(def.Content, reg)
	return cf, nil
}

func (cf *CompiledForm) fold(nodes []formdef.Node, reg *question.Registry) {
	for _, node := range nodes {
		switch typed := node.(type) {
		case *formdef.Section:
			cf.fold(typed.Content, reg)
		case *formdef.Layout:
			cf.fold(typed.Content, reg)
		case *formdef.Question:
			// Lookup cannot miss here: ValidateDefinition already vetted
			// every leaf against the registry.
			descriptor, err := reg.Lookup(typed.QuestionType)
			if err != nil {
				panic(err)
			}
			cf.names = append(cf.names, typed.Name)
			cf.rules[typed.Name] = descriptor.Rule(typed)
		}
	}
}

// Metadata returns the form-level metadata.
func (cf *CompiledForm) Metadata() formdef.Metadata {
	return cf.metadata
}

// Names returns the field names in traversal order. The order is not
// significant for validation but keeps error reporting deterministic.
func (cf *CompiledForm) Names() []string {
	return append([]string(nil), cf.names...)
}

// Rule returns the compiled rule for a field name.
func (cf *CompiledForm) Rule(name string) (rule.Rule, bool) {
	r, ok := cf.rules[name]
	return r, ok
}

// Plan returns the content tree for the rendering layer.
func (cf *CompiledForm) Plan() []formdef.Node {
	return cf.plan
}
