package question

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Select is a dropdown question: one choice from a static list or a remote
// dataset marker.
type Select struct{}

// Type implements Descriptor.
func (Select) Type() formdef.QuestionType { return formdef.TypeSelect }

// ValidateConfig implements Descriptor.
func (Select) ValidateConfig(q *formdef.Question) []string {
	if _, err := ParseOptions(q.Options); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// Rule implements Descriptor.
func (Select) Rule(q *formdef.Question) rule.Rule {
	return textRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
	}
}
