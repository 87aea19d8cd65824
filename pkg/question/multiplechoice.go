package question

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// MultipleChoice is a radio-group question: exactly one option, always from
// a static list.
type MultipleChoice struct{}

// Type implements Descriptor.
func (MultipleChoice) Type() formdef.QuestionType { return formdef.TypeMultipleChoice }

// ValidateConfig implements Descriptor.
func (MultipleChoice) ValidateConfig(q *formdef.Question) []string {
	return checkStaticOptions(q)
}

// Rule implements Descriptor.
func (MultipleChoice) Rule(q *formdef.Question) rule.Rule {
	return textRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
	}
}

func checkStaticOptions(q *formdef.Question) []string {
	src, err := ParseOptions(q.Options)
	if err != nil {
		return []string{err.Error()}
	}
	if src.Remote != nil {
		return []string{"options must be a static {label, value} list"}
	}
	if len(src.Static) == 0 {
		return []string{"options must list at least one choice"}
	}
	return nil
}
