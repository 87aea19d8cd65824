package question

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// MultiSelect is a dropdown allowing several choices, from a static list or
// a remote dataset marker.
type MultiSelect struct{}

// Type implements Descriptor.
func (MultiSelect) Type() formdef.QuestionType { return formdef.TypeMultiSelect }

// ValidateConfig implements Descriptor.
func (MultiSelect) ValidateConfig(q *formdef.Question) []string {
	if _, err := ParseOptions(q.Options); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// Rule implements Descriptor.
func (MultiSelect) Rule(q *formdef.Question) rule.Rule {
	msgs := MessagesFor(formdef.TypeMultiSelect)
	return multiValueRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		minOne:      msgs.MinOne,
	}
}
