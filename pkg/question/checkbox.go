package question

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Checkbox is a multi-select question rendered as checkboxes; the submitted
// value is the list of chosen option values.
type Checkbox struct{}

// Type implements Descriptor.
func (Checkbox) Type() formdef.QuestionType { return formdef.TypeCheckbox }

// ValidateConfig implements Descriptor.
func (Checkbox) ValidateConfig(q *formdef.Question) []string {
	return checkStaticOptions(q)
}

// Rule implements Descriptor.
func (Checkbox) Rule(q *formdef.Question) rule.Rule {
	msgs := MessagesFor(formdef.TypeCheckbox)
	return multiValueRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		minOne:      msgs.MinOne,
	}
}

// multiValueRule governs string-list values. A missing field and an empty
// selection are distinct failures: the former uses the required message, the
// latter the minimum-cardinality message.
type multiValueRule struct {
	required    bool
	requiredMsg string
	minOne      string
}

func (multiValueRule) Binary() bool { return false }

func (r multiValueRule) Apply(raw any, present bool) rule.Result {
	if !present || raw == nil {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}
	values, ok := toStringSlice(raw)
	if !ok {
		return rule.Fail("Value must be a list of selections.")
	}
	if len(values) == 0 {
		if r.required {
			return rule.Fail(r.minOne)
		}
		return rule.OK(nil)
	}
	return rule.OK(values)
}
