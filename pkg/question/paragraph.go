package question

import (
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Paragraph is a multi-line free-text question. Length bounds count words,
// matching the word-count widget the rendering layer shows alongside it.
type Paragraph struct{}

// Type implements Descriptor.
func (Paragraph) Type() formdef.QuestionType { return formdef.TypeParagraph }

// ValidateConfig implements Descriptor.
func (Paragraph) ValidateConfig(q *formdef.Question) []string {
	var cfg textBounds
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		return []string{"validation must be an object with minLength/maxLength"}
	}
	return checkTextBounds(cfg)
}

// Rule implements Descriptor.
func (Paragraph) Rule(q *formdef.Question) rule.Rule {
	var cfg textBounds
	_ = decodeValidation(q.Validation, &cfg)
	msgs := MessagesFor(formdef.TypeParagraph)
	return textRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		minLen:      cfg.MinLength,
		maxLen:      cfg.MaxLength,
		words:       true,
		tooShort:    msgs.TooShort,
		tooLong:     msgs.TooLong,
	}
}
