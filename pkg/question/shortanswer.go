package question

import (
	"fmt"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// ShortAnswer is a single-line free-text question. Length bounds count
// characters.
type ShortAnswer struct{}

type textBounds struct {
	MinLength *int `json:"minLength"`
	MaxLength *int `json:"maxLength"`
}

// Type implements Descriptor.
func (ShortAnswer) Type() formdef.QuestionType { return formdef.TypeShortAnswer }

// ValidateConfig implements Descriptor.
func (ShortAnswer) ValidateConfig(q *formdef.Question) []string {
	var cfg textBounds
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		return []string{"validation must be an object with minLength/maxLength"}
	}
	return checkTextBounds(cfg)
}

// Rule implements Descriptor.
func (ShortAnswer) Rule(q *formdef.Question) rule.Rule {
	var cfg textBounds
	_ = decodeValidation(q.Validation, &cfg)
	msgs := MessagesFor(formdef.TypeShortAnswer)
	return textRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		minLen:      cfg.MinLength,
		maxLen:      cfg.MaxLength,
		tooShort:    msgs.TooShort,
		tooLong:     msgs.TooLong,
	}
}

func checkTextBounds(cfg textBounds) []string {
	var problems []string
	if cfg.MinLength != nil && *cfg.MinLength < 0 {
		problems = append(problems, "minLength cannot be negative")
	}
	if cfg.MaxLength != nil && *cfg.MaxLength < 0 {
		problems = append(problems, "maxLength cannot be negative")
	}
	if cfg.MinLength != nil && cfg.MaxLength != nil && *cfg.MinLength > *cfg.MaxLength {
		problems = append(problems, fmt.Sprintf("minLength %d exceeds maxLength %d", *cfg.MinLength, *cfg.MaxLength))
	}
	return problems
}

// textRule validates free-text values. Checks inside one field are ordered
// and short-circuit; the engine still evaluates every other field.
type textRule struct {
	required    bool
	requiredMsg string
	minLen      *int
	maxLen      *int
	words       bool
	tooShort    string
	tooLong     string
}

func (textRule) Binary() bool { return false }

func (r textRule) Apply(raw any, present bool) rule.Result {
	if absent(raw, present) {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}
	text, ok := toString(raw)
	if !ok {
		return rule.Fail("Value must be text.")
	}

	length := len([]rune(text))
	if r.words {
		length = countWords(text)
	}
	if r.minLen != nil && length < *r.minLen {
		return rule.Fail(r.tooShort)
	}
	if r.maxLen != nil && length > *r.maxLen {
		return rule.Fail(r.tooLong)
	}
	return rule.OK(text)
}
