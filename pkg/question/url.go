package question

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// URL is a link question. Its checks run in a fixed order and stop at the
// first failure: well-formedness, then the author-supplied pattern, then the
// length ceiling.
type URL struct{}

type urlConfig struct {
	MaxLength *int `json:"maxLength"`
}

// Type implements Descriptor.
func (URL) Type() formdef.QuestionType { return formdef.TypeURL }

// ValidateConfig implements Descriptor.
func (URL) ValidateConfig(q *formdef.Question) []string {
	var problems []string
	var cfg urlConfig
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		problems = append(problems, "validation must be an object with maxLength")
	} else if cfg.MaxLength != nil && *cfg.MaxLength < 0 {
		problems = append(problems, "maxLength cannot be negative")
	}
	if q.Regex != "" {
		if _, err := regexp.Compile(q.Regex); err != nil {
			problems = append(problems, fmt.Sprintf("regex does not compile: %v", err))
		}
	}
	return problems
}

// Rule implements Descriptor.
func (URL) Rule(q *formdef.Question) rule.Rule {
	var cfg urlConfig
	_ = decodeValidation(q.Validation, &cfg)

	msgs := MessagesFor(formdef.TypeURL)
	r := urlRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		maxLen:      cfg.MaxLength,
		invalidURL:  msgs.InvalidURL,
		tooLong:     msgs.TooLong,
	}
	if q.Regex != "" {
		if pattern, err := regexp.Compile(q.Regex); err == nil {
			r.pattern = pattern
		}
	}
	return r
}

type urlRule struct {
	required    bool
	requiredMsg string
	pattern     *regexp.Regexp
	maxLen      *int
	invalidURL  string
	tooLong     string
}

func (urlRule) Binary() bool { return false }

func (r urlRule) Apply(raw any, present bool) rule.Result {
	if absent(raw, present) {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}
	value, ok := toString(raw)
	if !ok {
		return rule.Fail(r.invalidURL)
	}

	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return rule.Fail(r.invalidURL)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return rule.Fail("Invalid value")
	}
	if r.maxLen != nil && len(value) > *r.maxLen {
		return rule.Fail(r.tooLong)
	}
	return rule.OK(value)
}
