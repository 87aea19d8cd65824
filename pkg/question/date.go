package question

import (
	"fmt"
	"strings"
	"time"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Date is a calendar-date question. Values travel as "2006-01-02" strings or
// RFC 3339 timestamps; bounds are configured the same way.
type Date struct{}

type dateConfig struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Type implements Descriptor.
func (Date) Type() formdef.QuestionType { return formdef.TypeDate }

// ValidateConfig implements Descriptor.
func (Date) ValidateConfig(q *formdef.Question) []string {
	var cfg dateConfig
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		return []string{"validation must be an object with min/max dates"}
	}

	var problems []string
	var min, max *time.Time
	if cfg.Min != "" {
		parsed, err := parseDate(cfg.Min)
		if err != nil {
			problems = append(problems, fmt.Sprintf("min is not a valid date: %q", cfg.Min))
		} else {
			min = &parsed
		}
	}
	if cfg.Max != "" {
		parsed, err := parseDate(cfg.Max)
		if err != nil {
			problems = append(problems, fmt.Sprintf("max is not a valid date: %q", cfg.Max))
		} else {
			max = &parsed
		}
	}
	if min != nil && max != nil && min.After(*max) {
		problems = append(problems, fmt.Sprintf("min %s is after max %s", cfg.Min, cfg.Max))
	}
	return problems
}

// Rule implements Descriptor.
func (Date) Rule(q *formdef.Question) rule.Rule {
	var cfg dateConfig
	_ = decodeValidation(q.Validation, &cfg)

	msgs := MessagesFor(formdef.TypeDate)
	r := dateRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		tooEarly:    msgs.TooLow,
		tooLate:     msgs.TooHigh,
	}
	if parsed, err := parseDate(cfg.Min); cfg.Min != "" && err == nil {
		r.min = &parsed
	}
	if parsed, err := parseDate(cfg.Max); cfg.Max != "" && err == nil {
		r.max = &parsed
	}
	return r
}

type dateRule struct {
	required    bool
	requiredMsg string
	min         *time.Time
	max         *time.Time
	tooEarly    string
	tooLate     string
}

func (dateRule) Binary() bool { return false }

func (r dateRule) Apply(raw any, present bool) rule.Result {
	if absent(raw, present) {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}

	value, ok := coerceDate(raw)
	if !ok {
		return rule.Fail("Value must be a date.")
	}
	if r.min != nil && value.Before(*r.min) {
		return rule.Fail(r.tooEarly)
	}
	if r.max != nil && value.After(*r.max) {
		return rule.Fail(r.tooLate)
	}
	return rule.OK(value)
}

func coerceDate(raw any) (time.Time, bool) {
	switch typed := raw.(type) {
	case time.Time:
		return typed, true
	case string:
		parsed, err := parseDate(typed)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse("2006-01-02", trimmed); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}
