package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Number is a numeric question. Form transport delivers values as strings,
// so the rule coerces before bound-checking and reports a bound-specific
// message, never a generic one.
type Number struct{}

type numberBounds struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Type implements Descriptor.
func (Number) Type() formdef.QuestionType { return formdef.TypeNumber }

// ValidateConfig implements Descriptor.
func (Number) ValidateConfig(q *formdef.Question) []string {
	var cfg numberBounds
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		return []string{"validation must be an object with numeric min/max"}
	}
	if cfg.Min != nil && cfg.Max != nil && *cfg.Min > *cfg.Max {
		return []string{fmt.Sprintf("min %v exceeds max %v", *cfg.Min, *cfg.Max)}
	}
	return nil
}

// Rule implements Descriptor.
func (Number) Rule(q *formdef.Question) rule.Rule {
	var cfg numberBounds
	_ = decodeValidation(q.Validation, &cfg)
	msgs := MessagesFor(formdef.TypeNumber)
	return numberRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		min:         cfg.Min,
		max:         cfg.Max,
		tooLow:      msgs.TooLow,
		tooHigh:     msgs.TooHigh,
	}
}

type numberRule struct {
	required    bool
	requiredMsg string
	min         *float64
	max         *float64
	tooLow      string
	tooHigh     string
}

func (numberRule) Binary() bool { return false }

func (r numberRule) Apply(raw any, present bool) rule.Result {
	if absent(raw, present) {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}

	value, ok := coerceNumber(raw)
	if !ok {
		return rule.Fail("Value must be a number.")
	}
	if r.min != nil && value < *r.min {
		return rule.Fail(r.tooLow)
	}
	if r.max != nil && value > *r.max {
		return rule.Fail(r.tooHigh)
	}
	return rule.OK(value)
}

func coerceNumber(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return value, true
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		value, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}
