package question

import (
	"strings"

	"github.com/appform-io/formkit/pkg/rule"
)

// Coercion helpers shared by the rule implementations. Submitted values are
// heterogeneous (decoded JSON, host-native slices), so every rule funnels
// its raw input through one of these before validating.

func toString(raw any) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

func toStringSlice(raw any) ([]string, bool) {
	switch typed := raw.(type) {
	case []string:
		return typed, true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

func toFileSlice(raw any) ([]rule.File, bool) {
	switch typed := raw.(type) {
	case []rule.File:
		return typed, true
	case rule.File:
		return []rule.File{typed}, true
	case *rule.File:
		if typed == nil {
			return nil, true
		}
		return []rule.File{*typed}, true
	case []any:
		out := make([]rule.File, 0, len(typed))
		for _, item := range typed {
			switch file := item.(type) {
			case rule.File:
				out = append(out, file)
			case *rule.File:
				if file != nil {
					out = append(out, *file)
				}
			default:
				return nil, false
			}
		}
		return out, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

// absent reports whether a submitted value should count as missing for the
// purposes of required composition: not present at all, nil, or an empty
// string/slice.
func absent(raw any, present bool) bool {
	if !present || raw == nil {
		return true
	}
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed) == ""
	case []string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case []rule.File:
		return len(typed) == 0
	default:
		return false
	}
}

func countWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if word != "" {
			count++
		}
	}
	return count
}
