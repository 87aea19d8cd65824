package question

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Option is one selectable choice.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RemoteOptions marks a choice list resolved outside the definition: a named
// dataset the host application supplies. The "year" dataset is generated
// locally from its min/max bounds.
type RemoteOptions struct {
	Data string `json:"data"`
	Min  *int   `json:"min,omitempty"`
	Max  *int   `json:"max,omitempty"`
}

// Recognized remote datasets.
const (
	RemoteDataSchools   = "schools"
	RemoteDataMajors    = "majors"
	RemoteDataMinors    = "minors"
	RemoteDataYear      = "year"
	RemoteDataCountries = "countries"
)

var remoteDataSets = map[string]bool{
	RemoteDataSchools:   true,
	RemoteDataMajors:    true,
	RemoteDataMinors:    true,
	RemoteDataYear:      true,
	RemoteDataCountries: true,
}

// OptionSource is the decoded options configuration of a choice question:
// either a static list or a remote marker, never both.
type OptionSource struct {
	Static []Option
	Remote *RemoteOptions
}

// ParseOptions decodes the raw options configuration of a choice question.
// Static option values may be numbers in the document; they are coerced to
// strings so every selection travels as a string.
func ParseOptions(raw json.RawMessage) (OptionSource, error) {
	if len(raw) == 0 {
		return OptionSource{}, fmt.Errorf("options are required")
	}

	var static []struct {
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &static); err == nil {
		options := make([]Option, 0, len(static))
		for i, entry := range static {
			value, err := coerceOptionValue(entry.Value)
			if err != nil {
				return OptionSource{}, fmt.Errorf("option %d: %v", i, err)
			}
			options = append(options, Option{Label: entry.Label, Value: value})
		}
		return OptionSource{Static: options}, nil
	}

	var remote RemoteOptions
	if err := json.Unmarshal(raw, &remote); err != nil {
		return OptionSource{}, fmt.Errorf("options must be a list of {label, value} or a {data} marker")
	}
	if !remoteDataSets[remote.Data] {
		return OptionSource{}, fmt.Errorf("invalid data option %q for select question", remote.Data)
	}
	if remote.Data == RemoteDataYear {
		if remote.Min == nil || remote.Max == nil {
			return OptionSource{}, fmt.Errorf("year options require both min and max")
		}
		if *remote.Min > *remote.Max {
			return OptionSource{}, fmt.Errorf("year options min %d exceeds max %d", *remote.Min, *remote.Max)
		}
	}
	return OptionSource{Remote: &remote}, nil
}

// YearOptions expands a "year" remote marker into its concrete options.
func (r *RemoteOptions) YearOptions() []Option {
	if r == nil || r.Data != RemoteDataYear || r.Min == nil || r.Max == nil {
		return nil
	}
	options := make([]Option, 0, *r.Max-*r.Min+1)
	for year := *r.Min; year <= *r.Max; year++ {
		value := strconv.Itoa(year)
		options = append(options, Option{Label: value, Value: value})
	}
	return options
}

func coerceOptionValue(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String(), nil
	}
	return "", fmt.Errorf("value must be a string or a number")
}
