package compiler

// Report is the outcome of validating one submitted snapshot against a
// compiled form. Normalized holds every value that passed its rule; Errors
// holds the messages for every field that failed. The two together let a
// caller autosave the valid subset even when submission is blocked.
type Report struct {
	OK         bool
	Normalized map[string]any
	Errors     map[string][]string
}

// ValidateAll applies every compiled rule to the submitted values. Fields
// are evaluated independently — a failure in one never short-circuits the
// others — and element-wise rules report a flattened message list in element
// order. Keys in values without a compiled rule are ignored so clients may
// carry extra UI-only state. The values map is read once and never retained.
func (cf *CompiledForm) ValidateAll(values map[string]any) Report {
	report := Report{
		Normalized: make(map[string]any),
		Errors:     make(map[string][]string),
	}
	for _, name := range cf.names {
		raw, present := values[name]
		result := cf.rules[name].Apply(raw, present)
		if !result.Valid() {
			report.Errors[name] = append([]string(nil), result.Errors...)
			continue
		}
		if result.Value != nil {
			report.Normalized[name] = result.Value
		}
	}
	report.OK = len(report.Errors) == 0
	return report
}
