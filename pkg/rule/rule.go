// Package rule defines the runtime validation contract produced by the
// compiler: one immutable Rule per question, applied to every submitted
// snapshot of that question's value for the life of the compiled form.
package rule

// Result is the outcome of applying a rule to one submitted value. A result
// with no errors carries the normalized value; a failed result carries every
// message the rule produced for the value.
type Result struct {
	Value  any
	Errors []string
}

// OK wraps a normalized value in a passing result.
func OK(value any) Result {
	return Result{Value: value}
}

// Fail builds a failing result from one or more messages.
func Fail(messages ...string) Result {
	return Result{Errors: messages}
}

// Valid reports whether the result carries no errors.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Rule validates and normalizes one question's submitted value. Rules are
// immutable after compilation and safe for concurrent use; Apply never
// retains the raw value across calls.
//
// present is false when the submission carried no value for the field at
// all. Rules treat absence as valid unless the question is required.
type Rule interface {
	Apply(raw any, present bool) Result

	// Binary reports whether values governed by this rule carry file
	// content. The submission assembler uses it to keep binary data out of
	// autosave payloads.
	Binary() bool
}

// File is the value shape upload rules govern: one submitted attachment.
// Size is in bytes. Content may be nil when only metadata is validated.
type File struct {
	Name      string
	MediaType string
	Size      int64
	Content   []byte
}
