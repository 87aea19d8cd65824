package question

import (
	"fmt"
	"sort"
	"sync"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// Descriptor is the self-contained unit describing one question type: how
// its author-time configuration is validated and how a runtime value rule is
// extracted from a validated question.
//
// Rule must be pure and total for a question whose configuration passed
// ValidateConfig: it returns a usable rule and never panics. Malformed
// configuration is a definition-time concern, never deferred to runtime.
type Descriptor interface {
	Type() formdef.QuestionType

	// ValidateConfig checks the question's type-specific configuration and
	// returns every problem found, as author-facing messages.
	ValidateConfig(q *formdef.Question) []string

	// Rule maps a validated question into its runtime value rule.
	Rule(q *formdef.Question) rule.Rule
}

// Registry stores question descriptors by type tag. It stays open so hosts
// can register custom types, but a lookup miss during compilation is fatal
// to the whole form: a definition referencing an unregistered type is a
// configuration error, not a user-facing validation failure.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[formdef.QuestionType]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[formdef.QuestionType]Descriptor)}
}

// DefaultRegistry returns a registry seeded with every built-in question
// type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range builtins() {
		r.MustRegister(d)
	}
	return r
}

func builtins() []Descriptor {
	return []Descriptor{
		ShortAnswer{},
		Paragraph{},
		Number{},
		MultipleChoice{},
		Checkbox{},
		Select{},
		MultiSelect{},
		Upload{},
		Date{},
		URL{},
	}
}

// Register adds a descriptor by its Type(). Duplicate types return an error.
func (r *Registry) Register(d Descriptor) error {
	if d == nil {
		return fmt.Errorf("question: descriptor is required")
	}
	qt := d.Type()
	if qt == "" {
		return fmt.Errorf("question: descriptor type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[qt]; exists {
		return fmt.Errorf("question: descriptor %q already registered", qt)
	}
	r.descriptors[qt] = d
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup retrieves a descriptor by question type.
func (r *Registry) Lookup(qt formdef.QuestionType) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[qt]
	if !ok {
		return nil, fmt.Errorf("question: no descriptor registered for question type %q", qt)
	}
	return d, nil
}

// Has reports whether a descriptor is registered for the type.
func (r *Registry) Has(qt formdef.QuestionType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[qt]
	return ok
}

// Types returns the sorted list of registered question types.
func (r *Registry) Types() []formdef.QuestionType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]formdef.QuestionType, 0, len(r.descriptors))
	for qt := range r.descriptors {
		types = append(types, qt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
