package submission

import (
	"sync"
	"time"

	"github.com/appform-io/formkit/pkg/compiler"
)

// State is the lifecycle stage of one form instance.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// DefaultAutosaveWindow is the quiet period a burst of edits must outlast
// before one autosave fires.
const DefaultAutosaveWindow = 3 * time.Second

// AutosaveFunc receives the attachment-free autosave payload. It runs off
// the debounce timer goroutine, outside the instance lock.
type AutosaveFunc func(payload map[string]any)

// InstanceOption configures an Instance.
type InstanceOption func(*Instance)

// WithAutosaveWindow overrides the debounce window.
func WithAutosaveWindow(window time.Duration) InstanceOption {
	return func(i *Instance) {
		if window > 0 {
			i.window = window
		}
	}
}

// Instance drives one form's submission lifecycle over an immutable
// compiled form. Value changes debounce into a single autosave of the latest
// snapshot; beginning a submit cancels any pending autosave so no stale save
// can race past the submitted payload.
type Instance struct {
	form   *compiler.CompiledForm
	save   AutosaveFunc
	window time.Duration

	mu      sync.Mutex
	state   State
	timer   *time.Timer
	pending map[string]any
	closed  bool
}

// NewInstance creates an instance in the editing state.
func NewInstance(form *compiler.CompiledForm, save AutosaveFunc, options ...InstanceOption) *Instance {
	inst := &Instance{
		form:   form,
		save:   save,
		window: DefaultAutosaveWindow,
		state:  StateEditing,
	}
	for _, opt := range options {
		if opt != nil {
			opt(inst)
		}
	}
	return inst
}

// State returns the current lifecycle stage.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Change records a new value snapshot while editing. The autosave window
// restarts on every change; when it finally elapses only the latest
// snapshot's valid subset is saved. Autosave proceeds even when some fields
// fail validation — it is independent of submit-validity. Changes outside
// the editing state are ignored.
func (i *Instance) Change(values map[string]any) compiler.Report {
	report := i.form.ValidateAll(values)

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed || i.state != StateEditing || i.save == nil {
		return report
	}

	i.pending = Assemble(i.form, report.Normalized).Autosave()
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.window, i.flushAutosave)
	return report
}

func (i *Instance) flushAutosave() {
	i.mu.Lock()
	if i.closed || i.state != StateEditing || i.pending == nil {
		i.mu.Unlock()
		return
	}
	payload := i.pending
	i.pending = nil
	save := i.save
	i.mu.Unlock()

	save(payload)
}

// BeginSubmit validates the final snapshot. On success the instance enters
// the submitting state — cancelling any pending autosave — and the full
// submission is returned for transport. On validation failure the instance
// stays editable and the report carries the field errors.
func (i *Instance) BeginSubmit(values map[string]any) (compiler.Report, *Submission, error) {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return compiler.Report{}, nil, ErrInstanceClosed
	}
	if i.state == StateSubmitted {
		i.mu.Unlock()
		return compiler.Report{}, nil, ErrAlreadySubmitted
	}
	if i.state == StateSubmitting {
		i.mu.Unlock()
		return compiler.Report{}, nil, ErrSubmitInFlight
	}
	i.cancelTimerLocked()
	i.state = StateSubmitting
	i.mu.Unlock()

	report := i.form.ValidateAll(values)
	if !report.OK {
		i.mu.Lock()
		i.state = StateEditing
		i.mu.Unlock()
		return report, nil, nil
	}

	sub := Assemble(i.form, report.Normalized)
	return report, &sub, nil
}

// CompleteSubmit marks the transport write as accepted. The submitted state
// is terminal: all further autosaves are suppressed.
func (i *Instance) CompleteSubmit() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.state == StateSubmitting {
		i.state = StateSubmitted
		i.pending = nil
	}
}

// FailSubmit returns the instance to editing after a transport rejection.
func (i *Instance) FailSubmit() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.state == StateSubmitting {
		i.state = StateEditing
	}
}

// Close tears the instance down, cancelling any in-flight autosave timer so
// no stray save fires against a destroyed context.
func (i *Instance) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	i.pending = nil
	i.cancelTimerLocked()
}

func (i *Instance) cancelTimerLocked() {
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}
