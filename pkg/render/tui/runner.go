package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
	"github.com/appform-io/formkit/pkg/rule"
)

// Runner walks a compiled form's plan, prompting for every question and
// validating answers against the compiled rules. Invalid answers re-prompt
// with the rule's messages.
type Runner struct {
	form   *compiler.CompiledForm
	driver PromptDriver
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDriver swaps the prompt driver; the default talks to the terminal via
// survey.
func WithDriver(driver PromptDriver) RunnerOption {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// NewRunner creates a Runner over a compiled form.
func NewRunner(form *compiler.CompiledForm, options ...RunnerOption) (*Runner, error) {
	if form == nil {
		return nil, fmt.Errorf("tui: compiled form is required")
	}
	r := &Runner{form: form, driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Run executes the session and returns the validated value map.
func (r *Runner) Run(ctx context.Context) (map[string]any, error) {
	meta := r.form.Metadata()
	if err := r.driver.Info(ctx, meta.Title); err != nil {
		return nil, err
	}
	if meta.Description != "" {
		if err := r.driver.Info(ctx, meta.Description); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any)
	if err := r.walk(ctx, r.form.Plan(), values); err != nil {
		return nil, err
	}

	report := r.form.ValidateAll(values)
	if !report.OK {
		// Per-question prompting already re-validated, so this only trips
		// when a driver returns out-of-band values.
		for name, msgs := range report.Errors {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", name, strings.Join(msgs, "; "))); err != nil {
				return nil, err
			}
		}
		return nil, fmt.Errorf("tui: form has invalid answers")
	}
	return report.Normalized, nil
}

func (r *Runner) walk(ctx context.Context, nodes []formdef.Node, values map[string]any) error {
	for _, node := range nodes {
		switch typed := node.(type) {
		case *formdef.Section:
			if typed.Label != "" {
				if err := r.driver.Info(ctx, "== "+typed.Label); err != nil {
					return err
				}
			}
			if err := r.walk(ctx, typed.Content, values); err != nil {
				return err
			}
		case *formdef.Layout:
			if err := r.walk(ctx, typed.Content, values); err != nil {
				return err
			}
		case *formdef.Question:
			if err := r.ask(ctx, typed, values); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) ask(ctx context.Context, q *formdef.Question, values map[string]any) error {
	fieldRule, ok := r.form.Rule(q.Name)
	if !ok {
		return fmt.Errorf("tui: no rule for question %q", q.Name)
	}

	for {
		raw, answered, err := r.prompt(ctx, q)
		if err != nil {
			return err
		}
		result := fieldRule.Apply(raw, answered)
		if result.Valid() {
			if answered {
				values[q.Name] = raw
			}
			return nil
		}
		for _, msg := range result.Errors {
			if err := r.driver.Info(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) prompt(ctx context.Context, q *formdef.Question) (any, bool, error) {
	message := q.Label
	if message == "" {
		message = q.Name
	}

	switch q.QuestionType {
	case formdef.TypeParagraph:
		answer, err := r.driver.TextArea(ctx, InputConfig{Message: message, Help: q.Description})
		if err != nil {
			return nil, false, err
		}
		return answer, strings.TrimSpace(answer) != "", nil
	case formdef.TypeMultipleChoice, formdef.TypeSelect:
		labels, byLabel := choicePrompts(q)
		if len(labels) == 0 {
			answer, err := r.driver.Input(ctx, InputConfig{Message: message, Help: q.Description})
			if err != nil {
				return nil, false, err
			}
			return answer, strings.TrimSpace(answer) != "", nil
		}
		label, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, Help: q.Description})
		if err != nil {
			return nil, false, err
		}
		return byLabel[label], label != "", nil
	case formdef.TypeCheckbox, formdef.TypeMultiSelect:
		labels, byLabel := choicePrompts(q)
		chosen, err := r.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Help: q.Description})
		if err != nil {
			return nil, false, err
		}
		selections := make([]string, 0, len(chosen))
		for _, label := range chosen {
			selections = append(selections, byLabel[label])
		}
		return selections, len(selections) > 0, nil
	case formdef.TypeUpload:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: message + " (comma-separated file paths)",
			Help:    q.Description,
		})
		if err != nil {
			return nil, false, err
		}
		files, err := loadFiles(answer)
		if err != nil {
			if infoErr := r.driver.Info(ctx, err.Error()); infoErr != nil {
				return nil, false, infoErr
			}
			return nil, false, nil
		}
		return files, len(files) > 0, nil
	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:     message,
			Help:        q.Description,
			Placeholder: q.Placeholder,
		})
		if err != nil {
			return nil, false, err
		}
		return answer, strings.TrimSpace(answer) != "", nil
	}
}

func choicePrompts(q *formdef.Question) ([]string, map[string]string) {
	src, err := question.ParseOptions(q.Options)
	if err != nil {
		return nil, nil
	}
	options := src.Static
	if options == nil && src.Remote != nil {
		options = src.Remote.YearOptions()
	}
	labels := make([]string, 0, len(options))
	byLabel := make(map[string]string, len(options))
	for _, option := range options {
		labels = append(labels, option.Label)
		byLabel[option.Label] = option.Value
	}
	return labels, byLabel
}

func loadFiles(answer string) ([]rule.File, error) {
	var files []rule.File
	for _, path := range strings.Split(answer, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %v", path, err)
		}
		files = append(files, rule.File{
			Name:      filepath.Base(path),
			MediaType: mime.TypeByExtension(filepath.Ext(path)),
			Size:      int64(len(data)),
			Content:   data,
		})
	}
	return files, nil
}
