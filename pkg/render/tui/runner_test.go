package tui_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/render/tui"
)

// scriptedDriver replays canned answers so the runner can be exercised
// without a terminal.
type scriptedDriver struct {
	inputs    []string
	textAreas []string
	selects   []string
	multis    [][]string
	infos     []string
}

func (d *scriptedDriver) pop(queue *[]string) string {
	if len(*queue) == 0 {
		return ""
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head
}

func (d *scriptedDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop(&d.inputs), nil
}

func (d *scriptedDriver) TextArea(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop(&d.textAreas), nil
}

func (d *scriptedDriver) Select(_ context.Context, _ tui.SelectConfig) (string, error) {
	return d.pop(&d.selects), nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, _ tui.SelectConfig) ([]string, error) {
	if len(d.multis) == 0 {
		return nil, nil
	}
	head := d.multis[0]
	d.multis = d.multis[1:]
	return head, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func compileForm(t *testing.T, doc string) *compiler.CompiledForm {
	t.Helper()
	def, err := formdef.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cf, err := compiler.Compile(def, nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return cf
}

const sessionDoc = `{
	"metadata": {"title": "Hackathon Application"},
	"content": [{
		"type": "section",
		"label": "About you",
		"content": [
			{"id": "q-name", "name": "fullName", "questionType": "shortAnswer", "label": "Full name", "required": true, "validation": {"minLength": 3}},
			{"id": "q-track", "name": "track", "questionType": "select", "label": "Track", "required": true, "options": [{"label": "Web", "value": "web"}, {"label": "AI", "value": "ai"}]},
			{"id": "q-diet", "name": "diet", "questionType": "checkbox", "label": "Diet", "options": [{"label": "Vegan", "value": "vegan"}, {"label": "Halal", "value": "halal"}]}
		]
	}]
}`

func TestRunRepromptsUntilValid(t *testing.T) {
	driver := &scriptedDriver{
		// First answer is below the minimum length, second passes.
		inputs:  []string{"Al", "Ada Lovelace"},
		selects: []string{"AI"},
		multis:  [][]string{{"Vegan", "Halal"}},
	}
	runner, err := tui.NewRunner(compileForm(t, sessionDoc), tui.WithDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	values, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]any{
		"fullName": "Ada Lovelace",
		"track":    "ai",
		"diet":     []string{"vegan", "halal"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	var sawShort, sawSection bool
	for _, msg := range driver.infos {
		if msg == "Value is too short" {
			sawShort = true
		}
		if msg == "== About you" {
			sawSection = true
		}
	}
	if !sawShort {
		t.Fatalf("expected re-prompt message, infos: %v", driver.infos)
	}
	if !sawSection {
		t.Fatalf("expected section header, infos: %v", driver.infos)
	}
}

func TestRunSkipsOptionalBlankAnswers(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"Ada Lovelace"},
		selects: []string{"Web"},
		// No checkbox selection.
		multis: [][]string{{}},
	}
	runner, err := tui.NewRunner(compileForm(t, sessionDoc), tui.WithDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	values, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := values["diet"]; ok {
		t.Fatalf("blank optional answer must not appear, got %v", values)
	}
}

func TestNewRunnerRequiresForm(t *testing.T) {
	if _, err := tui.NewRunner(nil); err == nil {
		t.Fatal("expected error for nil form")
	}
}
