package compiler_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
)

func mustParse(t *testing.T, doc string) *formdef.FormDefinition {
	t.Helper()
	def, err := formdef.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return def
}

const applicationDoc = `{
	"metadata": {"title": "Hackathon Application"},
	"content": [
		{
			"type": "section",
			"label": "About you",
			"content": [
				{
					"type": "layout",
					"content": [
						{"id": "q-first", "name": "firstName", "questionType": "shortAnswer", "required": true},
						{"id": "q-last", "name": "lastName", "questionType": "shortAnswer", "required": true}
					]
				},
				{"id": "q-age", "name": "age", "questionType": "number", "required": true, "validation": {"min": 18, "max": 23}}
			]
		},
		{"id": "q-essay", "name": "essay", "questionType": "paragraph", "validation": {"minLength": 10, "maxLength": 150}}
	]
}`

func TestCompileTraversalOrder(t *testing.T) {
	cf, err := compiler.Compile(mustParse(t, applicationDoc), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	want := []string{"firstName", "lastName", "age", "essay"}
	if diff := cmp.Diff(want, cf.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if cf.Metadata().Title != "Hackathon Application" {
		t.Fatalf("unexpected title %q", cf.Metadata().Title)
	}
	if _, ok := cf.Rule("age"); !ok {
		t.Fatal("missing compiled rule for age")
	}
	if _, ok := cf.Rule("unknown"); ok {
		t.Fatal("rule lookup for unknown field must miss")
	}
}

func TestCompileRejectsUnknownQuestionType(t *testing.T) {
	def := mustParse(t, `{
		"metadata": {"title": "Broken"},
		"content": [{"id": "q1", "name": "field", "questionType": "hologram"}]
	}`)

	_, err := compiler.Compile(def, nil)
	var defErr *formdef.DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %v", err)
	}
	if len(defErr.Issues) != 1 || !strings.Contains(defErr.Issues[0].Message, `"hologram"`) {
		t.Fatalf("unexpected issues: %v", defErr.Issues)
	}
}

func TestValidateDuplicateNamesListEveryOffender(t *testing.T) {
	def := mustParse(t, `{
		"metadata": {"title": "Dupes"},
		"content": [
			{"id": "q-a", "name": "email", "questionType": "shortAnswer"},
			{"id": "q-b", "name": "email", "questionType": "shortAnswer"},
			{"id": "q-c", "name": "email", "questionType": "shortAnswer"}
		]
	}`)

	issues := compiler.ValidateDefinition(def, nil)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	msg := issues[0].Message
	for _, id := range []string{"q-a", "q-b", "q-c"} {
		if !strings.Contains(msg, id) {
			t.Fatalf("issue %q does not name offender %s", msg, id)
		}
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	def := mustParse(t, `{
		"metadata": {"title": "Dupes"},
		"content": [
			{"id": "q-same", "name": "one", "questionType": "shortAnswer"},
			{"id": "q-same", "name": "two", "questionType": "shortAnswer"}
		]
	}`)

	issues := compiler.ValidateDefinition(def, nil)
	if len(issues) != 1 || issues[0].NodeID != "q-same" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateLayoutConstraints(t *testing.T) {
	overfull := mustParse(t, `{
		"metadata": {"title": "Layouts"},
		"content": [{
			"type": "layout",
			"content": [
				{"id": "q1", "name": "a", "questionType": "shortAnswer"},
				{"id": "q2", "name": "b", "questionType": "shortAnswer"},
				{"id": "q3", "name": "c", "questionType": "shortAnswer"}
			]
		}]
	}`)
	issues := compiler.ValidateDefinition(overfull, nil)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "more than 2") {
		t.Fatalf("unexpected issues: %v", issues)
	}

	nested := mustParse(t, `{
		"metadata": {"title": "Layouts"},
		"content": [{
			"type": "layout",
			"content": [{"type": "section", "label": "No", "content": []}]
		}]
	}`)
	issues = compiler.ValidateDefinition(nested, nil)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "only contain questions") {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateNestedSectionsAllowed(t *testing.T) {
	def := mustParse(t, `{
		"metadata": {"title": "Nested"},
		"content": [{
			"type": "section",
			"label": "Outer",
			"content": [{
				"type": "section",
				"label": "Inner",
				"content": [{"id": "q1", "name": "field", "questionType": "shortAnswer"}]
			}]
		}]
	}`)
	if issues := compiler.ValidateDefinition(def, nil); len(issues) != 0 {
		t.Fatalf("nested sections should be allowed, got %v", issues)
	}
}

func TestValidateSurfacesConfigProblems(t *testing.T) {
	def := mustParse(t, `{
		"metadata": {"title": "Config"},
		"content": [{"id": "q-age", "name": "age", "questionType": "number", "validation": {"min": 30, "max": 20}}]
	}`)
	issues := compiler.ValidateDefinition(def, nil)
	if len(issues) != 1 || issues[0].NodeID != "q-age" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateRequiresTitleAndIdentity(t *testing.T) {
	def := &formdef.FormDefinition{
		Metadata: formdef.Metadata{Title: "  "},
		Content: []formdef.Node{
			&formdef.Question{QuestionType: formdef.TypeShortAnswer},
		},
	}
	issues := compiler.ValidateDefinition(def, nil)
	if len(issues) != 3 {
		t.Fatalf("expected title, name and id issues, got %v", issues)
	}
}

func TestValidateAllEvaluatesFieldsIndependently(t *testing.T) {
	cf, err := compiler.Compile(mustParse(t, applicationDoc), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	report := cf.ValidateAll(map[string]any{
		"firstName": "Ada",
		"age":       "17",
		"essay":     strings.Repeat("word ", 12),
		"uiState":   "ignored",
	})

	if report.OK {
		t.Fatal("report should not be OK")
	}
	// Both failures are reported even though the first one alone blocks
	// submission.
	if got := report.Errors["lastName"]; len(got) != 1 || got[0] != "Required" {
		t.Fatalf("lastName errors: %v", got)
	}
	if got := report.Errors["age"]; len(got) != 1 || got[0] != "Value is too low" {
		t.Fatalf("age errors: %v", got)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("unexpected error set: %v", report.Errors)
	}

	wantNormalized := map[string]any{
		"firstName": "Ada",
		"essay":     strings.Repeat("word ", 12),
	}
	if diff := cmp.Diff(wantNormalized, report.Normalized); diff != "" {
		t.Fatalf("normalized mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAllAcceptsCompleteSubmission(t *testing.T) {
	cf, err := compiler.Compile(mustParse(t, applicationDoc), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	report := cf.ValidateAll(map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"age":       "21",
	})
	if !report.OK {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	if report.Normalized["age"] != float64(21) {
		t.Fatalf("age not normalized to a number: %v", report.Normalized["age"])
	}
	// Optional essay left blank produces no normalized entry.
	if _, ok := report.Normalized["essay"]; ok {
		t.Fatal("blank optional field must not appear in normalized values")
	}
}

func TestCompileWithCustomRegistry(t *testing.T) {
	reg := question.NewRegistry()
	reg.MustRegister(question.ShortAnswer{})

	def := mustParse(t, `{
		"metadata": {"title": "Custom"},
		"content": [{"id": "q1", "name": "field", "questionType": "number"}]
	}`)
	if _, err := compiler.Compile(def, reg); err == nil {
		t.Fatal("number type is not in the custom registry; compile must fail")
	}
}
