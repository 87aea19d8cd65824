package export_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/export"
	"github.com/appform-io/formkit/pkg/formdef"
)

const exportDoc = `{
	"metadata": {"title": "Hackathon Application", "description": "Apply here"},
	"content": [
		{
			"type": "section",
			"label": "About you",
			"content": [
				{"id": "q-name", "name": "fullName", "questionType": "shortAnswer", "label": "Full name", "required": true, "validation": {"minLength": 2, "maxLength": 80}},
				{"id": "q-age", "name": "age", "questionType": "number", "required": true, "validation": {"min": 18, "max": 23}},
				{"id": "q-year", "name": "gradYear", "questionType": "select", "options": {"data": "year", "min": 2026, "max": 2028}},
				{"id": "q-diet", "name": "diet", "questionType": "checkbox", "required": true, "options": [{"label": "Vegan", "value": "vegan"}, {"label": "Halal", "value": "halal"}]},
				{"id": "q-resume", "name": "resume", "questionType": "upload", "required": true, "validation": {"maxSize": 2}},
				{"id": "q-repo", "name": "repo", "questionType": "url", "regex": "^https://github\\.com/", "validation": {"maxLength": 120}}
			]
		}
	]
}`

func TestSchemaExport(t *testing.T) {
	def, err := formdef.Parse([]byte(exportDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	schema, err := export.Schema(def, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if schema.Title != "Hackathon Application" {
		t.Fatalf("unexpected title %q", schema.Title)
	}
	if diff := cmp.Diff([]string{"fullName", "age", "diet", "resume"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	name := schema.Properties["fullName"].Value
	if name == nil || !name.Type.Is("string") {
		t.Fatal("fullName must be a string property")
	}
	if name.MinLength != 2 || name.MaxLength == nil || *name.MaxLength != 80 {
		t.Fatalf("fullName bounds: min %d max %v", name.MinLength, name.MaxLength)
	}
	if name.Title != "Full name" {
		t.Fatalf("unexpected property title %q", name.Title)
	}

	age := schema.Properties["age"].Value
	if age.Min == nil || *age.Min != 18 || age.Max == nil || *age.Max != 23 {
		t.Fatalf("age bounds: %v %v", age.Min, age.Max)
	}

	year := schema.Properties["gradYear"].Value
	if diff := cmp.Diff([]any{"2026", "2027", "2028"}, year.Enum); diff != "" {
		t.Fatalf("year enum mismatch (-want +got):\n%s", diff)
	}

	diet := schema.Properties["diet"].Value
	if !diet.Type.Is("array") || diet.MinItems != 1 {
		t.Fatalf("diet must be an array with minItems 1, got %+v", diet)
	}
	if diff := cmp.Diff([]any{"vegan", "halal"}, diet.Items.Value.Enum); diff != "" {
		t.Fatalf("diet enum mismatch (-want +got):\n%s", diff)
	}

	resume := schema.Properties["resume"].Value
	if resume.Items.Value.Format != "binary" {
		t.Fatalf("resume items format %q", resume.Items.Value.Format)
	}
	if got := resume.Extensions["x-max-size-bytes"]; got != int64(2*1024*1024) {
		t.Fatalf("resume size extension %v", got)
	}

	repo := schema.Properties["repo"].Value
	if repo.Format != "uri" || repo.Pattern != `^https://github\.com/` {
		t.Fatalf("repo schema: format %q pattern %q", repo.Format, repo.Pattern)
	}
}

func TestSchemaRejectsInvalidDefinition(t *testing.T) {
	def, err := formdef.Parse([]byte(`{
		"metadata": {"title": "Broken"},
		"content": [{"id": "q1", "name": "field", "questionType": "hologram"}]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, err = export.Schema(def, nil)
	var defErr *formdef.DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected DefinitionError, got %v", err)
	}
}

func TestMarshalSchemaIsValidJSON(t *testing.T) {
	def, err := formdef.Parse([]byte(exportDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := export.MarshalSchema(def, nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Fatalf("unexpected output %q", data)
	}
}
