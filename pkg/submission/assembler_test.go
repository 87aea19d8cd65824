package submission_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
	"github.com/appform-io/formkit/pkg/submission"
)

const uploadFormDoc = `{
	"metadata": {"title": "Project Submission"},
	"content": [
		{"id": "q-name", "name": "projectName", "questionType": "shortAnswer", "required": true},
		{"id": "q-team", "name": "teamSize", "questionType": "number"},
		{"id": "q-deck", "name": "deck", "questionType": "upload", "validation": {"maxSize": 10}}
	]
}`

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

func TestAssemblePartitionsFilesOutOfAutosave(t *testing.T) {
	cf := compileForm(t, uploadFormDoc)
	report := cf.ValidateAll(map[string]any{
		"projectName": "formkit",
		"teamSize":    "4",
		"deck": []rule.File{
			{Name: "deck.pdf", MediaType: "application/pdf", Size: 128, Content: []byte("%PDF-")},
			{Name: "notes.pdf", MediaType: "application/pdf", Size: 64, Content: []byte("%PDF-")},
		},
	})
	if !report.OK {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}

	sub := submission.Assemble(cf, report.Normalized)

	parts := sub.Full()
	if len(parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(parts))
	}
	// Scalars first in field order, then one part per file keyed as an array.
	if parts[0].Name != "projectName" || parts[0].Value != "formkit" {
		t.Fatalf("unexpected first part: %+v", parts[0])
	}
	if parts[1].Name != "teamSize" || parts[1].Value != "4" {
		t.Fatalf("unexpected second part: %+v", parts[1])
	}
	for i, wantFile := range []string{"deck.pdf", "notes.pdf"} {
		part := parts[2+i]
		if part.Name != "deck[]" || part.File == nil || part.File.Name != wantFile {
			t.Fatalf("unexpected file part: %+v", part)
		}
	}

	wantAutosave := map[string]any{
		"projectName": "formkit",
		"teamSize":    float64(4),
	}
	if diff := cmp.Diff(wantAutosave, sub.Autosave()); diff != "" {
		t.Fatalf("autosave mismatch (-want +got):\n%s", diff)
	}
}

func TestAutosaveJSONIsDeterministic(t *testing.T) {
	cf := compileForm(t, uploadFormDoc)
	values := map[string]any{"projectName": "formkit", "teamSize": "4"}

	first, err := submission.Assemble(cf, cf.ValidateAll(values).Normalized).AutosaveJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := submission.Assemble(cf, cf.ValidateAll(values).Normalized).AutosaveJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("payloads differ:\n%s\n%s", first, second)
	}
}

func TestWriteMultipartRoundTrip(t *testing.T) {
	cf := compileForm(t, uploadFormDoc)
	report := cf.ValidateAll(map[string]any{
		"projectName": "formkit",
		"deck": []rule.File{
			{Name: "deck.pdf", MediaType: "application/pdf", Size: 5, Content: []byte("%PDF-")},
		},
	})
	if !report.OK {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}

	var body bytes.Buffer
	contentType, err := submission.Assemble(cf, report.Normalized).WriteMultipart(&body)
	if err != nil {
		t.Fatalf("write multipart: %v", err)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(&body, params["boundary"])

	field, err := reader.NextPart()
	if err != nil {
		t.Fatalf("read field part: %v", err)
	}
	if field.FormName() != "projectName" {
		t.Fatalf("unexpected field name %q", field.FormName())
	}
	value, _ := io.ReadAll(field)
	if string(value) != "formkit" {
		t.Fatalf("unexpected field value %q", value)
	}

	file, err := reader.NextPart()
	if err != nil {
		t.Fatalf("read file part: %v", err)
	}
	if file.FormName() != "deck[]" || file.FileName() != "deck.pdf" {
		t.Fatalf("unexpected file part %q %q", file.FormName(), file.FileName())
	}
	if got := file.Header.Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected part content type %q", got)
	}
	content, _ := io.ReadAll(file)
	if string(content) != "%PDF-" {
		t.Fatalf("unexpected file content %q", content)
	}

	if _, err := reader.NextPart(); err != io.EOF {
		t.Fatalf("expected EOF after last part, got %v", err)
	}
}
