package submission

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/rule"
)

// Part is one entry of the full payload: either a scalar field or one binary
// attachment. File-valued fields contribute one part per file, keyed
// "<name>[]" to mark array membership.
type Part struct {
	Name  string
	Value string
	File  *rule.File
}

// Submission is the assembled pair of payload views over one normalized
// value map. Assembly is pure: the same normalized map always produces the
// same parts in the same order, so payloads can be re-derived safely when a
// transport call must be retried.
type Submission struct {
	parts    []Part
	autosave map[string]any
}

// Assemble partitions normalized values into the full payload and the
// autosave payload. Fields governed by a binary rule never reach the
// autosave map.
func Assemble(cf *compiler.CompiledForm, normalized map[string]any) Submission {
	sub := Submission{autosave: make(map[string]any)}
	for _, name := range cf.Names() {
		value, ok := normalized[name]
		if !ok || value == nil {
			continue
		}
		fieldRule, ok := cf.Rule(name)
		if !ok {
			continue
		}
		if fieldRule.Binary() {
			for _, file := range filesOf(value) {
				attached := file
				sub.parts = append(sub.parts, Part{Name: name + "[]", File: &attached})
			}
			continue
		}
		sub.parts = append(sub.parts, Part{Name: name, Value: encodeScalar(value)})
		sub.autosave[name] = value
	}
	return sub
}

// Full returns every part of the submission payload in field order.
func (s Submission) Full() []Part {
	return append([]Part(nil), s.parts...)
}

// Autosave returns the attachment-free payload for background persistence.
func (s Submission) Autosave() map[string]any {
	out := make(map[string]any, len(s.autosave))
	for key, value := range s.autosave {
		out[key] = value
	}
	return out
}

// AutosaveJSON serializes the autosave payload. Keys marshal in sorted
// order, so repeated assembly of the same values is byte-for-byte identical.
func (s Submission) AutosaveJSON() ([]byte, error) {
	return json.Marshal(s.autosave)
}

// WriteMultipart encodes the full payload through a multipart writer and
// returns the content type to send alongside it.
func (s Submission) WriteMultipart(w io.Writer) (string, error) {
	writer := multipart.NewWriter(w)
	for _, part := range s.parts {
		if part.File == nil {
			if err := writer.WriteField(part.Name, part.Value); err != nil {
				return "", fmt.Errorf("submission: write field %q: %w", part.Name, err)
			}
			continue
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(part.Name), escapeQuotes(part.File.Name)))
		mediaType := part.File.MediaType
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		header.Set("Content-Type", mediaType)
		dst, err := writer.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("submission: create part %q: %w", part.Name, err)
		}
		if _, err := dst.Write(part.File.Content); err != nil {
			return "", fmt.Errorf("submission: write part %q: %w", part.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("submission: close multipart: %w", err)
	}
	return writer.FormDataContentType(), nil
}

func filesOf(value any) []rule.File {
	switch typed := value.(type) {
	case []rule.File:
		return typed
	case rule.File:
		return []rule.File{typed}
	default:
		return nil
	}
}

func encodeScalar(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format(time.RFC3339)
	case []string:
		encoded, _ := json.Marshal(typed)
		return string(encoded)
	default:
		encoded, _ := json.Marshal(typed)
		return string(encoded)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
