package question

import (
	"fmt"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/rule"
)

// DefaultMaxUploadMiB is the size ceiling applied when a definition sets no
// maxSize, with or without a validation block.
const DefaultMaxUploadMiB = 5

// Upload is a file-attachment question. The submitted value is a sequence of
// files; every element is checked independently so one bad file never hides
// problems with its siblings.
type Upload struct{}

type uploadConfig struct {
	// Sizes are in mebibytes.
	MinSize          *float64 `json:"minSize"`
	MaxSize          *float64 `json:"maxSize"`
	ValidMimeTypes   []string `json:"validMimeTypes"`
	InvalidMimeTypes []string `json:"invalidMimeTypes"`
}

// Type implements Descriptor.
func (Upload) Type() formdef.QuestionType { return formdef.TypeUpload }

// ValidateConfig implements Descriptor.
func (Upload) ValidateConfig(q *formdef.Question) []string {
	var cfg uploadConfig
	if err := decodeValidation(q.Validation, &cfg); err != nil {
		return []string{"validation must be an object with minSize/maxSize/validMimeTypes/invalidMimeTypes"}
	}

	var problems []string
	if cfg.ValidMimeTypes != nil && cfg.InvalidMimeTypes != nil {
		problems = append(problems, "define either validMimeTypes or invalidMimeTypes, not both")
	}
	if cfg.MinSize != nil && *cfg.MinSize < 0 {
		problems = append(problems, "minSize cannot be negative")
	}
	if cfg.MaxSize != nil && *cfg.MaxSize <= 0 {
		problems = append(problems, "maxSize must be positive")
	}
	maxSize := float64(DefaultMaxUploadMiB)
	if cfg.MaxSize != nil {
		maxSize = *cfg.MaxSize
	}
	if cfg.MinSize != nil && *cfg.MinSize > maxSize {
		problems = append(problems, fmt.Sprintf("minSize %v exceeds maxSize %v", *cfg.MinSize, maxSize))
	}
	return problems
}

// Rule implements Descriptor.
func (Upload) Rule(q *formdef.Question) rule.Rule {
	var cfg uploadConfig
	_ = decodeValidation(q.Validation, &cfg)

	msgs := MessagesFor(formdef.TypeUpload)
	r := uploadRule{
		required:    q.Required,
		requiredMsg: requiredMessage(q),
		maxBytes:    mibToBytes(DefaultMaxUploadMiB),
		allow:       cfg.ValidMimeTypes,
		deny:        cfg.InvalidMimeTypes,
		invalidType: msgs.InvalidFileType,
		invalidSize: msgs.InvalidSize,
	}
	if cfg.MaxSize != nil {
		r.maxBytes = mibToBytes(*cfg.MaxSize)
	}
	if cfg.MinSize != nil {
		min := mibToBytes(*cfg.MinSize)
		r.minBytes = &min
	}
	return r
}

func mibToBytes(mib float64) int64 {
	return int64(mib * 1024 * 1024)
}

type uploadRule struct {
	required    bool
	requiredMsg string
	minBytes    *int64
	maxBytes    int64
	allow       []string
	deny        []string
	invalidType string
	invalidSize string
}

func (uploadRule) Binary() bool { return true }

func (r uploadRule) Apply(raw any, present bool) rule.Result {
	files, ok := toFileSlice(raw)
	if present && raw != nil && !ok {
		return rule.Fail("Value must be a list of files.")
	}
	// An empty selection on a required upload reads as the field missing,
	// not as a length violation.
	if !present || len(files) == 0 {
		if r.required {
			return rule.Fail(r.requiredMsg)
		}
		return rule.OK(nil)
	}

	var errs []string
	for i, file := range files {
		for _, msg := range r.checkFile(file) {
			errs = append(errs, attribute(file, i, msg))
		}
	}
	if len(errs) > 0 {
		return rule.Result{Errors: errs}
	}
	return rule.OK(files)
}

func (r uploadRule) checkFile(file rule.File) []string {
	var errs []string
	if len(r.allow) > 0 && !containsMime(r.allow, file.MediaType) {
		errs = append(errs, r.invalidType)
	}
	if len(r.deny) > 0 && containsMime(r.deny, file.MediaType) {
		errs = append(errs, r.invalidType)
	}
	if file.Size > r.maxBytes || (r.minBytes != nil && file.Size < *r.minBytes) {
		errs = append(errs, r.invalidSize)
	}
	return errs
}

func containsMime(list []string, mediaType string) bool {
	for _, item := range list {
		if item == mediaType {
			return true
		}
	}
	return false
}

func attribute(file rule.File, index int, msg string) string {
	name := file.Name
	if name == "" {
		name = fmt.Sprintf("file %d", index+1)
	}
	return name + ": " + msg
}
