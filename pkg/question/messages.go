package question

import "github.com/appform-io/formkit/pkg/formdef"

// Messages is the default user-facing wording for one question type. A
// question's own requiredMessage, when set, wins over Required.
type Messages struct {
	Required        string
	TooShort        string
	TooLong         string
	TooLow          string
	TooHigh         string
	MinOne          string
	InvalidFileType string
	InvalidSize     string
	InvalidURL      string
}

var defaultMessages = map[formdef.QuestionType]Messages{
	formdef.TypeShortAnswer: {
		Required: "Required",
		TooShort: "Value is too short",
		TooLong:  "Value is too long",
	},
	formdef.TypeParagraph: {
		Required: "Required",
		TooShort: "Value is too short",
		TooLong:  "Value is too long",
	},
	formdef.TypeNumber: {
		Required: "Required",
		TooLow:   "Value is too low",
		TooHigh:  "Value is too high",
	},
	formdef.TypeMultipleChoice: {
		Required: "Required",
	},
	formdef.TypeCheckbox: {
		Required: "Required",
		MinOne:   "Choose an option.",
	},
	formdef.TypeSelect: {
		Required: "Pick an item.",
	},
	formdef.TypeMultiSelect: {
		Required: "Required",
		MinOne:   "Pick an item or more from the list.",
	},
	formdef.TypeUpload: {
		Required:        "Required",
		InvalidFileType: "Invalid file type",
		InvalidSize:     "File size is not within range",
	},
	formdef.TypeDate: {
		Required: "Required",
		TooLow:   "Date is too early",
		TooHigh:  "Date is too late",
	},
	formdef.TypeURL: {
		Required:   "Required",
		TooLong:    "URL is too long",
		InvalidURL: "Invalid URL",
	},
}

// MessagesFor returns the default messages for a question type.
func MessagesFor(qt formdef.QuestionType) Messages {
	return defaultMessages[qt]
}

func requiredMessage(q *formdef.Question) string {
	if q.RequiredMessage != "" {
		return q.RequiredMessage
	}
	return defaultMessages[q.QuestionType].Required
}
