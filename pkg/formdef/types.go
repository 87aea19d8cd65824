package formdef

import "encoding/json"

// QuestionType tags a question with the kind of input it collects.
type QuestionType string

const (
	TypeShortAnswer    QuestionType = "shortAnswer"
	TypeParagraph      QuestionType = "paragraph"
	TypeNumber         QuestionType = "number"
	TypeMultipleChoice QuestionType = "multipleChoice"
	TypeCheckbox       QuestionType = "checkbox"
	TypeSelect         QuestionType = "select"
	TypeMultiSelect    QuestionType = "multiselect"
	TypeUpload         QuestionType = "upload"
	TypeDate           QuestionType = "date"
	TypeURL            QuestionType = "url"
)

// NodeType discriminates the content-tree union.
type NodeType string

const (
	NodeSection  NodeType = "section"
	NodeLayout   NodeType = "layout"
	NodeQuestion NodeType = "question"
)

// Node is one entry in a form's content tree. The union is closed: a node is
// a *Section, a *Layout, or a *Question.
type Node interface {
	Kind() NodeType
}

// Metadata carries form-level presentation fields.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// FormDefinition is the root of a declarative form document. It is treated
// as immutable once compiled; compilation is a pure transform over it.
type FormDefinition struct {
	Metadata Metadata `json:"metadata"`
	Content  []Node   `json:"content"`
}

// Section groups related nodes under a heading. Sections are transparent for
// compilation and may nest further sections, layouts, or questions.
type Section struct {
	Label   string `json:"label,omitempty"`
	Content []Node `json:"content"`
}

// Kind implements Node.
func (*Section) Kind() NodeType { return NodeSection }

// Layout is a visual grouping of up to two questions rendered side by side.
// Like Section it has no semantic effect on compilation.
type Layout struct {
	Label   string `json:"label,omitempty"`
	Content []Node `json:"content"`
}

// Kind implements Node.
func (*Layout) Kind() NodeType { return NodeLayout }

// Question is a leaf describing one collectible value. Options and
// Validation are kept raw: each question type owns its configuration schema
// and decodes these during definition validation and rule extraction.
type Question struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	QuestionType      QuestionType    `json:"questionType"`
	Label             string          `json:"label,omitempty"`
	RenderLabelAsHTML bool            `json:"renderLabelAsHTML,omitempty"`
	Required          bool            `json:"required,omitempty"`
	RequiredMessage   string          `json:"requiredMessage,omitempty"`
	Placeholder       string          `json:"placeholder,omitempty"`
	Description       string          `json:"description,omitempty"`
	ShowWordCount     bool            `json:"showWordCount,omitempty"`
	Searchable        bool            `json:"searchable,omitempty"`
	IconName          string          `json:"iconName,omitempty"`
	Regex             string          `json:"regex,omitempty"`
	Options           json.RawMessage `json:"options,omitempty"`
	Validation        json.RawMessage `json:"validation,omitempty"`
}

// Kind implements Node.
func (*Question) Kind() NodeType { return NodeQuestion }
