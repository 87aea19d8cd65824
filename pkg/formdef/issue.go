package formdef

import (
	"fmt"
	"strings"
)

// Issue is a single author-time problem with a form definition, located by a
// JSON-ish path into the document and, when the offending node is a
// question, its id.
type Issue struct {
	Path    string `json:"path,omitempty"`
	NodeID  string `json:"nodeId,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// DefinitionError aggregates every issue found in a definition so authors
// can fix all problems in one pass. It is fatal to compilation; no partial
// form is ever produced from a definition that carries issues.
type DefinitionError struct {
	Issues []Issue
}

func (e *DefinitionError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "formdef: invalid definition"
	case 1:
		return "formdef: " + e.Issues[0].String()
	default:
		parts := make([]string, 0, len(e.Issues))
		for _, issue := range e.Issues {
			parts = append(parts, issue.String())
		}
		return fmt.Sprintf("formdef: definition has %d problems: %s", len(e.Issues), strings.Join(parts, "; "))
	}
}
