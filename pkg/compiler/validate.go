package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
)

// maxLayoutQuestions caps how many questions a layout row may hold.
const maxLayoutQuestions = 2

// ValidateDefinition checks a decoded definition against the registry and
// returns every problem found: structural constraints, per-question
// configuration issues, and global name/id uniqueness. An empty slice means
// the definition is compilable.
func ValidateDefinition(def *formdef.FormDefinition, reg *question.Registry) []formdef.Issue {
	if def == nil {
		return []formdef.Issue{{Message: "definition is required"}}
	}
	if reg == nil {
		reg = question.DefaultRegistry()
	}

	v := &definitionValidator{registry: reg}
	if strings.TrimSpace(def.Metadata.Title) == "" {
		v.issues = append(v.issues, formdef.Issue{Path: "metadata.title", Message: "form must have a title"})
	}
	v.walkNodes("content", def.Content, false)
	v.checkUniqueness()
	return v.issues
}

type definitionValidator struct {
	registry *question.Registry
	issues   []formdef.Issue
	leaves   []leafRef
}

type leafRef struct {
	path string
	id   string
	name string
}

func (v *definitionValidator) walkNodes(path string, nodes []formdef.Node, inLayout bool) {
	for i, node := range nodes {
		v.walkNode(fmt.Sprintf("%s[%d]", path, i), node, inLayout)
	}
}

func (v *definitionValidator) walkNode(path string, node formdef.Node, inLayout bool) {
	switch typed := node.(type) {
	case *formdef.Section:
		if inLayout {
			v.issues = append(v.issues, formdef.Issue{Path: path, Message: "a layout can only contain questions"})
			return
		}
		v.walkNodes(path+".content", typed.Content, false)
	case *formdef.Layout:
		if inLayout {
			v.issues = append(v.issues, formdef.Issue{Path: path, Message: "a layout can only contain questions"})
			return
		}
		if len(typed.Content) > maxLayoutQuestions {
			v.issues = append(v.issues, formdef.Issue{
				Path:    path,
				Message: fmt.Sprintf("a layout cannot have more than %d questions", maxLayoutQuestions),
			})
		}
		v.walkNodes(path+".content", typed.Content, true)
	case *formdef.Question:
		v.checkQuestion(path, typed)
	default:
		v.issues = append(v.issues, formdef.Issue{Path: path, Message: "unsupported node"})
	}
}

func (v *definitionValidator) checkQuestion(path string, q *formdef.Question) {
	v.leaves = append(v.leaves, leafRef{path: path, id: q.ID, name: q.Name})

	if strings.TrimSpace(q.Name) == "" {
		v.issues = append(v.issues, formdef.Issue{Path: path, NodeID: q.ID, Message: "question must have a unique name for form submissions"})
	}
	if strings.TrimSpace(q.ID) == "" {
		v.issues = append(v.issues, formdef.Issue{Path: path, Message: "question must have a unique string id"})
	}

	descriptor, err := v.registry.Lookup(q.QuestionType)
	if err != nil {
		v.issues = append(v.issues, formdef.Issue{
			Path:    path,
			NodeID:  q.ID,
			Message: fmt.Sprintf("unknown question type %q", q.QuestionType),
		})
		return
	}
	for _, problem := range descriptor.ValidateConfig(q) {
		v.issues = append(v.issues, formdef.Issue{Path: path, NodeID: q.ID, Message: problem})
	}
}

// checkUniqueness reports every duplicated question name and id, naming all
// offending node ids so the author can fix them in one pass.
func (v *definitionValidator) checkUniqueness() {
	byName := make(map[string][]leafRef)
	byID := make(map[string][]leafRef)
	for _, leaf := range v.leaves {
		if leaf.name != "" {
			byName[leaf.name] = append(byName[leaf.name], leaf)
		}
		if leaf.id != "" {
			byID[leaf.id] = append(byID[leaf.id], leaf)
		}
	}

	for _, name := range sortedKeys(byName) {
		leaves := byName[name]
		if len(leaves) < 2 {
			continue
		}
		ids := make([]string, 0, len(leaves))
		for _, leaf := range leaves {
			if leaf.id != "" {
				ids = append(ids, leaf.id)
			} else {
				ids = append(ids, leaf.path)
			}
		}
		v.issues = append(v.issues, formdef.Issue{
			Message: fmt.Sprintf("duplicate question name %q used by %s", name, strings.Join(ids, ", ")),
		})
	}

	for _, id := range sortedKeys(byID) {
		leaves := byID[id]
		if len(leaves) < 2 {
			continue
		}
		paths := make([]string, 0, len(leaves))
		for _, leaf := range leaves {
			paths = append(paths, leaf.path)
		}
		v.issues = append(v.issues, formdef.Issue{
			NodeID:  id,
			Message: fmt.Sprintf("duplicate question id %q used at %s", id, strings.Join(paths, ", ")),
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
