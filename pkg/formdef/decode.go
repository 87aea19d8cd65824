package formdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a form definition from JSON or YAML. Structural problems
// (unknown node tags, malformed nodes) are accumulated and returned together
// as a *DefinitionError rather than stopping at the first one.
func Parse(raw []byte) (*FormDefinition, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, errors.New("formdef: document is empty")
	}
	if data[0] != '{' {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("formdef: decode yaml: %w", err)
		}
		data = converted
	}

	var doc struct {
		Metadata *Metadata         `json:"metadata"`
		Content  []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formdef: decode document: %w", err)
	}

	var issues []Issue
	if doc.Metadata == nil {
		issues = append(issues, Issue{Path: "metadata", Message: "form must have metadata"})
	} else if strings.TrimSpace(doc.Metadata.Title) == "" {
		issues = append(issues, Issue{Path: "metadata.title", Message: "form must have a title"})
	}

	def := &FormDefinition{}
	if doc.Metadata != nil {
		def.Metadata = *doc.Metadata
	}
	def.Content = decodeNodes("content", doc.Content, &issues)

	if len(issues) > 0 {
		return nil, &DefinitionError{Issues: issues}
	}
	return def, nil
}

// ParseDocument decodes a loaded Document.
func ParseDocument(doc Document) (*FormDefinition, error) {
	return Parse(doc.Raw())
}

func decodeNodes(path string, raws []json.RawMessage, issues *[]Issue) []Node {
	if len(raws) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(raws))
	for i, raw := range raws {
		node := decodeNode(fmt.Sprintf("%s[%d]", path, i), raw, issues)
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func decodeNode(path string, raw json.RawMessage, issues *[]Issue) Node {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		*issues = append(*issues, Issue{Path: path, Message: "node must be a JSON object"})
		return nil
	}

	switch probe.Type {
	case string(NodeSection):
		var section struct {
			Label   string            `json:"label"`
			Content []json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(raw, &section); err != nil {
			*issues = append(*issues, Issue{Path: path, Message: "malformed section: " + err.Error()})
			return nil
		}
		return &Section{
			Label:   section.Label,
			Content: decodeNodes(path+".content", section.Content, issues),
		}
	case string(NodeLayout):
		var layout struct {
			Label   string            `json:"label"`
			Content []json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(raw, &layout); err != nil {
			*issues = append(*issues, Issue{Path: path, Message: "malformed layout: " + err.Error()})
			return nil
		}
		return &Layout{
			Label:   layout.Label,
			Content: decodeNodes(path+".content", layout.Content, issues),
		}
	// A bare question object may omit the discriminator; questions are the
	// common case in authored documents.
	case "", string(NodeQuestion):
		var question Question
		if err := json.Unmarshal(raw, &question); err != nil {
			*issues = append(*issues, Issue{Path: path, Message: "malformed question: " + err.Error()})
			return nil
		}
		return &question
	default:
		*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("unknown form item type %q", probe.Type)})
		return nil
	}
}

// yamlToJSON normalizes a YAML document into JSON so both formats share one
// decode path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	normalized, err := normalizeYAML(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

func normalizeYAML(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			normalized, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", key)
			}
			normalized, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[name] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			normalized, err := normalizeYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	default:
		return value, nil
	}
}
