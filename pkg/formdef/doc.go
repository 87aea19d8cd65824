// Package formdef defines the declarative form-definition model: metadata
// plus a recursive content tree of sections, layouts, and typed questions.
// Definitions arrive as JSON (or YAML) documents from an external content
// source; this package decodes them into the tagged node union consumed by
// the compiler without interpreting question-specific configuration, which
// stays owned by the question descriptors.
package formdef
