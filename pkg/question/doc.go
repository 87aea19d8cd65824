// Package question holds one descriptor per question type. A descriptor
// owns the author-time configuration checks for its type and the pure
// extraction of a runtime value rule from a validated question. The registry
// maps question-type tags to descriptors so the compiler stays open to new
// types without touching tree-walking logic.
package question
