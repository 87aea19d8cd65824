// Package compiler turns a decoded form definition into its validation
// contract: a flat, ordered mapping from question name to runtime rule. It
// validates the whole definition first (structure, per-question
// configuration, global uniqueness) and refuses to produce a partial form —
// a partially compiled form would silently skip validation on unknown
// fields. Compilation is a pure fold over the content tree with no I/O.
package compiler
