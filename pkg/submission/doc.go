// Package submission assembles validated form values into the two payload
// shapes the transport layer consumes: the full multipart submission with
// binary attachments, and the attachment-free autosave snapshot. It also
// owns the per-form-instance lifecycle — editing, submitting, submitted —
// including the debounced autosave trigger.
package submission
