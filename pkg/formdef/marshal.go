package formdef

import "encoding/json"

// MarshalJSON emits the section with its union discriminator so decoded
// definitions round-trip.
func (s *Section) MarshalJSON() ([]byte, error) {
	type alias Section
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeSection, (*alias)(s)})
}

// MarshalJSON emits the layout with its union discriminator.
func (l *Layout) MarshalJSON() ([]byte, error) {
	type alias Layout
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeLayout, (*alias)(l)})
}

// MarshalJSON emits the question with its union discriminator.
func (q *Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{NodeQuestion, (*alias)(q)})
}
