package question

import "encoding/json"

// decodeValidation unpacks a question's raw validation block into the
// type-specific config struct. An absent block is legal everywhere; each
// descriptor applies its own defaults.
func decodeValidation(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
