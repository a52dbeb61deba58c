package models

import (
	"encoding/json"
	"fmt"
)

// StringList unmarshals from either a JSON string or a JSON string array.
// Plan payloads and import files written by older admin-form iterations carry
// relationType as a scalar; the current shape is a list.
type StringList []string

// UnmarshalJSON accepts "x" and ["x","y"], rejecting anything else.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("want string or string array: %w", err)
	}
	*l = StringList(many)
	return nil
}

// MarshalJSON always emits the list shape.
func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}
