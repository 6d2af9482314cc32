package dto

import "encoding/json"

// OptionalString distinguishes an absent JSON field from an explicit null.
// Set is true when the field appeared in the payload at all.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records presence and keeps Value nil for explicit nulls.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders the value or null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
