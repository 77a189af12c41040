package badge

import "encoding/json"

type shieldsEndpoint struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
	LabelColor    string `json:"labelColor,omitempty"`
}

// ShieldsJSON returns the shields.io endpoint JSON describing b, for use with
// https://shields.io/badges/endpoint-badge.
func ShieldsJSON(b Badge) string {
	data := shieldsEndpoint{
		SchemaVersion: 1,
		Label:         b.LeftText,
		Message:       b.RightText,
		Color:         b.Color,
		LabelColor:    b.LabelColor,
	}
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out) + "\n"
}
