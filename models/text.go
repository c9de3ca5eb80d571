package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is an optional text value coming from an upstream system.
// Any JSON scalar decodes into it without error; see TextFromJSON.
type Text string

// UnmarshalJSON coerces the raw JSON value to text and never fails,
// so one malformed field cannot reject a whole payload.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(TextFromJSON(data))
	return nil
}

// String returns the raw text
func (t Text) String() string {
	return string(t)
}

// IsEmpty reports whether the value is absent or whitespace only
func (t Text) IsEmpty() bool {
	return strings.TrimSpace(string(t)) == ""
}

// TextFromJSON converts a raw JSON value to display text:
// strings as-is, numbers as their literal, booleans as "Да"/"Нет",
// objects by their "name" member, null and arrays as empty.
func TextFromJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return ""
		}
		if name, ok := obj["name"]; ok {
			return TextFromJSON(name)
		}
		return ""
	case '[':
		return ""
	}

	switch string(trimmed) {
	case "null":
		return ""
	case "true":
		return "Да"
	case "false":
		return "Нет"
	}

	// numbers keep their literal form (e.g. TN VED codes)
	return string(trimmed)
}
