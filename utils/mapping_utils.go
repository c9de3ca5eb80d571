package utils

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"nk-catalog/models"
)

var stripPolicy = bluemonday.StrictPolicy()

// emptyMarkers are upstream values that mean "not filled in"
var emptyMarkers = map[string]bool{
	"None": true,
	"nan":  true,
	"Нет":  true,
}

// truthyValues are the accepted spellings of a checked flag (lower case)
var truthyValues = map[string]bool{
	"да":   true,
	"true": true,
	"1":    true,
	"yes":  true,
}

// PlainText strips any HTML markup from an upstream value and trims it
func PlainText(value string) string {
	if !strings.ContainsAny(value, "<>&") {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(value)))
}

// CleanValue returns "" for the upstream "not filled in" markers, otherwise the plain text
func CleanValue(value string) string {
	value = PlainText(value)
	if emptyMarkers[value] {
		return ""
	}
	return value
}

// AttributeText returns the display text of the named attribute.
// ok is false when the attribute is not present at all.
func AttributeText(attrs []models.Attribute, name string) (value string, ok bool) {
	for _, attr := range attrs {
		if attr.Name == name {
			return PlainText(models.TextFromJSON(attr.Value)), true
		}
	}
	return "", false
}

// AttributeByID returns the raw text value of the attribute with the given national catalog id
func AttributeByID(attrs []models.Attribute, id int) string {
	for _, attr := range attrs {
		if attr.AttrID != id {
			continue
		}
		raw := attr.Value
		if len(raw) == 0 {
			raw = attr.AttrValue
		}
		if value := CleanValue(models.TextFromJSON(raw)); value != "" {
			return value
		}
	}
	return ""
}

// IsTruthy reports whether a flag value counts as checked:
// true, 1, one of да/true/1/yes, or an object whose name is да/true/yes
func IsTruthy(raw json.RawMessage) bool {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case string:
		return truthyValues[strings.ToLower(strings.TrimSpace(v))]
	case map[string]any:
		name, _ := v["name"].(string)
		name = strings.ToLower(strings.TrimSpace(name))
		return name != "1" && truthyValues[name]
	}
	return false
}

// AttributeFlag reports whether the named attribute is present and truthy
func AttributeFlag(attrs []models.Attribute, name string) bool {
	for _, attr := range attrs {
		if attr.Name == name {
			return IsTruthy(attr.Value)
		}
	}
	return false
}

// CategoryIDFromValue extracts cat_id from an attribute value object, 0 when absent
func CategoryIDFromValue(raw json.RawMessage) int {
	var value struct {
		CatID int `json:"cat_id"`
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	return value.CatID
}

// LastPathSegment returns the part of an href after the final slash
func LastPathSegment(href string) string {
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
