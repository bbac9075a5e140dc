package constants

import "strings"

// Transform names a normalization applied to a captured field value.
type Transform string

const (
	TransformText     Transform = "text"
	TransformCurrency Transform = "currency"
	TransformNumber   Transform = "number"
	TransformDate     Transform = "date"
)

// Transforms holds the allowed transform names for template field definitions.
var Transforms = []Transform{TransformText, TransformCurrency, TransformNumber, TransformDate}

// ParseTransform normalizes a transform name; unknown or empty names fall back to text.
func ParseTransform(s string) Transform {
	switch Transform(strings.ToLower(strings.TrimSpace(s))) {
	case TransformCurrency:
		return TransformCurrency
	case TransformNumber:
		return TransformNumber
	case TransformDate:
		return TransformDate
	default:
		return TransformText
	}
}

// IsValidTransform reports whether s names a known transform (empty counts as text).
func IsValidTransform(s string) bool {
	switch Transform(strings.ToLower(strings.TrimSpace(s))) {
	case TransformText, TransformCurrency, TransformNumber, TransformDate, "":
		return true
	default:
		return false
	}
}
