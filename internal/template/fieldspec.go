package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

// FieldSpec describes how to extract one named value from text: a compiled
// pattern, the capture group holding the value, a normalization transform
// and whether a miss aborts the whole extraction. Immutable after construction.
type FieldSpec struct {
	pattern   *regexp.Regexp
	source    string
	group     int
	transform constants.Transform
	required  bool
}

// NewFieldSpec compiles pattern (case-insensitive, multiline) and returns the
// spec. Compilation failures surface as ErrMalformedTemplate so broken
// definitions are rejected at load time rather than at first extraction.
func NewFieldSpec(pattern string, group int, transform constants.Transform, required bool) (FieldSpec, error) {
	re, err := regexp.Compile("(?im)" + pattern)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("compile field pattern %q: %w: %w", pattern, common.ErrMalformedTemplate, err)
	}
	if group < 0 {
		return FieldSpec{}, fmt.Errorf("field group must be >= 0, got %d: %w", group, common.ErrMalformedTemplate)
	}
	return FieldSpec{
		pattern:   re,
		source:    pattern,
		group:     group,
		transform: transform,
		required:  required,
	}, nil
}

// Pattern returns the source text of the field's pattern, without flags.
func (s FieldSpec) Pattern() string { return s.source }

// Group returns the capture group index holding the value.
func (s FieldSpec) Group() int { return s.group }

// Transform returns the normalization applied to captured values.
func (s FieldSpec) Transform() constants.Transform { return s.transform }

// Required reports whether a missing match fails the whole extraction.
func (s FieldSpec) Required() bool { return s.required }

// extract applies the field rule to text. A nil error with ok=false means the
// pattern found no match (the optional-field case left to the caller).
func (s FieldSpec) extract(name, text string) (value string, ok bool, err error) {
	match := s.pattern.FindStringSubmatch(text)
	if match == nil {
		if s.required {
			return "", false, fmt.Errorf("field %q could not be located using pattern %q: %w",
				name, s.source, common.ErrRequiredFieldMissing)
		}
		return "", false, nil
	}
	// Group validity is only knowable against an actual match result.
	if s.group >= len(match) {
		return "", false, fmt.Errorf("pattern for field %q does not contain group %d: %q: %w",
			name, s.group, s.source, common.ErrMalformedPattern)
	}
	return ApplyTransform(match[s.group], s.transform), true, nil
}

// ApplyTransform normalizes a captured raw value. Currency values lose commas
// and the dollar sign, numbers lose commas, dates have embedded newlines
// collapsed to spaces; every transform trims surrounding whitespace.
func ApplyTransform(value string, transform constants.Transform) string {
	cleaned := strings.TrimSpace(value)
	switch transform {
	case constants.TransformCurrency:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.ReplaceAll(cleaned, "$", "")
	case constants.TransformNumber:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case constants.TransformDate:
		cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	}
	return strings.TrimSpace(cleaned)
}
