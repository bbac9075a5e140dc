package learn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

// LearnedField is a derived field rule, ready to be placed into a template
// definition. The value is always captured by group 1 and learned fields are
// required: a template that cannot find its own sample is worthless.
type LearnedField struct {
	Name      string
	Pattern   string
	Transform constants.Transform
	Required  bool
	Group     int
}

// currencyClass optionally absorbs a symbol or ISO code between the label and
// the amount, so either "$987.65" or a bare "987.65" is captured.
const currencyClass = `(?:[$€£¥₹]|USD|CAD|AUD|GBP|EUR)?\s*`

var prefixTokenRE = regexp.MustCompile(`\s+|[:#-]+|[^:#\-\s]+`)

// DeriveField reverse-engineers a field rule from one sample value inside
// text: it locates the line holding the sample, turns the preceding label
// text into a resilient prefix pattern and pairs it with a value pattern
// from the classifier.
func DeriveField(text, name, sample string) (LearnedField, error) {
	if strings.TrimSpace(name) == "" {
		return LearnedField{}, fmt.Errorf("field name cannot be empty: %w", common.ErrInvalidInput)
	}
	_, prefix, err := findSampleLine(text, sample)
	if err != nil {
		return LearnedField{}, err
	}

	prefixPattern := normalizePrefix(prefix)
	valuePattern, transform := ClassifyValue(sample)

	var pattern string
	if transform == constants.TransformCurrency {
		pattern = prefixPattern + currencyClass + "(" + valuePattern + ")"
	} else {
		pattern = prefixPattern + "(" + valuePattern + ")"
	}

	return LearnedField{
		Name:      name,
		Pattern:   pattern,
		Transform: transform,
		Required:  true,
		Group:     1,
	}, nil
}

// findSampleLine returns the first line of text containing the sample
// (case-insensitive) along with the character prefix preceding the match.
// When the sample sits at the start of its line, the nearest preceding
// non-empty line is used as the prefix instead: invoice layouts often put
// the label on the line above the value.
func findSampleLine(text, sample string) (line, prefix string, err error) {
	lowerSample := strings.ToLower(strings.TrimSpace(sample))
	if lowerSample == "" {
		return "", "", fmt.Errorf("field value cannot be empty: %w", common.ErrInvalidInput)
	}
	lines := strings.Split(text, "\n")
	for index, candidate := range lines {
		position := strings.Index(strings.ToLower(candidate), lowerSample)
		if position == -1 {
			continue
		}
		prefix = candidate[:position]
		if strings.TrimSpace(prefix) == "" && index > 0 {
			for back := index - 1; back >= 0; back-- {
				if trimmed := strings.TrimSpace(lines[back]); trimmed != "" {
					prefix = trimmed + " "
					break
				}
			}
		}
		return candidate, prefix, nil
	}
	return "", "", fmt.Errorf("could not locate value %q in the supplied text: %w", sample, common.ErrNotFound)
}

// normalizePrefix converts a literal label prefix into a resilient pattern:
// whitespace runs match any whitespace, separator runs (:, #, -) become an
// optional separator class, everything else matches literally. A trailing
// optional separator/whitespace class absorbs formatting drift between the
// label and the value.
func normalizePrefix(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		return ""
	}
	var b strings.Builder
	for _, token := range prefixTokenRE.FindAllString(prefix, -1) {
		switch {
		case strings.TrimSpace(token) == "":
			b.WriteString(`\s+`)
		case strings.Trim(token, ":#-") == "":
			b.WriteString(`[:#\-]*`)
		default:
			b.WriteString(regexp.QuoteMeta(token))
		}
	}
	b.WriteString(`[\s:#\-]*`)
	return b.String()
}
