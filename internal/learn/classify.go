// Package learn derives template definitions from a single labeled example:
// it classifies sample values, reverse-engineers field rules from the text
// around them and assembles whole template definitions.
package learn

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

var (
	currencyRE    = regexp.MustCompile(`^\$?-?[0-9][0-9,]*(?:\.[0-9]{1,2})?$`)
	numberRE      = regexp.MustCompile(`^-?[0-9][0-9,]*(?:\.[0-9]+)?$`)
	dateRE        = regexp.MustCompile(`^(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{2,4})$`)
	alnumHyphenRE = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	alnumPunctRE  = regexp.MustCompile(`^[A-Za-z0-9 .,/#-]+$`)
)

// ClassifyValue inspects a literal sample and returns a pattern fragment that
// should match similarly-shaped values plus the transform to normalize them.
// Checks run in priority order: currency before number, since a
// currency-shaped value also satisfies the number shape.
func ClassifyValue(sample string) (valuePattern string, transform constants.Transform) {
	cleaned := strings.TrimSpace(sample)
	switch {
	case cleaned == "":
		return `[\S\s]*`, constants.TransformText
	case currencyRE.MatchString(cleaned):
		return `-?[0-9][0-9,]*(?:\.[0-9]{1,2})?`, constants.TransformCurrency
	case numberRE.MatchString(cleaned):
		return `-?[0-9][0-9,]*(?:\.[0-9]+)?`, constants.TransformNumber
	case dateRE.MatchString(cleaned):
		return `[A-Za-z0-9,/\- ]+`, constants.TransformDate
	case alnumHyphenRE.MatchString(cleaned):
		return `[A-Za-z0-9-]+`, constants.TransformText
	case alnumPunctRE.MatchString(cleaned):
		return `[A-Za-z0-9 .,/#-]+`, constants.TransformText
	default:
		return `[^\n]+`, constants.TransformText
	}
}
