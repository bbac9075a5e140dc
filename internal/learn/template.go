package learn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/template"
)

// DefaultTemplateName is used when the caller does not supply a name.
const DefaultTemplateName = "Learned Template"

// domainKeyword is always part of an inferred keyword list: every learned
// template is an invoice template.
const domainKeyword = "invoice"

// LearnTemplate derives a serializable template definition from one example
// text and its known field values. Construction into a live template is the
// caller's responsibility (via Definition.Build), keeping the learner's
// output a plain document structure.
func LearnTemplate(text, name string, keywords []string, fieldSamples map[string]string) (template.Definition, error) {
	if len(fieldSamples) == 0 {
		return template.Definition{}, fmt.Errorf("at least one field sample must be provided: %w", common.ErrInvalidInput)
	}

	fields := make(map[string]template.FieldDefinition, len(fieldSamples))
	for _, fieldName := range sortedNames(fieldSamples) {
		learned, err := DeriveField(text, fieldName, fieldSamples[fieldName])
		if err != nil {
			return template.Definition{}, err
		}
		fields[learned.Name] = template.FieldDefinition{
			Pattern:   learned.Pattern,
			Group:     learned.Group,
			Transform: string(learned.Transform),
			Required:  learned.Required,
		}
	}

	if name == "" {
		name = DefaultTemplateName
	}
	return template.Definition{
		Name:     name,
		Keywords: inferKeywords(text, keywords),
		Fields:   fields,
	}, nil
}

// inferKeywords keeps an explicit non-empty keyword list verbatim; otherwise
// the first non-blank line of text becomes the single inferred keyword.
// Either way the domain keyword is appended unless already present.
func inferKeywords(text string, existing []string) []string {
	var keywords []string
	for _, kw := range existing {
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		for _, line := range strings.Split(text, "\n") {
			if candidate := strings.TrimSpace(line); candidate != "" {
				keywords = append(keywords, candidate)
				break
			}
		}
	}
	for _, kw := range keywords {
		if strings.EqualFold(kw, domainKeyword) {
			return keywords
		}
	}
	return append(keywords, domainKeyword)
}

func sortedNames(samples map[string]string) []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
