package template

import (
	"sort"
	"strings"
)

// Template is the capability shared by all template variants: score how well
// the template matches a text and extract its fields from that text.
// RegexTemplate is the only variant in-repo; layout- or model-based matchers
// can be added as further variants without touching the repository.
type Template interface {
	Name() string
	Keywords() []string
	MatchScore(text string) float64
	Extract(text string) (map[string]string, error)
}

// RegexTemplate is a named, keyword-tagged bundle of field rules.
type RegexTemplate struct {
	name       string
	keywords   []string
	fieldNames []string
	fields     map[string]FieldSpec
}

// NewRegexTemplate builds a template. Keywords are lowercased at construction;
// fields are iterated in sorted name order so extraction is deterministic.
func NewRegexTemplate(name string, keywords []string, fields map[string]FieldSpec) *RegexTemplate {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	names := make([]string, 0, len(fields))
	for fieldName := range fields {
		names = append(names, fieldName)
	}
	sort.Strings(names)
	return &RegexTemplate{
		name:       name,
		keywords:   lowered,
		fieldNames: names,
		fields:     fields,
	}
}

func (t *RegexTemplate) Name() string { return t.name }

// Keywords returns the template's lowercased keywords in definition order.
func (t *RegexTemplate) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

// Fields returns the template's field specs keyed by field name.
func (t *RegexTemplate) Fields() map[string]FieldSpec {
	out := make(map[string]FieldSpec, len(t.fields))
	for name, spec := range t.fields {
		out[name] = spec
	}
	return out
}

// MatchScore returns the fraction of keywords present in text, in [0,1].
// A template with no keywords never matches. Keywords are tested
// independently, so overlapping keywords each count.
func (t *RegexTemplate) MatchScore(text string) float64 {
	if len(t.keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range t.keywords {
		if kw != "" && strings.Contains(lower, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(t.keywords))
}

// Extract runs every field rule against text and returns the name→value
// mapping. Optional fields without a match are omitted (no empty-string
// entries); a required field without a match or an out-of-range capture
// group fails the whole extraction.
func (t *RegexTemplate) Extract(text string) (map[string]string, error) {
	values := make(map[string]string, len(t.fields))
	for _, name := range t.fieldNames {
		value, ok, err := t.fields[name].extract(name, text)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		values[name] = value
	}
	return values, nil
}
