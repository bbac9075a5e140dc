package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

// Document is the serializable template collection format: a top-level
// "templates" key over named template definitions.
type Document struct {
	Templates []Definition `json:"templates" yaml:"templates"`
}

// Definition is one serializable template: a name, keyword triggers and a
// mapping of field name to field rule. Produced by hand-authoring a document
// or by the learner; consumed by Build.
type Definition struct {
	Name     string                     `json:"name" yaml:"name"`
	Keywords StringList                 `json:"keywords" yaml:"keywords"`
	Fields   map[string]FieldDefinition `json:"fields" yaml:"fields"`
}

// FieldDefinition is the document form of one field rule.
type FieldDefinition struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Group     int    `json:"group" yaml:"group"`
	Transform string `json:"transform" yaml:"transform"`
	Required  bool   `json:"required" yaml:"required"`
}

// StringList accepts either a single string or an array of strings in a
// document, and always serializes back as an array.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("keywords must be a string or an array of strings: %w", common.ErrMalformedTemplate)
	}
	*s = many
	return nil
}

// ParseDocument decodes a template document from YAML or JSON bytes. ext is
// the file extension used as a format hint (".json", ".yaml", ".yml");
// empty means detect from content (JSON documents start with "{").
// YAML input is normalized to JSON so a single schema validation and
// defaulting path handles both formats.
func ParseDocument(data []byte, ext string) (*Document, error) {
	ext = strings.ToLower(ext)
	isYAML := ext == ".yaml" || ext == ".yml"
	if ext == "" && !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		isYAML = true
	}
	if isYAML {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse template document yaml: %w: %w", common.ErrMalformedTemplate, err)
		}
		normalized, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("normalize template document: %w: %w", common.ErrMalformedTemplate, err)
		}
		data = normalized
	}

	if err := validateDocument(data); err != nil {
		return nil, err
	}

	// Decode through pointer-typed shadows so absent keys get their
	// documented defaults (group=1, transform=text, required=false).
	var raw struct {
		Templates []struct {
			Name     *string    `json:"name"`
			Keywords StringList `json:"keywords"`
			Fields   map[string]struct {
				Pattern   *string `json:"pattern"`
				Group     *int    `json:"group"`
				Transform *string `json:"transform"`
				Required  *bool   `json:"required"`
			} `json:"fields"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode template document: %w: %w", common.ErrMalformedTemplate, err)
	}

	doc := &Document{}
	for _, t := range raw.Templates {
		def := Definition{
			Name:     "Unnamed Template",
			Keywords: t.Keywords,
			Fields:   make(map[string]FieldDefinition, len(t.Fields)),
		}
		if t.Name != nil {
			def.Name = *t.Name
		}
		for fieldName, f := range t.Fields {
			fd := FieldDefinition{Group: 1, Transform: string(constants.TransformText)}
			if f.Pattern == nil {
				return nil, fmt.Errorf("field %q requires a 'pattern' entry: %w", fieldName, common.ErrMalformedTemplate)
			}
			fd.Pattern = *f.Pattern
			if f.Group != nil {
				fd.Group = *f.Group
			}
			if f.Transform != nil {
				fd.Transform = *f.Transform
			}
			if f.Required != nil {
				fd.Required = *f.Required
			}
			def.Fields[fieldName] = fd
		}
		doc.Templates = append(doc.Templates, def)
	}
	return doc, nil
}

// Build constructs a template from a single definition, compiling every
// field pattern. A definition without fields is a malformed document.
func (d Definition) Build() (*RegexTemplate, error) {
	if d.Fields == nil {
		return nil, fmt.Errorf("template %q requires a 'fields' mapping: %w", d.Name, common.ErrMalformedTemplate)
	}
	fields := make(map[string]FieldSpec, len(d.Fields))
	for name, fd := range d.Fields {
		spec, err := NewFieldSpec(fd.Pattern, fd.Group, constants.ParseTransform(fd.Transform), fd.Required)
		if err != nil {
			return nil, fmt.Errorf("template %q field %q: %w", d.Name, name, err)
		}
		fields[name] = spec
	}
	return NewRegexTemplate(d.Name, d.Keywords, fields), nil
}

// Build constructs every template in the document, in document order.
func (d *Document) Build() ([]Template, error) {
	templates := make([]Template, 0, len(d.Templates))
	for _, def := range d.Templates {
		t, err := def.Build()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// LoadRepository reads a template document file (YAML or JSON by extension)
// and returns a repository holding its templates in document order.
func LoadRepository(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template document: %w", err)
	}
	doc, err := ParseDocument(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	templates, err := doc.Build()
	if err != nil {
		return nil, err
	}
	repo := NewRepository()
	repo.Extend(templates)
	return repo, nil
}

// Snapshot renders the repository back into document form, patterns in their
// source string form. Only regex templates serialize; other variants have no
// document representation yet.
func (r *Repository) Snapshot() *Document {
	doc := &Document{Templates: make([]Definition, 0, len(r.templates))}
	for _, t := range r.templates {
		rt, ok := t.(*RegexTemplate)
		if !ok {
			continue
		}
		def := Definition{
			Name:     rt.name,
			Keywords: append(StringList{}, rt.keywords...),
			Fields:   make(map[string]FieldDefinition, len(rt.fields)),
		}
		for name, spec := range rt.fields {
			def.Fields[name] = FieldDefinition{
				Pattern:   spec.source,
				Group:     spec.group,
				Transform: string(spec.transform),
				Required:  spec.required,
			}
		}
		doc.Templates = append(doc.Templates, def)
	}
	return doc
}

// Encode serializes the document as JSON (default) or YAML when ext is
// ".yaml"/".yml". JSON output is indented; key order inside field mappings is
// not preserved, field rule content is.
func (d *Document) Encode(ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(d)
	default:
		return json.MarshalIndent(d, "", "  ")
	}
}

// SaveRepository writes the repository's document form to path, choosing the
// format from the file extension.
func SaveRepository(r *Repository, path string) error {
	doc := r.Snapshot()
	data, err := doc.Encode(filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("encode template document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template document: %w", err)
	}
	return nil
}

// FieldNames returns the definition's field names, sorted.
func (d Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
