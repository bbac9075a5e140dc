// Package defaults bundles the built-in template library shipped with the
// extractor. The document is embedded so the binary works without any
// template files on disk.
package defaults

import (
	"embed"
	"fmt"

	"github.com/joseph-ayodele/invoice-extractor/internal/template"
)

//go:embed default_templates.json
var defaultsFS embed.FS

const documentName = "default_templates.json"

// Document parses the embedded default template document.
func Document() (*template.Document, error) {
	data, err := defaultsFS.ReadFile(documentName)
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	doc, err := template.ParseDocument(data, ".json")
	if err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return doc, nil
}

// Repository builds a repository from the embedded default template set.
func Repository() (*template.Repository, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}
	templates, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("build embedded defaults: %w", err)
	}
	repo := template.NewRepository()
	repo.Extend(templates)
	return repo, nil
}
