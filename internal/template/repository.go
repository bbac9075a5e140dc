package template

// Repository holds an ordered collection of templates. Insertion order is
// preserved; it only matters as the tie-break during selection.
type Repository struct {
	templates []Template
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Add appends a template. No deduplication: two templates may share a name,
// and the later one can only win selection with a strictly higher score.
func (r *Repository) Add(t Template) {
	r.templates = append(r.templates, t)
}

// Extend appends every template in ts, in order.
func (r *Repository) Extend(ts []Template) {
	for _, t := range ts {
		r.Add(t)
	}
}

// Templates returns the held templates in insertion order.
func (r *Repository) Templates() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Len returns the number of held templates.
func (r *Repository) Len() int { return len(r.templates) }

// BestTemplate returns the template with the strictly greatest match score
// against text, or nil when the repository is empty. Ties keep the earlier
// template, since only a strictly greater score replaces the running best.
func (r *Repository) BestTemplate(text string) Template {
	bestScore := -1.0
	var best Template
	for _, t := range r.templates {
		if score := t.MatchScore(text); score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}
