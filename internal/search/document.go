package search

import (
	"strings"

	"bizdir.app/directory/internal/model"
)

// Fields is the folded text a company is indexed under.
type Fields struct {
	Name     string
	Document string
}

// CompanyFields builds the index text for c. Every term of the name and the
// document that belongs to a synonym group brings the rest of its group into
// the document, so an index that matches raw query tokens finds the same
// companies as the expanded tsquery.
func CompanyFields(c *model.Company) Fields {
	parts := []string{c.DescriptionEN, c.DescriptionFR, c.City, c.Region}
	parts = append(parts, c.Categories...)
	parts = append(parts, c.ServiceAreas...)

	name := Normalize(c.Name)
	doc := Normalize(strings.Join(parts, " "))

	present := map[string]struct{}{}
	for _, tok := range strings.Fields(doc) {
		present[tok] = struct{}{}
	}
	var extra []string
	for _, tok := range append(strings.Fields(name), strings.Fields(doc)...) {
		for _, syn := range Expand(tok)[1:] {
			if _, ok := present[syn]; ok {
				continue
			}
			present[syn] = struct{}{}
			extra = append(extra, syn)
		}
	}
	if len(extra) > 0 {
		doc = strings.TrimSpace(doc + " " + strings.Join(extra, " "))
	}

	return Fields{Name: name, Document: doc}
}
