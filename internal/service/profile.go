package service

import (
	"strings"

	"bizdir.app/directory/internal/model"
)

// ProfilePatch holds the company fields a claimed company may edit. Nil
// fields are left unchanged.
type ProfilePatch struct {
	DescriptionEN *string
	DescriptionFR *string
	Categories    *[]string
	ServiceAreas  *[]string
	Address       *string
	City          *string
	Region        *string
	PostalCode    *string
	Phone         *string
	Email         *string
	Website       *string
}

func (p ProfilePatch) apply(c *model.Company) {
	setString(&c.DescriptionEN, p.DescriptionEN)
	setString(&c.DescriptionFR, p.DescriptionFR)
	setString(&c.Address, p.Address)
	setString(&c.City, p.City)
	setString(&c.Region, p.Region)
	setString(&c.PostalCode, p.PostalCode)
	setString(&c.Phone, p.Phone)
	setString(&c.Email, p.Email)
	setString(&c.Website, p.Website)
	if p.Categories != nil {
		c.Categories = normalizeTags(*p.Categories)
	}
	if p.ServiceAreas != nil {
		c.ServiceAreas = normalizeTags(*p.ServiceAreas)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping order.
// normalizeTag folds a category or service area the way it is stored, so
// filters match with plain equality.
func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
