package search

import "sort"

// synonymGroups lists interchangeable trade terms in both languages. Every
// term must already be in normalized form.
var synonymGroups = [][]string{
	{"plumber", "plumbing", "plombier", "plomberie"},
	{"electrician", "electrical", "electricien", "electricite"},
	{"hvac", "heating", "cooling", "chauffage", "climatisation", "ventilation"},
	{"roofer", "roofing", "couvreur", "toiture"},
	{"painter", "painting", "peintre", "peinture"},
	{"carpenter", "carpentry", "menuisier", "menuiserie", "charpentier"},
	{"landscaper", "landscaping", "paysagiste", "amenagement"},
	{"cleaner", "cleaning", "nettoyage", "menage"},
	{"mover", "movers", "moving", "demenagement", "demenageur"},
	{"mechanic", "mecanique", "mecanicien", "garage"},
	{"locksmith", "serrurier", "serrurerie"},
	{"contractor", "construction", "entrepreneur", "renovation", "renovations"},
	{"accountant", "accounting", "comptable", "comptabilite"},
	{"welder", "welding", "soudeur", "soudure"},
	{"flooring", "floors", "plancher", "planchers"},
	{"exterminator", "extermination", "exterminateur", "pest"},
	{"snowplow", "snowplowing", "deneigement"},
	{"lawyer", "attorney", "avocat"},
}

var synonymIndex = buildSynonymIndex(synonymGroups)

func buildSynonymIndex(groups [][]string) map[string][]string {
	idx := make(map[string][]string)
	for _, g := range groups {
		for _, term := range g {
			idx[term] = append(idx[term], g...)
		}
	}
	for term, terms := range idx {
		idx[term] = dedupe(terms)
	}
	return idx
}

// Expand returns token followed by its synonyms. A token with no synonyms
// expands to itself.
func Expand(token string) []string {
	syns, ok := synonymIndex[token]
	if !ok {
		return []string{token}
	}
	out := make([]string, 0, len(syns))
	out = append(out, token)
	for _, s := range syns {
		if s != token {
			out = append(out, s)
		}
	}
	return out
}

// Synonyms returns the synonym table, one slice per group.
func Synonyms() [][]string {
	out := make([][]string, len(synonymGroups))
	for i, g := range synonymGroups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

func dedupe(terms []string) []string {
	sort.Strings(terms)
	out := terms[:0]
	for i, t := range terms {
		if i == 0 || t != terms[i-1] {
			out = append(out, t)
		}
	}
	return out
}
