package search

import "strings"

// Query is a parsed search: one group of alternative terms per user token.
// Terms within a group are OR-ed, groups are AND-ed and the final group is
// prefix matched.
type Query struct {
	Groups [][]string
}

// Parse tokenizes raw and expands each token with its synonyms.
func Parse(raw string) Query {
	tokens := Tokenize(raw)
	q := Query{Groups: make([][]string, 0, len(tokens))}
	for _, t := range tokens {
		q.Groups = append(q.Groups, Expand(t))
	}
	return q
}

func (q Query) Empty() bool {
	return len(q.Groups) == 0
}

// Tokens returns the original token of each group.
func (q Query) Tokens() []string {
	out := make([]string, len(q.Groups))
	for i, g := range q.Groups {
		out[i] = g[0]
	}
	return out
}

// TSQuery renders q for PostgreSQL to_tsquery('simple', ...), e.g.
// "(plumber | plumbing | plombier | plomberie) & (laval:*)".
// Terms only ever contain [a-z0-9] so no escaping is required.
func (q Query) TSQuery() string {
	if q.Empty() {
		return ""
	}
	parts := make([]string, len(q.Groups))
	last := len(q.Groups) - 1
	for i, g := range q.Groups {
		terms := make([]string, len(g))
		for j, term := range g {
			if i == last {
				term += ":*"
			}
			terms[j] = term
		}
		parts[i] = "(" + strings.Join(terms, " | ") + ")"
	}
	return strings.Join(parts, " & ")
}

// Text renders q for engines that do their own prefix and typo handling.
// Synonyms are resolved at index time there, so only the tokens are sent.
func (q Query) Text() string {
	return strings.Join(q.Tokens(), " ")
}
