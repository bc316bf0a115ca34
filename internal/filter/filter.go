// Package filter computes which projects a listing shows for a given search
// query and technology selection, and the technology vocabulary offered as
// filter buttons. Everything here is pure and works on projects already in
// memory.
package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cmhac.dev/internal/models"
)

// Selection is the filter input of a project listing.
// An empty Technology means every technology.
type Selection struct {
	Query      string `json:"q,omitempty"`
	Technology string `json:"tech,omitempty"`
}

// Vocabulary counts how many projects use each technology. The result is
// ordered by count, highest first, with ties in alphabetical order.
func Vocabulary(projects []models.Project) []models.TagCount {
	counts := make(map[string]int)
	for _, p := range projects {
		for name := range p.Technologies {
			counts[name]++
		}
	}

	vocab := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		vocab = append(vocab, models.TagCount{Tag: tag, Count: count})
	}

	// a collator is not safe for concurrent use, so each call gets its own
	col := collate.New(language.English)
	slices.SortFunc(vocab, func(a, b models.TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if c := col.CompareString(a.Tag, b.Tag); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return vocab
}

// Apply returns the projects matching both the search query and the selected
// technology, keeping their order.
func Apply(projects []models.Project, sel Selection) []models.Project {
	m := newMatcher(sel)
	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if m.match(p) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Matches reports whether a single project passes the selection
func (s Selection) Matches(p models.Project) bool {
	return newMatcher(s).match(p)
}

type matcher struct {
	fold       cases.Caser
	query      string
	technology string
}

func newMatcher(sel Selection) matcher {
	fold := cases.Fold()
	return matcher{
		fold:       fold,
		query:      fold.String(strings.TrimSpace(sel.Query)),
		technology: sel.Technology,
	}
}

func (m matcher) match(p models.Project) bool {
	if m.technology != "" && !p.Technologies.Has(m.technology) {
		return false
	}
	if m.query == "" {
		return true
	}
	return strings.Contains(m.fold.String(searchText(p)), m.query)
}

// searchText is what a query is matched against
func searchText(p models.Project) string {
	parts := make([]string, 0, 2+len(p.Technologies))
	parts = append(parts, p.Title, p.Description)
	parts = append(parts, p.Technologies.Names()...)
	return strings.Join(parts, " ")
}
