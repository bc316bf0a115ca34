package filter

import "cmhac.dev/internal/models"

// State is the filter state of one project listing. The visible set depends
// only on the current query and technology, never on the order in which
// they were changed.
type State struct {
	projects []models.Project
	vocab    []models.TagCount
	sel      Selection
}

// NewState creates a State showing every project
func NewState(projects []models.Project) *State {
	return &State{
		projects: projects,
		vocab:    Vocabulary(projects),
	}
}

// Search sets the search query
func (s *State) Search(query string) {
	s.sel.Query = query
}

// Select sets the technology filter. An empty name selects all.
func (s *State) Select(technology string) {
	s.sel.Technology = technology
}

// Clear resets both the query and the technology
func (s *State) Clear() {
	s.sel = Selection{}
}

// Selection returns the current selection
func (s *State) Selection() Selection {
	return s.sel
}

// Vocabulary returns the technology buttons for the listing
func (s *State) Vocabulary() []models.TagCount {
	return s.vocab
}

// Visible returns the projects passing the current selection
func (s *State) Visible() []models.Project {
	return Apply(s.projects, s.sel)
}

// IsVisible reports whether the project with the given slug passes the
// current selection
func (s *State) IsVisible(slug string) bool {
	for _, p := range s.projects {
		if p.Slug == slug {
			return s.sel.Matches(p)
		}
	}
	return false
}
