package content

import (
	"cmp"
	"slices"

	"cmhac.dev/internal/models"
)

// SortByDate orders projects newest first. A zero date counts as the oldest.
func SortByDate(projects []models.Project) {
	slices.SortStableFunc(projects, compareByDate)
}

// SortFeatured puts ranked projects first in ascending rank, followed by the
// unranked ones newest first.
func SortFeatured(projects []models.Project) {
	slices.SortStableFunc(projects, func(a, b models.Project) int {
		switch {
		case a.Ranked() && b.Ranked():
			if c := cmp.Compare(*a.FeatureRank, *b.FeatureRank); c != 0 {
				return c
			}
		case a.Ranked():
			return -1
		case b.Ranked():
			return 1
		}
		return compareByDate(a, b)
	})
}

func compareByDate(a, b models.Project) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}
