package content

import (
	"testing"
	"time"

	"go.llib.dev/testcase/assert"
)

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestParseFileFullRecord(t *testing.T) {
	src := `---
title: Budget Dashboard
description: Tracks where the money goes
technologies:
  React: frontend
  Go: API server
url: https://example.com/dash
image: /images/dash.png
featured: true
featureRank: 2
date: 2024-03-15T00:00:00.000Z
---

# Budget Dashboard

Body text.
`
	p, err := parseFile("dash.md", []byte(src), testNow)
	assert.NoError(t, err)

	assert.Equal(t, "budget-dashboard", p.Slug)
	assert.Equal(t, "Budget Dashboard", p.Title)
	assert.Equal(t, "Tracks where the money goes", p.Description)
	assert.Equal(t, "frontend", p.Technologies["React"])
	assert.Equal(t, "API server", p.Technologies["Go"])
	assert.Equal(t, "https://example.com/dash", p.URL)
	assert.Equal(t, "/images/dash.png", p.Image)
	assert.True(t, p.Featured)
	assert.NotNil(t, p.FeatureRank)
	assert.Equal(t, 2, *p.FeatureRank)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, "# Budget Dashboard\n\nBody text.\n", p.Content)
	assert.Equal(t, "dash.md", p.Source)
}

func TestParseFileDefaults(t *testing.T) {
	src := "---\ntitle: Minimal Project\ndescription: A minimal project\n---\nContent here"

	p, err := parseFile("minimal.md", []byte(src), testNow)
	assert.NoError(t, err)

	assert.Equal(t, "minimal-project", p.Slug)
	assert.NotNil(t, p.Technologies)
	assert.Equal(t, 0, len(p.Technologies))
	assert.Equal(t, "", p.URL)
	assert.Equal(t, "", p.Image)
	assert.False(t, p.Featured)
	assert.True(t, p.FeatureRank == nil)
	assert.Equal(t, testNow, p.Date)
	assert.Equal(t, "Content here", p.Content)
}

func TestParseFileTechnologiesAsList(t *testing.T) {
	src := "---\ntitle: T\ndescription: D\ntechnologies: [React, TypeScript]\n---\n"

	p, err := parseFile("t.md", []byte(src), testNow)
	assert.NoError(t, err)
	assert.Equal(t, []string{"React", "TypeScript"}, p.Technologies.Names())
}

func TestParseFileExplicitSlug(t *testing.T) {
	src := "---\ntitle: Some Long Title\ndescription: D\nslug: Short One\n---\n"

	p, err := parseFile("t.md", []byte(src), testNow)
	assert.NoError(t, err)
	assert.Equal(t, "short-one", p.Slug)
}

func TestParseFileDateShapes(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-15":                time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"2024-03-15T10:30:00Z":      time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		"2024-03-15T10:30:00+02:00": time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
		`"2024-03-15 10:30:00"`:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		"2024-03-15T10:00Z":         time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		"2024-03-15T10:00+02:00":    time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
		"2024-03-15T10:30:00+0200":  time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
		"2024-03-15T10:30:00.5Z":    time.Date(2024, 3, 15, 10, 30, 0, 500000000, time.UTC),
		"2024-3-5":                  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		`"2024-3-5"`:                time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"2024-03-15 10:30:00":       time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		"~":                         testNow,
		`""`:                        testNow,
	}
	for value, want := range cases {
		src := "---\ntitle: T\ndescription: D\ndate: " + value + "\n---\n"
		p, err := parseFile("t.md", []byte(src), testNow)
		assert.NoError(t, err, assert.Message(value))
		assert.Equal(t, want, p.Date, assert.Message(value))
	}
}

func TestParseFileRejects(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
	}{
		"no front matter": {
			src:  "# just markdown\n",
			want: ErrNoFrontMatter,
		},
		"never closed": {
			src:  "---\ntitle: T\ndescription: D\n",
			want: ErrMalformed,
		},
		"broken yaml": {
			src:  "---\ntitle: [unclosed\ndescription: D\n---\n",
			want: ErrMalformed,
		},
		"technologies scalar": {
			src:  "---\ntitle: T\ndescription: D\ntechnologies: Go\n---\n",
			want: ErrMalformed,
		},
		"missing title": {
			src:  "---\ndescription: D\n---\n",
			want: ErrMissingField,
		},
		"missing description": {
			src:  "---\ntitle: T\n---\n",
			want: ErrMissingField,
		},
		"bad date": {
			src:  "---\ntitle: T\ndescription: D\ndate: yesterday\n---\n",
			want: ErrInvalidDate,
		},
		"date list": {
			src:  "---\ntitle: T\ndescription: D\ndate: [2024-01-01]\n---\n",
			want: ErrInvalidDate,
		},
		"title without letters": {
			src:  "---\ntitle: '!!!'\ndescription: D\n---\n",
			want: ErrEmptySlug,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseFile("x.md", []byte(tc.src), testNow)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSplitFrontMatterHandlesCRLFAndBOM(t *testing.T) {
	src := "\ufeff---\r\ntitle: T\r\n---\r\n\r\nbody\r\n"

	meta, body, err := splitFrontMatter([]byte(src))
	assert.NoError(t, err)
	assert.Equal(t, "title: T\n", string(meta))
	assert.Equal(t, "body\n", body)
}

func TestSplitFrontMatterKeepsLaterRules(t *testing.T) {
	src := "---\ntitle: T\n---\nintro\n\n---\n\nafter the rule\n"

	_, body, err := splitFrontMatter([]byte(src))
	assert.NoError(t, err)
	assert.Equal(t, "intro\n\n---\n\nafter the rule\n", body)
}

func TestParsePage(t *testing.T) {
	title, body, err := parsePage([]byte("---\ntitle: About me\n---\nHi there."))
	assert.NoError(t, err)
	assert.Equal(t, "About me", title)
	assert.Equal(t, "Hi there.", body)

	title, body, err = parsePage([]byte("Just text."))
	assert.NoError(t, err)
	assert.Equal(t, "", title)
	assert.Equal(t, "Just text.", body)
}
