package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Project represents a portfolio project loaded from a content file
type Project struct {
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Technologies Technologies `json:"technologies"`
	URL          string       `json:"url"`
	Image        string       `json:"image"`
	Featured     bool         `json:"featured"`
	FeatureRank  *int         `json:"feature_rank,omitempty"`
	Date         time.Time    `json:"date"`
	Content      string       `json:"content,omitempty"`

	// Source is the content file the project was read from.
	Source string `json:"-"`
}

// Ranked reports whether the project has an explicit feature rank
func (p Project) Ranked() bool {
	return p.FeatureRank != nil
}

// Technologies maps a technology name to an optional note about its use.
// In frontmatter it may be written as a mapping or as a plain list of names.
type Technologies map[string]string

// Names returns the technology names in alphabetical order
func (t Technologies) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is one of the technologies
func (t Technologies) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// UnmarshalYAML accepts both the mapping and the sequence form
func (t *Technologies) UnmarshalYAML(value *yaml.Node) error {
	out := make(Technologies)

	switch value.Kind {
	case yaml.MappingNode:
		var m map[string]string
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("failed to decode technologies: %w", err)
		}
		for name, note := range m {
			out.add(name, note)
		}
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("failed to decode technologies: %w", err)
		}
		for _, name := range names {
			out.add(name, "")
		}
	case yaml.ScalarNode:
		// "technologies:" with no value
		if value.Tag != "!!null" {
			return fmt.Errorf("technologies must be a list or a mapping, got %q", value.Value)
		}
	default:
		return fmt.Errorf("technologies must be a list or a mapping")
	}

	*t = out
	return nil
}

// add records a technology, ignoring blank names
func (t Technologies) add(name, note string) {
	if name = strings.TrimSpace(name); name != "" {
		t[name] = note
	}
}

// HomePage holds the two project sets shown on the home page
type HomePage struct {
	Featured []Project `json:"featured"`
	Recent   []Project `json:"recent"`
}

// TagCount is a technology name with the number of projects using it
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProjectList is the JSON index written next to the exported site
type ProjectList struct {
	Projects     []Project  `json:"projects"`
	Technologies []TagCount `json:"technologies"`
}
