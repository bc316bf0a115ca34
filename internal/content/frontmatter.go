package content

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cmhac.dev/internal/models"
)

const (
	delimiter = "---"
	bom       = "\ufeff"
)

// frontMatter mirrors the metadata block of a project file
type frontMatter struct {
	Title        string              `yaml:"title"`
	Description  string              `yaml:"description"`
	Technologies models.Technologies `yaml:"technologies"`
	URL          string              `yaml:"url"`
	Image        string              `yaml:"image"`
	Featured     bool                `yaml:"featured"`
	FeatureRank  *int                `yaml:"featureRank"`
	Date         yaml.Node           `yaml:"date"`
	Slug         string              `yaml:"slug"`
}

// splitFrontMatter separates the metadata block from the body.
// The block must open on the first line and close on a line of its own.
func splitFrontMatter(data []byte) (meta []byte, body string, err error) {
	data = bytes.TrimPrefix(data, []byte(bom))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	lines := strings.SplitAfter(text, "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return nil, "", ErrNoFrontMatter
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\n") != delimiter {
			continue
		}
		meta = []byte(strings.Join(lines[1:i], ""))
		body = strings.Join(lines[i+1:], "")
		return meta, strings.TrimLeft(body, "\n"), nil
	}
	return nil, "", ErrMalformed.F("front matter is never closed")
}

// parseFile turns the raw bytes of a content file into a project.
// now fills in the date when the file has none.
func parseFile(name string, data []byte, now time.Time) (models.Project, error) {
	meta, body, err := splitFrontMatter(data)
	if err != nil {
		return models.Project{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return models.Project{}, ErrMalformed.Wrap(err)
	}

	if strings.TrimSpace(fm.Title) == "" {
		return models.Project{}, ErrMissingField.F("title")
	}
	if strings.TrimSpace(fm.Description) == "" {
		return models.Project{}, ErrMissingField.F("description")
	}

	date, err := decodeDate(&fm.Date, now)
	if err != nil {
		return models.Project{}, err
	}

	slug := Slugify(fm.Slug)
	if slug == "" {
		slug = Slugify(fm.Title)
	}
	if slug == "" {
		return models.Project{}, ErrEmptySlug.F("title %q has no letters or digits", fm.Title)
	}

	technologies := fm.Technologies
	if technologies == nil {
		technologies = models.Technologies{}
	}

	return models.Project{
		Slug:         slug,
		Title:        fm.Title,
		Description:  fm.Description,
		Technologies: technologies,
		URL:          fm.URL,
		Image:        fm.Image,
		Featured:     fm.Featured,
		FeatureRank:  fm.FeatureRank,
		Date:         date,
		Content:      body,
		Source:       name,
	}, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-1-2",
}

// decodeDate reads the date field. YAML timestamps are resolved by the
// decoder; anything else goes through parseDate. A missing or empty date
// falls back to now.
func decodeDate(node *yaml.Node, now time.Time) (time.Time, error) {
	if node.Kind == 0 || node.ShortTag() == "!!null" {
		return now, nil
	}
	if node.Kind != yaml.ScalarNode {
		return time.Time{}, ErrInvalidDate.F("date must be a single value")
	}
	if node.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := node.Decode(&t); err == nil {
			return t.UTC(), nil
		}
	}
	if strings.TrimSpace(node.Value) == "" {
		return now, nil
	}
	return parseDate(node.Value)
}

// parseDate accepts the ISO-8601 shapes YAML front matter usually carries
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate.F("%q", value)
}

// parsePage reads a free-standing page such as about.md.
// Front matter is optional there; only its title is used.
func parsePage(data []byte) (title, body string, err error) {
	meta, body, err := splitFrontMatter(data)
	if err != nil {
		if errors.Is(err, ErrNoFrontMatter) {
			return "", strings.TrimPrefix(string(data), bom), nil
		}
		return "", "", err
	}
	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return "", "", ErrMalformed.Wrap(err)
	}
	return fm.Title, body, nil
}
