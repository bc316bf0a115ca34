package site

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase/assert"

	"cmhac.dev/internal/config"
	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/models"
	"cmhac.dev/internal/services"
)

var testSite = config.Site{
	Title:        "tester",
	Author:       "Test Person",
	Tagline:      "builds things",
	BaseURL:      "/",
	EasterEggURL: "https://example.com/secret",
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"about.md":           {Data: []byte("---\ntitle: whoami\n---\nI **build** things.\n")},
		"projects/dash.md":   {Data: []byte("---\ntitle: Dashboard\ndescription: charts for money\ntechnologies:\n  React: UI\n  Go: API\nimage: images/dash.png\nurl: https://example.com/dash\nfeatured: true\ndate: 2024-02-01\n---\n## Notes\n\nSome *markdown*.\n")},
		"projects/bot.md":    {Data: []byte("---\ntitle: Bot\ndescription: chat bot\ntechnologies: [Python]\ndate: 2024-01-01\n---\n")},
		"projects/broken.md": {Data: []byte("---\ntitle: broken\n")},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(testSite)
	assert.NoError(t, err)
	r.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func newTestService() *services.ProjectService {
	return serviceFor(testFS())
}

func serviceFor(fsys fstest.MapFS) *services.ProjectService {
	loader := content.NewLoader(fsys, &logging.Logger{Out: io.Discard})
	return services.NewProjectService(loader)
}

func cleanFS() fstest.MapFS {
	fsys := testFS()
	delete(fsys, "projects/broken.md")
	return fsys
}

// unembedded lists the client assets that go generate has not produced
func unembedded() []string {
	var missing []string
	for _, name := range ClientAssets {
		if _, err := fs.Stat(StaticFS(), name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func TestRendererProjectPage(t *testing.T) {
	r := newTestRenderer(t)
	p, err := newTestService().GetBySlug(context.Background(), "dashboard")
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, r.Project(&buf, p))
	html := buf.String()

	assert.Contain(t, html, "<title>Dashboard | Test Person</title>")
	assert.Contain(t, html, "<h2>Notes</h2>")
	assert.Contain(t, html, "<em>markdown</em>")
	assert.Contain(t, html, `src="/images/dash.png"`)
	assert.Contain(t, html, "<dt>Go</dt><dd>API</dd>")
	assert.Contain(t, html, "2/1/2024")
	assert.Contain(t, html, `href="https://example.com/dash"`)
	assert.Contain(t, html, `class="active" aria-current="page">~/projects`)
	assert.Contain(t, html, `data-easter-egg="https://example.com/secret"`)
}

func TestRendererProjectsPageEmbedsIndex(t *testing.T) {
	r := newTestRenderer(t)
	all := newTestService().GetAll(context.Background())
	visible := filter.Apply(all, filter.Selection{Technology: "Python"})

	var buf bytes.Buffer
	assert.NoError(t, r.Projects(&buf, all, visible, filter.Selection{Technology: "Python"}))
	html := buf.String()

	assert.Contain(t, html, `data-slug="bot"`)
	assert.NotContain(t, html, `data-slug="dashboard"`)
	assert.Contain(t, html, `id="project-index"`)
	assert.Contain(t, html, `"slug":"dashboard"`)
	assert.Contain(t, html, `data-tech="Python" class="selected"`)
}

func TestRendererNavigationMarksHome(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	assert.NoError(t, r.Home(&buf, models.HomePage{}, content.Page{Body: "hi"}))

	assert.Contain(t, buf.String(), `class="active" aria-current="page">~/home`)
	assert.NotContain(t, buf.String(), `class="path"`)
}

func TestRendererBaseURL(t *testing.T) {
	s := testSite
	s.BaseURL = "/portfolio/"
	r, err := NewRenderer(s)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, r.NotFound(&buf, "/nowhere"))

	assert.Contain(t, buf.String(), `href="/portfolio/projects/"`)
	assert.Contain(t, buf.String(), "/nowhere: No such file or directory")
}

func TestBuilderWritesSite(t *testing.T) {
	out := t.TempDir()
	extra := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(extra, "filter.wasm"), []byte("wasm"), 0644))

	b := NewBuilder(newTestService(), newTestRenderer(t), &logging.Logger{Out: io.Discard}, BuildOptions{StaticDir: extra})
	summary, err := b.Build(context.Background(), out)
	assert.NoError(t, err)

	assert.Equal(t, 2, summary.Projects)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 6, summary.Pages)

	for _, name := range []string{
		"index.html",
		"404.html",
		"about/index.html",
		"projects/index.html",
		"projects/dashboard/index.html",
		"projects/bot/index.html",
		"static/site.css",
		"static/app.js",
		"static/filter.wasm",
	} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(name)))
		assert.NoError(t, err, assert.Message(name))
	}

	data, err := os.ReadFile(filepath.Join(out, IndexFile))
	assert.NoError(t, err)
	var index models.ProjectList
	assert.NoError(t, json.Unmarshal(data, &index))
	assert.Equal(t, 2, len(index.Projects))
	assert.Equal(t, "dashboard", index.Projects[0].Slug)

	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	assert.NoError(t, err)
	assert.Contain(t, string(home), "<strong>build</strong>")
}

func TestBuilderStrictFailsOnSkippedContent(t *testing.T) {
	b := NewBuilder(newTestService(), newTestRenderer(t), &logging.Logger{Out: io.Discard}, BuildOptions{Strict: true})

	_, err := b.Build(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, content.ErrMalformed)
}

func TestBuilderReportsMissingClientAssets(t *testing.T) {
	b := NewBuilder(serviceFor(cleanFS()), newTestRenderer(t), &logging.Logger{Out: io.Discard}, BuildOptions{})

	summary, err := b.Build(context.Background(), t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, unembedded(), summary.Missing)
}

func TestBuilderStrictRequiresClientAssets(t *testing.T) {
	if len(unembedded()) == 0 {
		t.Skip("client assets are embedded")
	}
	b := NewBuilder(serviceFor(cleanFS()), newTestRenderer(t), &logging.Logger{Out: io.Discard}, BuildOptions{Strict: true})

	_, err := b.Build(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestBuilderStrictAcceptsClientAssetsFromStaticDir(t *testing.T) {
	extra := t.TempDir()
	for _, name := range ClientAssets {
		assert.NoError(t, os.WriteFile(filepath.Join(extra, name), []byte(name), 0644))
	}
	b := NewBuilder(serviceFor(cleanFS()), newTestRenderer(t), &logging.Logger{Out: io.Discard}, BuildOptions{StaticDir: extra, Strict: true})

	out := t.TempDir()
	summary, err := b.Build(context.Background(), out)
	assert.NoError(t, err)
	assert.Empty(t, summary.Missing)
	for _, name := range ClientAssets {
		_, err := os.Stat(filepath.Join(out, "static", name))
		assert.NoError(t, err, assert.Message(name))
	}
}
