package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/services"
)

//go:embed static
var staticFS embed.FS

// StaticFS returns the assets built into the binary
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// IndexFile is the JSON project index written at the root of the export
const IndexFile = "projects.json"

// ClientAssets are the files the pages load to run the project filter in the
// browser. They come from `go generate` or from the static directory.
var ClientAssets = []string{"filter.wasm", "wasm_exec.js"}

// ErrMissingAsset is returned by a strict build when a client asset is absent
const ErrMissingAsset errorkit.Error = "missing static asset"

// Builder writes the whole site into an output directory
type Builder struct {
	projects  *services.ProjectService
	renderer  *Renderer
	logger    *logging.Logger
	staticDir string
	strict    bool
}

// BuildOptions tunes a Builder
type BuildOptions struct {
	// StaticDir is copied into the export's static/ directory when it exists.
	StaticDir string
	// Strict fails the build when any content file had to be skipped.
	Strict bool
}

// Summary describes a finished build
type Summary struct {
	Pages    int
	Projects int
	Skipped  int
	// Missing lists the client assets the export lacks. Without them the
	// listing still renders but cannot be filtered on a static host.
	Missing []string
}

// NewBuilder creates a new Builder
func NewBuilder(ps *services.ProjectService, r *Renderer, logger *logging.Logger, opts BuildOptions) *Builder {
	return &Builder{
		projects:  ps,
		renderer:  r,
		logger:    logger,
		staticDir: opts.StaticDir,
		strict:    opts.Strict,
	}
}

// Build renders every page into outDir
func (b *Builder) Build(ctx context.Context, outDir string) (Summary, error) {
	var summary Summary

	index, skipped := b.projects.Index(ctx)
	summary.Skipped = len(skipped)
	if b.strict && len(skipped) > 0 {
		return summary, fmt.Errorf("content has problems: %w", errorkit.Merge(skipped...))
	}
	summary.Projects = len(index.Projects)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	about, _ := b.projects.GetAbout(ctx)
	all := index.Projects

	pages := []page{
		{"index.html", func(w *bytes.Buffer) error {
			return b.renderer.Home(w, content.HomePage(all), about)
		}},
		{"projects/index.html", func(w *bytes.Buffer) error {
			return b.renderer.Projects(w, all, all, filter.Selection{})
		}},
		{"about/index.html", func(w *bytes.Buffer) error {
			return b.renderer.About(w, about)
		}},
		{"404.html", func(w *bytes.Buffer) error {
			return b.renderer.NotFound(w, "")
		}},
	}
	for _, p := range all {
		pages = append(pages, page{
			path: path.Join("projects", p.Slug, "index.html"),
			render: func(w *bytes.Buffer) error {
				return b.renderer.Project(w, p)
			},
		})
	}

	for _, pg := range pages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		var buf bytes.Buffer
		if err := pg.render(&buf); err != nil {
			return summary, err
		}
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(pg.path)), buf.Bytes()); err != nil {
			return summary, err
		}
		summary.Pages++
		b.logger.Debug(ctx, "page written", logging.Field("path", pg.path))
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return summary, fmt.Errorf("failed to marshal project index: %w", err)
	}
	if err := writeFile(filepath.Join(outDir, IndexFile), data); err != nil {
		return summary, err
	}

	if err := copyTree(staticFS, "static", filepath.Join(outDir, "static")); err != nil {
		return summary, err
	}
	if b.staticDir != "" {
		if _, err := os.Stat(b.staticDir); err == nil {
			if err := copyTree(os.DirFS(b.staticDir), ".", filepath.Join(outDir, "static")); err != nil {
				return summary, err
			}
		} else {
			b.logger.Debug(ctx, "no extra static assets", logging.Field("dir", b.staticDir))
		}
	}

	for _, name := range ClientAssets {
		if _, err := os.Stat(filepath.Join(outDir, "static", name)); err == nil {
			continue
		}
		summary.Missing = append(summary.Missing, name)
	}
	if len(summary.Missing) > 0 {
		if b.strict {
			return summary, ErrMissingAsset.F("%s (run go generate ./internal/site)", strings.Join(summary.Missing, ", "))
		}
		b.logger.Warn(ctx, "client filter assets missing, project filtering will not work",
			logging.Field("missing", strings.Join(summary.Missing, ",")))
	}

	b.logger.Info(ctx, "site built",
		logging.Field("out", outDir),
		logging.Field("pages", summary.Pages),
		logging.Field("projects", summary.Projects),
		logging.Field("skipped", summary.Skipped))
	return summary, nil
}

type page struct {
	path   string
	render func(w *bytes.Buffer) error
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// copyTree copies root of fsys into dst, overwriting existing files
func copyTree(fsys fs.FS, root, dst string) error {
	return fs.WalkDir(fsys, root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", name, err)
		}
		return writeFile(target, data)
	})
}
