package content

import (
	"context"
	"io/fs"
	"path"
	"strings"
	"time"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"golang.org/x/sync/errgroup"

	"cmhac.dev/internal/models"
)

// ProjectsDir is the directory, relative to the content root, holding one
// markdown file per project.
const ProjectsDir = "projects"

// RecentLimit is how many non-featured projects the home page shows
const RecentLimit = 3

const defaultWorkers = 8

// Loader reads project files from a content tree.
// Every call reads the files again; nothing is cached.
type Loader struct {
	fsys    fs.FS
	logger  *logging.Logger
	now     func() time.Time
	workers int
	// undated is the date given to projects without one, fixed when the
	// loader is created so repeated loads agree.
	undated time.Time
}

// Option configures a Loader
type Option func(*Loader)

// WithClock sets the clock read once, when the loader is created, to date
// projects without a date
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithWorkers bounds how many files are read at once
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// NewLoader creates a Loader over the content root fsys
func NewLoader(fsys fs.FS, logger *logging.Logger, opts ...Option) *Loader {
	l := &Loader{
		fsys:    fsys,
		logger:  logger,
		now:     time.Now,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.undated = l.now().UTC()
	return l
}

// Report is the outcome of loading every project file
type Report struct {
	Projects []models.Project
	// Skipped holds one error per file that was left out.
	Skipped []error
}

// Err merges the skipped-file errors, or returns nil when nothing was skipped
func (r Report) Err() error {
	return errorkit.Merge(r.Skipped...)
}

type result struct {
	project models.Project
	err     error
}

// Load reads all project files concurrently and reports what was kept and
// what was skipped. Projects come back newest first.
func (l *Loader) Load(ctx context.Context) Report {
	files, err := l.projectFiles()
	if err != nil {
		l.logger.Warn(ctx, "failed to read projects directory",
			logging.Field("dir", ProjectsDir),
			logging.ErrField(err))
		return Report{Projects: []models.Project{}}
	}

	results := make([]result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].project, results[i].err = l.readProject(name, l.undated)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Projects: make([]models.Project, 0, len(files))}
	owners := make(map[string]string, len(files))
	for i, res := range results {
		err := res.err
		if err == nil {
			if owner, taken := owners[res.project.Slug]; taken {
				err = ErrDuplicateSlug.F("%q is already used by %s", res.project.Slug, owner)
			}
		}
		if err != nil {
			l.logger.Warn(ctx, "skipping project file",
				logging.Field("file", files[i]),
				logging.ErrField(err))
			report.Skipped = append(report.Skipped, fileError{name: files[i], err: err})
			continue
		}
		owners[res.project.Slug] = files[i]
		report.Projects = append(report.Projects, res.project)
	}

	SortByDate(report.Projects)
	l.logger.Debug(ctx, "projects loaded",
		logging.Field("loaded", len(report.Projects)),
		logging.Field("skipped", len(report.Skipped)))
	return report
}

// LoadAll returns every valid project, newest first.
// Files that cannot be read or parsed are left out.
func (l *Loader) LoadAll(ctx context.Context) []models.Project {
	return l.Load(ctx).Projects
}

// LoadBySlug scans the project files in name order and returns the first one
// whose slug matches.
func (l *Loader) LoadBySlug(ctx context.Context, slug string) (models.Project, error) {
	files, err := l.projectFiles()
	if err != nil {
		l.logger.Warn(ctx, "failed to read projects directory", logging.ErrField(err))
		return models.Project{}, ErrNotFound
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return models.Project{}, err
		}
		project, err := l.readProject(name, l.undated)
		if err != nil {
			continue
		}
		if project.Slug == slug {
			return project, nil
		}
	}
	return models.Project{}, ErrNotFound
}

// LoadHomePage splits the projects into the featured set and the most
// recent non-featured ones.
func (l *Loader) LoadHomePage(ctx context.Context) models.HomePage {
	return HomePage(l.LoadAll(ctx))
}

// HomePage builds the home page sets from date-sorted projects
func HomePage(projects []models.Project) models.HomePage {
	home := models.HomePage{
		Featured: []models.Project{},
		Recent:   []models.Project{},
	}
	for _, p := range projects {
		if p.Featured {
			home.Featured = append(home.Featured, p)
		} else if len(home.Recent) < RecentLimit {
			home.Recent = append(home.Recent, p)
		}
	}
	SortFeatured(home.Featured)
	return home
}

// Page is a standalone markdown page such as the about page
type Page struct {
	Title string
	Body  string
}

// LoadPage reads a standalone page from the content root
func (l *Loader) LoadPage(ctx context.Context, name string) (Page, bool) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		l.logger.Debug(ctx, "page not available", logging.Field("file", name), logging.ErrField(err))
		return Page{}, false
	}
	title, body, err := parsePage(data)
	if err != nil {
		l.logger.Warn(ctx, "skipping page", logging.Field("file", name), logging.ErrField(err))
		return Page{}, false
	}
	return Page{Title: title, Body: body}, true
}

// projectFiles lists the markdown files of the projects directory in name order
func (l *Loader) projectFiles() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ProjectsDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if isContentFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func (l *Loader) readProject(name string, now time.Time) (models.Project, error) {
	data, err := fs.ReadFile(l.fsys, path.Join(ProjectsDir, name))
	if err != nil {
		return models.Project{}, ErrUnreadableFile.Wrap(err)
	}
	return parseFile(name, data, now)
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// fileError ties a skipped-file error to the file name
type fileError struct {
	name string
	err  error
}

func (e fileError) Error() string { return e.name + ": " + e.err.Error() }

func (e fileError) Unwrap() error { return e.err }
