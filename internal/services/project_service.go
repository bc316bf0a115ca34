package services

import (
	"context"

	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/models"
)

// AboutFile is the content file holding the about page
const AboutFile = "about.md"

// ProjectService handles project-related operations
type ProjectService struct {
	loader *content.Loader
}

// NewProjectService creates a new ProjectService
func NewProjectService(loader *content.Loader) *ProjectService {
	return &ProjectService{loader: loader}
}

// GetAll returns all projects, newest first
func (s *ProjectService) GetAll(ctx context.Context) []models.Project {
	return s.loader.LoadAll(ctx)
}

// GetBySlug returns a specific project by slug
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (models.Project, error) {
	return s.loader.LoadBySlug(ctx, slug)
}

// GetHomePage returns the featured and recent projects
func (s *ProjectService) GetHomePage(ctx context.Context) models.HomePage {
	return s.loader.LoadHomePage(ctx)
}

// GetAbout returns the about page, if the content tree has one
func (s *ProjectService) GetAbout(ctx context.Context) (content.Page, bool) {
	return s.loader.LoadPage(ctx, AboutFile)
}

// Filter returns the projects passing sel together with the vocabulary of
// the whole project set
func (s *ProjectService) Filter(ctx context.Context, sel filter.Selection) ([]models.Project, []models.TagCount) {
	projects := s.loader.LoadAll(ctx)
	return filter.Apply(projects, sel), filter.Vocabulary(projects)
}

// Index loads everything once and returns the project index together with
// one error per content file that was skipped
func (s *ProjectService) Index(ctx context.Context) (models.ProjectList, []error) {
	report := s.loader.Load(ctx)
	return models.ProjectList{
		Projects:     report.Projects,
		Technologies: filter.Vocabulary(report.Projects),
	}, report.Skipped
}
