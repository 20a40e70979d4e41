package services

import (
	"context"
	"time"

	"portfolio/application/commands"
	"portfolio/application/ports"
	"portfolio/domain/entities"

	"go.uber.org/zap"
)

// ProjectService manages the projects collection
type ProjectService struct {
	c *collection[entities.Project]
}

// NewProjectService creates a new project service
func NewProjectService(
	store ports.DocumentStore[entities.Project],
	cache ports.Cache,
	ttl time.Duration,
	publisher ports.EventPublisher,
	recorder ports.CommandRecorder,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		c: newCollection("project", store, cache, ttl, publisher, recorder, entities.Project.Normalize, logger),
	}
}

// List returns projects newest first, optionally only the featured ones
func (s *ProjectService) List(ctx context.Context, featuredOnly bool) ([]entities.Project, error) {
	return s.c.list(ctx, featuredOnly)
}

// Get returns a single project
func (s *ProjectService) Get(ctx context.Context, id int) (entities.Project, error) {
	return s.c.get(ctx, id)
}

// Create validates and appends a new project
func (s *ProjectService) Create(ctx context.Context, cmd commands.CreateProjectCommand) (entities.Project, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Project{}, err
	}
	return s.c.create(ctx, func(id int, now time.Time) entities.Project {
		return entities.NewProject(id, cmd.Fields(), now)
	})
}

// Replace overwrites every editable field of a project
func (s *ProjectService) Replace(ctx context.Context, id int, cmd commands.CreateProjectCommand) (entities.Project, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Project{}, err
	}
	return s.c.update(ctx, id, func(current entities.Project, now time.Time) (entities.Project, error) {
		return current.WithContent(cmd.Fields(), now), nil
	})
}

// Patch checks the supplied fields against the create rules, merges them
// and requires the result to still carry every required field. Untouched
// fields are not re-validated.
func (s *ProjectService) Patch(ctx context.Context, id int, cmd commands.PatchProjectCommand) (entities.Project, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Project{}, err
	}
	return s.c.update(ctx, id, func(current entities.Project, now time.Time) (entities.Project, error) {
		merged := cmd.Apply(current.ProjectContent)
		if err := merged.ValidatePresence(); err != nil {
			return current, err
		}
		return current.WithContent(merged.Fields(), now), nil
	})
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	return s.c.delete(ctx, id)
}

// Collection returns the store name
func (s *ProjectService) Collection() string {
	return s.c.name()
}
