package services

import (
	"context"
	"time"

	"portfolio/application/commands"
	"portfolio/application/ports"
	"portfolio/domain/entities"

	"go.uber.org/zap"
)

// TestimonialService manages the testimonials collection
type TestimonialService struct {
	c *collection[entities.Testimonial]
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(
	store ports.DocumentStore[entities.Testimonial],
	cache ports.Cache,
	ttl time.Duration,
	publisher ports.EventPublisher,
	recorder ports.CommandRecorder,
	logger *zap.Logger,
) *TestimonialService {
	return &TestimonialService{
		c: newCollection("testimonial", store, cache, ttl, publisher, recorder, entities.Testimonial.Normalize, logger),
	}
}

// List returns testimonials newest first, optionally only the featured ones
func (s *TestimonialService) List(ctx context.Context, featuredOnly bool) ([]entities.Testimonial, error) {
	return s.c.list(ctx, featuredOnly)
}

// Get returns a single testimonial
func (s *TestimonialService) Get(ctx context.Context, id int) (entities.Testimonial, error) {
	return s.c.get(ctx, id)
}

// Create validates and appends a new testimonial
func (s *TestimonialService) Create(ctx context.Context, cmd commands.CreateTestimonialCommand) (entities.Testimonial, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Testimonial{}, err
	}
	return s.c.create(ctx, func(id int, now time.Time) entities.Testimonial {
		return entities.NewTestimonial(id, cmd.Fields(), now)
	})
}

// Replace overwrites every editable field of a testimonial
func (s *TestimonialService) Replace(ctx context.Context, id int, cmd commands.CreateTestimonialCommand) (entities.Testimonial, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Testimonial{}, err
	}
	return s.c.update(ctx, id, func(current entities.Testimonial, now time.Time) (entities.Testimonial, error) {
		return current.WithContent(cmd.Fields(), now), nil
	})
}

// Patch checks the supplied fields against the create rules, merges them
// and requires the result to still carry every required field. Untouched
// fields are not re-validated.
func (s *TestimonialService) Patch(ctx context.Context, id int, cmd commands.PatchTestimonialCommand) (entities.Testimonial, error) {
	if err := cmd.Validate(); err != nil {
		return entities.Testimonial{}, err
	}
	return s.c.update(ctx, id, func(current entities.Testimonial, now time.Time) (entities.Testimonial, error) {
		merged := cmd.Apply(current.TestimonialContent)
		if err := merged.ValidatePresence(); err != nil {
			return current, err
		}
		return current.WithContent(merged.Fields(), now), nil
	})
}

// Delete removes a testimonial
func (s *TestimonialService) Delete(ctx context.Context, id int) error {
	return s.c.delete(ctx, id)
}

// Collection returns the store name
func (s *TestimonialService) Collection() string {
	return s.c.name()
}
