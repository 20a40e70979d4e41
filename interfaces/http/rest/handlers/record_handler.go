package handlers

import (
	"context"
	"fmt"
	"net/http"

	"portfolio/application/commands"
	"portfolio/application/services"
	"portfolio/domain/entities"
	pkgerrors "portfolio/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecordService is the CRUD surface shared by every collection
type RecordService[T any, C any, P any] interface {
	List(ctx context.Context, featuredOnly bool) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, cmd C) (T, error)
	Replace(ctx context.Context, id int, cmd C) (T, error)
	Patch(ctx context.Context, id int, cmd P) (T, error)
	Delete(ctx context.Context, id int) error
}

// RecordHandler serves one collection under /api/<collection>
type RecordHandler[T any, C any, P any] struct {
	kind       string
	service    RecordService[T, C, P]
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// ProjectHandler handles /api/projects
type ProjectHandler = RecordHandler[entities.Project, commands.CreateProjectCommand, commands.PatchProjectCommand]

// TestimonialHandler handles /api/testimonials
type TestimonialHandler = RecordHandler[entities.Testimonial, commands.CreateTestimonialCommand, commands.PatchTestimonialCommand]

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *services.ProjectService, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{kind: "Project", service: service, errHandler: errHandler, logger: logger}
}

// NewTestimonialHandler creates a new testimonial handler
func NewTestimonialHandler(service *services.TestimonialService, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{kind: "Testimonial", service: service, errHandler: errHandler, logger: logger}
}

// Routes mounts the collection endpoints. Writes go through requireAdmin.
func (h *RecordHandler[T, C, P]) Routes(requireAdmin func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.ListFeatured)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Replace)
			r.Patch("/{id}", h.Patch)
			r.Delete("/{id}", h.Delete)
		})
	}
}

// List handles GET /
func (h *RecordHandler[T, C, P]) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListFeatured handles GET /featured
func (h *RecordHandler[T, C, P]) ListFeatured(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *RecordHandler[T, C, P]) list(w http.ResponseWriter, r *http.Request, featuredOnly bool) {
	items, err := h.service.List(r.Context(), featuredOnly)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, items)
}

// Get handles GET /{id}
func (h *RecordHandler[T, C, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := commands.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// Create handles POST /
func (h *RecordHandler[T, C, P]) Create(w http.ResponseWriter, r *http.Request) {
	var cmd C
	if err := decodeJSON(w, r, &cmd); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	item, err := h.service.Create(r.Context(), cmd)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, item)
}

// Replace handles PUT /{id}
func (h *RecordHandler[T, C, P]) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := commands.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	var cmd C
	if err := decodeJSON(w, r, &cmd); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	item, err := h.service.Replace(r.Context(), id, cmd)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// Patch handles PATCH /{id}
func (h *RecordHandler[T, C, P]) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := commands.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	var cmd P
	if err := decodeJSON(w, r, &cmd); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	item, err := h.service.Patch(r.Context(), id, cmd)
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// Delete handles DELETE /{id}
func (h *RecordHandler[T, C, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := commands.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("%s deleted successfully", h.kind),
	})
}
