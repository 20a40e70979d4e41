package handlers

import (
	"net/http"

	"portfolio/application/services"
	pkgerrors "portfolio/pkg/errors"

	"go.uber.org/zap"
)

// IntegrationHandler serves the GitHub and LeetCode proxies
type IntegrationHandler struct {
	service    *services.IntegrationService
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(service *services.IntegrationService, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *IntegrationHandler {
	return &IntegrationHandler{service: service, errHandler: errHandler, logger: logger}
}

// GitHubRepos handles GET /api/github/repos
func (h *IntegrationHandler) GitHubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.service.Repositories(r.Context())
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, repos)
}

// LeetCodeStats handles GET /api/leetcode/stats
func (h *IntegrationHandler) LeetCodeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, stats)
}

// Refresh handles POST /api/integrations/refresh
func (h *IntegrationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.service.Refresh(r.Context())
	respondJSON(w, h.logger, http.StatusOK, MessageResponse{Message: "Integration cache cleared"})
}
