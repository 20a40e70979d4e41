package handlers

// Swagger annotations for the routes. The record handlers are generic, so
// each collection's endpoints are described here rather than on the methods.

// ListProjects
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} entities.Project
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]

// ListFeaturedProjects
// @Summary List featured projects
// @Tags projects
// @Produce json
// @Success 200 {array} entities.Project
// @Router /projects/featured [get]

// GetProject
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 400 {object} errors.ErrorResponse "Invalid ID format"
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]

// CreateProject
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body commands.CreateProjectCommand true "Project"
// @Success 201 {object} entities.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /projects [post]

// ReplaceProject
// @Summary Replace a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body commands.CreateProjectCommand true "Project"
// @Success 200 {object} entities.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /projects/{id} [put]

// PatchProject
// @Summary Update some fields of a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body commands.PatchProjectCommand true "Fields to change"
// @Success 200 {object} entities.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /projects/{id} [patch]

// DeleteProject
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /projects/{id} [delete]

// ListTestimonials
// @Summary List testimonials
// @Tags testimonials
// @Produce json
// @Success 200 {array} entities.Testimonial
// @Router /testimonials [get]

// ListFeaturedTestimonials
// @Summary List featured testimonials
// @Tags testimonials
// @Produce json
// @Success 200 {array} entities.Testimonial
// @Router /testimonials/featured [get]

// GetTestimonial
// @Summary Get a testimonial
// @Tags testimonials
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} entities.Testimonial
// @Failure 404 {object} errors.ErrorResponse
// @Router /testimonials/{id} [get]

// CreateTestimonial
// @Summary Create a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Param request body commands.CreateTestimonialCommand true "Testimonial"
// @Success 201 {object} entities.Testimonial
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /testimonials [post]

// ReplaceTestimonial
// @Summary Replace a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Param id path int true "Testimonial ID"
// @Param request body commands.CreateTestimonialCommand true "Testimonial"
// @Success 200 {object} entities.Testimonial
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /testimonials/{id} [put]

// PatchTestimonial
// @Summary Update some fields of a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Param id path int true "Testimonial ID"
// @Param request body commands.PatchTestimonialCommand true "Fields to change"
// @Success 200 {object} entities.Testimonial
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /testimonials/{id} [patch]

// DeleteTestimonial
// @Summary Delete a testimonial
// @Tags testimonials
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /testimonials/{id} [delete]

// Login
// @Summary Start an admin session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse "Sets the token cookie"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /auth/login [post]

// Logout
// @Summary End the admin session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]

// Verify
// @Summary Report whether the session cookie is valid
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/verify [get]

// GitHubRepos
// @Summary Public GitHub repositories
// @Tags integrations
// @Produce json
// @Success 200 {array} entities.Repository
// @Failure 502 {object} errors.ErrorResponse
// @Router /github/repos [get]

// LeetCodeStats
// @Summary LeetCode solve counts
// @Tags integrations
// @Produce json
// @Success 200 {object} entities.CodingStats
// @Failure 502 {object} errors.ErrorResponse
// @Router /leetcode/stats [get]

// RefreshIntegrations
// @Summary Drop cached integration responses
// @Tags integrations
// @Produce json
// @Success 200 {object} MessageResponse
// @Security CookieAuth
// @Router /integrations/refresh [post]
