package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type TestimonialHandler struct {
	testimonials repository.TestimonialStore
}

func NewTestimonialHandler(testimonials repository.TestimonialStore) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// GET /api/testimonials
func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.testimonials.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("testimonial listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch testimonials"})
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

type testimonialRequest struct {
	Quote  string `json:"quote" binding:"required"`
	Author string `json:"author" binding:"required"`
}

// POST /api/testimonials (admin)
func (h *TestimonialHandler) CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	testimonial := models.Testimonial{Quote: req.Quote, Author: req.Author}
	if err := h.testimonials.Create(c.Request.Context(), &testimonial); err != nil {
		slog.Error("testimonial create failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create testimonial"})
		return
	}
	c.JSON(http.StatusCreated, testimonial)
}

// PUT /api/testimonials/:id (admin)
func (h *TestimonialHandler) UpdateTestimonial(c *gin.Context) {
	var update models.TestimonialUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	testimonial, err := h.testimonials.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.respondTestimonialError(c, err, "could not update testimonial")
		return
	}
	c.JSON(http.StatusOK, testimonial)
}

// DELETE /api/testimonials/:id (admin)
func (h *TestimonialHandler) DeleteTestimonial(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondTestimonialError(c, err, "could not delete testimonial")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "testimonial removed"})
}

func (h *TestimonialHandler) respondTestimonialError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid testimonial ID"})
	case errors.Is(err, repository.ErrTestimonialNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "testimonial not found"})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
