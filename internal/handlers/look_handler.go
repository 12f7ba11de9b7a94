package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type LookHandler struct {
	looks    repository.LookStore
	products repository.ProductStore
}

func NewLookHandler(looks repository.LookStore, products repository.ProductStore) *LookHandler {
	return &LookHandler{looks: looks, products: products}
}

// GET /api/looks
func (h *LookHandler) ListLooks(c *gin.Context) {
	looks, err := h.looks.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("look listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch looks"})
		return
	}
	c.JSON(http.StatusOK, looks)
}

// lookResponse is a look with its product references resolved to full
// documents for the detail page.
type lookResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	MainImage   string             `json:"mainImage"`
	Products    []models.Product   `json:"products"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// GET /api/looks/:id
func (h *LookHandler) GetLook(c *gin.Context) {
	look, err := h.looks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookError(c, err, "error fetching look")
		return
	}

	products, err := h.products.FindByIDs(c.Request.Context(), look.Products)
	if err != nil {
		slog.Error("look product resolution failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error fetching look"})
		return
	}

	c.JSON(http.StatusOK, lookResponse{
		ID:          look.ID,
		Title:       look.Title,
		Description: look.Description,
		MainImage:   look.MainImage,
		Products:    products,
		CreatedAt:   look.CreatedAt,
		UpdatedAt:   look.UpdatedAt,
	})
}

type lookRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description" binding:"required"`
	MainImage   string               `json:"mainImage" binding:"required"`
	Products    []primitive.ObjectID `json:"products"`
}

// POST /api/looks (admin)
func (h *LookHandler) CreateLook(c *gin.Context) {
	var req lookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	look := models.Look{
		Title:       req.Title,
		Description: req.Description,
		MainImage:   req.MainImage,
		Products:    req.Products,
	}
	if err := h.looks.Create(c.Request.Context(), &look); err != nil {
		slog.Error("look create failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create look"})
		return
	}
	c.JSON(http.StatusCreated, look)
}

// PUT /api/looks/:id (admin)
func (h *LookHandler) UpdateLook(c *gin.Context) {
	var update models.LookUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	look, err := h.looks.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.respondLookError(c, err, "could not update look")
		return
	}
	c.JSON(http.StatusOK, look)
}

// DELETE /api/looks/:id (admin)
func (h *LookHandler) DeleteLook(c *gin.Context) {
	if err := h.looks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLookError(c, err, "could not delete look")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "look removed"})
}

func (h *LookHandler) respondLookError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid look ID"})
	case errors.Is(err, repository.ErrLookNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "look not found"})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
