package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"urbanpantry/internal/repository"
)

type CategoryHandler struct {
	categories repository.CategoryStore
}

func NewCategoryHandler(categories repository.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("category listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
