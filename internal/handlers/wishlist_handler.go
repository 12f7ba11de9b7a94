package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/middleware"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type WishlistHandler struct {
	wishlists repository.WishlistStore
	products  repository.ProductStore
}

func NewWishlistHandler(wishlists repository.WishlistStore, products repository.ProductStore) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, products: products}
}

// GET /api/wishlist (authenticated)
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	wishlist, err := h.wishlists.FindByUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("wishlist fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch wishlist"})
		return
	}

	products, err := h.products.FindByIDs(c.Request.Context(), wishlist.Products)
	if err != nil {
		slog.Error("wishlist product resolution failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": wishlist.User, "products": products})
}

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// POST /api/wishlist/add (authenticated)
func (h *WishlistHandler) AddProduct(c *gin.Context) {
	h.mutate(c, h.wishlists.AddProduct)
}

// POST /api/wishlist/remove (authenticated)
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	h.mutate(c, h.wishlists.RemoveProduct)
}

func (h *WishlistHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error)) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	wishlist, err := op(c.Request.Context(), userID, productID)
	if err != nil {
		slog.Error("wishlist update failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update wishlist"})
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) callerID(c *gin.Context) (primitive.ObjectID, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication error: user not found"})
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication error: user not found"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
