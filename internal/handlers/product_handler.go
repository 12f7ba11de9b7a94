package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/cache"
	"urbanpantry/internal/middleware"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

const (
	defaultFeaturedLimit = 4
	listCacheTTL         = 2 * time.Minute
	productCacheTTL      = 5 * time.Minute
)

type ProductHandler struct {
	products repository.ProductStore
	reviews  repository.ReviewStore
	users    repository.UserStore
	cache    *cache.Cache
}

func NewProductHandler(products repository.ProductStore, reviews repository.ReviewStore, users repository.UserStore, c *cache.Cache) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews, users: users, cache: c}
}

// GET /api/products
// With featured=true this serves the homepage "Best Sellers" panel via the
// featured-with-backfill selection; otherwise it is a plain filtered listing.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if c.Query("featured") == "true" {
		h.listFeatured(c)
		return
	}

	query := repository.ProductQuery{Sort: c.Query("sort")}
	if v := c.Query("category"); v != "" {
		query.Filter.Category = v
	}
	var ok bool
	if query.Filter.MinPrice, ok = parseFloatParam(c, "minPrice"); !ok {
		return
	}
	if query.Filter.MaxPrice, ok = parseFloatParam(c, "maxPrice"); !ok {
		return
	}
	if query.Filter.MinRating, ok = parseFloatParam(c, "rating"); !ok {
		return
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		query.Limit = limit
	}

	cacheKey := "products:list:" + c.Request.URL.RawQuery
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.products.Find(c.Request.Context(), query)
	if err != nil {
		slog.Error("product listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch products"})
		return
	}

	h.cache.Set(cacheKey, products, listCacheTTL)
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) listFeatured(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultFeaturedLimit)), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultFeaturedLimit
	}

	cacheKey := fmt.Sprintf("products:featured:%d", limit)
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.products.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		slog.Error("featured listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch products"})
		return
	}

	h.cache.Set(cacheKey, products, listCacheTTL)
	c.JSON(http.StatusOK, products)
}

// GET /api/products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "search query is required"})
		return
	}

	query := repository.ProductQuery{Filter: repository.ProductFilter{Search: q}}
	var ok bool
	if query.Filter.MinPrice, ok = parseFloatParam(c, "minPrice"); !ok {
		return
	}
	if query.Filter.MaxPrice, ok = parseFloatParam(c, "maxPrice"); !ok {
		return
	}
	if query.Filter.MinRating, ok = parseFloatParam(c, "rating"); !ok {
		return
	}

	products, err := h.products.Find(c.Request.Context(), query)
	if err != nil {
		slog.Error("product search failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not search products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	cacheKey := "product:" + productID

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), productID)
	if err != nil {
		h.respondProductError(c, err, "error fetching product")
		return
	}

	h.cache.Set(cacheKey, product, productCacheTTL)
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Price       *float64               `json:"price" binding:"required,gte=0"`
	Images      []string               `json:"images"`
	Image       string                 `json:"image"`
	Category    string                 `json:"category" binding:"required"`
	Featured    bool                   `json:"featured"`
	Description string                 `json:"description"`
	Details     []models.ProductDetail `json:"details"`
}

// POST /api/products (admin)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Images:      req.Images,
		LegacyImage: req.Image,
		Category:    req.Category,
		Featured:    req.Featured,
		Description: req.Description,
		Details:     req.Details,
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		slog.Error("product create failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create product"})
		return
	}

	h.invalidateCatalog("")
	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:id (admin)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	product, err := h.products.Update(c.Request.Context(), productID, update)
	if err != nil {
		h.respondProductError(c, err, "could not update product")
		return
	}

	h.invalidateCatalog(productID)
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		h.respondProductError(c, err, "could not delete product")
		return
	}

	h.invalidateCatalog(productID)
	c.JSON(http.StatusOK, SuccessResponse{Message: "product removed"})
}

// GET /api/products/:id/reviews
func (h *ProductHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.FindByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
			return
		}
		slog.Error("review listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// POST /api/products/:id/reviews (authenticated)
// The write path of the rating aggregate: validate, pre-check for a
// duplicate, insert, then recompute the product's rating from the full review
// set. The unique (product, user) index backs up the pre-check under races.
func (h *ProductHandler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication error: user not found"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication error: user not found"})
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondProductError(c, err, "error fetching product")
		return
	}

	reviewed, err := h.reviews.HasReviewed(c.Request.Context(), product.ID, userID)
	if err != nil {
		slog.Error("review pre-check failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create review"})
		return
	}
	if reviewed {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: repository.ErrDuplicateReview.Error()})
		return
	}

	review := models.Review{
		User:    userID,
		Product: product.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if user, err := h.users.FindByID(c.Request.Context(), identity.UserID); err == nil {
		review.UserName = user.FullName
	}

	if err := h.reviews.Create(c.Request.Context(), &review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("review insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create review"})
		return
	}

	// The review is persisted at this point; a recompute failure leaves the
	// aggregate stale until the next successful recompute for this product.
	if err := h.reviews.RecomputeRating(c.Request.Context(), product.ID); err != nil {
		slog.Error("rating recompute failed", "product", product.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update product rating"})
		return
	}

	h.invalidateCatalog(product.ID.Hex())
	c.JSON(http.StatusCreated, SuccessResponse{Message: "review added successfully"})
}

func (h *ProductHandler) respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

func (h *ProductHandler) invalidateCatalog(productID string) {
	h.cache.DeleteByPrefix("products:")
	if productID != "" {
		h.cache.Delete("product:" + productID)
	}
}

// parseFloatParam reads an optional float query parameter, answering 400
// itself on garbage input. The bool result is false when the request has
// already been answered.
func parseFloatParam(c *gin.Context, name string) (*float64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return nil, false
	}
	return &f, true
}
