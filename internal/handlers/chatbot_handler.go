package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/cache"
	"urbanpantry/internal/chatbot"
	"urbanpantry/internal/repository"
)

const (
	catalogCacheKey = "products:catalog"
	catalogCacheTTL = 5 * time.Minute
)

type ChatbotHandler struct {
	products repository.ProductStore
	client   *chatbot.Client
	cache    *cache.Cache
}

func NewChatbotHandler(products repository.ProductStore, client *chatbot.Client, c *cache.Cache) *ChatbotHandler {
	return &ChatbotHandler{products: products, client: client, cache: c}
}

type chatbotRequest struct {
	Message string            `json:"message" binding:"required"`
	History []chatbot.Message `json:"history"`
}

// POST /api/chatbot/query
func (h *ChatbotHandler) Query(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	catalog, err := h.catalogSnapshot(c)
	if err != nil {
		slog.Error("catalog snapshot failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load product catalog"})
		return
	}

	reply, err := h.client.Query(c.Request.Context(), req.Message, req.History, catalog)
	if err != nil {
		if errors.Is(err, chatbot.ErrUpstream) {
			slog.Error("chatbot upstream failed", "error", err)
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "assistant is unavailable right now"})
			return
		}
		slog.Error("chatbot query failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not process chat message"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(reply.RecommendedProductIDs))
	for _, hex := range reply.RecommendedProductIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			// The model occasionally hallucinates IDs; skip them.
			continue
		}
		ids = append(ids, id)
	}

	recommended, err := h.products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		slog.Error("recommendation resolution failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not process chat message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": reply.Text, "products": recommended})
}

// catalogSnapshot loads the slim catalog shipped to the model, cached under the
// products: prefix so any catalog write refreshes it.
func (h *ChatbotHandler) catalogSnapshot(c *gin.Context) ([]chatbot.CatalogProduct, error) {
	if cached, found := h.cache.GetValue(catalogCacheKey); found {
		if catalog, ok := cached.([]chatbot.CatalogProduct); ok {
			return catalog, nil
		}
	}

	products, err := h.products.All(c.Request.Context())
	if err != nil {
		return nil, err
	}

	catalog := make([]chatbot.CatalogProduct, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, chatbot.CatalogProduct{
			ID:          p.ID.Hex(),
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
		})
	}
	h.cache.Set(catalogCacheKey, catalog, catalogCacheTTL)
	return catalog, nil
}
