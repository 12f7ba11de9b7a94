package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/middleware"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type OrderHandler struct {
	orders repository.OrderStore
}

func NewOrderHandler(orders repository.OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ID       string   `json:"_id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Quantity int      `json:"quantity" binding:"required,gt=0"`
	Price    float64  `json:"price" binding:"gte=0"`
	Images   []string `json:"images"`
	Image    string   `json:"image"`
}

func (r orderItemRequest) primaryImage() string {
	if len(r.Images) > 0 {
		return r.Images[0]
	}
	return r.Image
}

type orderRequest struct {
	OrderItems      []orderItemRequest     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	// TODO: recompute totalPrice server-side from item price*quantity and
	// reject mismatches; the client value is currently trusted verbatim.
	TotalPrice float64 `json:"totalPrice" binding:"gte=0"`
}

// POST /api/orders (authenticated)
// Each cart line is copied into an immutable snapshot; later catalog edits
// never touch existing orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	if len(req.OrderItems) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no order items"})
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

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID in order items"})
			return
		}
		items = append(items, models.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.primaryImage(),
			Price:    item.Price,
			Product:  productID,
		})
	}

	order := models.Order{
		User:            userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		TotalPrice:      req.TotalPrice,
	}
	if err := h.orders.Create(c.Request.Context(), &order); err != nil {
		slog.Error("order create failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GET /api/orders/myorders (authenticated)
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
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

	orders, err := h.orders.FindByUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("order listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id (owner or admin)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication error: user not found"})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondOrderError(c, err, "error fetching order")
		return
	}

	if order.User.Hex() != identity.UserID && !identity.IsAdmin() {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authorized to view this order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GET /api/orders (admin)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("order listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.respondOrderError(c, err, "could not update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order ID"})
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
