package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the order lifecycle. New orders always start as
// Pending; status is the only field mutated after creation.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus is the single gate for status values coming from the
// outside. Any member may currently follow any other; if a transition table
// is ever wanted, this is where it goes.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// OrderItem is a snapshot of a cart line taken at order-creation time. It is
// never re-read from the live product, so later catalog edits or deletes do
// not rewrite order history.
type OrderItem struct {
	Name     string             `json:"name" bson:"name"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Image    string             `json:"image" bson:"image"`
	Price    float64            `json:"price" bson:"price"`
	Product  primitive.ObjectID `json:"product" bson:"product"`
}

type ShippingAddress struct {
	FullName string `json:"fullName" bson:"full_name" binding:"required"`
	Address  string `json:"address" bson:"address" binding:"required"`
	City     string `json:"city" bson:"city" binding:"required"`
	Zip      string `json:"zip" bson:"zip" binding:"required"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"order_items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shipping_address"`
	TotalPrice      float64            `json:"totalPrice" bson:"total_price"`
	Status          OrderStatus        `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}
