package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/models"
)

// ProductFilter narrows catalog queries. All fields are optional and compose
// with AND semantics. Search matches name or description as a
// case-insensitive substring.
type ProductFilter struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Search    string
}

// ProductQuery is a filter plus sort policy and result cap. Sort accepts
// "price-asc", "price-desc" or "" for newest-first.
type ProductQuery struct {
	Filter ProductFilter
	Sort   string
	Limit  int64
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Find(ctx context.Context, query ProductQuery) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int64) ([]models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ReviewStore interface {
	FindByProduct(ctx context.Context, productID string) ([]models.Review, error)
	HasReviewed(ctx context.Context, productID, userID primitive.ObjectID) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	RecomputeRating(ctx context.Context, productID primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type LookStore interface {
	Create(ctx context.Context, look *models.Look) error
	FindAll(ctx context.Context) ([]models.Look, error)
	FindByID(ctx context.Context, id string) (*models.Look, error)
	Update(ctx context.Context, id string, update models.LookUpdate) (*models.Look, error)
	Delete(ctx context.Context, id string) error
}

type WishlistStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error)
	RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error)
}

type TestimonialStore interface {
	FindAll(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, id string, update models.TestimonialUpdate) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
}
