package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"urbanpantry/internal/models"
)

type WishlistRepository struct {
	collection *mongo.Collection
}

var _ WishlistStore = (*WishlistRepository)(nil)

func NewWishlistRepository(collection *mongo.Collection) *WishlistRepository {
	return &WishlistRepository{collection: collection}
}

// FindByUser returns the user's wishlist, or an empty one if none has been
// created yet. A missing document is not an error for this entity.
func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var wishlist models.Wishlist
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Wishlist{User: userID, Products: []primitive.ObjectID{}}, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// AddProduct adds with set semantics: adding a product twice is a no-op.
// The wishlist document is created on first add.
func (r *WishlistRepository) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var wishlist models.Wishlist
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{
			"$addToSet":    bson.M{"products": productID},
			"$set":         bson.M{"updated_at": time.Now()},
			"$setOnInsert": bson.M{"created_at": time.Now()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&wishlist)
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *WishlistRepository) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var wishlist models.Wishlist
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&wishlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Wishlist{User: userID, Products: []primitive.ObjectID{}}, nil
		}
		return nil, err
	}
	return &wishlist, nil
}
