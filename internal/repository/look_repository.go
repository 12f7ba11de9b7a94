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

type LookRepository struct {
	collection *mongo.Collection
}

var _ LookStore = (*LookRepository)(nil)

func NewLookRepository(collection *mongo.Collection) *LookRepository {
	return &LookRepository{collection: collection}
}

func (r *LookRepository) Create(ctx context.Context, look *models.Look) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	look.ID = primitive.NewObjectID()
	now := time.Now()
	look.CreatedAt = now
	look.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, look)
	return err
}

func (r *LookRepository) FindAll(ctx context.Context) ([]models.Look, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	looks := make([]models.Look, 0)
	if err := cursor.All(ctx, &looks); err != nil {
		return nil, err
	}
	return looks, nil
}

func (r *LookRepository) FindByID(ctx context.Context, id string) (*models.Look, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var look models.Look
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&look); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLookNotFound
		}
		return nil, err
	}
	return &look, nil
}

func (r *LookRepository) Update(ctx context.Context, id string, update models.LookUpdate) (*models.Look, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.MainImage != nil {
		set["main_image"] = *update.MainImage
	}
	if update.Products != nil {
		set["products"] = update.Products
	}

	var look models.Look
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&look)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLookNotFound
		}
		return nil, err
	}
	return &look, nil
}

func (r *LookRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrLookNotFound
	}
	return nil
}
