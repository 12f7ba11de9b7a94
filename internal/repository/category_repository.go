package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"urbanpantry/internal/models"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

var _ CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(collection *mongo.Collection) *CategoryRepository {
	return &CategoryRepository{collection: collection}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
