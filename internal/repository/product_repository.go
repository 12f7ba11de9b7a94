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

const (
	writeTimeout = 5 * time.Second
	fetchTimeout = 3 * time.Second
	queryTimeout = 10 * time.Second
)

// ProductRepository is the mongo-backed catalog store.
type ProductRepository struct {
	collection *mongo.Collection
}

var _ ProductStore = (*ProductRepository)(nil)

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{collection: collection}
}

// Create inserts a new product. Derived fields are forced to zero regardless
// of what the caller put in the struct.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.NormalizeImages()
	product.Rating = 0
	product.NumReviews = 0
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.NormalizeImages()
	return &product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeProducts(ctx, cursor)
}

// Find runs a filtered, sorted, capped catalog query.
func (r *ProductRepository) Find(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(buildSortOptions(query.Sort))
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := r.collection.Find(ctx, buildProductFilter(query.Filter), opts)
	if err != nil {
		return nil, err
	}
	return decodeProducts(ctx, cursor)
}

// ListFeatured returns up to limit products for the "Best Sellers" panel:
// explicitly featured products first (newest first), then backfilled with the
// newest remaining products so the panel is full even when few products are
// flagged. Never returns more than limit.
func (r *ProductRepository) ListFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	newestFirst := bson.D{{Key: "created_at", Value: -1}}

	cursor, err := r.collection.Find(ctx, bson.M{"featured": true},
		options.Find().SetSort(newestFirst).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	featured, err := decodeProducts(ctx, cursor)
	if err != nil {
		return nil, err
	}

	if int64(len(featured)) >= limit {
		return featured, nil
	}

	// The newest limit products always contain enough non-featured ones to
	// fill the gap, since at most len(featured) of them are already selected.
	cursor, err = r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(newestFirst).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	newest, err := decodeProducts(ctx, cursor)
	if err != nil {
		return nil, err
	}

	return backfillFeatured(featured, newest, limit), nil
}

// backfillFeatured pads the featured selection with newest-first candidates,
// skipping products already selected and never exceeding limit.
func backfillFeatured(featured, newest []models.Product, limit int64) []models.Product {
	selected := make(map[primitive.ObjectID]struct{}, len(featured))
	for _, p := range featured {
		selected[p.ID] = struct{}{}
	}

	out := featured
	for _, p := range newest {
		if int64(len(out)) >= limit {
			break
		}
		if _, ok := selected[p.ID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// All returns the entire catalog, used for the chatbot's knowledge snapshot.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	return r.Find(ctx, ProductQuery{})
}

func (r *ProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Images != nil {
		set["images"] = update.Images
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Featured != nil {
		set["featured"] = *update.Featured
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Details != nil {
		set["details"] = update.Details
	}

	var product models.Product
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.NormalizeImages()
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
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
		return ErrProductNotFound
	}
	return nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].NormalizeImages()
	}
	return products, nil
}
