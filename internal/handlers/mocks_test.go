package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/auth"
	"urbanpantry/internal/middleware"
	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) Find(ctx context.Context, query repository.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, query)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) ListFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	args := m.Called(ctx, limit)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) All(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	args := m.Called(ctx, id, update)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) FindByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	if r := args.Get(0); r != nil {
		return r.([]models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewStore) HasReviewed(ctx context.Context, productID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewStore) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewStore) RecomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	return m.Called(ctx, productID).Error(0)
}

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWishlistStore struct{ mock.Mock }

func (m *mockWishlistStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	args := m.Called(ctx, userID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWishlistStore) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	args := m.Called(ctx, userID, productID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWishlistStore) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	args := m.Called(ctx, userID, productID)
	if w := args.Get(0); w != nil {
		return w.(*models.Wishlist), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLookStore struct{ mock.Mock }

func (m *mockLookStore) Create(ctx context.Context, look *models.Look) error {
	return m.Called(ctx, look).Error(0)
}

func (m *mockLookStore) FindAll(ctx context.Context) ([]models.Look, error) {
	args := m.Called(ctx)
	if l := args.Get(0); l != nil {
		return l.([]models.Look), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLookStore) FindByID(ctx context.Context, id string) (*models.Look, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*models.Look), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLookStore) Update(ctx context.Context, id string, update models.LookUpdate) (*models.Look, error) {
	args := m.Called(ctx, id, update)
	if l := args.Get(0); l != nil {
		return l.(*models.Look), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLookStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockTestimonialStore struct{ mock.Mock }

func (m *mockTestimonialStore) FindAll(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	if ts := args.Get(0); ts != nil {
		return ts.([]models.Testimonial), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTestimonialStore) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return m.Called(ctx, testimonial).Error(0)
}

func (m *mockTestimonialStore) Update(ctx context.Context, id string, update models.TestimonialUpdate) (*models.Testimonial, error) {
	args := m.Called(ctx, id, update)
	if ts := args.Get(0); ts != nil {
		return ts.(*models.Testimonial), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTestimonialStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if cs := args.Get(0); cs != nil {
		return cs.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

var testTokens = auth.NewManager("test-secret", time.Hour)

func authToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := testTokens.Issue(userID, role)
	require.NoError(t, err)
	return token
}

// perform runs a request against the router; token "" means anonymous, body
// nil means no payload.
func perform(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authed() gin.HandlerFunc {
	return middleware.RequireAuth(testTokens)
}

func admin() gin.HandlerFunc {
	return middleware.RequireAdmin()
}

func init() {
	gin.SetMode(gin.TestMode)
}
