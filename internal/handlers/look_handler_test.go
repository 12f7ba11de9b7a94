package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/models"
	"urbanpantry/internal/repository"
)

func newLookRouter(looks *mockLookStore, products *mockProductStore) *gin.Engine {
	h := NewLookHandler(looks, products)
	router := gin.New()
	api := router.Group("/api")
	api.GET("/looks", h.ListLooks)
	api.GET("/looks/:id", h.GetLook)
	api.POST("/looks", h.CreateLook)
	api.PUT("/looks/:id", h.UpdateLook)
	api.DELETE("/looks/:id", h.DeleteLook)
	return router
}

func TestGetLookPopulatesProducts(t *testing.T) {
	looks := &mockLookStore{}
	products := &mockProductStore{}
	router := newLookRouter(looks, products)

	productID := primitive.NewObjectID()
	look := &models.Look{
		ID:       primitive.NewObjectID(),
		Title:    "Morning Kitchen",
		Products: []primitive.ObjectID{productID},
	}
	looks.On("FindByID", mock.Anything, look.ID.Hex()).Return(look, nil)
	products.On("FindByIDs", mock.Anything, []primitive.ObjectID{productID}).
		Return([]models.Product{{ID: productID, Name: "Mug"}}, nil)

	w := perform(t, router, http.MethodGet, "/api/looks/"+look.ID.Hex(), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Morning Kitchen")
	assert.Contains(t, w.Body.String(), "Mug")
}

func TestGetLookNotFound(t *testing.T) {
	looks := &mockLookStore{}
	router := newLookRouter(looks, &mockProductStore{})

	looks.On("FindByID", mock.Anything, "64f000000000000000000009").
		Return(nil, repository.ErrLookNotFound)

	w := perform(t, router, http.MethodGet, "/api/looks/64f000000000000000000009", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "look not found")
}

func TestCreateLookValidatesFields(t *testing.T) {
	looks := &mockLookStore{}
	router := newLookRouter(looks, &mockProductStore{})

	w := perform(t, router, http.MethodPost, "/api/looks", "", gin.H{"title": "No image"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	looks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLookHappyPath(t *testing.T) {
	looks := &mockLookStore{}
	router := newLookRouter(looks, &mockProductStore{})

	looks.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Look) bool {
		return l.Title == "Morning Kitchen" && l.MainImage == "hero.jpg"
	})).Return(nil)

	w := perform(t, router, http.MethodPost, "/api/looks", "", gin.H{
		"title": "Morning Kitchen", "description": "Start the day right", "mainImage": "hero.jpg",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	looks.AssertExpectations(t)
}

func TestDeleteLookFailure(t *testing.T) {
	looks := &mockLookStore{}
	router := newLookRouter(looks, &mockProductStore{})

	looks.On("Delete", mock.Anything, "64f000000000000000000009").Return(errors.New("down"))

	w := perform(t, router, http.MethodDelete, "/api/looks/64f000000000000000000009", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
