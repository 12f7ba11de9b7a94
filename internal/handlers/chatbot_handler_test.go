package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanpantry/internal/cache"
	"urbanpantry/internal/chatbot"
	"urbanpantry/internal/models"
)

func fakeModelServer(t *testing.T, text string, ids []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner, err := json.Marshal(gin.H{"responseText": text, "recommendedProductIds": ids})
		require.NoError(t, err)
		payload, err := json.Marshal(gin.H{
			"candidates": []gin.H{{"content": gin.H{"parts": []gin.H{{"text": string(inner)}}}}},
		})
		require.NoError(t, err)
		w.Write(payload)
	}))
}

func newChatbotRouter(products *mockProductStore, upstream string) *gin.Engine {
	client := chatbot.NewClient("key", "gemini-test", time.Second)
	client.SetBaseURL(upstream)
	h := NewChatbotHandler(products, client, cache.New(time.Minute))

	router := gin.New()
	router.POST("/api/chatbot/query", h.Query)
	return router
}

func TestChatbotQueryResolvesRecommendations(t *testing.T) {
	productID := primitive.NewObjectID()
	srv := fakeModelServer(t, "The oak board is lovely.", []string{productID.Hex()})
	defer srv.Close()

	products := &mockProductStore{}
	router := newChatbotRouter(products, srv.URL)

	products.On("All", mock.Anything).
		Return([]models.Product{{ID: productID, Name: "Oak Board", Category: "Kitchen", Price: 30}}, nil)
	products.On("FindByIDs", mock.Anything, []primitive.ObjectID{productID}).
		Return([]models.Product{{ID: productID, Name: "Oak Board"}}, nil)

	w := perform(t, router, http.MethodPost, "/api/chatbot/query", "",
		gin.H{"message": "something for serving cheese?"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The oak board is lovely.")
	assert.Contains(t, w.Body.String(), "Oak Board")
	products.AssertExpectations(t)
}

func TestChatbotQuerySkipsHallucinatedIDs(t *testing.T) {
	srv := fakeModelServer(t, "Here you go.", []string{"made-up-id"})
	defer srv.Close()

	products := &mockProductStore{}
	router := newChatbotRouter(products, srv.URL)

	products.On("All", mock.Anything).Return([]models.Product{}, nil)
	products.On("FindByIDs", mock.Anything, []primitive.ObjectID{}).
		Return([]models.Product{}, nil)

	w := perform(t, router, http.MethodPost, "/api/chatbot/query", "",
		gin.H{"message": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)
}

func TestChatbotQueryRequiresMessage(t *testing.T) {
	products := &mockProductStore{}
	router := newChatbotRouter(products, "http://127.0.0.1:0")

	w := perform(t, router, http.MethodPost, "/api/chatbot/query", "", gin.H{"history": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	products.AssertNotCalled(t, "All", mock.Anything)
}

func TestChatbotQueryUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	products := &mockProductStore{}
	router := newChatbotRouter(products, srv.URL)
	products.On("All", mock.Anything).Return([]models.Product{}, nil)

	w := perform(t, router, http.MethodPost, "/api/chatbot/query", "", gin.H{"message": "hi"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "assistant is unavailable")
}

func TestChatbotCatalogSnapshotCached(t *testing.T) {
	srv := fakeModelServer(t, "Hi!", nil)
	defer srv.Close()

	products := &mockProductStore{}
	router := newChatbotRouter(products, srv.URL)

	products.On("All", mock.Anything).Return([]models.Product{}, nil).Once()
	products.On("FindByIDs", mock.Anything, []primitive.ObjectID{}).
		Return([]models.Product{}, nil)

	first := perform(t, router, http.MethodPost, "/api/chatbot/query", "", gin.H{"message": "a"})
	second := perform(t, router, http.MethodPost, "/api/chatbot/query", "", gin.H{"message": "b"})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	products.AssertExpectations(t)
}
