// Package chatbot proxies product-recommendation conversations to the Gemini
// generateContent API. The whole product catalog is sent along as the model's
// knowledge base and the model answers with a constrained JSON schema.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrUpstream = errors.New("chatbot upstream failure")

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const systemInstruction = `You are "PantryPal", a friendly and helpful AI personal shopper for UrbanPantry, an online store for modern home and kitchen products.
Your goal is to help users find the perfect products by having a natural conversation.
You have been provided with the entire product catalog in JSON format below. Use it as your knowledge base to answer questions.
---
PRODUCT CATALOG:
%s
---
Based on the user's request, you MUST identify suitable products and recommend them.
When you recommend products, you MUST include their "_id" in the "recommendedProductIds" array in your response.
Do not recommend products that are not in the provided catalog.
Keep your text response conversational, concise, and helpful. If you can't find a suitable product, say so politely.
If the user asks a general question not related to products, answer it helpfully in the context of being a shopping assistant.
Your response must be a JSON object matching the provided schema.`

// CatalogProduct is the slimmed product shape shipped to the model.
type CatalogProduct struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Message is one turn of the conversation, sender "ai" or "user".
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Reply is the parsed model answer.
type Reply struct {
	Text                  string
	RecommendedProductIDs []string
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client whose calls are bounded by timeout; a slow or
// hung upstream degrades to an error instead of pinning the request.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

type generateRequest struct {
	SystemInstruction content           `json:"system_instruction"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"responseText": {
			"type": "STRING",
			"description": "Your friendly, conversational response to the user."
		},
		"recommendedProductIds": {
			"type": "ARRAY",
			"description": "An array of product _id strings that you are recommending. Only include IDs from the provided catalog.",
			"items": {"type": "STRING"}
		}
	}
}`)

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Query sends the conversation plus catalog snapshot upstream and parses the
// structured reply. Every failure mode wraps ErrUpstream.
func (c *Client) Query(ctx context.Context, message string, history []Message, catalog []CatalogProduct) (*Reply, error) {
	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding catalog: %v", ErrUpstream, err)
	}

	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: fmt.Sprintf(systemInstruction, catalogJSON)}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: buildPrompt(message, history)}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, res.StatusCode, payload)
	}

	var parsed generateResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUpstream)
	}

	var inner struct {
		ResponseText          string   `json:"responseText"`
		RecommendedProductIDs []string `json:"recommendedProductIds"`
	}
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &inner); err != nil {
		return nil, fmt.Errorf("%w: malformed model output: %v", ErrUpstream, err)
	}

	return &Reply{
		Text:                  inner.ResponseText,
		RecommendedProductIDs: inner.RecommendedProductIDs,
	}, nil
}

// buildPrompt flattens the conversation history plus the new message into a
// single labeled transcript.
func buildPrompt(message string, history []Message) string {
	var b strings.Builder
	for _, msg := range history {
		speaker := "User"
		if msg.Sender == "ai" {
			speaker = "PantryPal"
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}
