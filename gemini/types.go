package gemini

import "context"

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	MaxOutputTokens   int32
	ResponseMIMEType  string
	ResponseSchema    *Schema
}

// Schema represents the structure for controlled JSON generation.
type Schema struct {
	Type        string             // object, array, string, integer, number, boolean
	Properties  map[string]*Schema // For object types
	Items       *Schema            // For array types
	Required    []string
	Description string
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
