// Package gemini suggests commit messages with Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for commit message suggestions.
const DefaultModel = "gemini-2.5-flash"

var _ GenerativeClient = (*Client)(nil)

// Client wraps the Gemini genai.Client.
type Client struct {
	client *genai.Client
}

// NewClient creates a new Client with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// GenerateContent implements GenerativeClient by delegating to genai.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	genaiContents := make([]*genai.Content, len(contents))
	for i, content := range contents {
		genaiContents[i] = toGenaiContent(content)
	}

	var genaiConfig *genai.GenerateContentConfig
	if config != nil {
		genaiConfig = &genai.GenerateContentConfig{
			ResponseMIMEType:  config.ResponseMIMEType,
			Temperature:       config.Temperature,
			MaxOutputTokens:   config.MaxOutputTokens,
			SystemInstruction: toGenaiContent(config.SystemInstruction),
			ResponseSchema:    convertSchema(config.ResponseSchema),
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genaiContents, genaiConfig)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &GenerateContentResponse{Text: result.Text()}, nil
}

func toGenaiContent(c *Content) *genai.Content {
	if c == nil {
		return nil
	}
	parts := make([]*genai.Part, len(c.Parts))
	for i, part := range c.Parts {
		parts[i] = &genai.Part{Text: part.Text}
	}
	return &genai.Content{Role: genai.RoleUser, Parts: parts}
}

// wrapAPIError converts genai.APIError to APIError.
func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.Code,
			Message:    fmt.Sprintf("gemini API error (HTTP %d): %s", apiErr.Code, apiErr.Message),
		}
	}
	return err
}

// convertSchema recursively converts Schema to genai.Schema.
func convertSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	gs := &genai.Schema{
		Type:        genai.Type(s.Type),
		Required:    s.Required,
		Description: s.Description,
	}
	if s.Properties != nil {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			gs.Properties[k] = convertSchema(v)
		}
	}
	if s.Items != nil {
		gs.Items = convertSchema(s.Items)
	}
	return gs
}
