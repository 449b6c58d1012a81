// Package models covers the model listing and retrieval endpoints.
package models

import (
	"context"
	"fmt"

	"github.com/frage-dev/frage/pkg/client"
)

// Model describes one model available on the backend.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by"`
	// Permission is absent on most OpenAI-compatible backends; kept for the
	// ones that still serve it.
	Permission []Permission `json:"permission,omitempty"`
	Root       string       `json:"root,omitempty"`
	Parent     string       `json:"parent,omitempty"`
}

// Permission describes an access grant on a model.
type Permission struct {
	ID                 string `json:"id"`
	Object             string `json:"object"`
	Created            int64  `json:"created"`
	AllowCreateEngine  bool   `json:"allow_create_engine"`
	AllowSampling      bool   `json:"allow_sampling"`
	AllowLogprobs      bool   `json:"allow_logprobs"`
	AllowSearchIndices bool   `json:"allow_search_indices"`
	AllowView          bool   `json:"allow_view"`
	AllowFineTuning    bool   `json:"allow_fine_tuning"`
	Organization       string `json:"organization"`
	Group              string `json:"group,omitempty"`
	IsBlocking         bool   `json:"is_blocking"`
}

// listResponse wraps GET models: {"object": "list", "data": [...]}.
type listResponse struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// List returns all models available to the configured credential.
func List(ctx context.Context, c *client.Client) ([]Model, error) {
	resp, err := client.Get[listResponse](ctx, c, "models")
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Retrieve returns the details of one model by ID.
func Retrieve(ctx context.Context, c *client.Client, modelID string) (*Model, error) {
	return client.Get[Model](ctx, c, fmt.Sprintf("models/%s", modelID))
}
