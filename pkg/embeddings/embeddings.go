// Package embeddings covers the embeddings endpoint.
package embeddings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/modelid"
)

const endpoint = "embeddings"

// Input is the polymorphic input field: a single string, multiple strings,
// one token-ID sequence, or multiple token-ID sequences.
type Input struct {
	value any
}

// Text builds a single-string input.
func Text(s string) Input {
	return Input{value: s}
}

// Texts builds a multi-string input.
func Texts(ss []string) Input {
	return Input{value: ss}
}

// Tokens builds an input from one token-ID sequence.
func Tokens(ts []int64) Input {
	return Input{value: ts}
}

// TokenLists builds an input from multiple token-ID sequences.
func TokenLists(tl [][]int64) Input {
	return Input{value: tl}
}

// MarshalJSON writes the variant's natural JSON shape, with no tag.
func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.value)
}

// UnmarshalJSON selects the variant from the JSON shape, trying string,
// []string, []int64, and [][]int64 in that order.
func (in *Input) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		in.value = s
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		in.value = ss
		return nil
	}
	var ts []int64
	if err := json.Unmarshal(data, &ts); err == nil {
		in.value = ts
		return nil
	}
	var tl [][]int64
	if err := json.Unmarshal(data, &tl); err == nil {
		in.value = tl
		return nil
	}
	return fmt.Errorf("input: unsupported JSON shape: %s", data)
}

// Value returns the underlying variant.
func (in *Input) Value() any {
	return in.value
}

// Request is the body for POST embeddings.
type Request struct {
	Model modelid.ID `json:"model"`
	Input Input      `json:"input"`
	User  string     `json:"user,omitempty"`
}

// Response is the response body.
type Response struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  *Usage      `json:"usage,omitempty"`
}

// Embedding is one vector within a Response.
type Embedding struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// Usage reports token consumption for an embeddings request. Embeddings
// responses carry no completion tokens.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Create computes embeddings for the given input.
func Create(ctx context.Context, c *client.Client, req *Request) (*Response, error) {
	return client.PostJSON[Request, Response](ctx, c, endpoint, req)
}
