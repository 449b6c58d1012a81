// Package completions covers the legacy completions endpoint.
//
// The prompt and stop fields are polymorphic on the wire: the JSON shape
// alone (string vs array vs array of arrays) selects the variant, with no
// discriminant tag. [Prompt] and [Stop] model this with constructors per
// accepted shape and decode by trying each shape in a fixed order.
package completions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/modelid"
)

const endpoint = "completions"

// Prompt is the polymorphic prompt field: a single string, multiple
// strings, one token-ID sequence, or multiple token-ID sequences.
type Prompt struct {
	value any
}

// Text builds a single-string prompt.
func Text(s string) *Prompt {
	return &Prompt{value: s}
}

// Texts builds a multi-string prompt.
func Texts(ss []string) *Prompt {
	return &Prompt{value: ss}
}

// Tokens builds a prompt from one token-ID sequence.
func Tokens(ts []int64) *Prompt {
	return &Prompt{value: ts}
}

// TokenLists builds a prompt from multiple token-ID sequences.
func TokenLists(tl [][]int64) *Prompt {
	return &Prompt{value: tl}
}

// MarshalJSON writes the variant's natural JSON shape, with no tag.
func (p Prompt) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON selects the variant from the JSON shape, trying string,
// []string, []int64, and [][]int64 in that order.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.value = s
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		p.value = ss
		return nil
	}
	var ts []int64
	if err := json.Unmarshal(data, &ts); err == nil {
		p.value = ts
		return nil
	}
	var tl [][]int64
	if err := json.Unmarshal(data, &tl); err == nil {
		p.value = tl
		return nil
	}
	return fmt.Errorf("prompt: unsupported JSON shape: %s", data)
}

// Value returns the underlying variant: string, []string, []int64, or
// [][]int64.
func (p *Prompt) Value() any {
	return p.value
}

// Stop is the polymorphic stop field: a single sequence or up to four.
type Stop struct {
	value any
}

// StopAt builds a single stop sequence.
func StopAt(s string) *Stop {
	return &Stop{value: s}
}

// StopAtAny builds multiple stop sequences.
func StopAtAny(ss []string) *Stop {
	return &Stop{value: ss}
}

// MarshalJSON writes the variant's natural JSON shape, with no tag.
func (s Stop) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON selects the variant from the JSON shape, trying string then
// []string.
func (s *Stop) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		s.value = single
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err == nil {
		s.value = multiple
		return nil
	}
	return fmt.Errorf("stop: unsupported JSON shape: %s", data)
}

// Value returns the underlying variant: string or []string.
func (s *Stop) Value() any {
	return s.value
}

// StreamOptions controls streaming behavior.
type StreamOptions struct {
	IncludeUsage bool `json:"include_usage,omitempty"`
}

// Request is the body for POST completions.
type Request struct {
	Model  modelid.ID `json:"model"`
	Prompt *Prompt    `json:"prompt,omitempty"`

	MaxTokens        *int           `json:"max_tokens,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	BestOf           *int           `json:"best_of,omitempty"`
	Stream           *bool          `json:"stream,omitempty"`
	StreamOptions    *StreamOptions `json:"stream_options,omitempty"`
	Logprobs         *int           `json:"logprobs,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	Stop             *Stop          `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
	Suffix           string         `json:"suffix,omitempty"`
}

// Response is the blocking response body.
type Response struct {
	ID      string     `json:"id"`
	Object  string     `json:"object"`
	Created int64      `json:"created"`
	Model   string     `json:"model"`
	Choices []Choice   `json:"choices"`
	Usage   *api.Usage `json:"usage,omitempty"`
}

// Choice is one generated completion within a Response.
type Choice struct {
	Text         string          `json:"text"`
	Index        int             `json:"index"`
	FinishReason string          `json:"finish_reason,omitempty"`
	Logprobs     json.RawMessage `json:"logprobs,omitempty"`
}

// Chunk is one streamed fragment of a completion. The wire shape matches
// Response; partial text arrives through the choices.
type Chunk = Response

// Create requests a completion and blocks until the full response arrives.
// The request's Stream flag is forced off.
func Create(ctx context.Context, c *client.Client, req *Request) (*Response, error) {
	reqCopy := *req
	reqCopy.Stream = nil
	return client.PostJSON[Request, Response](ctx, c, endpoint, &reqCopy)
}

// CreateStream requests a completion as a stream of incremental chunks.
// The request's Stream flag is forced on. The caller must drain or Close
// the returned stream.
func CreateStream(ctx context.Context, c *client.Client, req *Request) (*client.Stream[Chunk], error) {
	reqCopy := *req
	reqCopy.Stream = api.Ptr(true)
	return client.PostJSONStream[Request, Chunk](ctx, c, endpoint, &reqCopy)
}
