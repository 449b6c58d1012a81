// Package moderations covers the moderations endpoint.
package moderations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/modelid"
)

const endpoint = "moderations"

// Input is the polymorphic input field: a single string or multiple
// strings.
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

// MarshalJSON writes the variant's natural JSON shape, with no tag.
func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.value)
}

// UnmarshalJSON selects the variant from the JSON shape, trying string then
// []string.
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
	return fmt.Errorf("input: unsupported JSON shape: %s", data)
}

// Value returns the underlying variant: string or []string.
func (in *Input) Value() any {
	return in.value
}

// Request is the body for POST moderations.
type Request struct {
	Input Input      `json:"input"`
	Model modelid.ID `json:"model,omitempty"`
}

// Response is the response body.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Results []Result `json:"results"`
}

// Result is the moderation verdict for one input.
type Result struct {
	Categories     Categories     `json:"categories"`
	CategoryScores CategoryScores `json:"category_scores"`
	Flagged        bool           `json:"flagged"`
}

// Categories flags each policy category.
type Categories struct {
	Hate            bool `json:"hate"`
	HateThreatening bool `json:"hate/threatening"`
	SelfHarm        bool `json:"self-harm"`
	Sexual          bool `json:"sexual"`
	SexualMinors    bool `json:"sexual/minors"`
	Violence        bool `json:"violence"`
	ViolenceGraphic bool `json:"violence/graphic"`
}

// CategoryScores carries the model's confidence per category.
type CategoryScores struct {
	Hate            float64 `json:"hate"`
	HateThreatening float64 `json:"hate/threatening"`
	SelfHarm        float64 `json:"self-harm"`
	Sexual          float64 `json:"sexual"`
	SexualMinors    float64 `json:"sexual/minors"`
	Violence        float64 `json:"violence"`
	ViolenceGraphic float64 `json:"violence/graphic"`
}

// Create classifies the given input against the backend's content policy.
func Create(ctx context.Context, c *client.Client, req *Request) (*Response, error) {
	return client.PostJSON[Request, Response](ctx, c, endpoint, req)
}
