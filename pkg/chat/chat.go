// Package chat covers the chat/completions endpoint, in both blocking and
// streaming form.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/client"
	"github.com/frage-dev/frage/pkg/modelid"
)

const endpoint = "chat/completions"

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Name optionally identifies the participant, e.g. to distinguish users
	// sharing a role.
	Name string `json:"name,omitempty"`
	// ToolCalls is set on assistant messages that request tool invocations.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolCallID links a tool-role message to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Tool declares one tool the model may call. Only function tools exist on
// the wire today.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction is the function definition within a Tool. Parameters holds
// the JSON Schema of the arguments, passed through verbatim.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// NewFunctionTool builds a function tool from a name, description, and raw
// JSON Schema parameters.
func NewFunctionTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall holds the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolChoice is the polymorphic tool_choice field: a mode string ("none",
// "auto", "required") or an object naming one specific function.
type ToolChoice struct {
	value any
}

// toolChoiceObject is the object form of tool_choice.
type toolChoiceObject struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

// ToolChoiceMode builds the string form: "none", "auto", or "required".
func ToolChoiceMode(mode string) *ToolChoice {
	return &ToolChoice{value: mode}
}

// ToolChoiceFunction builds the object form forcing one named function.
func ToolChoiceFunction(name string) *ToolChoice {
	var obj toolChoiceObject
	obj.Type = "function"
	obj.Function.Name = name
	return &ToolChoice{value: obj}
}

// MarshalJSON writes the variant's natural JSON shape, with no tag.
func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(tc.value)
}

// UnmarshalJSON selects the variant from the JSON shape, trying string then
// object.
func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		tc.value = mode
		return nil
	}
	var obj toolChoiceObject
	if err := json.Unmarshal(data, &obj); err == nil {
		tc.value = obj
		return nil
	}
	return fmt.Errorf("tool_choice: unsupported JSON shape: %s", data)
}

// Value returns the underlying variant: string or the object form.
func (tc *ToolChoice) Value() any {
	return tc.value
}

// Request is the body for POST chat/completions.
type Request struct {
	Model    modelid.ID `json:"model"`
	Messages []Message  `json:"messages"`

	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	Stream           *bool          `json:"stream,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
	Logprobs         *bool          `json:"logprobs,omitempty"`
	TopLogprobs      *int           `json:"top_logprobs,omitempty"`
	ResponseFormat   string         `json:"response_format,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
	Tools            []Tool         `json:"tools,omitempty"`
	ToolChoice       *ToolChoice    `json:"tool_choice,omitempty"`
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

// Choice is one generated answer within a Response.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Chunk is one streamed fragment of a chat completion.
type Chunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// ChunkChoice is one choice within a streamed Chunk.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason,omitempty"`
}

// Delta carries the incremental payload of a ChunkChoice. The first chunk
// of a message usually carries only the role; later chunks carry content or
// tool-call fragments.
type Delta struct {
	Role      string          `json:"role,omitempty"`
	Content   *string         `json:"content,omitempty"`
	ToolCalls []ChunkToolCall `json:"tool_calls,omitempty"`
}

// ChunkToolCall is one incremental tool-call fragment within a Delta. The
// first fragment for an Index carries the ID and function name; subsequent
// fragments append to the arguments. Callers assemble fragments by Index.
type ChunkToolCall struct {
	Index    int          `json:"index"`
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// Create requests a chat completion and blocks until the full response
// arrives. The request's Stream flag is forced off.
func Create(ctx context.Context, c *client.Client, req *Request) (*Response, error) {
	reqCopy := *req
	reqCopy.Stream = nil
	return client.PostJSON[Request, Response](ctx, c, endpoint, &reqCopy)
}

// CreateStream requests a chat completion as a stream of incremental
// chunks. The request's Stream flag is forced on. The caller must drain or
// Close the returned stream.
func CreateStream(ctx context.Context, c *client.Client, req *Request) (*client.Stream[Chunk], error) {
	reqCopy := *req
	reqCopy.Stream = api.Ptr(true)
	return client.PostJSONStream[Request, Chunk](ctx, c, endpoint, &reqCopy)
}
