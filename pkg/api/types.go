package api

// Usage reports token consumption for a single request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Deleted is the standard acknowledgement body for DELETE operations
// (files, fine-tuned models).
type Deleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Ptr returns a pointer to v. Request structs model optional sampling
// parameters as pointers so that zero values are distinguishable from
// unset ones.
func Ptr[T any](v T) *T {
	return &v
}
