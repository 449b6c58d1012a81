// Package modelid names the model identifiers recognized by this library.
//
// The set of models served by a backend is open-ended, so ID is an open
// string type: [Parse] is total and accepts any identifier, while [Known]
// reports whether the value is one of the named constants. Request structs
// take an ID wherever the wire format expects a model name.
package modelid

// ID is a model identifier as it appears on the wire.
type ID string

// Chat and completion models.
const (
	GPT4               ID = "gpt-4"
	GPT4Turbo          ID = "gpt-4-turbo"
	GPT4o              ID = "gpt-4o"
	GPT4oMini          ID = "gpt-4o-mini"
	GPT35Turbo         ID = "gpt-3.5-turbo"
	GPT35Turbo16k      ID = "gpt-3.5-turbo-16k"
	GPT35TurboInstruct ID = "gpt-3.5-turbo-instruct"
	Davinci002         ID = "davinci-002"
	Babbage002         ID = "babbage-002"
)

// Embedding models.
const (
	TextEmbeddingAda002 ID = "text-embedding-ada-002"
	TextEmbedding3Small ID = "text-embedding-3-small"
	TextEmbedding3Large ID = "text-embedding-3-large"
)

// Moderation models.
const (
	TextModerationLatest ID = "text-moderation-latest"
	TextModerationStable ID = "text-moderation-stable"
)

var known = map[ID]struct{}{
	GPT4:                 {},
	GPT4Turbo:            {},
	GPT4o:                {},
	GPT4oMini:            {},
	GPT35Turbo:           {},
	GPT35Turbo16k:        {},
	GPT35TurboInstruct:   {},
	Davinci002:           {},
	Babbage002:           {},
	TextEmbeddingAda002:  {},
	TextEmbedding3Small:  {},
	TextEmbedding3Large:  {},
	TextModerationLatest: {},
	TextModerationStable: {},
}

// Parse converts a wire string into an ID. It is total: every string maps
// to some ID, and only recognized strings compare equal to the named
// constants.
func Parse(s string) ID {
	return ID(s)
}

// Known reports whether the ID is one of the named constants.
func (id ID) Known() bool {
	_, ok := known[id]
	return ok
}

// String returns the wire representation.
func (id ID) String() string {
	return string(id)
}
