// Package client implements the transport layer shared by every frage
// endpoint package: authenticated HTTP calls, uniform error-body parsing,
// and the line-oriented stream decoder used by the streaming endpoints.
//
// A [Client] is built once and is safe for concurrent use; it holds no
// mutable state. Endpoint packages (chat, completions, embeddings, ...)
// supply the request/response shapes and the relative path, and call the
// generic package-level operations:
//
//	resp, err := client.PostJSON[chat.Request, chat.Response](ctx, c, "chat/completions", req)
//
// Streaming calls return a pull-based [Stream] over newline-delimited
// "data:" chunks terminated by a [DONE] sentinel line.
package client
