package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/observability"
)

// doneSentinel marks the end of a streamed response.
const doneSentinel = "[DONE]"

// dataPrefix is the field prefix on streamed data lines.
const dataPrefix = "data:"

// maxChunkSize caps the size of a single stream line. The scanner's default
// 64KB token limit is too small for chunks carrying large tool-call
// arguments or logprobs payloads.
const maxChunkSize = 1 << 20

// PostJSONStream performs an authenticated POST expecting a streamed
// response body: newline-delimited JSON fragments prefixed with "data:" and
// terminated by a [DONE] sentinel line.
//
// A non-2xx initial status is reported synchronously via the returned error,
// exactly as for [PostJSON]; no Stream is created in that case. On success
// the caller owns the Stream and must drain or Close it to release the
// connection.
//
// The request is sent on the timeout-free stream client; bound its lifetime
// through ctx.
func PostJSONStream[T, R any](ctx context.Context, c *Client, path string, body *T) (*Stream[R], error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("encoding request body: %s", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(path), bytes.NewReader(encoded))
	if err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("building request: %s", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.streamClient.Do(req)
	// For streams the duration metric records time to response headers, not
	// the full stream lifetime.
	observability.RequestDuration.WithLabelValues(http.MethodPost, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RequestsTotal.WithLabelValues(http.MethodPost, endpoint, "error").Inc()
		return nil, api.NewTransportError(err)
	}
	observability.RequestsTotal.WithLabelValues(http.MethodPost, endpoint, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, api.ErrorFromResponse(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkSize)

	observability.ActiveStreams.Inc()
	return &Stream[R]{
		body:     resp.Body,
		scanner:  scanner,
		endpoint: endpoint,
		onSkip:   c.onSkippedChunk,
	}, nil
}

// Stream is a pull-based iterator over the typed chunks of one streamed
// response. It is forward-only and not restartable: once exhausted or
// closed, a new call must be issued to stream again.
//
// The iteration pattern follows bufio.Scanner:
//
//	stream, err := client.PostJSONStream[Req, Chunk](ctx, c, path, req)
//	if err != nil { ... }
//	defer stream.Close()
//	for stream.Next() {
//		chunk := stream.Current()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
//
// A Stream must not be used from multiple goroutines concurrently.
type Stream[R any] struct {
	body     io.ReadCloser
	scanner  *bufio.Scanner
	endpoint string
	onSkip   func(data string, err error)

	current R
	err     *api.Error
	done    bool
	closed  bool
}

// Next advances to the next decoded chunk. It returns false when the stream
// ends (sentinel line or connection close) or a read error occurs; check
// Err afterwards to distinguish the two.
//
// Per line: surrounding whitespace is trimmed; empty lines and the [DONE]
// sentinel produce no item; a leading "data:" prefix is stripped; the rest
// is JSON-decoded into R. A line that fails to decode is skipped with a
// diagnostic rather than ending the stream, so one corrupt fragment cannot
// sink an otherwise healthy response.
func (s *Stream[R]) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, doneSentinel) {
			s.finish()
			return false
		}
		if rest, ok := strings.CutPrefix(line, dataPrefix); ok {
			line = strings.TrimSpace(rest)
		}

		var chunk R
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			observability.StreamChunksSkippedTotal.WithLabelValues(s.endpoint).Inc()
			slog.Warn("skipping malformed stream chunk",
				"error", err.Error(),
				"data", truncate(line, 200),
			)
			if s.onSkip != nil {
				s.onSkip(line, err)
			}
			continue
		}

		observability.StreamChunksTotal.WithLabelValues(s.endpoint).Inc()
		s.current = chunk
		return true
	}

	// Connection closed (EOF) or dropped mid-stream.
	if err := s.scanner.Err(); err != nil {
		s.err = api.NewTransportError(err)
	}
	s.finish()
	return false
}

// Current returns the chunk decoded by the last successful Next call.
func (s *Stream[R]) Current() R {
	return s.current
}

// Err returns the error that ended the stream, or nil after a clean end
// (sentinel line or EOF).
func (s *Stream[R]) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Close releases the underlying connection. It is idempotent and safe to
// call at any point, including before the stream is drained.
func (s *Stream[R]) Close() error {
	s.done = true
	if s.closed {
		return nil
	}
	s.closed = true
	observability.ActiveStreams.Dec()
	return s.body.Close()
}

// finish marks the stream done and releases the connection.
func (s *Stream[R]) finish() {
	s.done = true
	s.Close()
}

// truncate limits a string to maxLen bytes for log output.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
