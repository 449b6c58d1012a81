package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/frage-dev/frage/pkg/api"
)

type mockResult struct {
	Foo string `json:"foo"`
	Bar int    `json:"bar"`
}

type mockRequest struct {
	Dummy bool `json:"dummy"`
}

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	return c
}

func TestPostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body mockRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"foo":"hello","bar":42}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	result, err := PostJSON[mockRequest, mockResult](context.Background(), c, "test-endpoint", &mockRequest{Dummy: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Foo != "hello" || result.Bar != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestPostJSON_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid request","type":"invalid_request_error","code":"some_code"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := PostJSON[mockRequest, mockResult](context.Background(), c, "test-endpoint", &mockRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Kind != api.ErrorKindAPI {
		t.Errorf("expected API kind, got %q", apiErr.Kind)
	}
	if apiErr.Message != "Invalid request" {
		t.Errorf("expected backend message, got %q", apiErr.Message)
	}
	if apiErr.Code != "some_code" {
		t.Errorf("expected backend code, got %q", apiErr.Code)
	}
}

func TestPostJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foo": 123, "bar": "not_an_integer"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := PostJSON[mockRequest, mockResult](context.Background(), c, "test-endpoint", &mockRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindDecode {
		t.Errorf("expected decode-kind error, got %v", err)
	}
	// The parse detail must not be discarded.
	var jsonErr *json.UnmarshalTypeError
	if !errors.As(err, &jsonErr) {
		t.Errorf("expected wrapped json error, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`{"foo":"abc","bar":99}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	result, err := Get[mockResult](context.Background(), c, "test-get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Foo != "abc" || result.Bar != 99 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestGet_UnstructuredErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone"))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := Get[mockResult](context.Background(), c, "test-get")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "502") || !strings.Contains(msg, "upstream gone") {
		t.Errorf("expected status and raw body in message, got %q", msg)
	}
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.Write([]byte(`{"id":"file-1","object":"file","deleted":true}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	result, err := Delete[api.Deleted](context.Background(), c, "files/file-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Deleted {
		t.Error("expected deleted=true")
	}
}

func TestGetRaw_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raw file bytes"))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	raw, err := GetRaw(context.Background(), c, "files/file-1/content")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "raw file bytes" {
		t.Errorf("unexpected content: %q", raw)
	}
}

func TestSend_AuthAndOrganizationHeaders(t *testing.T) {
	var gotAuth, gotOrg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("OpenAI-Organization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithOrganization("org-42"))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	if _, err := Get[struct{}](context.Background(), c, "models"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected Authorization header: %q", gotAuth)
	}
	if gotOrg != "org-42" {
		t.Errorf("unexpected OpenAI-Organization header: %q", gotOrg)
	}
}

func TestSend_NoOrganizationHeaderWhenUnset(t *testing.T) {
	var hasOrg bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasOrg = r.Header["Openai-Organization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if _, err := Get[struct{}](context.Background(), c, "models"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasOrg {
		t.Error("organization header must be absent when not configured")
	}
}

func TestTransportError_ConnectionRefused(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	_, err = Get[mockResult](context.Background(), c, "models")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindTransport {
		t.Errorf("expected transport-kind error, got %v", err)
	}
}

func TestTransportError_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"foo":"late","bar":1}`))
	}))
	defer srv.Close()

	c, err := New(WithAPIKey("test-key"), WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	_, err = Get[mockResult](context.Background(), c, "models")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindTransport {
		t.Errorf("expected transport-kind error on timeout, got %v", err)
	}
}

func TestPostJSON_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foo":"same","bar":7}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	first, err := PostJSON[mockRequest, mockResult](context.Background(), c, "test-endpoint", &mockRequest{Dummy: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := PostJSON[mockRequest, mockResult](context.Background(), c, "test-endpoint", &mockRequest{Dummy: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
