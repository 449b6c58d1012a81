package models

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/client"
)

func testClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(client.WithAPIKey("test-key"), client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	return c
}

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "gpt-4", "object": "model", "created": 1687882411, "owned_by": "openai"},
				{"id": "gpt-3.5-turbo", "object": "model", "created": 1677610602, "owned_by": "openai"}
			]
		}`))
	}))
	defer srv.Close()

	got, err := List(context.Background(), testClient(t, srv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 models, got %d", len(got))
	}
	if got[0].ID != "gpt-4" || got[1].ID != "gpt-3.5-turbo" {
		t.Errorf("unexpected models: %+v", got)
	}
}

func TestRetrieve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gpt-4" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id": "gpt-4", "object": "model", "owned_by": "openai"}`))
	}))
	defer srv.Close()

	got, err := Retrieve(context.Background(), testClient(t, srv), "gpt-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "gpt-4" || got.OwnedBy != "openai" {
		t.Errorf("unexpected model: %+v", got)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"The model 'nope' does not exist","type":"invalid_request_error","code":"model_not_found"}}`))
	}))
	defer srv.Close()

	_, err := Retrieve(context.Background(), testClient(t, srv), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrorKindAPI {
		t.Fatalf("expected API-kind error, got %v", err)
	}
	if apiErr.Code != "model_not_found" {
		t.Errorf("unexpected code %q", apiErr.Code)
	}
}
