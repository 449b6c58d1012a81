package moderations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/frage-dev/frage/pkg/client"
)

func TestInput_Shapes(t *testing.T) {
	var in Input
	if err := in.UnmarshalJSON([]byte(`"one text"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Value() != "one text" {
		t.Errorf("unexpected value: %#v", in.Value())
	}

	if err := in.UnmarshalJSON([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in.Value(), []string{"a", "b"}) {
		t.Errorf("unexpected value: %#v", in.Value())
	}

	if err := in.UnmarshalJSON([]byte(`42`)); err == nil {
		t.Error("expected error for numeric shape")
	}
}

func TestCreate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/moderations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": "modr-1",
			"model": "text-moderation-007",
			"results": [{
				"flagged": true,
				"categories": {"hate": false, "hate/threatening": false, "self-harm": false,
					"sexual": false, "sexual/minors": false, "violence": true, "violence/graphic": false},
				"category_scores": {"hate": 0.01, "hate/threatening": 0.0, "self-harm": 0.0,
					"sexual": 0.0, "sexual/minors": 0.0, "violence": 0.97, "violence/graphic": 0.02}
			}]
		}`))
	}))
	defer srv.Close()

	c, err := client.New(client.WithAPIKey("test-key"), client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("building client: %v", err)
	}

	resp, err := Create(context.Background(), c, &Request{Input: Text("threatening text")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	result := resp.Results[0]
	if !result.Flagged {
		t.Error("expected flagged result")
	}
	if !result.Categories.Violence {
		t.Error("expected violence category set")
	}
	if result.CategoryScores.Violence != 0.97 {
		t.Errorf("unexpected violence score: %f", result.CategoryScores.Violence)
	}
}
