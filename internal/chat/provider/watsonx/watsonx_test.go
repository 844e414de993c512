package watsonx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-match/internal/chat/provider"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGenerator(Config{
		BaseURL:   srv.URL,
		Token:     "test-token",
		ProjectID: "proj-1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return g
}

func TestGenerate_Success(t *testing.T) {
	var gotBody generationRequest
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != generationPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{{"generated_text": "  Learn Kubernetes next.  "}},
		})
	})

	history := []provider.Turn{
		{Role: provider.RoleUser, Content: "What should I learn?"},
		{Role: provider.RoleAssistant, Content: "Tell me your current skills."},
	}
	out, err := g.Generate(context.Background(), "You are a career advisor.", history, "I know Go and SQL.")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "Learn Kubernetes next." {
		t.Fatalf("expected trimmed generated text, got %q", out)
	}

	if gotBody.ProjectID != "proj-1" {
		t.Fatalf("expected project id forwarded, got %q", gotBody.ProjectID)
	}
	for _, want := range []string{"You are a career advisor.", "User: What should I learn?", "Assistant: Tell me your current skills.", "User: I know Go and SQL."} {
		if !strings.Contains(gotBody.Input, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gotBody.Input)
		}
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Generate(context.Background(), "", nil, "hi")
	if !errors.Is(err, provider.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGenerate_EmptyResults(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]string{}})
	})

	_, err := g.Generate(context.Background(), "", nil, "hi")
	if !errors.Is(err, provider.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	_, err := g.Generate(context.Background(), "", nil, "hi")
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	if _, err := NewGenerator(Config{Token: "t", ProjectID: "p"}); err == nil {
		t.Fatalf("expected error for missing base url")
	}
	if _, err := NewGenerator(Config{BaseURL: "https://x", ProjectID: "p"}); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if _, err := NewGenerator(Config{BaseURL: "https://x", Token: "t"}); err == nil {
		t.Fatalf("expected error for missing project id")
	}
}
