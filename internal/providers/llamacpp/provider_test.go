// internal/providers/llamacpp/provider_test.go
package llamacpp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
	"github.com/RNAdvani/kurukshetra/internal/providers"
)

func testConfig(timeoutSeconds int) *appconfig.Config {
	return &appconfig.Config{
		Hosts:          []appconfig.Host{{Name: "test", URL: "http://unused", Type: "llamacpp"}},
		TimeoutSeconds: timeoutSeconds,
	}
}

func TestGenerateParsesChatCompletion(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "qwen2.5",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  {\"score\": 7}  "}},
			},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 34},
		})
	}))
	defer server.Close()

	p := New(testConfig(5))
	result, err := p.Generate(context.Background(), providers.GenerateRequest{
		Host:         appconfig.Host{Name: "test", URL: server.URL},
		Model:        "qwen2.5",
		SystemPrompt: "be terse",
		Prompt:       "score this",
		MaxTokens:    256,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if result.Output != `{"score": 7}` {
		t.Fatalf("expected trimmed output, got %q", result.Output)
	}
	if result.PromptEvalCount != 12 || result.EvalCount != 34 {
		t.Fatalf("unexpected usage counts: %d %d", result.PromptEvalCount, result.EvalCount)
	}
	if gotPayload["stream"] != false {
		t.Fatalf("expected stream=false, got %v", gotPayload["stream"])
	}
	if gotPayload["max_tokens"] != float64(256) {
		t.Fatalf("expected max_tokens 256, got %v", gotPayload["max_tokens"])
	}
	messages, ok := gotPayload["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %v", gotPayload["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" {
		t.Fatalf("expected leading system message, got %v", first)
	}
}

func TestGenerateRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p := New(testConfig(5))
	_, err := p.Generate(context.Background(), providers.GenerateRequest{
		Host:   appconfig.Host{URL: server.URL},
		Model:  "qwen2.5",
		Prompt: "score this",
	})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestGenerateNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := New(testConfig(5))
	_, err := p.Generate(context.Background(), providers.GenerateRequest{
		Host:   appconfig.Host{URL: server.URL},
		Model:  "missing",
		Prompt: "score this",
	})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestEmbedParsesVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer server.Close()

	p := New(testConfig(5))
	vec, err := p.Embed(context.Background(), appconfig.Host{URL: server.URL}, "nomic-embed-text", "hello")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(vec))
	}
}

func TestEmbedRejectsEmptyModel(t *testing.T) {
	p := New(testConfig(5))
	if _, err := p.Embed(context.Background(), appconfig.Host{URL: "http://unused"}, " ", "hello"); err == nil {
		t.Fatal("expected error for blank model")
	}
}
