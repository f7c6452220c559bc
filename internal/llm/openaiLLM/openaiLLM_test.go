package openaiLLM

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"google.golang.org/genai"
)

func TestGenerateJSON_SendsSchemaAndReadsContent(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"document_type\":\"bill\"}"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL+"/")
	out, err := p.GenerateJSON(context.Background(), llm.Request{
		System: "classify",
		User:   "INVOICE",
		Schema: &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{
			"document_type": {Type: genai.TypeString},
		}},
	})
	if err != nil {
		t.Fatalf("GenerateJSON() error: %v", err)
	}
	if out != `{"document_type":"bill"}` {
		t.Errorf("GenerateJSON() = %s", out)
	}

	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["temperature"] != float64(0) {
		t.Errorf("temperature = %v", gotBody["temperature"])
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(messages))
	}
	system, _ := json.Marshal(messages[0])
	if !strings.Contains(string(system), "document_type") {
		t.Errorf("schema missing from the system prompt: %s", system)
	}
}

func TestGenerateJSON_ServerErrorIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"down","type":"server_error"}}`)
	}))
	defer srv.Close()

	p := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL+"/")
	_, err := p.GenerateJSON(context.Background(), llm.Request{User: "x"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("expected exactly one call, got %d", calls)
	}
	if got := llm.ReasonFor(err); got != claimModel.FailureCapabilityError {
		t.Errorf("ReasonFor() = %s", got)
	}
}

func TestVisionUnsupported(t *testing.T) {
	p := NewOpenAIClient("k", "m", "")
	if _, err := p.Vision(context.Background(), "p", []byte("x"), "image/png"); !errors.Is(err, claimModel.ErrUnsupportedVision) {
		t.Errorf("expected ErrUnsupportedVision, got %v", err)
	}
	if NewOpenAIClient("", "m", "") != nil {
		t.Error("a missing key should disable the provider")
	}
}
