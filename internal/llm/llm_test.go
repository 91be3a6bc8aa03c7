package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubProvider struct {
	name string
}

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Generate(context.Context, string) (string, error) { return s.name, nil }

func (s stubProvider) Ping(context.Context) bool { return true }

func TestRegistryResolvesCaseInsensitively(t *testing.T) {
	reg := NewRegistry(stubProvider{name: "OpenAI"}, stubProvider{name: "Anthropic"})
	p, err := reg.Resolve("  openai ")
	if err != nil {
		t.Fatalf("expected openai to resolve, got %v", err)
	}
	if p.Name() != "OpenAI" {
		t.Fatalf("unexpected provider %q", p.Name())
	}
	if _, err := reg.Resolve("Mistral"); !errors.Is(err, ErrUnsupportedVendor) {
		t.Fatalf("expected ErrUnsupportedVendor, got %v", err)
	}
	if got := strings.Join(reg.Names(), ","); got != "Anthropic,OpenAI" {
		t.Fatalf("unexpected names %q", got)
	}
}

func TestRegistrySkipsNilProviders(t *testing.T) {
	var openaiNil *OpenAIProvider
	reg := NewRegistry(openaiNil, NewOllamaProvider("", "m", 0, zap.NewNop()), NewAnthropicProvider("", "m", "", 0, zap.NewNop()))
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
}

func TestOllamaGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"  local answer  "}}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3.2:3b", 0.2, zap.NewNop())
	text, err := p.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "local answer" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotBody["model"] != "llama3.2:3b" || gotBody["stream"] != false {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestOllamaEmptyContentFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"content":""}}`))
	}))
	defer srv.Close()

	if _, err := NewOllamaProvider(srv.URL, "m", 0, zap.NewNop()).Generate(context.Background(), "x"); err == nil {
		t.Fatalf("expected empty content to fail")
	}
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if !NewOllamaProvider(srv.URL, "m", 0, zap.NewNop()).Ping(context.Background()) {
		t.Fatalf("expected ping to succeed")
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody struct {
		Model    string            `json:"model"`
		System   []map[string]any  `json:"system"`
		Messages []json.RawMessage `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "claude "}, {"type": "text", "text": "answer"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key-123", "claude-test", srv.URL, 0.5, zap.NewNop())
	text, err := p.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "claude answer" {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.HasSuffix(gotPath, "/v1/messages") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "key-123" || gotVersion == "" {
		t.Fatalf("unexpected headers key=%q version=%q", gotKey, gotVersion)
	}
	if gotBody.Model != "claude-test" || len(gotBody.Messages) != 1 || len(gotBody.System) != 1 {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestAnthropicHTTPErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicProvider("k", "m", srv.URL, 0, zap.NewNop()).Generate(context.Background(), "hi")
	if err == nil || !strings.HasPrefix(err.Error(), "anthropic:") || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected wrapped 401 error, got %v", err)
	}
}

func TestOpenAIGenerateAgainstStub(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "openai answer"}}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o-mini", srv.URL, 0.7, zap.NewNop())
	text, err := p.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "openai answer" {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.HasSuffix(gotPath, "/chat/completions") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}
