package askclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"askdash/internal/dashboard"
	"askdash/internal/identity"
)

func sampleRequest() dashboard.Request {
	return dashboard.Request{
		Question:  "What are my top skills?",
		User:      identity.User{ID: "1", Email: "dev@example.com", FirstName: "Dev"},
		LLMChoice: "OpenAI",
	}
}

func TestAskSendsContractBody(t *testing.T) {
	var gotBody map[string]any
	var gotMethod, gotContentType, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(RequestIDHeader)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"response":"Your top skills are X, Y, Z"}`))
	}))
	defer srv.Close()

	text, err := New(srv.URL).Ask(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Your top skills are X, Y, Z" {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if gotRequestID == "" {
		t.Fatalf("expected request id header")
	}
	if gotBody["question"] != "What are my top skills?" || gotBody["llm_choice"] != "OpenAI" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	user, ok := gotBody["user"].(map[string]any)
	if !ok || user["email"] != "dev@example.com" || user["first_name"] != "Dev" {
		t.Fatalf("expected user object in body, got %v", gotBody["user"])
	}
}

func TestAskNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"provider down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), sampleRequest())
	if err == nil {
		t.Fatalf("expected error for 502")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestAskMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Ask(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected malformed body to fail")
	}
}

func TestAskMissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"wrong key"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), sampleRequest())
	if !errors.Is(err, ErrMissingResponse) {
		t.Fatalf("expected ErrMissingResponse, got %v", err)
	}
}

func TestAskEmptyResponseIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	text, err := New(srv.URL).Ask(context.Background(), sampleRequest())
	if err != nil || text != "" {
		t.Fatalf("expected empty text without error, got %q %v", text, err)
	}
}

func TestAskNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(url).Ask(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected error against closed server")
	}
}

func TestAskDrivesControllerFailurePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := dashboard.NewController(New(srv.URL), identity.User{Email: "a@b.c"}, "OpenAI", nil)
	c.SelectPrompt("career")
	c.SubmitAndWait(context.Background())
	if c.State().Response != dashboard.FailureMessage || c.State().Loading {
		t.Fatalf("unexpected controller state %+v", c.State())
	}
}

func TestNewDefaultsEndpoint(t *testing.T) {
	if got := New("  ").Endpoint(); got != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", got)
	}
}
