package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func echoCompleter() Completer {
	return CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})
}

func doAsk(t *testing.T, h http.Handler, method, body string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/ask", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return rr.Code, out
}

func TestHandler_StatusCodes(t *testing.T) {
	h := NewHandler(echoCompleter(), nil)

	code, out := doAsk(t, h, http.MethodGet, "")
	if code != http.StatusMethodNotAllowed || out["error"] != "Method not allowed" {
		t.Fatalf("GET: %d %v", code, out)
	}

	for _, body := range []string{``, `{}`, `{"prompt":""}`, `{"prompt":"   "}`, `{"prompt":42}`, `not json`} {
		code, out = doAsk(t, h, http.MethodPost, body)
		if code != http.StatusBadRequest || out["error"] != "No prompt provided" {
			t.Fatalf("POST %q: %d %v", body, code, out)
		}
	}

	code, out = doAsk(t, h, http.MethodPost, `{"prompt":"hi"}`)
	if code != http.StatusOK || out["reply"] != "echo: hi" {
		t.Fatalf("POST ok: %d %v", code, out)
	}
}

func TestHandler_CompleterFailure(t *testing.T) {
	h := NewHandler(CompleterFunc(func(context.Context, string) (string, error) {
		return "", errors.New("upstream exploded: sk-secret")
	}), nil)
	code, out := doAsk(t, h, http.MethodPost, `{"prompt":"hi"}`)
	if code != http.StatusInternalServerError || out["error"] != "AI request failed" {
		t.Fatalf("expected 500, got %d %v", code, out)
	}
	if strings.Contains(out["error"], "sk-secret") {
		t.Fatalf("upstream error leaked to client")
	}
}

func TestHandler_EmptyReplyIsOK(t *testing.T) {
	h := NewHandler(CompleterFunc(func(context.Context, string) (string, error) { return "", nil }), nil)
	code, out := doAsk(t, h, http.MethodPost, `{"prompt":"hi"}`)
	if code != http.StatusOK || out["reply"] != "" {
		t.Fatalf("expected 200 with empty reply, got %d %v", code, out)
	}
}

func TestNewOpenAICompleter_RequiresKey(t *testing.T) {
	if _, err := NewOpenAICompleter(OpenAIConfig{}); err == nil {
		t.Fatalf("expected error without api key")
	}
	c, err := NewOpenAICompleter(OpenAIConfig{APIKey: "k", BaseURL: GroqBaseURL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.model != DefaultModel {
		t.Fatalf("expected default model, got %q", c.model)
	}
}

func TestOpenAICompleter_AgainstFakeServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "m1" || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected request %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"pong"}}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAICompleter(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "m1"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := c.Complete(context.Background(), "ping")
	if err != nil || got != "pong" {
		t.Fatalf("Complete = %q, %v", got, err)
	}
}
