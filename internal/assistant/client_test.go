package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(NewHandler(echoCompleter(), nil))
	defer srv.Close()

	c := NewClient(srv.URL)
	if got := c.Ask(context.Background(), "hello"); got != "echo: hello" {
		t.Fatalf("Ask = %q", got)
	}
}

func TestClient_FailureReplies(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"AI request failed"}`, http.StatusInternalServerError)
		}, UnreachableReply},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}, UnreachableReply},
		{"empty reply", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"reply":""}`))
		}, NoResponseReply},
		{"missing reply", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}, NoResponseReply},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(tc.handler)
		got := NewClient(srv.URL).Ask(context.Background(), "q")
		srv.Close()
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}

	// Nothing listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if got := NewClient(url).Ask(context.Background(), "q"); got != UnreachableReply {
		t.Fatalf("unreachable: got %q", got)
	}
}

func TestClient_TimeoutAndSlowCallback(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	var slow atomic.Int32
	c := NewClient(srv.URL)
	c.Timeout = 200 * time.Millisecond
	c.SlowAfter = 20 * time.Millisecond
	c.OnSlow = func() { slow.Add(1) }

	start := time.Now()
	if got := c.Ask(context.Background(), "q"); got != UnreachableReply {
		t.Fatalf("expected timeout reply, got %q", got)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout not applied")
	}
	if slow.Load() != 1 {
		t.Fatalf("expected OnSlow once, got %d", slow.Load())
	}
}

func TestClient_StaleTokens(t *testing.T) {
	srv := httptest.NewServer(NewHandler(echoCompleter(), nil))
	defer srv.Close()
	c := NewClient(srv.URL)

	first := c.Begin()
	second := c.Begin()
	if first >= second {
		t.Fatalf("tokens must increase: %d then %d", first, second)
	}
	if _, current := c.AskLatest(context.Background(), first, "old"); current {
		t.Fatalf("expected first request to be stale")
	}
	reply, current := c.AskLatest(context.Background(), second, "new")
	if !current || reply != "echo: new" {
		t.Fatalf("expected current reply, got %q current=%v", reply, current)
	}
}
