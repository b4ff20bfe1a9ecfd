package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Fixed replies for failures; Ask returns these instead of errors.
const (
	NoResponseReply  = "⚠️ No response from AI"
	UnreachableReply = "⚠️ Could not contact AI service."
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultSlowAfter = 10 * time.Second
)

// Client calls a server's /api/ask endpoint. Every call resolves to reply
// text: failures come back as one of the fixed replies above.
type Client struct {
	ServerURL string
	HTTP      *http.Client
	Timeout   time.Duration
	// OnSlow, when set, fires once if a request is still pending after
	// SlowAfter.
	SlowAfter time.Duration
	OnSlow    func()
	Log       logrus.FieldLogger

	seq atomic.Uint64
}

func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		HTTP:      &http.Client{},
		Timeout:   DefaultTimeout,
		SlowAfter: DefaultSlowAfter,
	}
}

// Begin starts a new request generation and returns its token. Replies for
// older tokens are stale.
func (c *Client) Begin() uint64 {
	return c.seq.Add(1)
}

func (c *Client) IsLatest(token uint64) bool {
	return c.seq.Load() == token
}

// AskLatest asks under token and reports whether the reply still belongs to
// the most recent request.
func (c *Client) AskLatest(ctx context.Context, token uint64, prompt string) (string, bool) {
	reply := c.Ask(ctx, prompt)
	return reply, c.IsLatest(token)
}

func (c *Client) Ask(ctx context.Context, prompt string) string {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.OnSlow != nil && c.SlowAfter > 0 {
		t := time.AfterFunc(c.SlowAfter, c.OnSlow)
		defer t.Stop()
	}

	reply, err := c.do(ctx, prompt)
	if err != nil {
		c.logger().WithError(err).Warn("ask: request failed")
		return UnreachableReply
	}
	if reply == "" {
		return NoResponseReply
	}
	return reply
}

type statusError int

func (e statusError) Error() string { return "unexpected status " + http.StatusText(int(e)) }

func (c *Client) do(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(AskRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	url := strings.TrimRight(c.ServerURL, "/") + "/api/ask"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode)
	}
	var out AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return discardLogger()
}
