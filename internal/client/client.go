package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ffmtest/internal/auth"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
)

// ErrWriteBlocked is returned when a write verb is refused by the
// environment gate. The request never reaches the network.
var ErrWriteBlocked = errors.New("write operation blocked")

// Request describes one API call issued by the harness
type Request struct {
	Endpoint string
	Method   string
	Body     map[string]any
	Query    map[string]string
	UseJWT   bool
	UseHMAC  bool

	// BaseOverride replaces the base URL resolution entirely
	BaseOverride string
}

// Client issues authenticated requests against the configured environment.
// Every write verb is checked against the environment gate before dispatch.
type Client struct {
	cfg    *config.Config
	http   *http.Client
	tokens *auth.TokenSource
	signer *auth.Signer

	// OnRequest is invoked with the resolved URL of every permitted request
	OnRequest func(url string)

	sleep func(time.Duration)
}

// New creates a Client for the given configuration
func New(cfg *config.Config) *Client {
	creds := cfg.Credentials
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: auth.NewTokenSource(creds.Issuer, creds.APIKey, creds.SecretKey),
		signer: auth.NewSigner(creds.SecretKey),
		sleep:  time.Sleep,
	}
}

// SetSleep overrides the backoff sleep (used by tests)
func (c *Client) SetSleep(sleep func(time.Duration)) {
	c.sleep = sleep
}

// Do executes one request with retry on timeouts and rate limits.
// Non-2xx responses are returned as a Response, not an error; the caller
// decides what a given status means for its test.
func (c *Client) Do(ctx context.Context, req Request) (*domain.Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	// Environment gate: refuse write verbs before any network I/O
	if isWrite(method) {
		if err := c.cfg.RequireWritePermission(); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrWriteBlocked, method, req.Endpoint, err)
		}
	}

	fullURL, err := c.resolveURL(req)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", req.Endpoint, err)
	}
	if c.OnRequest != nil {
		c.OnRequest(fullURL)
	}

	var bodyBytes []byte
	if method != http.MethodGet && method != http.MethodDelete && req.Body != nil {
		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	attempts := c.cfg.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, retry, err := c.attempt(ctx, method, fullURL, req, bodyBytes, attempt)
		if err != nil {
			if retry && attempt < attempts {
				c.sleep(time.Duration(1<<(attempt-1)) * time.Second)
				continue
			}
			return nil, err
		}
		if retry {
			// Rate limited; the wait already happened inside attempt
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("%s %s: all %d attempts failed", method, fullURL, attempts)
}

// attempt performs a single exchange. retry=true asks the caller to try
// again (timeout or rate limit); the error distinguishes the two.
func (c *Client) attempt(ctx context.Context, method, fullURL string, req Request, body []byte, attempt int) (*domain.Response, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(httpReq, req, method, string(body))

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, true, fmt.Errorf("%s %s: request timeout: %w", method, fullURL, err)
		}
		return nil, false, fmt.Errorf("%s %s: %w", method, fullURL, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%s %s: read response: %w", method, fullURL, err)
	}

	if httpResp.StatusCode == http.StatusTooManyRequests {
		c.sleep(retryAfter(httpResp.Header))
		return nil, true, nil
	}

	return &domain.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    flattenHeaders(httpResp.Header),
		Data:       parseBody(raw),
		URL:        fullURL,
		Method:     method,
		Attempt:    attempt,
	}, false, nil
}

func (c *Client) setHeaders(httpReq *http.Request, req Request, method, body string) {
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.Credentials.APIKey)
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent())

	if req.UseJWT {
		if token, err := c.tokens.Bearer(); err == nil {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if req.UseHMAC {
		httpReq.Header.Set("X-Signature", c.signer.Sign(method, req.Endpoint, body))
	}
}

// resolveURL roots the endpoint at the right API base. Endpoints that name
// their prefix (/manage, /v2) go straight onto the host; everything else is
// a management API path.
func (c *Client) resolveURL(req Request) (string, error) {
	var base string
	switch {
	case req.BaseOverride != "":
		base = strings.TrimRight(req.BaseOverride, "/")
	case strings.HasPrefix(req.Endpoint, "/manage"), strings.HasPrefix(req.Endpoint, "/v2"):
		base = strings.TrimRight(c.cfg.BaseURL, "/")
	default:
		base = c.cfg.ManageBase()
	}

	u, err := url.Parse(base + req.Endpoint)
	if err != nil {
		return "", err
	}

	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func isWrite(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func retryAfter(h http.Header) time.Duration {
	if s := h.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Minute
}

func parseBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]any{"raw_response": string(raw)}
	}
	return data
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
