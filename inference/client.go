package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Defaults for the hosted Inference API.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "bigscience/bloom"
)

// maxBodySize limits reply body size (1 MB); completion replies are small.
const maxBodySize = 1 << 20

// defaultUserAgent is the User-Agent header value for API requests.
const defaultUserAgent = "tailwrite-inference/1.0"

// Sentinel errors for client construction and requests. Callers should use errors.Is.
var (
	ErrMissingToken  = errors.New("inference: missing API token")
	ErrRequestFailed = errors.New("inference: request failed")
	ErrBadReply      = errors.New("inference: reply body is not JSON")
)

// Client calls one hosted text-generation model. Safe for concurrent use
// and meant to be shared across sessions; see Pool for construct-once
// sharing keyed by model.
type Client struct {
	baseURL      string
	model        string
	token        string
	httpClient   *http.Client
	waitForModel bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Default has 30s timeout. If c is nil, the default client is left unchanged.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithBaseURL points the client at a different API root (e.g. a test server).
func WithBaseURL(baseURL string) Option {
	return func(cl *Client) {
		cl.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModel selects the model repository id. Default is DefaultModel.
func WithModel(model string) Option {
	return func(cl *Client) {
		if model != "" {
			cl.model = model
		}
	}
}

// WithWaitForModel asks the service to hold the request while the model
// loads instead of replying with an estimated-time error.
func WithWaitForModel(wait bool) Option {
	return func(cl *Client) {
		cl.waitForModel = wait
	}
}

// NewClient creates a Client authenticated with the given bearer token.
// An empty token is a configuration error.
func NewClient(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	cl := &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(cl)
	}
	if parsed, err := url.Parse(cl.baseURL); err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("inference: invalid base URL %q", cl.baseURL)
	}
	return cl, nil
}

// Model returns the model repository id this client targets.
func (cl *Client) Model() string {
	return cl.model
}

type request struct {
	Inputs     string          `json:"inputs"`
	Parameters map[string]any  `json:"parameters,omitempty"`
	Options    *requestOptions `json:"options,omitempty"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Infer posts inputs and sampling parameters to the model endpoint and
// returns the decoded JSON reply whatever its HTTP status: the service
// reports its own failures as {"error": [...]} bodies, and classifying
// those is the caller's concern. Only network failures and non-JSON
// bodies are errors here.
func (cl *Client) Infer(ctx context.Context, inputs string, params map[string]any) (any, error) {
	payload := request{Inputs: inputs, Parameters: params}
	if cl.waitForModel {
		payload.Options = &requestOptions{WaitForModel: true}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrRequestFailed, err)
	}
	u := cl.baseURL + "/" + cl.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Authorization", "Bearer "+cl.token)
	resp, err := cl.httpClient.Do(req) // #nosec G704 -- URL is from config
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrBadReply, resp.Status, u, err)
	}
	return raw, nil
}
