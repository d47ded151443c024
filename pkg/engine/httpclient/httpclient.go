// Package httpclient implements engine.Client against a deployed
// analysis engine speaking the JSON HTTP protocol.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/wire"
)

// EngineHTTPClient talks to an analysis engine over HTTP. Requests are
// not retried; callers decide whether a failure is worth repeating.
type EngineHTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewEngineHTTPClientParams contains configuration options for creating
// a new EngineHTTPClient.
type NewEngineHTTPClientParams struct {
	BaseURL string
	ApiKey  string
	Timeout time.Duration
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewEngineHTTPClient creates an engine client for the server at
// BaseURL. The ApiKey, if set, is sent as a bearer token on every
// request.
func NewEngineHTTPClient(params NewEngineHTTPClientParams) (*EngineHTTPClient, error) {
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse engine base url: %w", err)
	}

	timeout := params.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	headers := map[string]string{}
	if params.ApiKey != "" {
		headers["Authorization"] = "Bearer " + params.ApiKey
	}

	return &EngineHTTPClient{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &headerTransport{
				headers: headers,
				rt:      http.DefaultTransport,
			},
		},
	}, nil
}

func (c *EngineHTTPClient) Start(
	ctx context.Context,
	req *wire.StartAnalysisRequest,
) (*wire.StartAnalysisResponse, error) {
	var out wire.StartAnalysisResponse
	if err := c.post(ctx, "/api/analysis/start", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &engine.Error{Code: out.ErrorCode, Message: out.Message}
	}
	return &out, nil
}

func (c *EngineHTTPClient) Stop(
	ctx context.Context,
	req *wire.StopAnalysisRequest,
) (*wire.StopAnalysisResponse, error) {
	var out wire.StopAnalysisResponse
	if err := c.post(ctx, "/api/analysis/stop", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &engine.Error{Code: out.ErrorCode, Message: out.Message}
	}
	return &out, nil
}

func (c *EngineHTTPClient) Monitoring(
	ctx context.Context,
	analysisID string,
) (*wire.MonitoringResponse, error) {
	var out wire.MonitoringResponse
	path := "/api/analysis/" + url.PathEscape(analysisID) + "/monitoring"
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &engine.Error{Code: out.ErrorCode, Message: out.Message}
	}
	return &out, nil
}

func (c *EngineHTTPClient) Results(
	ctx context.Context,
	analysisID string,
) (*wire.ResultsResponse, error) {
	var out wire.ResultsResponse
	path := "/api/analysis/" + url.PathEscape(analysisID) + "/results"
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &engine.Error{Code: out.ErrorCode, Message: out.Message}
	}
	return &out, nil
}

func (c *EngineHTTPClient) NodeDetail(
	ctx context.Context,
	req *wire.NodeDetailRequest,
) (*wire.NodeDetailResponse, error) {
	var out wire.NodeDetailResponse
	if err := c.post(ctx, "/api/analysis/node-detail", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &engine.Error{Code: engine.CodeNotFound, Message: "node detail unavailable"}
	}
	return &out, nil
}

func (c *EngineHTTPClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

func (c *EngineHTTPClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *EngineHTTPClient) do(
	ctx context.Context,
	method string,
	path string,
	body io.Reader,
	out any,
) error {
	u := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &engine.Error{Code: engine.CodeUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// Error bodies that still carry a decodable envelope are surfaced
	// through the envelope's success/error_code fields by the caller.
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &engine.Error{
				Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
				Message: http.StatusText(resp.StatusCode),
			}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
