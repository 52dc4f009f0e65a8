package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/groblegark/treeline/internal/model"
)

// Auth scheme selection. AuthAuto tries bearer first and falls back to basic
// on a 401; the scheme that succeeds is pinned for the rest of the process.
const (
	AuthAuto   = "auto"
	AuthBearer = "bearer"
	AuthBasic  = "basic"
)

// HTTPClient implements Client against the tracker's HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	email      string
	token      string
	mode       string
	httpClient *http.Client

	mu         sync.Mutex
	scheme     string // pinned auth scheme ("" until a request succeeds in auto mode)
	apiVersion string // "3", downgraded once to "2" when the search endpoint 404s
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "https://tracker.example.com"). token is required; email is only used
// by the basic scheme.
func NewHTTPClient(baseURL, email, token, authMode string) *HTTPClient {
	if authMode == "" {
		authMode = AuthAuto
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		token:      token,
		mode:       authMode,
		httpClient: &http.Client{},
		apiVersion: "3",
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) GetIssue(ctx context.Context, key string, fields []string) (*Issue, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	q := url.Values{}
	q.Set("fields", strings.Join(fields, ","))
	path := c.apiPath("issue/"+url.PathEscape(key)) + "?" + q.Encode()

	var issue Issue
	if err := c.doJSON(ctx, http.MethodGet, path, &issue); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*SearchResult, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	q := url.Values{}
	q.Set("jql", query)
	q.Set("fields", strings.Join(fields, ","))
	if maxResults > 0 {
		q.Set("maxResults", fmt.Sprintf("%d", maxResults))
	}

	var resp SearchResult
	err := c.doJSON(ctx, http.MethodGet, c.apiPath("search")+"?"+q.Encode(), &resp)
	if err != nil {
		// Older deployments only serve the v2 search endpoint. Downgrade once
		// and retry; the version stays pinned afterwards.
		var apiErr *APIError
		if errors.As(err, &apiErr) && c.downgradeAPIVersion(apiErr.StatusCode) {
			err = c.doJSON(ctx, http.MethodGet, c.apiPath("search")+"?"+q.Encode(), &resp)
		}
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetFolderTopology(ctx context.Context, topologyID string, maxResults int) ([]model.FolderElement, error) {
	q := url.Values{}
	if maxResults > 0 {
		q.Set("maxResults", fmt.Sprintf("%d", maxResults))
	}
	path := "/rest/structure/1.0/structure/" + url.PathEscape(topologyID) + "/elements"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Elements []struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			ParentID *int64 `json:"parentId"`
			IssueKey string `json:"issueKey"`
		} `json:"elements"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusForbidden, http.StatusNotFound, http.StatusGone, http.StatusNotImplemented:
				return nil, fmt.Errorf("structure %s: %w", topologyID, ErrTopologyUnavailable)
			}
		}
		return nil, err
	}

	elements := make([]model.FolderElement, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		elements = append(elements, model.FolderElement{
			ID:       e.ID,
			Name:     e.Name,
			ParentID: e.ParentID,
			IssueKey: e.IssueKey,
		})
	}
	return elements, nil
}

// --- internal helpers ---

// APIError represents an error response from the tracker.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (c *HTTPClient) apiPath(suffix string) string {
	c.mu.Lock()
	v := c.apiVersion
	c.mu.Unlock()
	return "/rest/api/" + v + "/" + suffix
}

// downgradeAPIVersion pins the v2 API after the v3 search endpoint reports
// absence. Returns true when a retry is warranted.
func (c *HTTPClient) downgradeAPIVersion(status int) bool {
	if status != http.StatusNotFound && status != http.StatusGone {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.apiVersion != "3" {
		return false
	}
	c.apiVersion = "2"
	slog.Debug("tracker API v3 unavailable, pinned v2", "status", status)
	return true
}

// currentScheme returns the auth scheme to use for the next request.
func (c *HTTPClient) currentScheme() string {
	if c.mode != AuthAuto {
		return c.mode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scheme != "" {
		return c.scheme
	}
	return AuthBearer
}

// pinScheme records the scheme that produced a non-401 response in auto mode.
func (c *HTTPClient) pinScheme(scheme string) {
	if c.mode != AuthAuto {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scheme == "" {
		c.scheme = scheme
	}
}

func (c *HTTPClient) authorize(req *http.Request, scheme string) {
	if c.token == "" {
		return
	}
	switch scheme {
	case AuthBasic:
		req.SetBasicAuth(c.email, c.token)
	default:
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// doJSON performs a GET-style request and decodes the JSON response. In auto
// mode a 401 under the bearer scheme triggers one retry with basic
// credentials; whichever scheme gets through is pinned.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, result any) error {
	scheme := c.currentScheme()
	status, err := c.doOnce(ctx, method, path, scheme, result)
	if err == nil && status == http.StatusUnauthorized && c.mode == AuthAuto && scheme == AuthBearer {
		slog.Debug("bearer auth rejected, retrying with basic credentials", "path", path)
		scheme = AuthBasic
		status, err = c.doOnce(ctx, method, path, scheme, result)
	}
	if err != nil {
		return err
	}
	if status == 0 {
		// Decoded successfully.
		c.pinScheme(scheme)
		return nil
	}
	return &APIError{StatusCode: status, Message: "unauthorized"}
}

// doOnce performs a single request. On 401 it returns (401, nil) so the
// caller can decide whether to retry; other error statuses become APIError.
func (c *HTTPClient) doOnce(ctx context.Context, method, path, scheme string, result any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req, scheme)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return http.StatusUnauthorized, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			ErrorMessages []string `json:"errorMessages"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && len(errResp.ErrorMessages) > 0 {
			return 0, &APIError{StatusCode: resp.StatusCode, Message: strings.Join(errResp.ErrorMessages, "; ")}
		}
		return 0, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return 0, fmt.Errorf("decoding response: %w", err)
		}
	}
	return 0, nil
}
