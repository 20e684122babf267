package icons8

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"icons8dl/pkg/errors"
	"icons8dl/pkg/logger"
)

// DefaultTimeout bounds every catalog and image request, body included
const DefaultTimeout = 30 * time.Second

// Client performs the HTTP exchanges with the catalog and image endpoints.
// It makes exactly one attempt per call.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a Client whose requests time out after timeout
func NewClient(timeout time.Duration, userAgent string, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, userAgent, log)
}

// NewClientWithHTTP wraps an existing http.Client
func NewClientWithHTTP(httpClient *http.Client, userAgent string, log logger.Logger) *Client {
	headers := map[string]string{
		"Accept": "application/json, image/png;q=0.9, */*;q=0.8",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return &Client{
		httpClient: httpClient,
		headers:    headers,
		logger:     logger.OrNop(log),
	}
}

// SetHeader sets a header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// FetchPage GETs one catalog page and validates it.
// The raw body is returned alongside the decoded page so callers can persist
// exactly what the server sent.
func (c *Client) FetchPage(ctx context.Context, url string) ([]byte, *IconsResponse, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, classifyTransportError("failed to read response body", err)
	}

	page, err := DecodeIconsResponse(body)
	if err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to decode catalog page", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return nil, nil, err
	}

	return body, page, nil
}

// OpenImage GETs an icon image and returns its body for streaming.
// The caller must close the returned reader.
func (c *Client) OpenImage(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// get performs a GET and turns transport failures and non-2xx statuses into typed errors
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeUnknown, "failed to create request", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, classifyTransportError("request failed", err)
	}

	logger.LogRequest(c.logger, req.Method, url, resp.StatusCode, duration)

	if err := checkResponseStatus(resp); err != nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errors.Status(resp.StatusCode, fmt.Sprintf("unexpected status %s", resp.Status))
}

func classifyTransportError(message string, err error) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Wrap(errors.ErrorTypeTimeout, message, err)
	}
	return errors.Wrap(errors.ErrorTypeNetwork, message, err)
}
