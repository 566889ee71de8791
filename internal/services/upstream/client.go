package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/phambaophuc/image-analyzer/internal/config"
	"go.uber.org/zap"
)

const (
	APIKeyHeader = "x-api-key"

	imageField       = "image"
	queryField       = "query"
	imageFilename    = "image.jpg"
	imageContentType = "image/jpeg"
)

var ErrNotConfigured = errors.New("upstream URL not configured")

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream request failed: %d", e.StatusCode)
}

type Client struct {
	http *resty.Client
	url  string
}

func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetLogger(logger.Sugar()).
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http: httpClient,
		url:  cfg.URL,
	}
}

func (c *Client) Configured() bool {
	return c.url != ""
}

// Analyze posts the image and question as a multipart body and returns the
// upstream JSON body unchanged.
func (c *Client) Analyze(ctx context.Context, image []byte, query, apiKey string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(APIKeyHeader, apiKey).
		SetMultipartField(imageField, imageFilename, imageContentType, bytes.NewReader(image)).
		SetMultipartFormData(map[string]string{queryField: query}).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned a non-JSON body (%d bytes)", len(body))
	}

	return body, nil
}
