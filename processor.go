package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
)

// ProcessRequest is the payload sent to the text processing service.
type ProcessRequest struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
}

// ProcessResponse is the processing outcome returned by the service.
type ProcessResponse struct {
	Result   string         `json:"result"`
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TextProcessor runs content through the remote processing service.
type TextProcessor interface {
	Process(ctx context.Context, req ProcessRequest) (*ProcessResponse, error)
	Healthy(ctx context.Context) bool
}

// ProcessorClient is the HTTP client for the text processing service.
type ProcessorClient struct {
	baseURL string
	client  *http.Client
	logger  Logger
}

var _ TextProcessor = (*ProcessorClient)(nil)

// NewProcessorClient returns a client for the processing service at baseURL.
func NewProcessorClient(baseURL string) *ProcessorClient {
	return &ProcessorClient{
		baseURL: baseURL,
		logger:  defLogger{},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *ProcessorClient) WithLogger(logger Logger) *ProcessorClient {
	if logger != nil {
		p.logger = logger
	}
	return p
}

func (p *ProcessorClient) WithHTTPClient(client *http.Client) *ProcessorClient {
	if client != nil {
		p.client = client
	}
	return p
}

// Process submits text for processing. The type must be one of the processing
// content types; plain documents never reach the service.
func (p *ProcessorClient) Process(ctx context.Context, req ProcessRequest) (*ProcessResponse, error) {
	if !IsProcessableType(req.Type) {
		return nil, errors.New(
			fmt.Sprintf("unsupported processing type: %s", req.Type),
			errors.CategoryBadInput,
		)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to encode process request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to build process request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "processing service unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		p.logger.Warn("processor returned non OK status", "status", res.StatusCode, "body", string(payload))

		category := errors.CategoryOperation
		if res.StatusCode == http.StatusBadRequest {
			category = errors.CategoryBadInput
		}

		return nil, errors.New(
			fmt.Sprintf("processing service responded with status %d", res.StatusCode),
			category,
		).WithMetadata(map[string]any{
			"status": res.StatusCode,
		})
	}

	out := &ProcessResponse{}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to decode process response")
	}

	return out, nil
}

// Healthy reports whether the processing service answers its health check.
func (p *ProcessorClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("processor health check failed", "error", err)
		return false
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK
}

// IsProcessableType reports whether the content type routes through the
// processing service.
func IsProcessableType(contentType string) bool {
	switch contentType {
	case ContentTypeSummarize, ContentTypeAnalyze, ContentTypeExtract, ContentTypeTranslate:
		return true
	}
	return false
}
