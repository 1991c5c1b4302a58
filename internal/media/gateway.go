package media

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

// Uploader stores bytes under a key and returns their public address.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, key string) (string, error)
}

// Gateway is what the orchestrator needs: read staged bytes, then upload them.
type Gateway interface {
	FetchBytes(ctx context.Context, ref Ref) (Blob, error)
	Uploader
}

// ObjectStoreClient talks to the object storage service:
// POST {baseURL}/upload?filename=<key> with the raw bytes as body, answered by
// 200 {"url": "..."}. It never retries; that is up to the caller.
type ObjectStoreClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewObjectStoreClient creates a client for the object store at baseURL.
func NewObjectStoreClient(baseURL, apiKey string, timeout time.Duration) *ObjectStoreClient {
	return &ObjectStoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Upload sends data to the object store. Every call creates a new object.
func (c *ObjectStoreClient) Upload(ctx context.Context, data []byte, contentType, key string) (string, error) {
	endpoint := c.baseURL + "/upload?filename=" + url.QueryEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &TransportError{StatusCode: resp.StatusCode}
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode upload response: %w", err)}
	}
	if body.URL == "" {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: errors.New("upload response has no url")}
	}

	return body.URL, nil
}

// GatewayClient reads staged bytes from one session's handle table and
// uploads them through an Uploader.
type GatewayClient struct {
	handles  HandleTable
	uploader Uploader
}

// NewGatewayClient binds a draft session's handles to an uploader. handles may
// be nil when the request named no draft session; every fetch then fails.
func NewGatewayClient(handles HandleTable, uploader Uploader) *GatewayClient {
	return &GatewayClient{handles: handles, uploader: uploader}
}

// FetchBytes resolves an ephemeral reference to its staged content.
func (c *GatewayClient) FetchBytes(ctx context.Context, ref Ref) (Blob, error) {
	if ref.Kind() != KindEphemeral {
		return Blob{}, fmt.Errorf("%w: %s reference has no staged bytes", ErrInvalidReference, ref.Kind())
	}
	if c.handles == nil {
		return Blob{}, fmt.Errorf("%w: no draft session for handle %s", ErrInvalidReference, ref.Handle())
	}
	return c.handles.Get(ctx, ref)
}

// Upload forwards to the underlying uploader.
func (c *GatewayClient) Upload(ctx context.Context, data []byte, contentType, key string) (string, error) {
	return c.uploader.Upload(ctx, data, contentType, key)
}
