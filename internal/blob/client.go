package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiVersion = "7"

// Client uploads files to the Vercel Blob store using its REST API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New creates a blob store client.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// PutResult holds the response from the blob store after a successful upload.
type PutResult struct {
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// Put uploads data under the given pathname with public access and returns
// the durable public URL. The pathname is stored verbatim; no random suffix
// is added.
func (c *Client) Put(ctx context.Context, pathname string, data []byte, contentType string) (*PutResult, error) {
	endpoint := fmt.Sprintf("%s/%s", c.BaseURL, url.PathEscape(pathname))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("blob: create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-content-type", contentType)
	req.Header.Set("x-add-random-suffix", "0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("blob: upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var result PutResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("blob: decode response failed: %w", err)
	}
	return &result, nil
}

// Upload uploads data and returns only the public URL. It satisfies the
// uploader contract of the record service.
func (c *Client) Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error) {
	result, err := c.Put(ctx, pathname, data, contentType)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}
