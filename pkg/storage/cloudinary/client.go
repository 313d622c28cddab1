package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	pingTimeout    = 5 * time.Second
)

// ResourceType selects the Cloudinary upload pipeline.
const (
	ResourceTypeImage = "image"
	ResourceTypeRaw   = "raw"
)

// Client talks to the Cloudinary upload API using signed requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	now        func() time.Time
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// UploadParams describes one upload request.
type UploadParams struct {
	// Folder groups uploads inside the Cloudinary media library.
	Folder string
	// PublicID overrides the generated identifier when set.
	PublicID string
	// ResourceType is "image" or "raw"; empty defaults to raw.
	ResourceType string
	// FileName is the original file name sent as metadata.
	FileName string
}

// UploadResult is the subset of the Cloudinary response the service records.
type UploadResult struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
	Bytes        int64  `json:"bytes"`
}

// NewClient builds a Cloudinary client and verifies credentials with a ping.
func NewClient(ctx context.Context, cfg config.CloudinaryConfig, logg *logger.Logger) (*Client, error) {
	client, err := newClient(cfg, defaultBaseURL)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("cloudinary health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "cloudinary client initialized")
	}

	return client, nil
}

func newClient(cfg config.CloudinaryConfig, baseURL string) (*Client, error) {
	if cfg.CloudName == "" {
		return nil, errors.New("cloudinary cloud name is required")
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary api credentials are required")
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		now:        time.Now,
	}, nil
}

// Upload sends the buffer to Cloudinary and returns the stored object metadata.
func (c *Client) Upload(ctx context.Context, data []byte, params UploadParams) (*UploadResult, error) {
	if c == nil {
		return nil, errors.New("cloudinary client not initialized")
	}
	if len(data) == 0 {
		return nil, errors.New("upload data is empty")
	}

	resourceType := params.ResourceType
	if resourceType == "" {
		resourceType = ResourceTypeRaw
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signed := map[string]string{"timestamp": timestamp}
	if params.Folder != "" {
		signed["folder"] = params.Folder
	}
	if params.PublicID != "" {
		signed["public_id"] = params.PublicID
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range signed {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(signed)); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	fileName := params.FileName
	if fileName == "" {
		fileName = "file"
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/upload", c.baseURL, url.PathEscape(c.cloudName), resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse("cloudinary upload", resp)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, errors.New("cloudinary upload returned incomplete metadata")
	}
	return &result, nil
}

// Destroy removes a previously uploaded object.
func (c *Client) Destroy(ctx context.Context, publicID, resourceType string) error {
	if c == nil {
		return errors.New("cloudinary client not initialized")
	}
	if publicID == "" {
		return errors.New("public id is required")
	}
	if resourceType == "" {
		resourceType = ResourceTypeRaw
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signed := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for key, value := range signed {
		form.Set(key, value)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(signed))

	endpoint := fmt.Sprintf("%s/%s/%s/destroy", c.baseURL, url.PathEscape(c.cloudName), resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("cloudinary destroy", resp)
	}

	var result struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding destroy response: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q", result.Result)
	}
	return nil
}

// Ping verifies the credentials against the Cloudinary admin API.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.httpClient == nil {
		return errors.New("cloudinary client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/ping", c.baseURL, url.PathEscape(c.cloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse("cloudinary ping", resp)
	}
	return nil
}

// sign computes the request signature: SHA-1 over the sorted signed params
// concatenated as key=value pairs joined with '&', followed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func errorFromResponse(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if len(b) > 0 {
		return fmt.Errorf("%s failed: %s: %s", op, resp.Status, strings.TrimSpace(string(b)))
	}
	return fmt.Errorf("%s failed: %s", op, resp.Status)
}
