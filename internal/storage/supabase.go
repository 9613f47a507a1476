package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SupabaseStore talks to the Supabase Storage REST API for a single bucket.
type SupabaseStore struct {
	baseURL string // https://<project>.supabase.co/storage/v1
	key     string
	bucket  string
	client  *http.Client
}

// supabaseError is the error body returned by the storage API.
type supabaseError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type supabaseUploadResponse struct {
	Key string `json:"Key"`
	ID  string `json:"Id"`
}

func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL: strings.TrimSuffix(projectURL, "/") + "/storage/v1",
		key:     serviceKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SupabaseStore) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", s.baseURL, url.PathEscape(s.bucket), escapeKey(key))
}

func (s *SupabaseStore) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
	return req, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (string, error) {
	req, err := s.newRequest(ctx, http.MethodPost, s.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = DetectContentType(data)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", fmt.Sprintf("%t", opts.Upsert))
	if opts.CacheControl != "" {
		req.Header.Set("Cache-Control", "max-age="+opts.CacheControl)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", s.responseError(resp.StatusCode, body)
	}

	var out supabaseUploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	// Key comes back as "<bucket>/<path>"; callers store the bucket-relative path.
	return strings.TrimPrefix(out.Key, s.bucket+"/"), nil
}

func (s *SupabaseStore) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"prefixes": keys})
	if err != nil {
		return err
	}
	target := fmt.Sprintf("%s/object/%s", s.baseURL, url.PathEscape(s.bucket))
	req, err := s.newRequest(ctx, http.MethodDelete, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("remove request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return s.responseError(resp.StatusCode, body)
	}
	return nil
}

func (s *SupabaseStore) Download(ctx context.Context, key string) ([]byte, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.objectURL(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, s.responseError(resp.StatusCode, body)
	}
	return body, nil
}

func (s *SupabaseStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// responseError maps an API error body onto the package sentinels where one applies.
func (s *SupabaseStore) responseError(status int, body []byte) error {
	var apiErr supabaseError
	_ = json.Unmarshal(body, &apiErr)

	switch {
	case status == http.StatusConflict || apiErr.StatusCode == "409" || apiErr.Error == "Duplicate":
		return fmt.Errorf("%w: %s", ErrObjectExists, apiErr.Message)
	case status == http.StatusNotFound || apiErr.StatusCode == "404" || apiErr.Error == "not_found":
		return fmt.Errorf("%w: %s", ErrObjectNotFound, apiErr.Message)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return fmt.Errorf("supabase storage: status %d: %s", status, msg)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
