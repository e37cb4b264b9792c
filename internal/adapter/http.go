package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscout/internal/model"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewHTTPClient returns the client shared by every board for one run.
// It has no per-request timeout; callers bound a run with a context deadline.
func NewHTTPClient(userAgent, acceptLanguage string) *http.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &http.Client{
		Transport: &headerTransport{
			base:           http.DefaultTransport,
			userAgent:      userAgent,
			acceptLanguage: acceptLanguage,
		},
	}
}

// headerTransport fills in browser-like headers a board did not set itself.
type headerTransport struct {
	base           http.RoundTripper
	userAgent      string
	acceptLanguage string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.acceptLanguage != "" && req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", t.acceptLanguage)
	}
	return t.base.RoundTrip(req)
}

// get issues a GET and returns the response when the status is 200.
// The caller closes the body.
func get(ctx context.Context, client *http.Client, rawURL string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			RetryAfter: model.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return resp, nil
}

// fetchDocument GETs rawURL and parses the body as HTML.
func fetchDocument(ctx context.Context, client *http.Client, rawURL string, header http.Header) (*goquery.Document, error) {
	resp, err := get(ctx, client, rawURL, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// fetchJSON GETs rawURL and decodes the body into v.
func fetchJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, v any) error {
	resp, err := get(ctx, client, rawURL, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
