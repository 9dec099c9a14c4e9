package http_utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxBodySize caps how much of a response body is read.
var maxBodySize int64 = 10 << 20 // 10MB

// ErrBodyTooLarge is returned instead of a truncated response body.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received status code: %d (%s)", e.StatusCode, e.Status)
}

// PostForm sends values as an application/x-www-form-urlencoded POST to
// targetURL and returns the response body as text.
func PostForm(ctx context.Context, client *http.Client, targetURL string, values url.Values) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", targetURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post form to %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	// Check if the response status is a success
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", targetURL, err)
	}
	if int64(len(body)) > maxBodySize {
		return "", fmt.Errorf("%w: %s sent more than %d bytes", ErrBodyTooLarge, targetURL, maxBodySize)
	}

	return string(body), nil
}

// ResolveURL resolves ref (e.g. a form action) against base.
func ResolveURL(base string, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	if refURL.IsAbs() || base == "" {
		return refURL.String(), nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
