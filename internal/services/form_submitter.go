package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	http_utils "github.com/benmeehan/climate-search/pkg/httpUtils"
)

// HTTPFormSubmitter posts the search form over HTTP. Relative form actions are
// resolved against baseURL.
type HTTPFormSubmitter struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFormSubmitter creates a submitter; a zero timeout leaves deadlines to ctx.
func NewHTTPFormSubmitter(baseURL string, client *http.Client, timeout time.Duration) *HTTPFormSubmitter {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFormSubmitter{
		baseURL: baseURL,
		client:  client,
		timeout: timeout,
	}
}

// Submit posts values to action and returns the response body.
func (h *HTTPFormSubmitter) Submit(ctx context.Context, action string, values url.Values) (string, error) {
	target, err := http_utils.ResolveURL(h.baseURL, action)
	if err != nil {
		return "", err
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	return http_utils.PostForm(ctx, h.client, target, values)
}
