package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/benmeehan/climate-search/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFormSubmitter_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		require.NoError(t, r.ParseForm())
		w.Write([]byte("<p>" + r.PostForm.Get("location") + "</p>"))
	}))
	defer server.Close()

	submitter := services.NewHTTPFormSubmitter(server.URL+"/index.html", server.Client(), time.Second)
	body, err := submitter.Submit(context.Background(), "/search", url.Values{"location": {`{"lat":1,"lng":2}`}})

	require.NoError(t, err)
	assert.Equal(t, `<p>{"lat":1,"lng":2}</p>`, body)
}

func TestHTTPFormSubmitter_Submit_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	submitter := services.NewHTTPFormSubmitter(server.URL, server.Client(), 50*time.Millisecond)
	_, err := submitter.Submit(context.Background(), "/search", url.Values{})

	assert.Error(t, err)
}
