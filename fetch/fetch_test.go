package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClient_HTML verifies page fetching, the User-Agent header, and
// goquery parsing
func TestClient_HTML(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><div class="ArticleBlock"><a href="/x">Release</a></div></body></html>`))
	}))
	defer srv.Close()

	client := NewClient(0)
	doc, err := client.HTML(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0", "should send a browser client identifier")
	assert.Equal(t, "Release", doc.Find(".ArticleBlock a").Text())
}

// TestClient_HTML_BadStatus verifies non-200 responses are fetch errors
func TestClient_HTML_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(0)
	_, err := client.HTML(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestClient_Feed verifies feed fetching and flavor detection
func TestClient_Feed(t *testing.T) {
	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Press Releases</title>
<item><title>A release</title><link>http://x.gov/release/1</link></item>
</channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rss))
	}))
	defer srv.Close()

	client := NewClient(0)
	feed, err := client.Feed(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "rss", feed.FeedType)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "http://x.gov/release/1", feed.Items[0].Link)
}

// TestClient_Feed_ParseFailure verifies unparseable bodies are tagged with
// the parse sentinel so callers can classify them
func TestClient_Feed_ParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed at all"))
	}))
	defer srv.Close()

	client := NewClient(0)
	_, err := client.Feed(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

// TestClient_JSON_DecodeFailure verifies undecodable envelopes carry the
// parse sentinel
func TestClient_JSON_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer srv.Close()

	client := NewClient(0)
	var envelope map[string]any
	err := client.JSON(context.Background(), srv.URL, &envelope)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

// TestClient_JSON verifies envelope decoding
func TestClient_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": "<div>fragment</div>"}`))
	}))
	defer srv.Close()

	client := NewClient(0)
	var envelope struct {
		Content string `json:"content"`
	}
	err := client.JSON(context.Background(), srv.URL, &envelope)

	require.NoError(t, err)
	assert.Equal(t, "<div>fragment</div>", envelope.Content)
}

// TestClient_ContextCancellation verifies an expired context aborts the
// fetch instead of hanging
func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := NewClient(0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.HTML(ctx, srv.URL)

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context deadline exceeded") ||
		strings.Contains(err.Error(), "Client.Timeout"), "error was: %v", err)
}
