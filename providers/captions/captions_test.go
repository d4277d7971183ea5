package captions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPage = `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"/api/timedtext?v=abc&lang=ja","name":{"simpleText":"日本語"},"languageCode":"ja"},` +
	`{"baseUrl":"/api/timedtext?v=abc&lang=en&kind=asr","name":{"runs":[{"text":"English "},{"text":"(auto-generated)"}]},"languageCode":"en","kind":"asr"}` +
	`],"audioTracks":[]}}};</script></html>`

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.5">Hello &amp;amp; welcome</text>` +
	`<text start="2" dur="3.25">to the
show</text>` +
	`</transcript>`

func newServer(t *testing.T, page string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "missing" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, timedTextXML)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestList(t *testing.T) {
	srv := newServer(t, watchPage)
	client := NewClient(srv.URL, "ja", 0, srv.Client())

	tracks, err := client.List(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "ja", tracks[0].LanguageCode)
	assert.Equal(t, "日本語", tracks[0].Name)
	assert.False(t, tracks[0].Generated)
	assert.Equal(t, srv.URL+"/api/timedtext?v=abc&lang=ja", tracks[0].BaseURL)

	assert.Equal(t, "en", tracks[1].LanguageCode)
	assert.Equal(t, "English (auto-generated)", tracks[1].Name)
	assert.True(t, tracks[1].Generated)
}

func TestListDisabled(t *testing.T) {
	srv := newServer(t, `<html>{"playabilityStatus":{"status":"OK"}}</html>`)
	client := NewClient(srv.URL, "ja", 0, srv.Client())

	_, err := client.List(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
}

func TestListNoTracks(t *testing.T) {
	srv := newServer(t, `<html>{"captionTracks":[]}</html>`)
	client := NewClient(srv.URL, "ja", 0, srv.Client())

	_, err := client.List(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestListHTTPError(t *testing.T) {
	srv := newServer(t, watchPage)
	client := NewClient(srv.URL, "ja", 0, srv.Client())

	_, err := client.List(context.Background(), "missing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTranscriptsDisabled)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch(t *testing.T) {
	srv := newServer(t, watchPage)
	client := NewClient(srv.URL, "ja", 0, srv.Client())

	segments, err := client.Fetch(context.Background(), Track{
		LanguageCode: "ja",
		BaseURL:      srv.URL + "/api/timedtext?v=abc",
	})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Hello & welcome", segments[0].Text)
	assert.Equal(t, 0.5, segments[0].Start)
	assert.Equal(t, 1.5, segments[0].Duration)
	assert.Equal(t, "to the\nshow", segments[1].Text)
	assert.Equal(t, 3.25, segments[1].Duration)
}

func TestRequestsRespectCancelledContext(t *testing.T) {
	srv := newServer(t, watchPage)
	client := NewClient(srv.URL, "ja", time.Hour, srv.Client())

	_, err := client.List(context.Background(), "abc")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = client.List(ctx, "abc")
	assert.Error(t, err)
}
