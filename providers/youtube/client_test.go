package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), 25, "date",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSearch(t *testing.T) {
	var query, order, maxResults, typ string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/search"), r.URL.Path)
		query = r.URL.Query().Get("q")
		order = r.URL.Query().Get("order")
		maxResults = r.URL.Query().Get("maxResults")
		typ = r.URL.Query().Get("type")

		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": map[string]string{"kind": "youtube#video", "videoId": "v1"}},
				{"id": map[string]string{"kind": "youtube#channel", "channelId": "c1"}},
				{"id": map[string]string{"kind": "youtube#video", "videoId": "v2"}},
			},
		})
	})

	ids, err := client.Search(context.Background(), "Python")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, ids)
	assert.Equal(t, "#Python", query)
	assert.Equal(t, "date", order)
	assert.Equal(t, "25", maxResults)
	assert.Equal(t, "video", typ)
}

func TestSearchError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		writeJSON(t, w, map[string]interface{}{
			"error": map[string]interface{}{"code": 403, "message": "quotaExceeded"},
		})
	})

	_, err := client.Search(context.Background(), "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search #Go")
}

func TestDetails(t *testing.T) {
	var ids string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/videos"), r.URL.Path)
		ids = strings.Join(r.URL.Query()["id"], ",")

		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id": "v1",
					"snippet": map[string]interface{}{
						"title":        "Learn Go",
						"channelTitle": "Gopher",
						"publishedAt":  "2026-01-01T00:00:00Z",
						"thumbnails": map[string]interface{}{
							"high": map[string]interface{}{"url": "https://i.ytimg.com/v1.jpg", "width": 480, "height": 360},
						},
					},
					"statistics": map[string]string{"viewCount": "5000", "likeCount": "200"},
				},
				{
					"id":         "v2",
					"snippet":    map[string]interface{}{"title": "No likes"},
					"statistics": map[string]string{"viewCount": "10"},
				},
			},
		})
	})

	videos, err := client.Details(context.Background(), []string{"v1", "v2"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v1,v2", ids)

	assert.Equal(t, "Learn Go", videos[0].Title)
	assert.Equal(t, "Gopher", videos[0].ChannelTitle)
	assert.Equal(t, uint64(5000), videos[0].ViewCount)
	assert.Equal(t, uint64(200), videos[0].LikeCount)
	assert.Equal(t, "https://i.ytimg.com/v1.jpg", videos[0].Thumbnails["high"].URL)
	assert.Equal(t, int64(480), videos[0].Thumbnails["high"].Width)

	assert.Equal(t, uint64(0), videos[1].LikeCount)
	assert.Empty(t, videos[1].Thumbnails)
}

func TestDetailsEmptyIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})

	videos, err := client.Details(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, videos)
}
