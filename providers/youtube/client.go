package youtube

import (
	"context"

	"github.com/nijaru/yt-digest/models"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API search and videos endpoints.
type Client struct {
	service    *ytapi.Service
	maxResults int64
	order      string
}

func NewClient(ctx context.Context, maxResults int64, order string, opts ...option.ClientOption) (*Client, error) {
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create youtube service")
	}

	return &Client{
		service:    service,
		maxResults: maxResults,
		order:      order,
	}, nil
}

// Search returns candidate video ids for "#hashtag" in provider order.
func (c *Client) Search(ctx context.Context, hashtag string) ([]string, error) {
	resp, err := c.service.Search.List([]string{"id"}).
		Q("#" + hashtag).
		Type("video").
		Order(c.order).
		MaxResults(c.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "search #%s", hashtag)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, item.Id.VideoId)
	}
	return ids, nil
}

// Details fetches snippet and statistics for ids in one batched call.
func (c *Client) Details(ctx context.Context, ids []string) ([]models.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "list details for %d videos", len(ids))
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toVideo(item))
	}
	return videos, nil
}

func toVideo(item *ytapi.Video) models.Video {
	v := models.Video{ID: item.Id}

	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.ChannelTitle = s.ChannelTitle
		v.PublishedAt = s.PublishedAt
		v.Thumbnails = toThumbnails(s.Thumbnails)
	}

	// Hidden like counts come back absent and read as zero.
	if st := item.Statistics; st != nil {
		v.ViewCount = st.ViewCount
		v.LikeCount = st.LikeCount
	}
	return v
}

func toThumbnails(d *ytapi.ThumbnailDetails) map[string]models.Thumbnail {
	if d == nil {
		return nil
	}

	out := make(map[string]models.Thumbnail)
	for name, t := range map[string]*ytapi.Thumbnail{
		"default":  d.Default,
		"medium":   d.Medium,
		"high":     d.High,
		"standard": d.Standard,
		"maxres":   d.Maxres,
	} {
		if t == nil || t.Url == "" {
			continue
		}
		out[name] = models.Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
	}
	return out
}
