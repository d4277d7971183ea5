package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var (
	// ErrTranscriptsDisabled means the video exposes no caption data at all.
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
	// ErrNoTranscript means captions are enabled but no track is available.
	ErrNoTranscript = errors.New("no transcript available")
)

const (
	captionTracksMarker = `"captionTracks":`
	maxPageBytes        = 8 << 20
)

// Track is one caption track advertised on a watch page.
type Track struct {
	LanguageCode string
	Name         string
	Generated    bool
	BaseURL      string
}

// Segment is a timed piece of caption text.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient paces every outbound request by interval. A zero interval disables pacing.
func NewClient(baseURL, language string, interval time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

type captionTrackJSON struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// List returns the caption tracks for videoID in provider order.
func (c *Client) List(ctx context.Context, videoID string) ([]Track, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, errors.Wrapf(err, "fetch watch page %s", videoID)
	}

	idx := bytes.Index(page, []byte(captionTracksMarker))
	if idx < 0 {
		return nil, ErrTranscriptsDisabled
	}

	var raw []captionTrackJSON
	dec := json.NewDecoder(bytes.NewReader(page[idx+len(captionTracksMarker):]))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "decode caption tracks for %s", videoID)
	}

	tracks := make([]Track, 0, len(raw))
	for _, r := range raw {
		if r.BaseURL == "" {
			continue
		}
		tracks = append(tracks, Track{
			LanguageCode: r.LanguageCode,
			Name:         trackName(r),
			Generated:    r.Kind == "asr",
			BaseURL:      c.resolve(r.BaseURL),
		})
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}
	return tracks, nil
}

type timedText struct {
	Texts []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch downloads and decodes the timed text of track.
func (c *Client) Fetch(ctx context.Context, track Track) ([]Segment, error) {
	body, err := c.get(ctx, track.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s track", track.LanguageCode)
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s track", track.LanguageCode)
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		segments = append(segments, Segment{
			// Caption bodies arrive entity-encoded a second time.
			Text:     html.UnescapeString(t.Body),
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	return segments, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}

func (c *Client) resolve(baseURL string) string {
	if strings.HasPrefix(baseURL, "/") {
		return c.baseURL + baseURL
	}
	return baseURL
}

func trackName(r captionTrackJSON) string {
	if r.Name.SimpleText != "" {
		return r.Name.SimpleText
	}
	parts := make([]string, 0, len(r.Name.Runs))
	for _, run := range r.Name.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}
