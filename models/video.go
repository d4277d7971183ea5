package models

// Thumbnail is one rendition of a video thumbnail.
type Thumbnail struct {
	URL    string `json:"url" dynamodbav:"url"`
	Width  int64  `json:"width,omitempty" dynamodbav:"width,omitempty"`
	Height int64  `json:"height,omitempty" dynamodbav:"height,omitempty"`
}

// Video is a candidate discovered by search, with the metadata needed by the pipeline.
type Video struct {
	ID           string               `json:"videoId"`
	Title        string               `json:"title"`
	ChannelTitle string               `json:"channelTitle"`
	PublishedAt  string               `json:"publishedAt"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails,omitempty"`
	ViewCount    uint64               `json:"viewCount"`
	LikeCount    uint64               `json:"likeCount"`
}
