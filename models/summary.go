package models

import "time"

// ProcessedAtLayout is fixed width so lexical order of ProcessedAt equals time order.
const ProcessedAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// SummaryRecord is the persisted unit, keyed by (Hashtag, ProcessedAt) with VideoID as a secondary key.
type SummaryRecord struct {
	Hashtag      string               `json:"hashtag" dynamodbav:"hashtag"`
	ProcessedAt  string               `json:"processedAt" dynamodbav:"processedAt"`
	VideoID      string               `json:"videoId" dynamodbav:"videoId"`
	Title        string               `json:"title" dynamodbav:"title"`
	ChannelTitle string               `json:"channelTitle" dynamodbav:"channelTitle"`
	PublishedAt  string               `json:"publishedAt" dynamodbav:"publishedAt"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails,omitempty" dynamodbav:"thumbnails,omitempty"`
	ViewCount    uint64               `json:"viewCount" dynamodbav:"viewCount"`
	LikeCount    uint64               `json:"likeCount" dynamodbav:"likeCount"`
	Summary      string               `json:"summary" dynamodbav:"summary"`
}

// NewSummaryRecord builds a record for video under hashtag, stamped with processedAt in UTC.
func NewSummaryRecord(hashtag string, video Video, summary string, processedAt time.Time) *SummaryRecord {
	return &SummaryRecord{
		Hashtag:      hashtag,
		ProcessedAt:  processedAt.UTC().Format(ProcessedAtLayout),
		VideoID:      video.ID,
		Title:        video.Title,
		ChannelTitle: video.ChannelTitle,
		PublishedAt:  video.PublishedAt,
		Thumbnails:   video.Thumbnails,
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		Summary:      summary,
	}
}
