package filter

import "github.com/nijaru/yt-digest/models"

// Popularity admits videos whose view and like counts both meet their thresholds.
type Popularity struct {
	MinViews uint64
	MinLikes uint64
}

func NewPopularity(minViews, minLikes uint64) Popularity {
	return Popularity{MinViews: minViews, MinLikes: minLikes}
}

func (p Popularity) Admit(views, likes uint64) bool {
	return views >= p.MinViews && likes >= p.MinLikes
}

func (p Popularity) AdmitVideo(v models.Video) bool {
	return p.Admit(v.ViewCount, v.LikeCount)
}

// Reason names the first failing threshold, or "" when the counts are admitted.
func (p Popularity) Reason(views, likes uint64) string {
	switch {
	case views < p.MinViews:
		return "view count"
	case likes < p.MinLikes:
		return "like count"
	default:
		return ""
	}
}
