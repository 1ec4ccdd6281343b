package models

// Placeholder values applied at the parse boundary when the upstream
// payload omits a field.
const (
	UnknownAuthor    = "Unknown"
	MissingTimestamp = "N/A"
)

type CommentRecord struct {
	ID          string     `json:"id"`
	Author      string     `json:"author"`
	Text        string     `json:"text"`
	PublishedAt string     `json:"publishedAt"`
	LikeCount   *int       `json:"likeCount,omitempty"`
	IsReply     bool       `json:"isReply"`
	Sentiment   *Sentiment `json:"sentiment,omitempty"`
}

func NewCommentRecord(res CommentResource, isReply bool) CommentRecord {
	rec := CommentRecord{
		ID:          res.ID,
		Author:      res.Snippet.AuthorDisplayName,
		Text:        res.Snippet.TextDisplay,
		PublishedAt: res.Snippet.PublishedAt,
		LikeCount:   res.Snippet.LikeCount,
		IsReply:     isReply,
	}
	if rec.Author == "" {
		rec.Author = UnknownAuthor
	}
	if rec.PublishedAt == "" {
		rec.PublishedAt = MissingTimestamp
	}
	return rec
}

// CommentGroup is one top-level comment together with its full reply list.
type CommentGroup struct {
	Comment CommentRecord   `json:"comment"`
	Replies []CommentRecord `json:"replies"`
}

type Sentiment struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Label    string  `json:"label"`
	Language string  `json:"language,omitempty"`
}

type VideoInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

func NewVideoInfo(item VideoItem) VideoInfo {
	return VideoInfo{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		PublishedAt:  item.Snippet.PublishedAt,
		ViewCount:    item.Statistics.ViewCount,
		LikeCount:    item.Statistics.LikeCount,
		CommentCount: item.Statistics.CommentCount,
	}
}

type ChannelInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PublishedAt     string `json:"publishedAt"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

func NewChannelInfo(item ChannelItem) ChannelInfo {
	return ChannelInfo{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		PublishedAt:     item.Snippet.PublishedAt,
		SubscriberCount: item.Statistics.SubscriberCount,
		VideoCount:      item.Statistics.VideoCount,
	}
}

type VideoDetailsResponse struct {
	VideoID     string         `json:"videoId"`
	VideoInfo   VideoInfo      `json:"videoInfo"`
	ChannelInfo ChannelInfo    `json:"channelInfo"`
	Comments    []CommentGroup `json:"comments"`
}

type GetCommentsResponse struct {
	VideoID  string          `json:"videoId"`
	Comments []CommentRecord `json:"comments"`
	Total    int             `json:"total"`
}

type GetTopCommentsResponse struct {
	VideoID  string         `json:"videoId"`
	Comments []CommentGroup `json:"comments"`
	Total    int            `json:"total"`
}
