package models

// Wire shapes for the YouTube Data API v3 responses the service reads.
// Only the fields we consume are mapped.

type CommentThreadListResponse struct {
	Items         []CommentThreadItem `json:"items"`
	NextPageToken string              `json:"nextPageToken"`
}

type CommentThreadItem struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment CommentResource `json:"topLevelComment"`
		TotalReplyCount int             `json:"totalReplyCount"`
	} `json:"snippet"`
	// Replies holds at most 5 inline replies, present only when
	// part=replies was requested.
	Replies struct {
		Comments []CommentResource `json:"comments"`
	} `json:"replies"`
}

type CommentListResponse struct {
	Items         []CommentResource `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
}

type CommentResource struct {
	ID      string `json:"id"`
	Snippet struct {
		AuthorDisplayName string `json:"authorDisplayName"`
		TextDisplay       string `json:"textDisplay"`
		PublishedAt       string `json:"publishedAt"`
		LikeCount         *int   `json:"likeCount"`
	} `json:"snippet"`
}

type VideoListResponse struct {
	Items []VideoItem `json:"items"`
}

type VideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		ChannelID   string `json:"channelId"`
	} `json:"snippet"`
	// The Data API serializes statistics counters as strings.
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

type ChannelListResponse struct {
	Items []ChannelItem `json:"items"`
}

type ChannelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount string `json:"subscriberCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
}
