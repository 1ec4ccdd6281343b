package data

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RequestRecord is one processed video-details request. The full result
// document is kept as JSONB; the summary columns exist so the notifier
// can build its message without unpacking the blob.
type RequestRecord struct {
	ID                uuid.UUID       `db:"id"`
	VideoID           string          `db:"video_id"`
	VideoTitle        string          `db:"video_title"`
	ChannelTitle      string          `db:"channel_title"`
	CommentCount      int             `db:"comment_count"`
	ViewCount         int64           `db:"view_count"`
	LikeCount         int64           `db:"like_count"`
	SubscriberCount   int64           `db:"subscriber_count"`
	VideoCount        int64           `db:"video_count"`
	ProcessingSeconds float64         `db:"processing_seconds"`
	Result            json.RawMessage `db:"result"`
	NotifiedAt        *time.Time      `db:"notified_at"`
	CreatedAt         time.Time       `db:"created_at"`
}
