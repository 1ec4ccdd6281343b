package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markop/tubepulse.api/data"
)

type RequestRepo struct {
	db *sqlx.DB
}

func NewRequestRepo(db *sqlx.DB) *RequestRepo {
	return &RequestRepo{db}
}

func (r *RequestRepo) CreateRequest(rec data.RequestRecord) error {
	query := `
		INSERT INTO requests (
			id, video_id, video_title, channel_title, comment_count,
			view_count, like_count, subscriber_count, video_count,
			processing_seconds, result, created_at
		)
		VALUES (
			:id, :video_id, :video_title, :channel_title, :comment_count,
			:view_count, :like_count, :subscriber_count, :video_count,
			:processing_seconds, :result, now()
		)`

	_, err := r.db.NamedExec(query, rec)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return nil
}

func (r *RequestRepo) GetUnnotifiedRequests() ([]data.RequestRecord, error) {
	var records []data.RequestRecord
	query := `
		SELECT id, video_id, video_title, channel_title, comment_count,
		       view_count, like_count, subscriber_count, video_count,
		       processing_seconds, result, notified_at, created_at
		FROM requests
		WHERE notified_at IS NULL
		ORDER BY created_at ASC`

	err := r.db.Select(&records, query)
	if err != nil {
		return nil, fmt.Errorf("get unnotified requests: %w", err)
	}

	return records, nil
}

func (r *RequestRepo) MarkNotified(ids []uuid.UUID, notifiedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE requests SET notified_at = ? WHERE id IN (?)`, notifiedAt, ids)
	if err != nil {
		return fmt.Errorf("build mark notified: %w", err)
	}
	query = r.db.Rebind(query)

	_, err = r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	return nil
}
