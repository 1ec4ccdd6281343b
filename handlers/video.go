package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/markop/tubepulse.api/data"
	"github.com/markop/tubepulse.api/data/repos"
	"github.com/markop/tubepulse.api/metrics"
	"github.com/markop/tubepulse.api/models"
	"github.com/markop/tubepulse.api/sentiment"
	"github.com/markop/tubepulse.api/snapshot"
	"github.com/markop/tubepulse.api/sources"
)

type VideoHandler struct {
	source    *sources.Client
	analyzer  *sentiment.Analyzer
	repo      *repos.RequestRepo
	snapshots *snapshot.Writer
}

func NewVideoHandler(source *sources.Client, analyzer *sentiment.Analyzer, repo *repos.RequestRepo, snapshots *snapshot.Writer) *VideoHandler {
	return &VideoHandler{
		source:    source,
		analyzer:  analyzer,
		repo:      repo,
		snapshots: snapshots,
	}
}

// GetVideoDetails assembles video metadata, channel metadata and the
// full sentiment-annotated comment corpus, persists a request record,
// and writes a JSON snapshot to disk.
func (h *VideoHandler) GetVideoDetails(w http.ResponseWriter, r *http.Request) Result {
	videoID := r.PathValue("id")
	ctx := r.Context()
	start := time.Now()

	video, err := h.source.Video(ctx, videoID)
	if err != nil {
		return sourceError(err, "Video not found.", "fetch video info: ")
	}

	channel, err := h.source.Channel(ctx, video.Snippet.ChannelID)
	if err != nil {
		return sourceError(err, "Channel not found.", "fetch channel info: ")
	}

	corpus, err := h.source.Build(ctx, videoID, sources.BuildOptions{Mode: sources.ModeGrouped})
	if err != nil {
		return sourceError(err, "", "build comment corpus: ")
	}
	metrics.CorpusBuildDuration.Observe(time.Since(start).Seconds())

	h.analyzer.AnnotateGroups(corpus.Groups)

	res := models.VideoDetailsResponse{
		VideoID:     videoID,
		VideoInfo:   models.NewVideoInfo(*video),
		ChannelInfo: models.NewChannelInfo(*channel),
		Comments:    corpus.Groups,
	}

	elapsed := time.Since(start).Seconds()
	rec, err := buildRequestRecord(res, elapsed)
	if err != nil {
		return InternalError(err, "build request record: ")
	}
	if err := h.repo.CreateRequest(rec); err != nil {
		return InternalError(err, "store request record: ")
	}

	filename, err := h.snapshots.Write(res, res.VideoInfo.Title)
	if err != nil {
		// The snapshot is a convenience copy; the response and the
		// stored record are already complete.
		slog.Error("failed to write snapshot", "video_id", videoID, "error", err)
	} else {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	}

	slog.Info("processed video",
		"video_id", videoID,
		"comments", len(res.Comments),
		"thread_pages", corpus.Stats.ThreadPageCalls,
		"reply_pages", corpus.Stats.ReplyPageCalls,
		"elapsed_s", fmt.Sprintf("%.2f", elapsed))

	return Ok(res)
}

// GetComments returns the flat corpus: every top-level comment in time
// order, each immediately followed by its replies.
func (h *VideoHandler) GetComments(w http.ResponseWriter, r *http.Request) Result {
	videoID := r.PathValue("id")

	corpus, err := h.source.Build(r.Context(), videoID, sources.BuildOptions{Mode: sources.ModeFlat})
	if err != nil {
		return sourceError(err, "", "build comment corpus: ")
	}

	if r.URL.Query().Get("sentiment") == "true" {
		h.analyzer.AnnotateComments(corpus.Comments)
	}

	return Ok(models.GetCommentsResponse{
		VideoID:  videoID,
		Comments: corpus.Comments,
		Total:    len(corpus.Comments),
	})
}

// GetTopComments returns up to `limit` threads from a single
// relevance-ordered page.
func (h *VideoHandler) GetTopComments(w http.ResponseWriter, r *http.Request) Result {
	videoID := r.PathValue("id")

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return BadRequest("limit must be a positive integer.")
		}
		limit = parsed
	}

	corpus, err := h.source.Build(r.Context(), videoID, sources.BuildOptions{Mode: sources.ModeTop, Limit: limit})
	if err != nil {
		return sourceError(err, "", "build top comments: ")
	}

	if r.URL.Query().Get("sentiment") == "true" {
		h.analyzer.AnnotateGroups(corpus.Groups)
	}

	return Ok(models.GetTopCommentsResponse{
		VideoID:  videoID,
		Comments: corpus.Groups,
		Total:    len(corpus.Groups),
	})
}

func buildRequestRecord(res models.VideoDetailsResponse, elapsed float64) (data.RequestRecord, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return data.RequestRecord{}, err
	}

	commentCount := 0
	for _, g := range res.Comments {
		commentCount += 1 + len(g.Replies)
	}

	return data.RequestRecord{
		ID:                uuid.New(),
		VideoID:           res.VideoID,
		VideoTitle:        res.VideoInfo.Title,
		ChannelTitle:      res.ChannelInfo.Title,
		CommentCount:      commentCount,
		ViewCount:         parseCount(res.VideoInfo.ViewCount),
		LikeCount:         parseCount(res.VideoInfo.LikeCount),
		SubscriberCount:   parseCount(res.ChannelInfo.SubscriberCount),
		VideoCount:        parseCount(res.ChannelInfo.VideoCount),
		ProcessingSeconds: elapsed,
		Result:            raw,
	}, nil
}

// parseCount reads the Data API's string-typed counters; missing or
// malformed values count as zero.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func sourceError(err error, notFoundMsg, internalMsg string) Result {
	var upstream *sources.UpstreamError
	if errors.As(err, &upstream) {
		return Upstream(upstream.StatusCode, upstream.Body)
	}
	if errors.Is(err, sources.ErrNotFound) && notFoundMsg != "" {
		return NotFound(notFoundMsg)
	}
	return InternalError(err, internalMsg)
}
