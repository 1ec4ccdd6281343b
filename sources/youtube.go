package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/markop/tubepulse.api/metrics"
	"github.com/markop/tubepulse.api/models"
)

const (
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxPageSize is the hard page cap of the commentThreads and
	// comments endpoints.
	maxPageSize = 100

	orderTime      = "time"
	orderRelevance = "relevance"
)

// UpstreamError carries a non-success YouTube API response verbatim so
// the handler layer can pass the status and body through untouched.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("youtube returned status %d: %s", e.StatusCode, e.Body)
}

// Client reads the YouTube Data API v3. It keeps no state between calls;
// everything a build accumulates lives in the Corpus it returns.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(logger *slog.Logger, httpClient *http.Client, apiKey string) *Client {
	return &Client{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    youtubeBaseURL,
		apiKey:     apiKey,
	}
}

// Stats counts the upstream page calls a single build performed.
type Stats struct {
	ThreadPageCalls int `json:"threadPageCalls"`
	ReplyPageCalls  int `json:"replyPageCalls"`
}

type CorpusMode int

const (
	// ModeFlat pages the threads endpoint in time order until exhausted
	// and flattens every thread into top-level-then-replies sequence.
	ModeFlat CorpusMode = iota

	// ModeGrouped is the same traversal but keeps threads as
	// comment-with-replies groups.
	ModeGrouped

	// ModeTop takes a single relevance-ordered page, truncated to Limit.
	ModeTop
)

type BuildOptions struct {
	Mode CorpusMode

	// Limit applies to ModeTop only. Zero or out-of-range values fall
	// back to the single-page maximum of 100.
	Limit int
}

type Corpus struct {
	Comments []models.CommentRecord `json:"comments,omitempty"`
	Groups   []models.CommentGroup  `json:"groups,omitempty"`
	Stats    Stats                  `json:"stats"`
}

// Build collects the comment corpus for a video. Any upstream failure
// aborts the whole build; no partial corpus is returned.
func (c *Client) Build(ctx context.Context, videoID string, opts BuildOptions) (*Corpus, error) {
	if opts.Mode == ModeTop {
		return c.buildTop(ctx, videoID, opts.Limit)
	}

	corpus := &Corpus{Groups: []models.CommentGroup{}}
	pageToken := ""
	for {
		page, err := c.fetchThreadPage(ctx, videoID, orderTime, maxPageSize, pageToken)
		if err != nil {
			return nil, err
		}
		corpus.Stats.ThreadPageCalls++

		groups, err := c.collectThreads(ctx, page.Items, &corpus.Stats)
		if err != nil {
			return nil, err
		}
		corpus.Groups = append(corpus.Groups, groups...)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if opts.Mode == ModeFlat {
		corpus.Comments = flatten(corpus.Groups)
		corpus.Groups = nil
	}

	c.logger.Debug("collected comment corpus",
		"video_id", videoID,
		"thread_pages", corpus.Stats.ThreadPageCalls,
		"reply_pages", corpus.Stats.ReplyPageCalls)

	return corpus, nil
}

func (c *Client) buildTop(ctx context.Context, videoID string, limit int) (*Corpus, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	corpus := &Corpus{Groups: []models.CommentGroup{}}
	page, err := c.fetchThreadPage(ctx, videoID, orderRelevance, limit, "")
	if err != nil {
		return nil, err
	}
	corpus.Stats.ThreadPageCalls++

	items := page.Items
	if len(items) > limit {
		items = items[:limit]
	}

	groups, err := c.collectThreads(ctx, items, &corpus.Stats)
	if err != nil {
		return nil, err
	}
	corpus.Groups = append(corpus.Groups, groups...)

	return corpus, nil
}

// collectThreads turns one commentThreads page into complete groups.
// When a thread's declared reply count exceeds the inline preview, the
// replies endpoint is fetched and its result replaces the preview
// entirely; the endpoint returns every reply, so merging would only
// duplicate the inline items. A declared count larger than what the
// replies endpoint actually returns is tolerated (replies get deleted
// after the count was cached upstream).
func (c *Client) collectThreads(ctx context.Context, items []models.CommentThreadItem, stats *Stats) ([]models.CommentGroup, error) {
	groups := make([]models.CommentGroup, 0, len(items))
	for _, item := range items {
		top := models.NewCommentRecord(item.Snippet.TopLevelComment, false)

		replies := make([]models.CommentRecord, 0, len(item.Replies.Comments))
		for _, r := range item.Replies.Comments {
			replies = append(replies, models.NewCommentRecord(r, true))
		}

		if item.Snippet.TotalReplyCount > len(replies) {
			full, err := c.collectReplies(ctx, top.ID, stats)
			if err != nil {
				return nil, err
			}
			replies = full
		}

		groups = append(groups, models.CommentGroup{Comment: top, Replies: replies})
	}
	return groups, nil
}

// collectReplies follows the comments endpoint for one parent until the
// cursor runs out. All-or-nothing: an error discards what was already
// accumulated.
func (c *Client) collectReplies(ctx context.Context, parentID string, stats *Stats) ([]models.CommentRecord, error) {
	replies := make([]models.CommentRecord, 0, maxPageSize)
	pageToken := ""
	for {
		page, err := c.fetchReplyPage(ctx, parentID, pageToken)
		if err != nil {
			return nil, err
		}
		stats.ReplyPageCalls++

		for _, item := range page.Items {
			replies = append(replies, models.NewCommentRecord(item, true))
		}

		if page.NextPageToken == "" {
			return replies, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) fetchThreadPage(ctx context.Context, videoID, order string, pageSize int, pageToken string) (*models.CommentThreadListResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoID)
	params.Set("textFormat", "plainText")
	params.Set("order", order)
	params.Set("maxResults", strconv.Itoa(pageSize))

	var page models.CommentThreadListResponse
	if err := c.fetch(ctx, "commentThreads", params, pageToken, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) fetchReplyPage(ctx context.Context, parentID, pageToken string) (*models.CommentListResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("parentId", parentID)
	params.Set("textFormat", "plainText")
	params.Set("maxResults", strconv.Itoa(maxPageSize))

	var page models.CommentListResponse
	if err := c.fetch(ctx, "comments", params, pageToken, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// fetch issues one page request. The cursor is merged into the query
// only when present. Non-2xx responses become an *UpstreamError with
// the body preserved verbatim; no retries happen at this layer.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, pageToken string, dest any) error {
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	metrics.UpstreamPageCalls.WithLabelValues(endpoint).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

func flatten(groups []models.CommentGroup) []models.CommentRecord {
	n := 0
	for _, g := range groups {
		n += 1 + len(g.Replies)
	}

	flat := make([]models.CommentRecord, 0, n)
	for _, g := range groups {
		flat = append(flat, g.Comment)
		flat = append(flat, g.Replies...)
	}
	return flat
}
