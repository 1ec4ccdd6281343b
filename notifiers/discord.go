package notifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/markop/tubepulse.api/data"
)

const embedColorRed = 0xFF0000

type Discord struct {
	httpClient *http.Client
	webhookURL string
}

func NewDiscord(httpClient *http.Client, webhookURL string) *Discord {
	return &Discord{
		httpClient: httpClient,
		webhookURL: webhookURL,
	}
}

func (d *Discord) Enabled() bool {
	return d.webhookURL != ""
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      embedFooter  `json:"footer"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// VideoProcessed posts a summary embed for one processed request.
func (d *Discord) VideoProcessed(ctx context.Context, rec data.RequestRecord) error {
	payload := webhookPayload{
		Embeds: []embed{{
			Title:       "YouTube Video Processed",
			Description: fmt.Sprintf("**%s**", rec.VideoTitle),
			Color:       embedColorRed,
			Fields: []embedField{
				{
					Name: "Video Stats",
					Value: fmt.Sprintf("**Comments:** %s\n**Views:** %s\n**Likes:** %s",
						formatCount(int64(rec.CommentCount)),
						formatCount(rec.ViewCount),
						formatCount(rec.LikeCount)),
					Inline: true,
				},
				{
					Name: "Channel Info",
					Value: fmt.Sprintf("**Channel:** %s\n**Subscribers:** %s\n**Videos:** %s",
						rec.ChannelTitle,
						formatCount(rec.SubscriberCount),
						formatCount(rec.VideoCount)),
					Inline: true,
				},
				{
					Name:  "Processing Time",
					Value: fmt.Sprintf("**%.2f** seconds", rec.ProcessingSeconds),
				},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Footer:    embedFooter{Text: "tubepulse"},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	// Discord answers 204 on success.
	if resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	slog.Info("discord webhook sent", "video_id", rec.VideoID, "video_title", rec.VideoTitle)
	return nil
}

// formatCount groups digits with commas, e.g. 1234567 -> "1,234,567".
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	start := 0
	if s[0] == '-' {
		start = 1
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > start && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
