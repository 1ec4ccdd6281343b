package sources

import (
	"context"
	"errors"
	"net/url"

	"github.com/markop/tubepulse.api/models"
)

// ErrNotFound means the upstream answered successfully but the entity
// does not exist, as opposed to an *UpstreamError.
var ErrNotFound = errors.New("not found")

func (c *Client) Video(ctx context.Context, videoID string) (*models.VideoItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", videoID)

	var resp models.VideoListResponse
	if err := c.fetch(ctx, "videos", params, "", &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Items[0], nil
}

func (c *Client) Channel(ctx context.Context, channelID string) (*models.ChannelItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var resp models.ChannelListResponse
	if err := c.fetch(ctx, "channels", params, "", &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Items[0], nil
}
