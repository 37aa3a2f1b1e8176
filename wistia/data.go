package wistia

import (
	"context"
)

// ListMedias lists the medias in the account. opts may be nil.
func (c *Client) ListMedias(ctx context.Context, opts *ListOptions) ([]Media, error) {
	q, err := queryOption(opts)
	if err != nil {
		return nil, err
	}
	return fetchList[Media](ctx, c, MediasRoute(), q)
}

// ListProjects lists the projects in the account. opts may be nil.
func (c *Client) ListProjects(ctx context.Context, opts *ListOptions) ([]Project, error) {
	q, err := queryOption(opts)
	if err != nil {
		return nil, err
	}
	return fetchList[Project](ctx, c, ProjectsRoute(), q)
}

// ShowMedia gets the details of a media. A nil media with a nil error means
// the API returned no body.
func (c *Client) ShowMedia(ctx context.Context, hashedID string) (*Media, error) {
	return fetch[Media](ctx, c, MediaRoute(hashedID)).Result()
}

// ShowProject gets the details of a project, including its medias.
func (c *Client) ShowProject(ctx context.Context, hashedID string) (*Project, error) {
	return fetch[Project](ctx, c, ProjectRoute(hashedID)).Result()
}

// ShowMediaCaptions lists the captions tracks of a media.
func (c *Client) ShowMediaCaptions(ctx context.Context, hashedID string) ([]Caption, error) {
	return fetchList[Caption](ctx, c, MediaCaptionsRoute(hashedID))
}

// ShowAssetsForMedia gets a media and returns its assets whose kind matches
// assetType, ignoring case. An empty assetType returns every asset. The
// filtering is local: exactly one request is made.
func (c *Client) ShowAssetsForMedia(ctx context.Context, hashedID, assetType string) ([]Asset, error) {
	media, err := c.ShowMedia(ctx, hashedID)
	if err != nil || media == nil {
		return nil, err
	}

	if assetType == "" {
		return media.Assets, nil
	}
	return media.AssetsMatching(assetType), nil
}
