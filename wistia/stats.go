package wistia

import (
	"context"
	"errors"
)

// AccountStats gets load and play totals for the account.
func (c *Client) AccountStats(ctx context.Context) (*AccountStats, error) {
	return fetch[AccountStats](ctx, c, AccountStatsRoute()).Result()
}

// ProjectStats gets load and play totals for a project.
func (c *Client) ProjectStats(ctx context.Context, projectID string) (*ProjectStats, error) {
	return fetch[ProjectStats](ctx, c, ProjectStatsRoute(projectID)).Result()
}

// MediaStats gets load and play totals for a media.
func (c *Client) MediaStats(ctx context.Context, mediaID string) (*MediaStats, error) {
	return fetch[MediaStats](ctx, c, MediaStatsRoute(mediaID)).Result()
}

// MediaEngagement gets the engagement graph of a media.
func (c *Client) MediaEngagement(ctx context.Context, mediaID string) (*MediaEngagement, error) {
	return fetch[MediaEngagement](ctx, c, MediaEngagementRoute(mediaID)).Result()
}

// ListVisitors lists visitors, optionally searched and paged.
func (c *Client) ListVisitors(ctx context.Context, opts *ListOptions) ([]Visitor, error) {
	q, err := queryOption(opts)
	if err != nil {
		return nil, err
	}
	return fetchList[Visitor](ctx, c, VisitorsRoute(), q)
}

// ShowVisitor gets a single visitor.
func (c *Client) ShowVisitor(ctx context.Context, visitorKey string) (*Visitor, error) {
	return fetch[Visitor](ctx, c, VisitorRoute(visitorKey)).Result()
}

// ListEvents lists viewing events. opts may be nil.
func (c *Client) ListEvents(ctx context.Context, opts *EventListOptions) ([]Event, error) {
	q, err := queryOption(opts)
	if err != nil {
		return nil, err
	}
	return fetchList[Event](ctx, c, EventsRoute(), q)
}

// EventsForVisitor lists the events of one visitor.
func (c *Client) EventsForVisitor(ctx context.Context, visitorKey string, opts *ListOptions) ([]Event, error) {
	if visitorKey == "" {
		return nil, &URLError{Route: EventsRoute(), Err: errors.New("visitor key is empty")}
	}

	eventOpts := &EventListOptions{VisitorKey: visitorKey}
	if opts != nil {
		eventOpts.ListOptions = *opts
	}
	return c.ListEvents(ctx, eventOpts)
}

// ShowEvent gets a single viewing event.
func (c *Client) ShowEvent(ctx context.Context, eventKey string) (*Event, error) {
	return fetch[Event](ctx, c, EventRoute(eventKey)).Result()
}

// Heatmap fetches the heatmap iframe document of an event. The body is HTML
// and is returned undecoded.
func (c *Client) Heatmap(ctx context.Context, eventKey, publicToken string) ([]byte, error) {
	req, err := c.builder.Build(HeatmapRoute(eventKey, publicToken))
	if err != nil {
		return nil, err
	}
	return c.transport.Send(ctx, req)
}
