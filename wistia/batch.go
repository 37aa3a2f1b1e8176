package wistia

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ShowMedias fetches several medias concurrently, at most the client's
// concurrency limit at a time. Results keep the order of hashedIDs; an entry
// is nil when the API returned no body for it. The first error cancels the
// remaining requests and no partial result is returned.
//
// Unlike the single resource methods, the error is wrapped with the hashed id
// that failed ("media <id>: ..."). The transport or decode error stays
// reachable through errors.Is and errors.As.
func (c *Client) ShowMedias(ctx context.Context, hashedIDs []string) ([]*Media, error) {
	if len(hashedIDs) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	// Each goroutine owns one index, so no lock is needed.
	results := make([]*Media, len(hashedIDs))
	for i, id := range hashedIDs {
		g.Go(func() error {
			media, err := c.ShowMedia(ctx, id)
			if err != nil {
				return fmt.Errorf("media %s: %w", id, err)
			}
			results[i] = media
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(results)).Msg("Retrieved medias from Wistia")
	return results, nil
}
