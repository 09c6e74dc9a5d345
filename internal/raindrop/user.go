package raindrop

import "context"

// GetUser returns the profile of the account the token belongs to.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var resp struct {
		Result bool `json:"result"`
		User   User `json:"user"`
	}
	if err := c.get(ctx, "/user", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// GetUserStats returns account-wide counts for bookmarks, collections
// and tags.
func (c *Client) GetUserStats(ctx context.Context) (*UserStats, error) {
	var resp struct {
		Result bool      `json:"result"`
		Items  []sysStat `json:"items"`
		Meta   struct {
			Tags int `json:"tags"`
		} `json:"meta"`
	}
	if err := c.get(ctx, "/user/stats", nil, &resp); err != nil {
		return nil, err
	}
	stats := &UserStats{Tags: resp.Meta.Tags}
	for _, item := range resp.Items {
		// System collections carry negative ids and do not count as
		// user collections.
		if item.ID > 0 {
			stats.Collections++
		}
		if item.ID == CollectionAll {
			stats.Raindrops = item.Count
		}
	}
	return stats, nil
}

type sysStat struct {
	ID    int `json:"_id"`
	Count int `json:"count"`
}
