package raindrop

import (
	"context"
	"fmt"
)

// ListCollections returns all collections, root and nested. The remote
// API splits them across two endpoints and accepts no pagination for
// either.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var root itemsResponse[Collection]
	if err := c.get(ctx, "/collections", nil, &root); err != nil {
		return nil, err
	}

	var children itemsResponse[Collection]
	if err := c.get(ctx, "/collections/childrens", nil, &children); err != nil {
		return nil, err
	}

	return append(root.Items, children.Items...), nil
}

// GetCollection fetches one collection by id.
func (c *Client) GetCollection(ctx context.Context, id int) (*Collection, error) {
	var resp itemResponse[Collection]
	if err := c.get(ctx, fmt.Sprintf("/collection/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// CreateCollection creates a collection. The service assigns the id.
func (c *Client) CreateCollection(ctx context.Context, title string, isPublic bool) (*Collection, error) {
	body := map[string]any{
		"title":  title,
		"public": isPublic,
	}
	var resp itemResponse[Collection]
	if err := c.post(ctx, "/collection", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// CollectionUpdate holds the mutable collection fields. Nil fields are
// left unchanged.
type CollectionUpdate struct {
	Title  *string   `json:"title,omitempty"`
	Public *bool     `json:"public,omitempty"`
	View   *ViewMode `json:"view,omitempty"`
	Sort   *string   `json:"sort,omitempty"`
	Parent *Ref      `json:"parent,omitempty"`
}

// UpdateCollection applies a partial update.
func (c *Client) UpdateCollection(ctx context.Context, id int, update CollectionUpdate) (*Collection, error) {
	var resp itemResponse[Collection]
	if err := c.put(ctx, fmt.Sprintf("/collection/%d", id), update, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// DeleteCollection deletes a collection. The remote service moves its
// bookmarks to Unsorted; this client only issues the delete.
func (c *Client) DeleteCollection(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/collection/%d", id), nil)
}

// ShareCollection shares a collection with the given access level
// ("view" or "edit") and invitee email addresses.
func (c *Client) ShareCollection(ctx context.Context, id int, level string, emails []string) error {
	body := map[string]any{
		"level":  level,
		"emails": emails,
	}
	return c.put(ctx, fmt.Sprintf("/collection/%d/sharing", id), body, nil)
}

// MergeCollections moves all bookmarks from the source collections into
// the target and removes the sources.
func (c *Client) MergeCollections(ctx context.Context, targetID int, sourceIDs []int) error {
	body := map[string]any{
		"to":  targetID,
		"ids": sourceIDs,
	}
	return c.put(ctx, "/collections/merge", body, nil)
}

// RemoveEmptyCollections deletes every collection with zero bookmarks.
// Returns the number removed.
func (c *Client) RemoveEmptyCollections(ctx context.Context) (int, error) {
	var resp struct {
		Result bool `json:"result"`
		Count  int  `json:"count"`
	}
	if err := c.put(ctx, "/collections/clean", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// EmptyTrash permanently removes everything in the trash collection.
func (c *Client) EmptyTrash(ctx context.Context) error {
	return c.delete(ctx, fmt.Sprintf("/collection/%d", CollectionTrash), nil)
}
