package raindrop

import (
	"context"
	"fmt"
)

// ListTags returns tags with usage counts, scoped to one collection or
// globally when collectionID is CollectionAll.
func (c *Client) ListTags(ctx context.Context, collectionID int) ([]Tag, error) {
	var resp itemsResponse[Tag]
	if err := c.get(ctx, fmt.Sprintf("/tags/%d", collectionID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// RenameTag renames one tag across every bookmark referencing it within
// the scope. The remote API expresses rename as "replace these tags
// with this name".
func (c *Client) RenameTag(ctx context.Context, collectionID int, oldName, newName string) error {
	body := map[string]any{
		"replace": newName,
		"tags":    []string{oldName},
	}
	return c.put(ctx, fmt.Sprintf("/tags/%d", collectionID), body, nil)
}

// MergeTags renames every source tag to the destination name, one remote
// call per source. The sequence is not atomic: a failure at source k
// leaves sources before k renamed and later ones untouched.
func (c *Client) MergeTags(ctx context.Context, collectionID int, sources []string, destination string) error {
	for _, src := range sources {
		if err := c.RenameTag(ctx, collectionID, src, destination); err != nil {
			return fmt.Errorf("merging tag %q into %q: %w", src, destination, err)
		}
	}
	return nil
}

// DeleteTags removes the listed tags from every bookmark in scope.
func (c *Client) DeleteTags(ctx context.Context, collectionID int, tags []string) error {
	body := map[string]any{"tags": tags}
	return c.delete(ctx, fmt.Sprintf("/tags/%d", collectionID), body)
}
