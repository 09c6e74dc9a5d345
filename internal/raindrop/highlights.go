package raindrop

import (
	"context"
	"fmt"
)

// ListHighlights returns the highlights attached to one bookmark. A
// missing bookmark yields an empty slice rather than an error, so
// callers can probe without special-casing 404s.
func (c *Client) ListHighlights(ctx context.Context, raindropID int) ([]Highlight, error) {
	item, err := c.GetRaindrop(ctx, raindropID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	highlights := make([]Highlight, len(item.Highlights))
	for i, h := range item.Highlights {
		h.RaindropID = item.ID
		highlights[i] = h
	}
	return highlights, nil
}

// ListCollectionHighlights gathers every highlight across a collection.
// It first resolves the collection's bookmark identifiers page by page,
// then fetches the bookmarks in one multi-get and flattens their
// embedded highlight arrays, tagging each with its bookmark id.
func (c *Client) ListCollectionHighlights(ctx context.Context, collectionID int) ([]Highlight, error) {
	if _, err := c.GetCollection(ctx, collectionID); err != nil {
		return nil, err
	}
	ids, err := c.collectionRaindropIDs(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := c.GetRaindrops(ctx, ids)
	if err != nil {
		return nil, err
	}
	var highlights []Highlight
	for _, item := range items {
		for _, h := range item.Highlights {
			h.RaindropID = item.ID
			highlights = append(highlights, h)
		}
	}
	return highlights, nil
}

// HighlightCreate describes a new highlight on a bookmark.
type HighlightCreate struct {
	Text  string
	Note  string
	Color string
}

// CreateHighlight appends a highlight to a bookmark. The remote API
// models highlights as a sub-array of the bookmark, so creation is an
// update that sends the existing highlights plus the new one.
func (c *Client) CreateHighlight(ctx context.Context, raindropID int, create HighlightCreate) (*Highlight, error) {
	item, err := c.GetRaindrop(ctx, raindropID)
	if err != nil {
		return nil, err
	}
	patch := append(item.Highlights, Highlight{
		Text:  create.Text,
		Note:  create.Note,
		Color: create.Color,
	})
	updated, err := c.UpdateRaindrop(ctx, raindropID, RaindropUpdate{Highlights: &patch})
	if err != nil {
		return nil, err
	}
	if len(updated.Highlights) == 0 {
		return nil, fmt.Errorf("highlight missing from updated bookmark %d", raindropID)
	}
	created := updated.Highlights[len(updated.Highlights)-1]
	created.RaindropID = updated.ID
	return &created, nil
}

// HighlightUpdate carries optional field changes for one highlight.
// Nil fields keep their current value.
type HighlightUpdate struct {
	Text  *string
	Note  *string
	Color *string
}

// UpdateHighlight modifies one highlight on a bookmark, addressed by
// its string id within the bookmark's highlight array.
func (c *Client) UpdateHighlight(ctx context.Context, raindropID int, highlightID string, update HighlightUpdate) (*Highlight, error) {
	item, err := c.GetRaindrop(ctx, raindropID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, h := range item.Highlights {
		if h.ID == highlightID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("highlight %s not found on bookmark %d", highlightID, raindropID)
	}
	patch := make([]Highlight, len(item.Highlights))
	copy(patch, item.Highlights)
	if update.Text != nil {
		patch[idx].Text = *update.Text
	}
	if update.Note != nil {
		patch[idx].Note = *update.Note
	}
	if update.Color != nil {
		patch[idx].Color = *update.Color
	}
	updated, err := c.UpdateRaindrop(ctx, raindropID, RaindropUpdate{Highlights: &patch})
	if err != nil {
		return nil, err
	}
	for _, h := range updated.Highlights {
		if h.ID == highlightID {
			h.RaindropID = updated.ID
			return &h, nil
		}
	}
	// Some responses renumber highlight ids; fall back to position.
	if idx < len(updated.Highlights) {
		h := updated.Highlights[idx]
		h.RaindropID = updated.ID
		return &h, nil
	}
	return nil, fmt.Errorf("highlight %s missing after update of bookmark %d", highlightID, raindropID)
}

// DeleteHighlight removes one highlight from a bookmark.
func (c *Client) DeleteHighlight(ctx context.Context, raindropID int, highlightID string) error {
	item, err := c.GetRaindrop(ctx, raindropID)
	if err != nil {
		return err
	}
	patch := make([]Highlight, 0, len(item.Highlights))
	found := false
	for _, h := range item.Highlights {
		if h.ID == highlightID {
			found = true
			continue
		}
		patch = append(patch, h)
	}
	if !found {
		return fmt.Errorf("highlight %s not found on bookmark %d", highlightID, raindropID)
	}
	_, err = c.UpdateRaindrop(ctx, raindropID, RaindropUpdate{Highlights: &patch})
	return err
}
