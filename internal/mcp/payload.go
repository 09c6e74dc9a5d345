package mcp

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

// Canonical resource URIs. Every tool output and resource content entry
// carries the item's own URI so a caller can address it directly later.
func collectionsURI() string          { return "raindrop://collections" }
func collectionURI(id int) string     { return fmt.Sprintf("raindrop://collection/%d", id) }
func bookmarkURI(id int) string       { return fmt.Sprintf("raindrop://bookmark/%d", id) }
func bookmarksURI(col int) string     { return fmt.Sprintf("raindrop://bookmarks/collection/%d", col) }
func tagsURI() string                 { return "raindrop://tags" }
func collectionTagsURI(col int) string { return fmt.Sprintf("raindrop://tags/collection/%d", col) }
func highlightsURI(bookmark int) string {
	return fmt.Sprintf("raindrop://highlights/bookmark/%d", bookmark)
}
func userURI() string { return "raindrop://user" }

// collectionPayload is the typed tool output for one collection.
type collectionPayload struct {
	URI        string    `json:"uri"`
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Public     bool      `json:"public"`
	Count      int       `json:"count"`
	View       string    `json:"view,omitempty"`
	Sort       string    `json:"sort,omitempty"`
	ParentID   *int      `json:"parent_id,omitempty"`
	Created    time.Time `json:"created"`
	LastUpdate time.Time `json:"last_update"`
}

func toCollectionPayload(col raindrop.Collection) collectionPayload {
	p := collectionPayload{
		URI:        collectionURI(col.ID),
		ID:         col.ID,
		Title:      col.Title,
		Public:     col.Public,
		Count:      col.Count,
		View:       string(col.View),
		Sort:       col.Sort,
		Created:    col.Created,
		LastUpdate: col.LastUpdate,
	}
	if col.Parent != nil {
		parent := col.Parent.ID
		p.ParentID = &parent
	}
	return p
}

func toCollectionPayloads(cols []raindrop.Collection) []collectionPayload {
	out := make([]collectionPayload, len(cols))
	for i, col := range cols {
		out[i] = toCollectionPayload(col)
	}
	return out
}

// reminderPayload mirrors a bookmark reminder.
type reminderPayload struct {
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

// bookmarkPayload is the typed tool output for one bookmark.
type bookmarkPayload struct {
	URI          string           `json:"uri"`
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Link         string           `json:"link"`
	Excerpt      string           `json:"excerpt,omitempty"`
	Tags         []string         `json:"tags"`
	CollectionID int              `json:"collection_id"`
	Type         string           `json:"type,omitempty"`
	Important    bool             `json:"important,omitempty"`
	Reminder     *reminderPayload `json:"reminder,omitempty"`
	Created      time.Time        `json:"created"`
	LastUpdate   time.Time        `json:"last_update"`
}

func toBookmarkPayload(item raindrop.Raindrop) bookmarkPayload {
	p := bookmarkPayload{
		URI:          bookmarkURI(item.ID),
		ID:           item.ID,
		Title:        item.Title,
		Link:         item.Link,
		Excerpt:      item.Excerpt,
		Tags:         item.Tags,
		CollectionID: item.Collection.ID,
		Type:         string(item.Type),
		Important:    item.Important,
		Created:      item.Created,
		LastUpdate:   item.LastUpdate,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if item.Reminder != nil {
		p.Reminder = &reminderPayload{Date: item.Reminder.Date, Note: item.Reminder.Note}
	}
	return p
}

func toBookmarkPayloads(items []raindrop.Raindrop) []bookmarkPayload {
	out := make([]bookmarkPayload, len(items))
	for i, item := range items {
		out[i] = toBookmarkPayload(item)
	}
	return out
}

// tagPayload is the typed tool output for one tag.
type tagPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func toTagPayloads(tags []raindrop.Tag) []tagPayload {
	out := make([]tagPayload, len(tags))
	for i, tag := range tags {
		out[i] = tagPayload{Name: tag.Name, Count: tag.Count}
	}
	return out
}

// highlightPayload is the typed tool output for one highlight.
type highlightPayload struct {
	URI        string    `json:"uri"`
	ID         string    `json:"id"`
	BookmarkID int       `json:"bookmark_id"`
	Text       string    `json:"text"`
	Note       string    `json:"note,omitempty"`
	Color      string    `json:"color,omitempty"`
	Created    time.Time `json:"created"`
	LastUpdate time.Time `json:"last_update"`
}

func toHighlightPayload(h raindrop.Highlight) highlightPayload {
	return highlightPayload{
		URI:        highlightsURI(h.RaindropID),
		ID:         h.ID,
		BookmarkID: h.RaindropID,
		Text:       h.Text,
		Note:       h.Note,
		Color:      h.Color,
		Created:    h.Created,
		LastUpdate: h.LastUpdate,
	}
}

func toHighlightPayloads(highlights []raindrop.Highlight) []highlightPayload {
	out := make([]highlightPayload, len(highlights))
	for i, h := range highlights {
		out[i] = toHighlightPayload(h)
	}
	return out
}

// hasMore reports whether another page exists beyond the one returned.
func hasMore(page, perPage, returned, total int) bool {
	return page*perPage+returned < total
}
