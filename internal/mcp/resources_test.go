package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

func (f *fixture) read(t *testing.T, uri string) *mcp.ReadResourceResult {
	t.Helper()
	res, err := f.cs.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	require.NoError(t, err)
	return res
}

func TestReadCollectionsResource(t *testing.T) {
	f := newFixture(t)

	f.api.SeedCollection("One", 0)
	f.api.SeedCollection("Two", 0)

	res := f.read(t, "raindrop://collections")
	// Scope entry first, then one entry per collection.
	require.Len(t, res.Contents, 3)
	require.Equal(t, "raindrop://collections", res.Contents[0].URI)

	var scope listScope
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &scope))
	require.Equal(t, 2, scope.Total)

	var col collectionPayload
	require.NoError(t, json.Unmarshal([]byte(res.Contents[1].Text), &col))
	require.Equal(t, res.Contents[1].URI, col.URI)
}

func TestReadSingleCollectionResource(t *testing.T) {
	f := newFixture(t)

	id := f.api.SeedCollection("Solo", 0)

	res := f.read(t, fmt.Sprintf("raindrop://collection/%d", id))
	require.Len(t, res.Contents, 1)

	var col collectionPayload
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &col))
	require.Equal(t, "Solo", col.Title)
	require.Equal(t, id, col.ID)
}

func TestReadCollectionBookmarksResource(t *testing.T) {
	f := newFixture(t)

	col := f.api.SeedCollection("Stuff", 0)
	a := f.api.SeedRaindrop(col, raindrop.Raindrop{Title: "a", Link: "https://example.com/a"})
	f.api.SeedRaindrop(col, raindrop.Raindrop{Title: "b", Link: "https://example.com/b"})

	res := f.read(t, fmt.Sprintf("raindrop://bookmarks/collection/%d", col))
	require.Len(t, res.Contents, 3)

	var scope listScope
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &scope))
	require.Equal(t, 2, scope.Total)
	require.NotNil(t, scope.CollectionID)
	require.Equal(t, col, *scope.CollectionID)

	uris := []string{res.Contents[1].URI, res.Contents[2].URI}
	require.Contains(t, uris, fmt.Sprintf("raindrop://bookmark/%d", a))
}

func TestReadBookmarkResource(t *testing.T) {
	f := newFixture(t)

	col := f.api.SeedCollection("Stuff", 0)
	id := f.api.SeedRaindrop(col, raindrop.Raindrop{Title: "one", Link: "https://example.com", Tags: []string{"go"}})

	res := f.read(t, fmt.Sprintf("raindrop://bookmark/%d", id))
	require.Len(t, res.Contents, 1)

	var bm bookmarkPayload
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &bm))
	require.Equal(t, id, bm.ID)
	require.Equal(t, []string{"go"}, bm.Tags)
}

func TestReadTagsResources(t *testing.T) {
	f := newFixture(t)

	col := f.api.SeedCollection("Inbox", 0)
	other := f.api.SeedCollection("Other", 0)
	f.api.SeedRaindrop(col, raindrop.Raindrop{Title: "a", Link: "https://example.com/a", Tags: []string{"go"}})
	f.api.SeedRaindrop(other, raindrop.Raindrop{Title: "b", Link: "https://example.com/b", Tags: []string{"rust"}})

	all := f.read(t, "raindrop://tags")
	require.Len(t, all.Contents, 3)

	scoped := f.read(t, fmt.Sprintf("raindrop://tags/collection/%d", col))
	require.Len(t, scoped.Contents, 2)

	var tag tagPayload
	require.NoError(t, json.Unmarshal([]byte(scoped.Contents[1].Text), &tag))
	require.Equal(t, "go", tag.Name)
}

func TestReadHighlightsResource(t *testing.T) {
	f := newFixture(t)

	col := f.api.SeedCollection("Research", 0)
	id := f.api.SeedRaindrop(col, raindrop.Raindrop{
		Title:      "paper",
		Link:       "https://example.com/paper",
		Highlights: []raindrop.Highlight{{Text: "alpha"}, {Text: "beta"}},
	})

	res := f.read(t, fmt.Sprintf("raindrop://highlights/bookmark/%d", id))
	require.Len(t, res.Contents, 3)

	var h highlightPayload
	require.NoError(t, json.Unmarshal([]byte(res.Contents[1].Text), &h))
	require.Equal(t, id, h.BookmarkID)
}

func TestReadUserResource(t *testing.T) {
	f := newFixture(t)

	res := f.read(t, "raindrop://user")
	require.Len(t, res.Contents, 1)

	var user userProfileOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &user))
	require.Equal(t, "reader@example.com", user.Email)
}

func TestReadMissingCollectionFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.cs.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "raindrop://collection/999999"})
	require.Error(t, err)
}
