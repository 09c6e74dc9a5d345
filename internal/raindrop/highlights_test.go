package raindrop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

func TestListHighlights(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Research", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "paper",
		Link:  "https://example.com/paper",
		Highlights: []raindrop.Highlight{
			{Text: "first passage"},
			{Text: "second passage", Note: "important"},
		},
	})

	highlights, err := client.ListHighlights(ctx, id)
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	require.Equal(t, "first passage", highlights[0].Text)
	require.Equal(t, id, highlights[0].RaindropID)
}

func TestListHighlightsMissingBookmark(t *testing.T) {
	client, _ := newTestClient(t)

	highlights, err := client.ListHighlights(context.Background(), 424242)
	require.NoError(t, err)
	require.Empty(t, highlights)
}

func TestListCollectionHighlights(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Research", 0)
	srv.SeedRaindrop(col, raindrop.Raindrop{
		Title:      "one",
		Link:       "https://example.com/1",
		Highlights: []raindrop.Highlight{{Text: "alpha"}},
	})
	srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "two",
		Link:  "https://example.com/2",
		Highlights: []raindrop.Highlight{
			{Text: "beta"},
			{Text: "gamma"},
		},
	})
	srv.SeedRaindrop(col, raindrop.Raindrop{Title: "plain", Link: "https://example.com/3"})

	highlights, err := client.ListCollectionHighlights(ctx, col)
	require.NoError(t, err)
	require.Len(t, highlights, 3)
	for _, h := range highlights {
		require.NotZero(t, h.RaindropID)
	}

	_, err = client.ListCollectionHighlights(ctx, 999999)
	require.True(t, raindrop.IsNotFound(err))
}

func TestCreateHighlight(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Research", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{
		Title:      "paper",
		Link:       "https://example.com/paper",
		Highlights: []raindrop.Highlight{{Text: "existing"}},
	})

	created, err := client.CreateHighlight(ctx, id, raindrop.HighlightCreate{
		Text:  "new passage",
		Note:  "follow up",
		Color: "yellow",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "new passage", created.Text)
	require.Equal(t, id, created.RaindropID)

	require.Len(t, srv.Raindrop(id).Highlights, 2)
}

func TestUpdateHighlight(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Research", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "paper",
		Link:  "https://example.com/paper",
		Highlights: []raindrop.Highlight{
			{Text: "keep me"},
			{Text: "edit me", Color: "blue"},
		},
	})
	target := srv.Raindrop(id).Highlights[1].ID

	note := "now annotated"
	updated, err := client.UpdateHighlight(ctx, id, target, raindrop.HighlightUpdate{Note: &note})
	require.NoError(t, err)
	require.Equal(t, "edit me", updated.Text)
	require.Equal(t, "now annotated", updated.Note)
	require.Equal(t, "blue", updated.Color)

	_, err = client.UpdateHighlight(ctx, id, "hl9999", raindrop.HighlightUpdate{Note: &note})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestDeleteHighlight(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Research", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "paper",
		Link:  "https://example.com/paper",
		Highlights: []raindrop.Highlight{
			{Text: "keep"},
			{Text: "remove"},
		},
	})
	target := srv.Raindrop(id).Highlights[1].ID

	require.NoError(t, client.DeleteHighlight(ctx, id, target))

	remaining := srv.Raindrop(id).Highlights
	require.Len(t, remaining, 1)
	require.Equal(t, "keep", remaining[0].Text)

	err := client.DeleteHighlight(ctx, id, target)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
