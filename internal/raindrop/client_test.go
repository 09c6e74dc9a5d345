package raindrop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
	"github.com/fyrsmithlabs/raindropd/internal/raindrop/raindroptest"
)

func newTestClient(t *testing.T) (*raindrop.Client, *raindroptest.Server) {
	t.Helper()
	srv := raindroptest.NewServer()
	t.Cleanup(srv.Close)

	client, err := raindrop.NewClient(raindrop.Config{
		Token:   raindroptest.Token,
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := raindrop.NewClient(raindrop.Config{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "token")
}

func TestBadTokenRejected(t *testing.T) {
	srv := raindroptest.NewServer()
	t.Cleanup(srv.Close)

	client, err := raindrop.NewClient(raindrop.Config{
		Token:   "wrong-token",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)

	_, err = client.GetUser(context.Background())
	require.Error(t, err)

	var apiErr *raindrop.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, "/user", apiErr.Endpoint)
}

func TestCollectionLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateCollection(ctx, "Reading List", false)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Reading List", created.Title)

	got, err := client.GetCollection(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	title := "Archive"
	public := true
	updated, err := client.UpdateCollection(ctx, created.ID, raindrop.CollectionUpdate{
		Title:  &title,
		Public: &public,
	})
	require.NoError(t, err)
	require.Equal(t, "Archive", updated.Title)
	require.True(t, updated.Public)

	require.NoError(t, client.DeleteCollection(ctx, created.ID))

	_, err = client.GetCollection(ctx, created.ID)
	require.True(t, raindrop.IsNotFound(err))
}

func TestListCollectionsIncludesNested(t *testing.T) {
	client, srv := newTestClient(t)

	root := srv.SeedCollection("Root", 0)
	child := srv.SeedCollection("Child", root)

	cols, err := client.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)

	byID := make(map[int]raindrop.Collection, len(cols))
	for _, col := range cols {
		byID[col.ID] = col
	}
	require.Nil(t, byID[root].Parent)
	require.NotNil(t, byID[child].Parent)
	require.Equal(t, root, byID[child].Parent.ID)
}

func TestDeleteCollectionMovesBookmarksToUnsorted(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Doomed", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "kept", Link: "https://example.com"})

	require.NoError(t, client.DeleteCollection(ctx, col))

	item := srv.Raindrop(id)
	require.NotNil(t, item)
	require.Equal(t, raindrop.CollectionUnsorted, item.Collection.ID)
}

func TestMergeCollections(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	target := srv.SeedCollection("Target", 0)
	source := srv.SeedCollection("Source", 0)
	moved := srv.SeedRaindrop(source, raindrop.Raindrop{Title: "moved", Link: "https://example.com/a"})

	require.NoError(t, client.MergeCollections(ctx, target, []int{source}))

	require.Nil(t, srv.Collection(source))
	require.Equal(t, target, srv.Raindrop(moved).Collection.ID)
}

func TestRemoveEmptyCollections(t *testing.T) {
	client, srv := newTestClient(t)

	empty := srv.SeedCollection("Empty", 0)
	full := srv.SeedCollection("Full", 0)
	srv.SeedRaindrop(full, raindrop.Raindrop{Title: "x", Link: "https://example.com"})

	removed, err := client.RemoveEmptyCollections(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Nil(t, srv.Collection(empty))
	require.NotNil(t, srv.Collection(full))
}

func TestEmptyTrash(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Stuff", 0)
	trashed := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "old", Link: "https://example.com/old"})
	kept := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "new", Link: "https://example.com/new"})

	require.NoError(t, client.DeleteRaindrop(ctx, trashed, false))
	require.NoError(t, client.EmptyTrash(ctx))

	require.Nil(t, srv.Raindrop(trashed))
	require.NotNil(t, srv.Raindrop(kept))
}

func TestShareCollection(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Shared", 0)

	require.NoError(t, client.ShareCollection(ctx, col, "view", []string{"friend@example.com"}))

	err := client.ShareCollection(ctx, col, "owner", []string{"friend@example.com"})
	require.Error(t, err)

	err = client.ShareCollection(ctx, 999999, "view", []string{"friend@example.com"})
	require.True(t, raindrop.IsNotFound(err))
}

func TestRaindropLifecycle(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Inbox", 0)

	created, err := client.CreateRaindrop(ctx, raindrop.RaindropCreate{
		Link:       "https://go.dev/blog/error-handling",
		Title:      "Error handling",
		Tags:       []string{"go", "errors"},
		Collection: &raindrop.Ref{ID: col},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, col, created.Collection.ID)

	important := true
	updated, err := client.UpdateRaindrop(ctx, created.ID, raindrop.RaindropUpdate{
		Title:     "Error handling in Go",
		Important: &important,
	})
	require.NoError(t, err)
	require.Equal(t, "Error handling in Go", updated.Title)
	require.True(t, updated.Important)
	require.Equal(t, []string{"go", "errors"}, updated.Tags)

	require.NoError(t, client.DeleteRaindrop(ctx, created.ID, false))
	require.Equal(t, raindrop.CollectionTrash, srv.Raindrop(created.ID).Collection.ID)

	require.NoError(t, client.DeleteRaindrop(ctx, created.ID, false))
	require.Nil(t, srv.Raindrop(created.ID))
}

func TestDeleteRaindropPermanent(t *testing.T) {
	client, srv := newTestClient(t)

	col := srv.SeedCollection("Inbox", 0)
	id := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "gone", Link: "https://example.com"})

	require.NoError(t, client.DeleteRaindrop(context.Background(), id, true))
	require.Nil(t, srv.Raindrop(id))
}

func TestCreateRaindropDefaultsToUnsorted(t *testing.T) {
	client, _ := newTestClient(t)

	created, err := client.CreateRaindrop(context.Background(), raindrop.RaindropCreate{
		Link: "https://example.com/unfiled",
	})
	require.NoError(t, err)
	require.Equal(t, raindrop.CollectionUnsorted, created.Collection.ID)
}

func TestGetRaindropNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetRaindrop(context.Background(), 424242)
	require.True(t, raindrop.IsNotFound(err))
}

func TestGetRaindropsMultiGet(t *testing.T) {
	client, srv := newTestClient(t)

	col := srv.SeedCollection("Inbox", 0)
	a := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "a", Link: "https://example.com/a"})
	b := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "b", Link: "https://example.com/b"})

	items, err := client.GetRaindrops(context.Background(), []int{a, b, 999999})
	require.NoError(t, err)
	require.Len(t, items, 2)

	empty, err := client.GetRaindrops(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSearchRaindrops(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Articles", 0)
	srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "Go concurrency patterns",
		Link:  "https://go.dev/talks",
		Tags:  []string{"go", "concurrency"},
		Type:  raindrop.TypeArticle,
	})
	srv.SeedRaindrop(col, raindrop.Raindrop{
		Title:     "Rust ownership",
		Link:      "https://doc.rust-lang.org",
		Tags:      []string{"rust"},
		Type:      raindrop.TypeArticle,
		Important: true,
	})
	srv.SeedRaindrop(col, raindrop.Raindrop{
		Title: "Gopher talk",
		Link:  "https://youtube.com/watch",
		Tags:  []string{"go"},
		Type:  raindrop.TypeVideo,
	})

	t.Run("by tag", func(t *testing.T) {
		result, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
			Collection: col,
			Tags:       []string{"go"},
		})
		require.NoError(t, err)
		require.Equal(t, 2, result.Count)
	})

	t.Run("by text", func(t *testing.T) {
		result, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
			Collection: col,
			Query:      "concurrency",
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.Count)
		require.Equal(t, "Go concurrency patterns", result.Items[0].Title)
	})

	t.Run("important only", func(t *testing.T) {
		important := true
		result, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
			Collection: col,
			Important:  &important,
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.Count)
		require.Equal(t, "Rust ownership", result.Items[0].Title)
	})

	t.Run("by type", func(t *testing.T) {
		result, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
			Collection: col,
			Type:       raindrop.TypeVideo,
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.Count)
	})

	t.Run("sorted by title", func(t *testing.T) {
		result, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
			Collection: col,
			Sort:       raindrop.SortTitle,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 3)
		require.Equal(t, "Go concurrency patterns", result.Items[0].Title)
		require.Equal(t, "Rust ownership", result.Items[2].Title)
	})

	t.Run("missing collection", func(t *testing.T) {
		_, err := client.SearchRaindrops(ctx, raindrop.SearchParams{Collection: 999999})
		require.True(t, raindrop.IsNotFound(err))
	})
}

func TestSearchPagination(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Big", 0)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		srv.SeedRaindrop(col, raindrop.Raindrop{
			Title:   string(rune('a' + i)),
			Link:    "https://example.com",
			Created: base.Add(time.Duration(i) * time.Hour),
		})
	}

	first, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
		Collection: col,
		PerPage:    3,
		Sort:       raindrop.SortCreated,
	})
	require.NoError(t, err)
	require.Equal(t, 7, first.Count)
	require.Len(t, first.Items, 3)
	require.Equal(t, "a", first.Items[0].Title)

	last, err := client.SearchRaindrops(ctx, raindrop.SearchParams{
		Collection: col,
		Page:       2,
		PerPage:    3,
		Sort:       raindrop.SortCreated,
	})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	require.Equal(t, "g", last.Items[0].Title)
}

func TestSearchPerPageCapped(t *testing.T) {
	client, srv := newTestClient(t)

	col := srv.SeedCollection("Huge", 0)
	for i := 0; i < 60; i++ {
		srv.SeedRaindrop(col, raindrop.Raindrop{Title: "x", Link: "https://example.com"})
	}

	result, err := client.SearchRaindrops(context.Background(), raindrop.SearchParams{
		Collection: col,
		PerPage:    500,
	})
	require.NoError(t, err)
	require.Equal(t, 60, result.Count)
	require.Len(t, result.Items, raindrop.MaxPerPage)
}

func TestBatchUpdateRaindrops(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	col := srv.SeedCollection("Inbox", 0)
	dest := srv.SeedCollection("Archive", 0)
	a := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "a", Link: "https://example.com/a"})
	b := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "b", Link: "https://example.com/b"})

	err := client.BatchUpdateRaindrops(ctx, col, []int{a, b}, raindrop.RaindropUpdate{
		Collection: &raindrop.Ref{ID: dest},
	})
	require.NoError(t, err)
	require.Equal(t, dest, srv.Raindrop(a).Collection.ID)
	require.Equal(t, dest, srv.Raindrop(b).Collection.ID)
}

func TestBatchDeleteRaindrops(t *testing.T) {
	client, srv := newTestClient(t)

	col := srv.SeedCollection("Inbox", 0)
	a := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "a", Link: "https://example.com/a"})
	b := srv.SeedRaindrop(col, raindrop.Raindrop{Title: "b", Link: "https://example.com/b"})

	require.NoError(t, client.BatchDeleteRaindrops(context.Background(), col, []int{a, b}))
	require.Equal(t, raindrop.CollectionTrash, srv.Raindrop(a).Collection.ID)
	require.Equal(t, raindrop.CollectionTrash, srv.Raindrop(b).Collection.ID)
}

func TestAPIErrorTruncatesBody(t *testing.T) {
	err := &raindrop.APIError{
		StatusCode: 500,
		Endpoint:   "/raindrop/1",
		Body:       string(make([]byte, 1000)),
	}
	require.LessOrEqual(t, len(err.Error()), 300)
	require.Contains(t, err.Error(), "/raindrop/1")
}
