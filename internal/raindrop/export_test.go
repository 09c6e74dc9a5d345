package raindrop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

func TestExportBookmarks(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	url, err := client.ExportBookmarks(ctx, raindrop.ExportOptions{Format: raindrop.ExportHTML})
	require.NoError(t, err)
	require.Contains(t, url, "export.html")

	status, err := client.GetExportStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Ready())
	require.Equal(t, url, status.URL)
}

func TestExportBookmarksDefaultsToCSV(t *testing.T) {
	client, _ := newTestClient(t)

	url, err := client.ExportBookmarks(context.Background(), raindrop.ExportOptions{})
	require.NoError(t, err)
	require.Contains(t, url, "export.csv")
}

func TestExportBookmarksBadFormat(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.ExportBookmarks(context.Background(), raindrop.ExportOptions{Format: "pdf"})
	require.Error(t, err)

	var apiErr *raindrop.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestExportStatusProgression(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	srv.ExportPollsUntilReady = 2

	_, err := client.ExportBookmarks(ctx, raindrop.ExportOptions{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		status, err := client.GetExportStatus(ctx)
		require.NoError(t, err)
		require.False(t, status.Ready())
		require.Equal(t, "in_progress", status.Status)
	}

	status, err := client.GetExportStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Ready())
}

func TestImportStatus(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	status, err := client.GetImportStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "idle", status.Status)

	srv.SetImportStatus("in_progress", 40)

	status, err = client.GetImportStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "in_progress", status.Status)
	require.Equal(t, 40, status.Progress)
}
