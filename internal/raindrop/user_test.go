package raindrop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

func TestGetUser(t *testing.T) {
	client, _ := newTestClient(t)

	user, err := client.GetUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", user.Email)
	require.Equal(t, "Test Reader", user.FullName)
	require.True(t, user.Pro)
}

func TestGetUserStats(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	colA := srv.SeedCollection("A", 0)
	colB := srv.SeedCollection("B", 0)
	srv.SeedRaindrop(colA, raindrop.Raindrop{Title: "1", Link: "https://example.com/1", Tags: []string{"go"}})
	srv.SeedRaindrop(colA, raindrop.Raindrop{Title: "2", Link: "https://example.com/2", Tags: []string{"go", "web"}})
	srv.SeedRaindrop(colB, raindrop.Raindrop{Title: "3", Link: "https://example.com/3"})

	stats, err := client.GetUserStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Raindrops)
	require.Equal(t, 2, stats.Collections)
	require.Equal(t, 2, stats.Tags)
}
