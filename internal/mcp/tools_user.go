package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type userProfileInput struct{}

type userProfileOutput struct {
	URI        string    `json:"uri"`
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Pro        bool      `json:"pro"`
	Registered time.Time `json:"registered"`
}

type userStatisticsInput struct{}

type userStatisticsOutput struct {
	Bookmarks   int `json:"bookmarks"`
	Collections int `json:"collections"`
	Tags        int `json:"tags"`
}

func (s *Server) registerUserTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "user_profile",
		Description: "Get the account profile the configured token belongs to.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args userProfileInput) (*mcp.CallToolResult, userProfileOutput, error) {
		user, err := s.client.GetUser(ctx)
		if err != nil {
			return nil, userProfileOutput{}, toolErrorf("get user profile", err)
		}
		out := userProfileOutput{
			URI:        userURI(),
			ID:         user.ID,
			Email:      user.Email,
			FullName:   user.FullName,
			Pro:        user.Pro,
			Registered: user.Registered,
		}
		return textResult("Account %s (%s).", out.Email, out.FullName), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "user_statistics",
		Description: "Get account-wide bookmark, collection and tag counts.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args userStatisticsInput) (*mcp.CallToolResult, userStatisticsOutput, error) {
		stats, err := s.client.GetUserStats(ctx)
		if err != nil {
			return nil, userStatisticsOutput{}, toolErrorf("get user statistics", err)
		}
		out := userStatisticsOutput{
			Bookmarks:   stats.Raindrops,
			Collections: stats.Collections,
			Tags:        stats.Tags,
		}
		return textResult("%d bookmarks across %d collections, %d tags.",
			out.Bookmarks, out.Collections, out.Tags), out, nil
	})
}
