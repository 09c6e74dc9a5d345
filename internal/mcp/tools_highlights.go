package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

type highlightListInput struct {
	BookmarkID   *int `json:"bookmark_id,omitempty" jsonschema:"List highlights of this bookmark"`
	CollectionID *int `json:"collection_id,omitempty" jsonschema:"List highlights across this collection"`
}

type highlightListOutput struct {
	Highlights []highlightPayload `json:"highlights"`
	Total      int                `json:"total"`
}

type highlightCreateInput struct {
	BookmarkID int    `json:"bookmark_id" jsonschema:"required,Bookmark to attach the highlight to"`
	Text       string `json:"text" jsonschema:"required,Highlighted text"`
	Note       string `json:"note,omitempty" jsonschema:"Optional note"`
	Color      string `json:"color,omitempty" jsonschema:"Optional color"`
}

type highlightUpdateInput struct {
	BookmarkID  int     `json:"bookmark_id" jsonschema:"required,Bookmark the highlight belongs to"`
	HighlightID string  `json:"highlight_id" jsonschema:"required,Highlight identifier"`
	Text        *string `json:"text,omitempty" jsonschema:"New highlighted text"`
	Note        *string `json:"note,omitempty" jsonschema:"New note"`
	Color       *string `json:"color,omitempty" jsonschema:"New color"`
}

type highlightDeleteInput struct {
	BookmarkID  int    `json:"bookmark_id" jsonschema:"required,Bookmark the highlight belongs to"`
	HighlightID string `json:"highlight_id" jsonschema:"required,Highlight identifier"`
}

type highlightDeleteOutput struct {
	BookmarkID  int    `json:"bookmark_id"`
	HighlightID string `json:"highlight_id"`
	Deleted     bool   `json:"deleted"`
}

func (s *Server) registerHighlightTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "highlight_list",
		Description: "List highlights of one bookmark, or every highlight across a collection.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args highlightListInput) (*mcp.CallToolResult, highlightListOutput, error) {
		if (args.BookmarkID == nil) == (args.CollectionID == nil) {
			return nil, highlightListOutput{}, validationErrorf("list highlights",
				"exactly one of bookmark_id or collection_id is required")
		}

		var highlights []raindrop.Highlight
		var err error
		if args.BookmarkID != nil {
			// A missing bookmark yields an empty list, not an error.
			highlights, err = s.client.ListHighlights(ctx, *args.BookmarkID)
		} else {
			highlights, err = s.client.ListCollectionHighlights(ctx, *args.CollectionID)
		}
		if err != nil {
			return nil, highlightListOutput{}, toolErrorf("list highlights", err)
		}
		out := highlightListOutput{Highlights: toHighlightPayloads(highlights), Total: len(highlights)}
		return textResult("Found %d highlights.", out.Total), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "highlight_create",
		Description: "Add a highlight to a bookmark.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args highlightCreateInput) (*mcp.CallToolResult, highlightPayload, error) {
		if strings.TrimSpace(args.Text) == "" {
			return nil, highlightPayload{}, validationErrorf("create highlight", "text is required")
		}
		h, err := s.client.CreateHighlight(ctx, args.BookmarkID, raindrop.HighlightCreate{
			Text:  args.Text,
			Note:  args.Note,
			Color: args.Color,
		})
		if err != nil {
			return nil, highlightPayload{}, toolErrorf("create highlight", err)
		}
		out := toHighlightPayload(*h)
		return textResult("Created highlight %s on bookmark %d.", out.ID, args.BookmarkID), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "highlight_update",
		Description: "Update a highlight's text, note or color.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args highlightUpdateInput) (*mcp.CallToolResult, highlightPayload, error) {
		if args.HighlightID == "" {
			return nil, highlightPayload{}, validationErrorf("update highlight", "highlight_id is required")
		}
		h, err := s.client.UpdateHighlight(ctx, args.BookmarkID, args.HighlightID, raindrop.HighlightUpdate{
			Text:  args.Text,
			Note:  args.Note,
			Color: args.Color,
		})
		if err != nil {
			return nil, highlightPayload{}, toolErrorf("update highlight", err)
		}
		out := toHighlightPayload(*h)
		return textResult("Updated highlight %s on bookmark %d.", out.ID, args.BookmarkID), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "highlight_delete",
		Description: "Delete a highlight from a bookmark.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args highlightDeleteInput) (*mcp.CallToolResult, highlightDeleteOutput, error) {
		if args.HighlightID == "" {
			return nil, highlightDeleteOutput{}, validationErrorf("delete highlight", "highlight_id is required")
		}
		if err := s.client.DeleteHighlight(ctx, args.BookmarkID, args.HighlightID); err != nil {
			return nil, highlightDeleteOutput{}, toolErrorf("delete highlight", err)
		}
		out := highlightDeleteOutput{BookmarkID: args.BookmarkID, HighlightID: args.HighlightID, Deleted: true}
		return textResult("Deleted highlight %s from bookmark %d.", args.HighlightID, args.BookmarkID), out, nil
	})
}
