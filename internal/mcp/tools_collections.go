package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

type collectionListInput struct{}

type collectionListOutput struct {
	Collections []collectionPayload `json:"collections"`
	Total       int                 `json:"total"`
}

type collectionGetInput struct {
	ID int `json:"id" jsonschema:"required,Collection identifier"`
}

type collectionCreateInput struct {
	Title  string `json:"title" jsonschema:"required,Collection title"`
	Public bool   `json:"public,omitempty" jsonschema:"Make the collection publicly visible"`
}

type collectionUpdateInput struct {
	ID       int     `json:"id" jsonschema:"required,Collection identifier"`
	Title    *string `json:"title,omitempty" jsonschema:"New title"`
	Public   *bool   `json:"public,omitempty" jsonschema:"New public visibility"`
	View     *string `json:"view,omitempty" jsonschema:"Display mode: list simple grid or masonry"`
	Sort     *string `json:"sort,omitempty" jsonschema:"Default sort for the collection"`
	ParentID *int    `json:"parent_id,omitempty" jsonschema:"Move under this parent collection"`
}

type collectionDeleteInput struct {
	ID int `json:"id" jsonschema:"required,Collection identifier"`
}

type collectionDeleteOutput struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

type collectionFindInput struct {
	Title string `json:"title" jsonschema:"required,Title to look for (case-insensitive substring match)"`
}

type collectionShareInput struct {
	ID     int      `json:"id" jsonschema:"required,Collection identifier"`
	Level  string   `json:"level" jsonschema:"required,Access level: view or edit"`
	Emails []string `json:"emails" jsonschema:"required,Email addresses to invite"`
}

type collectionShareOutput struct {
	ID      int      `json:"id"`
	Level   string   `json:"level"`
	Invited []string `json:"invited"`
}

type collectionMaintenanceInput struct {
	Operation string `json:"operation" jsonschema:"required,One of: merge remove_empty empty_trash"`
	TargetID  int    `json:"target_id,omitempty" jsonschema:"Destination collection for merge"`
	SourceIDs []int  `json:"source_ids,omitempty" jsonschema:"Collections to merge into the target"`
}

type collectionMaintenanceOutput struct {
	Operation string `json:"operation"`
	Removed   int    `json:"removed,omitempty"`
	Merged    int    `json:"merged,omitempty"`
}

func (s *Server) registerCollectionTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_list",
		Description: "List all collections, including nested ones, with bookmark counts.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionListInput) (*mcp.CallToolResult, collectionListOutput, error) {
		cols, err := s.client.ListCollections(ctx)
		if err != nil {
			return nil, collectionListOutput{}, toolErrorf("list collections", err)
		}
		out := collectionListOutput{Collections: toCollectionPayloads(cols), Total: len(cols)}
		return textResult("Found %d collections.", out.Total), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_get",
		Description: "Get one collection by id.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionGetInput) (*mcp.CallToolResult, collectionPayload, error) {
		col, err := s.client.GetCollection(ctx, args.ID)
		if err != nil {
			return nil, collectionPayload{}, toolErrorf("get collection", err)
		}
		out := toCollectionPayload(*col)
		return textResult("Collection %d: %q (%d bookmarks).", out.ID, out.Title, out.Count), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_create",
		Description: "Create a collection.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionCreateInput) (*mcp.CallToolResult, collectionPayload, error) {
		if strings.TrimSpace(args.Title) == "" {
			return nil, collectionPayload{}, validationErrorf("create collection", "title is required")
		}
		col, err := s.client.CreateCollection(ctx, args.Title, args.Public)
		if err != nil {
			return nil, collectionPayload{}, toolErrorf("create collection", err)
		}
		out := toCollectionPayload(*col)
		return textResult("Created collection %d: %q.", out.ID, out.Title), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_update",
		Description: "Update a collection's title, visibility, view, sort or parent.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionUpdateInput) (*mcp.CallToolResult, collectionPayload, error) {
		update := raindrop.CollectionUpdate{
			Title:  args.Title,
			Public: args.Public,
			Sort:   args.Sort,
		}
		if args.View != nil {
			view := raindrop.ViewMode(*args.View)
			switch view {
			case raindrop.ViewList, raindrop.ViewSimple, raindrop.ViewGrid, raindrop.ViewMasonry:
				update.View = &view
			default:
				return nil, collectionPayload{}, validationErrorf("update collection",
					"view must be one of list, simple, grid, masonry; got %q", *args.View)
			}
		}
		if args.ParentID != nil {
			update.Parent = &raindrop.Ref{ID: *args.ParentID}
		}
		col, err := s.client.UpdateCollection(ctx, args.ID, update)
		if err != nil {
			return nil, collectionPayload{}, toolErrorf("update collection", err)
		}
		out := toCollectionPayload(*col)
		return textResult("Updated collection %d: %q.", out.ID, out.Title), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_delete",
		Description: "Delete a collection. Its bookmarks move to Unsorted.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionDeleteInput) (*mcp.CallToolResult, collectionDeleteOutput, error) {
		if err := s.client.DeleteCollection(ctx, args.ID); err != nil {
			return nil, collectionDeleteOutput{}, toolErrorf("delete collection", err)
		}
		out := collectionDeleteOutput{ID: args.ID, Deleted: true}
		return textResult("Deleted collection %d.", args.ID), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_find",
		Description: "Find collections whose title contains the given text (case-insensitive).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionFindInput) (*mcp.CallToolResult, collectionListOutput, error) {
		if strings.TrimSpace(args.Title) == "" {
			return nil, collectionListOutput{}, validationErrorf("find collection", "title is required")
		}
		cols, err := s.client.ListCollections(ctx)
		if err != nil {
			return nil, collectionListOutput{}, toolErrorf("find collection", err)
		}
		needle := strings.ToLower(args.Title)
		var matched []raindrop.Collection
		for _, col := range cols {
			if strings.Contains(strings.ToLower(col.Title), needle) {
				matched = append(matched, col)
			}
		}
		out := collectionListOutput{Collections: toCollectionPayloads(matched), Total: len(matched)}
		return textResult("Found %d collections matching %q.", out.Total, args.Title), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_share",
		Description: "Share a collection with other users by email, at view or edit level.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionShareInput) (*mcp.CallToolResult, collectionShareOutput, error) {
		if args.Level != "view" && args.Level != "edit" {
			return nil, collectionShareOutput{}, validationErrorf("share collection",
				"level must be view or edit; got %q", args.Level)
		}
		if len(args.Emails) == 0 {
			return nil, collectionShareOutput{}, validationErrorf("share collection", "emails is required and must not be empty")
		}
		if err := s.client.ShareCollection(ctx, args.ID, args.Level, args.Emails); err != nil {
			return nil, collectionShareOutput{}, toolErrorf("share collection", err)
		}
		out := collectionShareOutput{ID: args.ID, Level: args.Level, Invited: args.Emails}
		return textResult("Shared collection %d with %d users at %s level.", args.ID, len(args.Emails), args.Level), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "collection_maintenance",
		Description: "Collection maintenance: merge collections, remove empty ones, or empty the trash.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args collectionMaintenanceInput) (*mcp.CallToolResult, collectionMaintenanceOutput, error) {
		out := collectionMaintenanceOutput{Operation: args.Operation}
		switch args.Operation {
		case "merge":
			var missing []string
			if args.TargetID == 0 {
				missing = append(missing, "target_id")
			}
			if len(args.SourceIDs) == 0 {
				missing = append(missing, "source_ids")
			}
			if len(missing) > 0 {
				return nil, out, validationErrorf("merge collections",
					"merge requires %s", strings.Join(missing, " and "))
			}
			if err := s.client.MergeCollections(ctx, args.TargetID, args.SourceIDs); err != nil {
				return nil, out, toolErrorf("merge collections", err)
			}
			out.Merged = len(args.SourceIDs)
			return textResult("Merged %d collections into %d.", out.Merged, args.TargetID), out, nil
		case "remove_empty":
			removed, err := s.client.RemoveEmptyCollections(ctx)
			if err != nil {
				return nil, out, toolErrorf("remove empty collections", err)
			}
			out.Removed = removed
			return textResult("Removed %d empty collections.", removed), out, nil
		case "empty_trash":
			if err := s.client.EmptyTrash(ctx); err != nil {
				return nil, out, toolErrorf("empty trash", err)
			}
			return textResult("Emptied the trash."), out, nil
		default:
			return nil, out, validationErrorf("run collection maintenance",
				"operation must be one of merge, remove_empty, empty_trash; got %q", args.Operation)
		}
	})
}
