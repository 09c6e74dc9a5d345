package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type tagListInput struct {
	CollectionID int `json:"collection_id,omitempty" jsonschema:"Scope to one collection (0 = whole account)"`
}

type tagListOutput struct {
	Tags         []tagPayload `json:"tags"`
	Total        int          `json:"total"`
	CollectionID int          `json:"collection_id"`
}

type tagManageInput struct {
	Operation    string   `json:"operation" jsonschema:"required,One of: rename merge delete delete_multiple"`
	CollectionID int      `json:"collection_id,omitempty" jsonschema:"Scope to one collection (0 = whole account)"`
	Old          string   `json:"old,omitempty" jsonschema:"Current tag name for rename"`
	New          string   `json:"new,omitempty" jsonschema:"New tag name for rename"`
	Sources      []string `json:"sources,omitempty" jsonschema:"Tags to merge into the destination"`
	Destination  string   `json:"destination,omitempty" jsonschema:"Destination tag for merge"`
	Tag          string   `json:"tag,omitempty" jsonschema:"Tag to delete"`
	Tags         []string `json:"tags,omitempty" jsonschema:"Tags for delete_multiple"`
}

type tagManageOutput struct {
	Operation string `json:"operation"`
	Affected  int    `json:"affected"`
}

func (s *Server) registerTagTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "tag_list",
		Description: "List tags with usage counts, account-wide or scoped to one collection.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args tagListInput) (*mcp.CallToolResult, tagListOutput, error) {
		tags, err := s.client.ListTags(ctx, args.CollectionID)
		if err != nil {
			return nil, tagListOutput{}, toolErrorf("list tags", err)
		}
		out := tagListOutput{
			Tags:         toTagPayloads(tags),
			Total:        len(tags),
			CollectionID: args.CollectionID,
		}
		return textResult("Found %d tags.", out.Total), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "tag_manage",
		Description: "Manage tags: rename one, merge several into one, or delete one or more. Tag changes apply across every bookmark in scope.",
	}, s.handleTagManage)
}

func (s *Server) handleTagManage(ctx context.Context, req *mcp.CallToolRequest, args tagManageInput) (*mcp.CallToolResult, tagManageOutput, error) {
	out := tagManageOutput{Operation: args.Operation}
	switch args.Operation {
	case "rename":
		var missing []string
		if args.Old == "" {
			missing = append(missing, "old")
		}
		if args.New == "" {
			missing = append(missing, "new")
		}
		if len(missing) > 0 {
			return nil, out, validationErrorf("rename tag", "rename requires %s", strings.Join(missing, " and "))
		}
		if err := s.client.RenameTag(ctx, args.CollectionID, args.Old, args.New); err != nil {
			return nil, out, toolErrorf("rename tag", err)
		}
		out.Affected = 1
		return textResult("Renamed tag %q to %q.", args.Old, args.New), out, nil
	case "merge":
		var missing []string
		if len(args.Sources) == 0 {
			missing = append(missing, "sources")
		}
		if args.Destination == "" {
			missing = append(missing, "destination")
		}
		if len(missing) > 0 {
			return nil, out, validationErrorf("merge tags", "merge requires %s", strings.Join(missing, " and "))
		}
		// Merge is one rename per source tag; a failure partway leaves
		// earlier sources renamed.
		if err := s.client.MergeTags(ctx, args.CollectionID, args.Sources, args.Destination); err != nil {
			return nil, out, toolErrorf("merge tags", err)
		}
		out.Affected = len(args.Sources)
		return textResult("Merged %d tags into %q.", out.Affected, args.Destination), out, nil
	case "delete":
		if args.Tag == "" {
			return nil, out, validationErrorf("delete tag", "delete requires tag")
		}
		if err := s.client.DeleteTags(ctx, args.CollectionID, []string{args.Tag}); err != nil {
			return nil, out, toolErrorf("delete tag", err)
		}
		out.Affected = 1
		return textResult("Deleted tag %q.", args.Tag), out, nil
	case "delete_multiple":
		if len(args.Tags) == 0 {
			return nil, out, validationErrorf("delete tags", "delete_multiple requires a non-empty tags list")
		}
		if err := s.client.DeleteTags(ctx, args.CollectionID, args.Tags); err != nil {
			return nil, out, toolErrorf("delete tags", err)
		}
		out.Affected = len(args.Tags)
		return textResult("Deleted %d tags.", out.Affected), out, nil
	default:
		return nil, out, validationErrorf("manage tags",
			"operation must be one of rename, merge, delete, delete_multiple; got %q", args.Operation)
	}
}
