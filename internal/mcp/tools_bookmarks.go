package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

type bookmarkSearchInput struct {
	Query         string   `json:"query,omitempty" jsonschema:"Free-text search"`
	CollectionID  int      `json:"collection_id,omitempty" jsonschema:"Collection to search in (0 = everywhere)"`
	Tags          []string `json:"tags,omitempty" jsonschema:"Require all of these tags"`
	CreatedAfter  string   `json:"created_after,omitempty" jsonschema:"Only bookmarks created after this date (YYYY-MM-DD)"`
	CreatedBefore string   `json:"created_before,omitempty" jsonschema:"Only bookmarks created before this date (YYYY-MM-DD)"`
	Important     *bool    `json:"important,omitempty" jsonschema:"Only starred bookmarks when true"`
	Type          string   `json:"type,omitempty" jsonschema:"Media type: link article image video document or audio"`
	Page          int      `json:"page,omitempty" jsonschema:"Zero-based page number"`
	PerPage       int      `json:"per_page,omitempty" jsonschema:"Results per page (default 25, max 50)"`
	Sort          string   `json:"sort,omitempty" jsonschema:"Sort key: title -title domain -domain created -created lastUpdate -lastUpdate"`
}

type bookmarkSearchOutput struct {
	Bookmarks []bookmarkPayload `json:"bookmarks"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PerPage   int               `json:"per_page"`
	HasMore   bool              `json:"has_more"`
}

type bookmarkGetInput struct {
	ID int `json:"id" jsonschema:"required,Bookmark identifier"`
}

type bookmarkCreateInput struct {
	Link         string   `json:"link" jsonschema:"required,URL to bookmark"`
	Title        string   `json:"title,omitempty" jsonschema:"Title (defaults to the page title)"`
	Excerpt      string   `json:"excerpt,omitempty" jsonschema:"Short description"`
	Tags         []string `json:"tags,omitempty" jsonschema:"Tags to attach"`
	CollectionID int      `json:"collection_id,omitempty" jsonschema:"Destination collection (default Unsorted)"`
	Important    bool     `json:"important,omitempty" jsonschema:"Star the bookmark"`
	ReminderDate string   `json:"reminder_date,omitempty" jsonschema:"Reminder date (RFC 3339 or YYYY-MM-DD)"`
	ReminderNote string   `json:"reminder_note,omitempty" jsonschema:"Reminder note"`
}

type bookmarkUpdateInput struct {
	ID           int      `json:"id" jsonschema:"required,Bookmark identifier"`
	Title        *string  `json:"title,omitempty" jsonschema:"New title"`
	Link         *string  `json:"link,omitempty" jsonschema:"New URL"`
	Excerpt      *string  `json:"excerpt,omitempty" jsonschema:"New description"`
	Tags         []string `json:"tags,omitempty" jsonschema:"Replace the tag list"`
	CollectionID *int     `json:"collection_id,omitempty" jsonschema:"Move to this collection"`
	Important    *bool    `json:"important,omitempty" jsonschema:"Set or clear the star"`
}

type bookmarkRecentInput struct {
	Count int `json:"count,omitempty" jsonschema:"How many to return (default 10, max 50)"`
}

type bookmarkRecentOutput struct {
	Bookmarks []bookmarkPayload `json:"bookmarks"`
}

type bookmarkBatchInput struct {
	Operation          string   `json:"operation" jsonschema:"required,One of: update move tag_add tag_remove delete delete_permanent"`
	IDs                []int    `json:"ids" jsonschema:"required,Bookmark identifiers to operate on"`
	CollectionID       int      `json:"collection_id,omitempty" jsonschema:"Collection scope for the batch (0 = all)"`
	TargetCollectionID *int     `json:"target_collection_id,omitempty" jsonschema:"Destination collection for move"`
	Tags               []string `json:"tags,omitempty" jsonschema:"Tags for tag_add and tag_remove"`
	Important          *bool    `json:"important,omitempty" jsonschema:"Star flag for update"`
}

type bookmarkBatchOutput struct {
	Operation string `json:"operation"`
	Affected  int    `json:"affected"`
}

type bookmarkRemindersInput struct {
	Operation string `json:"operation" jsonschema:"required,One of: set clear list"`
	ID        int    `json:"id,omitempty" jsonschema:"Bookmark identifier for set and clear"`
	Date      string `json:"date,omitempty" jsonschema:"Reminder date for set (RFC 3339 or YYYY-MM-DD)"`
	Note      string `json:"note,omitempty" jsonschema:"Reminder note for set"`
}

type bookmarkRemindersOutput struct {
	Operation string            `json:"operation"`
	Bookmarks []bookmarkPayload `json:"bookmarks,omitempty"`
}

func (s *Server) registerBookmarkTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_search",
		Description: "Search bookmarks by text, tags, dates, type and importance, with pagination and sorting.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookmarkSearchInput) (*mcp.CallToolResult, bookmarkSearchOutput, error) {
		params, err := searchParams(args)
		if err != nil {
			return nil, bookmarkSearchOutput{}, err
		}
		result, err := s.client.SearchRaindrops(ctx, params)
		if err != nil {
			return nil, bookmarkSearchOutput{}, toolErrorf("search bookmarks", err)
		}
		out := bookmarkSearchOutput{
			Bookmarks: toBookmarkPayloads(result.Items),
			Total:     result.Count,
			Page:      params.Page,
			PerPage:   params.PerPage,
			HasMore:   hasMore(params.Page, params.PerPage, len(result.Items), result.Count),
		}
		return textResult("Found %d bookmarks (showing %d, page %d).", out.Total, len(out.Bookmarks), out.Page), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_get",
		Description: "Get one bookmark by id. On an unknown id, suggests recent bookmarks.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookmarkGetInput) (*mcp.CallToolResult, bookmarkPayload, error) {
		item, err := s.client.GetRaindrop(ctx, args.ID)
		if err != nil {
			if raindrop.IsNotFound(err) {
				return nil, bookmarkPayload{}, s.bookmarkNotFound(ctx, args.ID)
			}
			return nil, bookmarkPayload{}, toolErrorf("get bookmark", err)
		}
		out := toBookmarkPayload(*item)
		return textResult("Bookmark %d: %q (%s).", out.ID, out.Title, out.Link), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_create",
		Description: "Save a URL as a bookmark, optionally with tags, a collection and a reminder.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookmarkCreateInput) (*mcp.CallToolResult, bookmarkPayload, error) {
		if strings.TrimSpace(args.Link) == "" {
			return nil, bookmarkPayload{}, validationErrorf("create bookmark", "link is required")
		}
		create := raindrop.RaindropCreate{
			Link:      args.Link,
			Title:     args.Title,
			Excerpt:   args.Excerpt,
			Tags:      args.Tags,
			Important: args.Important,
		}
		if args.CollectionID != 0 {
			create.Collection = &raindrop.Ref{ID: args.CollectionID}
		}
		if args.ReminderDate != "" {
			date, err := parseDate(args.ReminderDate)
			if err != nil {
				return nil, bookmarkPayload{}, validationErrorf("create bookmark",
					"reminder_date must be RFC 3339 or YYYY-MM-DD; got %q", args.ReminderDate)
			}
			create.Reminder = &raindrop.Reminder{Date: date, Note: args.ReminderNote}
		}
		item, err := s.client.CreateRaindrop(ctx, create)
		if err != nil {
			return nil, bookmarkPayload{}, toolErrorf("create bookmark", err)
		}
		out := toBookmarkPayload(*item)
		return textResult("Created bookmark %d: %q.", out.ID, out.Title), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_update",
		Description: "Update a bookmark's fields, replace its tags, or move it to another collection.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookmarkUpdateInput) (*mcp.CallToolResult, bookmarkPayload, error) {
		var update raindrop.RaindropUpdate
		if args.Title != nil {
			update.Title = *args.Title
		}
		if args.Link != nil {
			update.Link = *args.Link
		}
		if args.Excerpt != nil {
			update.Excerpt = *args.Excerpt
		}
		if args.Tags != nil {
			update.Tags = args.Tags
		}
		if args.CollectionID != nil {
			update.Collection = &raindrop.Ref{ID: *args.CollectionID}
		}
		update.Important = args.Important

		item, err := s.client.UpdateRaindrop(ctx, args.ID, update)
		if err != nil {
			return nil, bookmarkPayload{}, toolErrorf("update bookmark", err)
		}
		out := toBookmarkPayload(*item)
		return textResult("Updated bookmark %d: %q.", out.ID, out.Title), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_recent",
		Description: "List the most recently saved bookmarks.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookmarkRecentInput) (*mcp.CallToolResult, bookmarkRecentOutput, error) {
		count := args.Count
		if count <= 0 {
			count = 10
		}
		if count > raindrop.MaxPerPage {
			return nil, bookmarkRecentOutput{}, validationErrorf("list recent bookmarks",
				"count must be at most %d; got %d", raindrop.MaxPerPage, args.Count)
		}
		result, err := s.client.SearchRaindrops(ctx, raindrop.SearchParams{
			PerPage: count,
			Sort:    raindrop.SortCreatedDesc,
		})
		if err != nil {
			return nil, bookmarkRecentOutput{}, toolErrorf("list recent bookmarks", err)
		}
		out := bookmarkRecentOutput{Bookmarks: toBookmarkPayloads(result.Items)}
		return textResult("Most recent %d bookmarks.", len(out.Bookmarks)), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_batch_operations",
		Description: "Apply one operation to many bookmarks: update, move, tag_add, tag_remove, delete, delete_permanent.",
	}, s.handleBookmarkBatch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "bookmark_reminders",
		Description: "Manage bookmark reminders: set one, clear one, or list bookmarks with reminders.",
	}, s.handleBookmarkReminders)
}

// searchParams validates search input before any remote call.
func searchParams(args bookmarkSearchInput) (raindrop.SearchParams, error) {
	const op = "search bookmarks"
	if args.Page < 0 {
		return raindrop.SearchParams{}, validationErrorf(op, "page must be >= 0; got %d", args.Page)
	}
	if args.PerPage > raindrop.MaxPerPage {
		return raindrop.SearchParams{}, validationErrorf(op,
			"per_page must be at most %d; got %d", raindrop.MaxPerPage, args.PerPage)
	}
	if args.Sort != "" && !raindrop.ValidSortKey(args.Sort) {
		return raindrop.SearchParams{}, validationErrorf(op, "invalid sort key %q", args.Sort)
	}
	if args.Type != "" && !raindrop.ValidMediaType(args.Type) {
		return raindrop.SearchParams{}, validationErrorf(op, "invalid type %q", args.Type)
	}
	for _, field := range []struct{ name, value string }{
		{"created_after", args.CreatedAfter},
		{"created_before", args.CreatedBefore},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", field.value); err != nil {
			return raindrop.SearchParams{}, validationErrorf(op,
				"%s must be YYYY-MM-DD; got %q", field.name, field.value)
		}
	}

	perPage := args.PerPage
	if perPage <= 0 {
		perPage = raindrop.DefaultPerPage
	}
	return raindrop.SearchParams{
		Query:         args.Query,
		Collection:    args.CollectionID,
		Tags:          args.Tags,
		CreatedAfter:  args.CreatedAfter,
		CreatedBefore: args.CreatedBefore,
		Important:     args.Important,
		Type:          raindrop.MediaType(args.Type),
		Page:          args.Page,
		PerPage:       perPage,
		Sort:          raindrop.SortKey(args.Sort),
	}, nil
}

// bookmarkNotFound builds the unknown-id error, appending up to 5 recent
// bookmarks as suggestions for a caller that guessed a wrong identifier.
func (s *Server) bookmarkNotFound(ctx context.Context, id int) error {
	msg := fmt.Sprintf("bookmark %d not found", id)
	recent, err := s.client.SearchRaindrops(ctx, raindrop.SearchParams{
		PerPage: 5,
		Sort:    raindrop.SortCreatedDesc,
	})
	if err != nil || len(recent.Items) == 0 {
		return validationErrorf("get bookmark", "%s", msg)
	}
	var suggestions []string
	for _, item := range recent.Items {
		suggestions = append(suggestions, fmt.Sprintf("%d: %q", item.ID, item.Title))
	}
	return validationErrorf("get bookmark", "%s. Recent bookmarks: %s",
		msg, strings.Join(suggestions, ", "))
}

func (s *Server) handleBookmarkBatch(ctx context.Context, req *mcp.CallToolRequest, args bookmarkBatchInput) (*mcp.CallToolResult, bookmarkBatchOutput, error) {
	out := bookmarkBatchOutput{Operation: args.Operation}
	if len(args.IDs) == 0 {
		return nil, out, validationErrorf("run batch operation", "ids is required and must not be empty")
	}

	switch args.Operation {
	case "update":
		update := raindrop.RaindropUpdate{Important: args.Important, Tags: args.Tags}
		if err := s.client.BatchUpdateRaindrops(ctx, args.CollectionID, args.IDs, update); err != nil {
			return nil, out, toolErrorf("batch update bookmarks", err)
		}
	case "move":
		if args.TargetCollectionID == nil {
			return nil, out, validationErrorf("move bookmarks", "move requires target_collection_id")
		}
		update := raindrop.RaindropUpdate{Collection: &raindrop.Ref{ID: *args.TargetCollectionID}}
		if err := s.client.BatchUpdateRaindrops(ctx, args.CollectionID, args.IDs, update); err != nil {
			return nil, out, toolErrorf("move bookmarks", err)
		}
	case "tag_add", "tag_remove":
		if len(args.Tags) == 0 {
			return nil, out, validationErrorf("modify bookmark tags", "%s requires a non-empty tags list", args.Operation)
		}
		if err := s.batchRetag(ctx, args.IDs, args.Tags, args.Operation == "tag_add"); err != nil {
			return nil, out, toolErrorf("modify bookmark tags", err)
		}
	case "delete":
		if err := s.client.BatchDeleteRaindrops(ctx, args.CollectionID, args.IDs); err != nil {
			return nil, out, toolErrorf("delete bookmarks", err)
		}
	case "delete_permanent":
		for _, id := range args.IDs {
			if err := s.client.DeleteRaindrop(ctx, id, true); err != nil {
				return nil, out, toolErrorf("permanently delete bookmarks", err)
			}
			out.Affected++
		}
		return textResult("Permanently deleted %d bookmarks.", out.Affected), out, nil
	default:
		return nil, out, validationErrorf("run batch operation",
			"operation must be one of update, move, tag_add, tag_remove, delete, delete_permanent; got %q", args.Operation)
	}

	out.Affected = len(args.IDs)
	return textResult("Applied %s to %d bookmarks.", args.Operation, out.Affected), out, nil
}

// batchRetag reads each bookmark and rewrites its tag list. Tag changes
// are per-bookmark updates, so a mid-sequence failure leaves earlier
// bookmarks modified.
func (s *Server) batchRetag(ctx context.Context, ids []int, tags []string, add bool) error {
	items, err := s.client.GetRaindrops(ctx, ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		var next []string
		if add {
			seen := make(map[string]bool, len(item.Tags))
			next = append(next, item.Tags...)
			for _, tag := range item.Tags {
				seen[tag] = true
			}
			for _, tag := range tags {
				if !seen[tag] {
					next = append(next, tag)
					seen[tag] = true
				}
			}
		} else {
			drop := make(map[string]bool, len(tags))
			for _, tag := range tags {
				drop[tag] = true
			}
			next = []string{}
			for _, tag := range item.Tags {
				if !drop[tag] {
					next = append(next, tag)
				}
			}
		}
		if _, err := s.client.UpdateRaindrop(ctx, item.ID, raindrop.RaindropUpdate{Tags: next}); err != nil {
			return fmt.Errorf("updating bookmark %d: %w", item.ID, err)
		}
	}
	return nil
}

func (s *Server) handleBookmarkReminders(ctx context.Context, req *mcp.CallToolRequest, args bookmarkRemindersInput) (*mcp.CallToolResult, bookmarkRemindersOutput, error) {
	out := bookmarkRemindersOutput{Operation: args.Operation}
	switch args.Operation {
	case "set":
		var missing []string
		if args.ID == 0 {
			missing = append(missing, "id")
		}
		if args.Date == "" {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			return nil, out, validationErrorf("set reminder", "set requires %s", strings.Join(missing, " and "))
		}
		date, err := parseDate(args.Date)
		if err != nil {
			return nil, out, validationErrorf("set reminder", "date must be RFC 3339 or YYYY-MM-DD; got %q", args.Date)
		}
		item, err := s.client.UpdateRaindrop(ctx, args.ID, raindrop.RaindropUpdate{
			Reminder: &raindrop.Reminder{Date: date, Note: args.Note},
		})
		if err != nil {
			return nil, out, toolErrorf("set reminder", err)
		}
		out.Bookmarks = []bookmarkPayload{toBookmarkPayload(*item)}
		return textResult("Reminder set on bookmark %d for %s.", args.ID, date.Format("2006-01-02")), out, nil
	case "clear":
		if args.ID == 0 {
			return nil, out, validationErrorf("clear reminder", "clear requires id")
		}
		// A zero-date reminder tells the service to remove it.
		item, err := s.client.UpdateRaindrop(ctx, args.ID, raindrop.RaindropUpdate{Reminder: &raindrop.Reminder{}})
		if err != nil {
			return nil, out, toolErrorf("clear reminder", err)
		}
		out.Bookmarks = []bookmarkPayload{toBookmarkPayload(*item)}
		return textResult("Reminder cleared on bookmark %d.", args.ID), out, nil
	case "list":
		withReminders, err := s.listReminders(ctx)
		if err != nil {
			return nil, out, toolErrorf("list reminders", err)
		}
		out.Bookmarks = toBookmarkPayloads(withReminders)
		return textResult("Found %d bookmarks with reminders.", len(out.Bookmarks)), out, nil
	default:
		return nil, out, validationErrorf("manage reminders",
			"operation must be one of set, clear, list; got %q", args.Operation)
	}
}

// listReminders pages through all bookmarks and keeps those carrying a
// reminder. The remote API has no reminder filter.
func (s *Server) listReminders(ctx context.Context) ([]raindrop.Raindrop, error) {
	var withReminders []raindrop.Raindrop
	seen := 0
	for page := 0; ; page++ {
		result, err := s.client.SearchRaindrops(ctx, raindrop.SearchParams{
			Page:    page,
			PerPage: raindrop.MaxPerPage,
			Sort:    raindrop.SortCreatedDesc,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range result.Items {
			if item.Reminder != nil {
				withReminders = append(withReminders, item)
			}
		}
		seen += len(result.Items)
		if seen >= result.Count || len(result.Items) == 0 {
			return withReminders, nil
		}
	}
}

// parseDate accepts RFC 3339 or a bare date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
