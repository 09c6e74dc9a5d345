package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

const jsonMIME = "application/json"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         collectionsURI(),
		Name:        "collections",
		Description: "All collections with bookmark counts.",
		MIMEType:    jsonMIME,
	}, s.readCollections)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "raindrop://collection/{id}",
		Name:        "collection",
		Description: "One collection by id.",
		MIMEType:    jsonMIME,
	}, s.readCollection)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "raindrop://bookmarks/collection/{collectionId}",
		Name:        "collection-bookmarks",
		Description: "Bookmarks in one collection (first page).",
		MIMEType:    jsonMIME,
	}, s.readCollectionBookmarks)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "raindrop://bookmark/{id}",
		Name:        "bookmark",
		Description: "One bookmark by id.",
		MIMEType:    jsonMIME,
	}, s.readBookmark)

	s.mcp.AddResource(&mcp.Resource{
		URI:         tagsURI(),
		Name:        "tags",
		Description: "All tags with usage counts.",
		MIMEType:    jsonMIME,
	}, s.readTags)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "raindrop://tags/collection/{collectionId}",
		Name:        "collection-tags",
		Description: "Tags used within one collection.",
		MIMEType:    jsonMIME,
	}, s.readCollectionTags)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "raindrop://highlights/bookmark/{id}",
		Name:        "bookmark-highlights",
		Description: "Highlights of one bookmark.",
		MIMEType:    jsonMIME,
	}, s.readBookmarkHighlights)

	s.mcp.AddResource(&mcp.Resource{
		URI:         userURI(),
		Name:        "user",
		Description: "The account profile.",
		MIMEType:    jsonMIME,
	}, s.readUser)
}

// resourceID extracts the trailing integer id from a raindrop:// URI,
// e.g. raindrop://collection/42 or raindrop://bookmarks/collection/42.
func resourceID(raw string) (int, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid resource URI %q: %w", raw, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := parts[len(parts)-1]
	if last == "" {
		last = u.Host
	}
	id, err := strconv.Atoi(last)
	if err != nil {
		return 0, fmt.Errorf("invalid id in resource URI %q", raw)
	}
	return id, nil
}

func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("{%q:%q}", "error", err.Error())
	}
	return string(data)
}

// scopeEntry is the first content entry of a listing resource,
// describing what the listing covers.
func scopeEntry(uri string, scope any) *mcp.ResourceContents {
	return &mcp.ResourceContents{URI: uri, MIMEType: jsonMIME, Text: jsonText(scope)}
}

type listScope struct {
	Total        int  `json:"total"`
	CollectionID *int `json:"collection_id,omitempty"`
}

func (s *Server) readCollections(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	cols, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading collections: %w", err)
	}
	contents := []*mcp.ResourceContents{scopeEntry(req.Params.URI, listScope{Total: len(cols)})}
	for _, col := range cols {
		contents = append(contents, &mcp.ResourceContents{
			URI:      collectionURI(col.ID),
			MIMEType: jsonMIME,
			Text:     jsonText(toCollectionPayload(col)),
		})
	}
	return &mcp.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) readCollection(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	col, err := s.client.GetCollection(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading collection %d: %w", id, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
		URI:      collectionURI(col.ID),
		MIMEType: jsonMIME,
		Text:     jsonText(toCollectionPayload(*col)),
	}}}, nil
}

func (s *Server) readCollectionBookmarks(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	result, err := s.client.SearchRaindrops(ctx, raindrop.SearchParams{
		Collection: id,
		PerPage:    raindrop.MaxPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks of collection %d: %w", id, err)
	}
	contents := []*mcp.ResourceContents{
		scopeEntry(bookmarksURI(id), listScope{Total: result.Count, CollectionID: &id}),
	}
	for _, item := range result.Items {
		contents = append(contents, &mcp.ResourceContents{
			URI:      bookmarkURI(item.ID),
			MIMEType: jsonMIME,
			Text:     jsonText(toBookmarkPayload(item)),
		})
	}
	return &mcp.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) readBookmark(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	item, err := s.client.GetRaindrop(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading bookmark %d: %w", id, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
		URI:      bookmarkURI(item.ID),
		MIMEType: jsonMIME,
		Text:     jsonText(toBookmarkPayload(*item)),
	}}}, nil
}

func (s *Server) readTags(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return s.tagsResult(ctx, raindrop.CollectionAll, tagsURI())
}

func (s *Server) readCollectionTags(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	return s.tagsResult(ctx, id, collectionTagsURI(id))
}

func (s *Server) tagsResult(ctx context.Context, collectionID int, uri string) (*mcp.ReadResourceResult, error) {
	tags, err := s.client.ListTags(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	scope := listScope{Total: len(tags)}
	if collectionID != raindrop.CollectionAll {
		scope.CollectionID = &collectionID
	}
	contents := []*mcp.ResourceContents{scopeEntry(uri, scope)}
	for _, tag := range tags {
		contents = append(contents, &mcp.ResourceContents{
			URI:      uri + "#" + url.PathEscape(tag.Name),
			MIMEType: jsonMIME,
			Text:     jsonText(tagPayload{Name: tag.Name, Count: tag.Count}),
		})
	}
	return &mcp.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) readBookmarkHighlights(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}
	highlights, err := s.client.ListHighlights(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading highlights of bookmark %d: %w", id, err)
	}
	contents := []*mcp.ResourceContents{scopeEntry(highlightsURI(id), listScope{Total: len(highlights)})}
	for _, h := range highlights {
		contents = append(contents, &mcp.ResourceContents{
			URI:      highlightsURI(id) + "#" + h.ID,
			MIMEType: jsonMIME,
			Text:     jsonText(toHighlightPayload(h)),
		})
	}
	return &mcp.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) readUser(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.client.GetUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
		URI:      userURI(),
		MIMEType: jsonMIME,
		Text: jsonText(userProfileOutput{
			URI:        userURI(),
			ID:         user.ID,
			Email:      user.Email,
			FullName:   user.FullName,
			Pro:        user.Pro,
			Registered: user.Registered,
		}),
	}}}, nil
}
