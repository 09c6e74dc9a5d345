package raindrop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxPerPage is the hard cap the remote API enforces on page size.
const MaxPerPage = 50

// DefaultPerPage is used when a caller does not specify a page size.
const DefaultPerPage = 25

// SearchParams shape a bookmark search. The zero value searches all
// bookmarks with default pagination.
type SearchParams struct {
	// Query is free-text search.
	Query string

	// Collection scopes the search; CollectionAll (0) searches everything.
	Collection int

	// Tags filter to bookmarks carrying every listed tag.
	Tags []string

	// CreatedAfter/CreatedBefore bound the creation date (YYYY-MM-DD).
	// Both are merged into the remote API's single search expression.
	CreatedAfter  string
	CreatedBefore string

	// Important filters to starred bookmarks when non-nil and true.
	Important *bool

	// Type filters by media type when non-empty.
	Type MediaType

	// Page is zero-based. PerPage defaults to DefaultPerPage and is
	// capped at MaxPerPage.
	Page    int
	PerPage int

	// Sort is one of the SortKey values. Empty means the remote default.
	Sort SortKey
}

// searchExpression merges the free-text query with tag, date, importance
// and type filters into the single search string the API understands.
func (p SearchParams) searchExpression() string {
	var terms []string
	if q := strings.TrimSpace(p.Query); q != "" {
		terms = append(terms, q)
	}
	for _, tag := range p.Tags {
		terms = append(terms, fmt.Sprintf("#%q", tag))
	}
	if p.CreatedAfter != "" {
		terms = append(terms, "created:>"+p.CreatedAfter)
	}
	if p.CreatedBefore != "" {
		terms = append(terms, "created:<"+p.CreatedBefore)
	}
	if p.Important != nil && *p.Important {
		terms = append(terms, "important:true")
	}
	if p.Type != "" {
		terms = append(terms, "type:"+string(p.Type))
	}
	return strings.Join(terms, " ")
}

// SearchResult is one page of bookmarks plus the total match count.
type SearchResult struct {
	Items []Raindrop
	Count int
}

// SearchRaindrops runs one search call against the scoped collection.
func (c *Client) SearchRaindrops(ctx context.Context, params SearchParams) (*SearchResult, error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("perpage", strconv.Itoa(perPage))
	if expr := params.searchExpression(); expr != "" {
		query.Set("search", expr)
	}
	if params.Sort != "" {
		query.Set("sort", string(params.Sort))
	}

	var resp itemsResponse[Raindrop]
	if err := c.get(ctx, fmt.Sprintf("/raindrops/%d", params.Collection), query, &resp); err != nil {
		return nil, err
	}
	return &SearchResult{Items: resp.Items, Count: resp.Count}, nil
}

// GetRaindrop fetches one bookmark by id.
func (c *Client) GetRaindrop(ctx context.Context, id int) (*Raindrop, error) {
	var resp itemResponse[Raindrop]
	if err := c.get(ctx, fmt.Sprintf("/raindrop/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// GetRaindrops multi-gets bookmarks by id in a single call.
func (c *Client) GetRaindrops(ctx context.Context, ids []int) ([]Raindrop, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}
	query := url.Values{}
	query.Set("ids", strings.Join(strs, ","))

	var resp itemsResponse[Raindrop]
	if err := c.get(ctx, fmt.Sprintf("/raindrops/%d", CollectionAll), query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// RaindropCreate holds the fields for a new bookmark. Link is required;
// Collection defaults to Unsorted when zero.
type RaindropCreate struct {
	Link       string    `json:"link"`
	Title      string    `json:"title,omitempty"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Collection *Ref      `json:"collection,omitempty"`
	Important  bool      `json:"important,omitempty"`
	Reminder   *Reminder `json:"reminder,omitempty"`
}

// CreateRaindrop creates a bookmark.
func (c *Client) CreateRaindrop(ctx context.Context, create RaindropCreate) (*Raindrop, error) {
	var resp itemResponse[Raindrop]
	if err := c.post(ctx, "/raindrop", create, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// RaindropUpdate holds mutable bookmark fields. Nil fields are left
// unchanged; setting Collection moves the bookmark (it belongs to
// exactly one collection at a time). A Reminder with a zero Date removes
// the reminder.
type RaindropUpdate struct {
	Title      string       `json:"title,omitempty"`
	Link       string       `json:"link,omitempty"`
	Excerpt    string       `json:"excerpt,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	Collection *Ref         `json:"collection,omitempty"`
	Important  *bool        `json:"important,omitempty"`
	Reminder   *Reminder    `json:"reminder,omitempty"`
	Highlights *[]Highlight `json:"highlights,omitempty"`
}

// UpdateRaindrop applies a partial update to one bookmark.
func (c *Client) UpdateRaindrop(ctx context.Context, id int, update RaindropUpdate) (*Raindrop, error) {
	var resp itemResponse[Raindrop]
	if err := c.put(ctx, fmt.Sprintf("/raindrop/%d", id), update, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// DeleteRaindrop moves a bookmark to trash. If permanent is true, or the
// bookmark is already in trash, the remote service removes it for good.
func (c *Client) DeleteRaindrop(ctx context.Context, id int, permanent bool) error {
	path := fmt.Sprintf("/raindrop/%d", id)
	if permanent {
		return c.do(ctx, "DELETE", path, url.Values{"permanent": {"true"}}, nil, nil)
	}
	return c.delete(ctx, path, nil)
}

// BatchUpdateRaindrops applies the same partial update to every listed
// bookmark in one call, scoped to the collection they are filtered from.
func (c *Client) BatchUpdateRaindrops(ctx context.Context, collectionID int, ids []int, update RaindropUpdate) error {
	body := struct {
		IDs []int `json:"ids"`
		RaindropUpdate
	}{IDs: ids, RaindropUpdate: update}
	return c.put(ctx, fmt.Sprintf("/raindrops/%d", collectionID), body, nil)
}

// BatchDeleteRaindrops moves the listed bookmarks to trash in one call.
func (c *Client) BatchDeleteRaindrops(ctx context.Context, collectionID int, ids []int) error {
	body := map[string]any{"ids": ids}
	return c.delete(ctx, fmt.Sprintf("/raindrops/%d", collectionID), body)
}

// collectionRaindropIDs pages through a collection and returns every
// bookmark id, MaxPerPage at a time.
func (c *Client) collectionRaindropIDs(ctx context.Context, collectionID int) ([]int, error) {
	var ids []int
	for page := 0; ; page++ {
		result, err := c.SearchRaindrops(ctx, SearchParams{
			Collection: collectionID,
			Page:       page,
			PerPage:    MaxPerPage,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range result.Items {
			ids = append(ids, item.ID)
		}
		if len(ids) >= result.Count || len(result.Items) == 0 {
			return ids, nil
		}
	}
}
