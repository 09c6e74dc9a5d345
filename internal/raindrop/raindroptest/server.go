// Package raindroptest provides an in-memory fake of the Raindrop.io
// REST API for tests. It implements the subset of endpoints the client
// uses, with the same envelope shapes and error codes, backed by maps
// instead of a real account.
package raindroptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

// Token is the bearer token the fake server accepts.
const Token = "test-token"

// Server is a fake Raindrop.io API backed by in-memory state. All
// methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[int]*raindrop.Collection
	raindrops   map[int]*raindrop.Raindrop
	user        raindrop.User

	nextCollectionID int
	nextRaindropID   int
	nextHighlightID  int

	exportRequested bool
	exportPollsLeft int
	exportURL       string

	importStatus   string
	importProgress int

	// ExportPollsUntilReady is how many status polls report the export
	// as in progress before it flips to ready.
	ExportPollsUntilReady int
}

// NewServer starts a fake API server. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		collections:      make(map[int]*raindrop.Collection),
		raindrops:        make(map[int]*raindrop.Raindrop),
		nextCollectionID: 100,
		nextRaindropID:   1000,
		nextHighlightID:  1,
		importStatus:     "idle",
		user: raindrop.User{
			ID:         7,
			Email:      "reader@example.com",
			FullName:   "Test Reader",
			Pro:        true,
			Registered: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// SeedCollection inserts a collection and returns its id.
func (s *Server) SeedCollection(title string, parentID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextCollectionID
	s.nextCollectionID++
	col := &raindrop.Collection{
		ID:         id,
		Title:      title,
		View:       raindrop.ViewList,
		Created:    time.Now().UTC(),
		LastUpdate: time.Now().UTC(),
	}
	if parentID != 0 {
		col.Parent = &raindrop.Ref{ID: parentID}
	}
	s.collections[id] = col
	return id
}

// SeedRaindrop inserts a bookmark into the given collection and returns
// its id.
func (s *Server) SeedRaindrop(collectionID int, item raindrop.Raindrop) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextRaindropID
	s.nextRaindropID++
	item.ID = id
	item.Collection = raindrop.Ref{ID: collectionID}
	if item.Created.IsZero() {
		item.Created = time.Now().UTC()
	}
	if item.LastUpdate.IsZero() {
		item.LastUpdate = item.Created
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	for i := range item.Highlights {
		if item.Highlights[i].ID == "" {
			item.Highlights[i].ID = s.newHighlightIDLocked()
		}
	}
	s.raindrops[id] = &item
	if col, ok := s.collections[collectionID]; ok {
		col.Count++
	}
	return id
}

// Raindrop returns a copy of the stored bookmark, or nil.
func (s *Server) Raindrop(id int) *raindrop.Raindrop {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.raindrops[id]
	if !ok {
		return nil
	}
	cp := *item
	return &cp
}

// Collection returns a copy of the stored collection, or nil.
func (s *Server) Collection(id int) *raindrop.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[id]
	if !ok {
		return nil
	}
	cp := *col
	return &cp
}

// SetImportStatus sets what /import/status reports.
func (s *Server) SetImportStatus(status string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importStatus = status
	s.importProgress = progress
}

func (s *Server) newHighlightIDLocked() string {
	id := s.nextHighlightID
	s.nextHighlightID++
	return fmt.Sprintf("hl%04d", id)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+Token {
		writeError(w, http.StatusUnauthorized, "Incorrect access_token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	segs := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "collections":
		s.listCollections(w, false)
	case r.Method == http.MethodGet && path == "collections/childrens":
		s.listCollections(w, true)
	case r.Method == http.MethodPost && path == "collection":
		s.createCollection(w, r)
	case r.Method == http.MethodPut && path == "collections/merge":
		s.mergeCollections(w, r)
	case r.Method == http.MethodPut && path == "collections/clean":
		s.cleanCollections(w)
	case len(segs) == 2 && segs[0] == "collection":
		s.collectionByID(w, r, segs[1])
	case len(segs) == 3 && segs[0] == "collection" && segs[2] == "sharing":
		s.shareCollection(w, r, segs[1])
	case len(segs) == 2 && segs[0] == "raindrop":
		s.raindropByID(w, r, segs[1])
	case r.Method == http.MethodPost && path == "raindrop":
		s.createRaindrop(w, r)
	case len(segs) == 2 && segs[0] == "raindrops":
		s.raindropsByCollection(w, r, segs[1])
	case len(segs) == 3 && segs[0] == "raindrops" && strings.HasPrefix(segs[2], "export."):
		s.startExport(w, segs[2])
	case len(segs) == 2 && segs[0] == "tags":
		s.tagsByCollection(w, r, segs[1])
	case r.Method == http.MethodGet && path == "user":
		writeJSON(w, map[string]any{"result": true, "user": s.user})
	case r.Method == http.MethodGet && path == "user/stats":
		s.userStats(w)
	case r.Method == http.MethodGet && path == "export/status":
		s.exportStatusHandler(w)
	case r.Method == http.MethodGet && path == "import/status":
		writeJSON(w, map[string]any{"result": true, "import": map[string]any{
			"status":   s.importStatus,
			"progress": s.importProgress,
		}})
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) listCollections(w http.ResponseWriter, children bool) {
	items := []raindrop.Collection{}
	for _, col := range s.collections {
		if (col.Parent != nil) == children {
			items = append(items, *col)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, map[string]any{"result": true, "items": items, "count": len(items)})
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string `json:"title"`
		Public bool   `json:"public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		writeError(w, http.StatusBadRequest, "Title required")
		return
	}
	id := s.nextCollectionID
	s.nextCollectionID++
	col := &raindrop.Collection{
		ID:         id,
		Title:      body.Title,
		Public:     body.Public,
		View:       raindrop.ViewList,
		Created:    time.Now().UTC(),
		LastUpdate: time.Now().UTC(),
	}
	s.collections[id] = col
	writeJSON(w, map[string]any{"result": true, "item": col})
}

func (s *Server) collectionByID(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad collection id")
		return
	}

	if id == raindrop.CollectionTrash && r.Method == http.MethodDelete {
		for rid, item := range s.raindrops {
			if item.Collection.ID == raindrop.CollectionTrash {
				delete(s.raindrops, rid)
			}
		}
		writeJSON(w, map[string]any{"result": true})
		return
	}

	col, ok := s.collections[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Collection not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{"result": true, "item": col})
	case http.MethodPut:
		var body raindrop.CollectionUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		if body.Title != nil {
			col.Title = *body.Title
		}
		if body.Public != nil {
			col.Public = *body.Public
		}
		if body.View != nil {
			col.View = *body.View
		}
		if body.Sort != nil {
			col.Sort = *body.Sort
		}
		if body.Parent != nil {
			col.Parent = body.Parent
		}
		col.LastUpdate = time.Now().UTC()
		writeJSON(w, map[string]any{"result": true, "item": col})
	case http.MethodDelete:
		for _, item := range s.raindrops {
			if item.Collection.ID == id {
				item.Collection = raindrop.Ref{ID: raindrop.CollectionUnsorted}
			}
		}
		delete(s.collections, id)
		writeJSON(w, map[string]any{"result": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) shareCollection(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad collection id")
		return
	}
	if _, ok := s.collections[id]; !ok {
		writeError(w, http.StatusNotFound, "Collection not found")
		return
	}
	var body struct {
		Level  string   `json:"level"`
		Emails []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Bad body")
		return
	}
	if body.Level != "view" && body.Level != "edit" {
		writeError(w, http.StatusBadRequest, "Bad level")
		return
	}
	writeJSON(w, map[string]any{"result": true, "emails": body.Emails})
}

func (s *Server) mergeCollections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To  int   `json:"to"`
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Bad body")
		return
	}
	if _, ok := s.collections[body.To]; !ok {
		writeError(w, http.StatusNotFound, "Target collection not found")
		return
	}
	for _, src := range body.IDs {
		if _, ok := s.collections[src]; !ok {
			continue
		}
		for _, item := range s.raindrops {
			if item.Collection.ID == src {
				item.Collection = raindrop.Ref{ID: body.To}
			}
		}
		delete(s.collections, src)
	}
	writeJSON(w, map[string]any{"result": true})
}

func (s *Server) cleanCollections(w http.ResponseWriter) {
	counts := make(map[int]int)
	for _, item := range s.raindrops {
		counts[item.Collection.ID]++
	}
	removed := 0
	for id := range s.collections {
		if counts[id] == 0 {
			delete(s.collections, id)
			removed++
		}
	}
	writeJSON(w, map[string]any{"result": true, "count": removed})
}

func (s *Server) createRaindrop(w http.ResponseWriter, r *http.Request) {
	var body raindrop.RaindropCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Link == "" {
		writeError(w, http.StatusBadRequest, "Link required")
		return
	}
	id := s.nextRaindropID
	s.nextRaindropID++
	collection := raindrop.CollectionUnsorted
	if body.Collection != nil {
		if _, ok := s.collections[body.Collection.ID]; !ok && body.Collection.ID > 0 {
			writeError(w, http.StatusNotFound, "Collection not found")
			return
		}
		collection = body.Collection.ID
	}
	title := body.Title
	if title == "" {
		title = body.Link
	}
	tags := body.Tags
	if tags == nil {
		tags = []string{}
	}
	item := &raindrop.Raindrop{
		ID:         id,
		Title:      title,
		Link:       body.Link,
		Excerpt:    body.Excerpt,
		Tags:       tags,
		Collection: raindrop.Ref{ID: collection},
		Type:       raindrop.TypeLink,
		Important:  body.Important,
		Reminder:   body.Reminder,
		Created:    time.Now().UTC(),
		LastUpdate: time.Now().UTC(),
	}
	s.raindrops[id] = item
	if col, ok := s.collections[collection]; ok {
		col.Count++
	}
	writeJSON(w, map[string]any{"result": true, "item": item})
}

func (s *Server) raindropByID(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad raindrop id")
		return
	}
	item, ok := s.raindrops[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Raindrop not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{"result": true, "item": item})
	case http.MethodPut:
		var body raindrop.RaindropUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		s.applyUpdate(item, body)
		writeJSON(w, map[string]any{"result": true, "item": item})
	case http.MethodDelete:
		permanent := r.URL.Query().Get("permanent") == "true"
		if permanent || item.Collection.ID == raindrop.CollectionTrash {
			delete(s.raindrops, id)
		} else {
			item.Collection = raindrop.Ref{ID: raindrop.CollectionTrash}
		}
		writeJSON(w, map[string]any{"result": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) applyUpdate(item *raindrop.Raindrop, update raindrop.RaindropUpdate) {
	if update.Title != "" {
		item.Title = update.Title
	}
	if update.Link != "" {
		item.Link = update.Link
	}
	if update.Excerpt != "" {
		item.Excerpt = update.Excerpt
	}
	if update.Tags != nil {
		item.Tags = update.Tags
	}
	if update.Collection != nil {
		item.Collection = *update.Collection
	}
	if update.Important != nil {
		item.Important = *update.Important
	}
	if update.Reminder != nil {
		if update.Reminder.Date.IsZero() {
			item.Reminder = nil
		} else {
			item.Reminder = update.Reminder
		}
	}
	if update.Highlights != nil {
		patch := make([]raindrop.Highlight, len(*update.Highlights))
		copy(patch, *update.Highlights)
		for i := range patch {
			if patch[i].ID == "" {
				patch[i].ID = s.newHighlightIDLocked()
				patch[i].Created = time.Now().UTC()
			}
			patch[i].LastUpdate = time.Now().UTC()
			patch[i].RaindropID = 0
		}
		item.Highlights = patch
	}
	item.LastUpdate = time.Now().UTC()
}

func (s *Server) raindropsByCollection(w http.ResponseWriter, r *http.Request, rawID string) {
	collectionID, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad collection id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if ids := r.URL.Query().Get("ids"); ids != "" {
			s.multiGet(w, ids)
			return
		}
		s.searchRaindrops(w, collectionID, r.URL.Query())
	case http.MethodPut:
		var body struct {
			IDs []int `json:"ids"`
			raindrop.RaindropUpdate
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		for _, id := range body.IDs {
			if item, ok := s.raindrops[id]; ok {
				s.applyUpdate(item, body.RaindropUpdate)
			}
		}
		writeJSON(w, map[string]any{"result": true})
	case http.MethodDelete:
		var body struct {
			IDs []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		for _, id := range body.IDs {
			if item, ok := s.raindrops[id]; ok {
				item.Collection = raindrop.Ref{ID: raindrop.CollectionTrash}
				item.LastUpdate = time.Now().UTC()
			}
		}
		writeJSON(w, map[string]any{"result": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) multiGet(w http.ResponseWriter, raw string) {
	items := []raindrop.Raindrop{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if item, ok := s.raindrops[id]; ok {
			items = append(items, *item)
		}
	}
	writeJSON(w, map[string]any{"result": true, "items": items, "count": len(items)})
}

func (s *Server) searchRaindrops(w http.ResponseWriter, collectionID int, query url.Values) {
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("perpage"))
	if perPage <= 0 {
		perPage = raindrop.DefaultPerPage
	}
	if perPage > raindrop.MaxPerPage {
		perPage = raindrop.MaxPerPage
	}

	if collectionID > 0 {
		if _, ok := s.collections[collectionID]; !ok {
			writeError(w, http.StatusNotFound, "Collection not found")
			return
		}
	}

	filter := parseSearch(query.Get("search"))
	var matched []raindrop.Raindrop
	for _, item := range s.raindrops {
		if !inCollection(item, collectionID) {
			continue
		}
		if filter.matches(item) {
			matched = append(matched, *item)
		}
	}
	sortItems(matched, query.Get("sort"))

	total := len(matched)
	start := page * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	pageItems := matched[start:end]
	if pageItems == nil {
		pageItems = []raindrop.Raindrop{}
	}
	writeJSON(w, map[string]any{"result": true, "items": pageItems, "count": total})
}

func inCollection(item *raindrop.Raindrop, collectionID int) bool {
	switch collectionID {
	case raindrop.CollectionAll:
		return item.Collection.ID != raindrop.CollectionTrash
	default:
		return item.Collection.ID == collectionID
	}
}

// searchFilter is a parsed form of the API's search expression syntax.
type searchFilter struct {
	text          string
	tags          []string
	important     bool
	mediaType     string
	createdAfter  string
	createdBefore string
}

func parseSearch(expr string) searchFilter {
	var f searchFilter
	var free []string
	for _, term := range splitTerms(expr) {
		switch {
		case strings.HasPrefix(term, `#"`) && strings.HasSuffix(term, `"`):
			f.tags = append(f.tags, strings.Trim(term[1:], `"`))
		case strings.HasPrefix(term, "#"):
			f.tags = append(f.tags, term[1:])
		case term == "important:true":
			f.important = true
		case strings.HasPrefix(term, "type:"):
			f.mediaType = strings.TrimPrefix(term, "type:")
		case strings.HasPrefix(term, "created:>"):
			f.createdAfter = strings.TrimPrefix(term, "created:>")
		case strings.HasPrefix(term, "created:<"):
			f.createdBefore = strings.TrimPrefix(term, "created:<")
		default:
			free = append(free, term)
		}
	}
	f.text = strings.ToLower(strings.Join(free, " "))
	return f
}

// splitTerms splits a search expression on spaces outside quotes.
func splitTerms(expr string) []string {
	var terms []string
	var cur strings.Builder
	inQuote := false
	for _, r := range expr {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			if cur.Len() > 0 {
				terms = append(terms, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		terms = append(terms, cur.String())
	}
	return terms
}

func (f searchFilter) matches(item *raindrop.Raindrop) bool {
	for _, want := range f.tags {
		found := false
		for _, tag := range item.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.important && !item.Important {
		return false
	}
	if f.mediaType != "" && string(item.Type) != f.mediaType {
		return false
	}
	if f.createdAfter != "" {
		if t, err := time.Parse("2006-01-02", f.createdAfter); err == nil && !item.Created.After(t) {
			return false
		}
	}
	if f.createdBefore != "" {
		if t, err := time.Parse("2006-01-02", f.createdBefore); err == nil && !item.Created.Before(t) {
			return false
		}
	}
	if f.text != "" {
		haystack := strings.ToLower(item.Title + " " + item.Excerpt + " " + item.Link)
		if !strings.Contains(haystack, f.text) {
			return false
		}
	}
	return true
}

func sortItems(items []raindrop.Raindrop, key string) {
	if key == "" {
		key = "-created"
	}
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")
	less := func(i, j int) bool {
		a, b := items[i], items[j]
		switch field {
		case "title":
			return a.Title < b.Title
		case "domain":
			return domainOf(a.Link) < domainOf(b.Link)
		case "lastUpdate":
			return a.LastUpdate.Before(b.LastUpdate)
		default:
			if a.Created.Equal(b.Created) {
				return a.ID < b.ID
			}
			return a.Created.Before(b.Created)
		}
	}
	if desc {
		sort.SliceStable(items, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(items, less)
	}
}

func domainOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.Host
}

func (s *Server) tagsByCollection(w http.ResponseWriter, r *http.Request, rawID string) {
	collectionID, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad collection id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		counts := make(map[string]int)
		for _, item := range s.raindrops {
			if !inCollection(item, collectionID) {
				continue
			}
			for _, tag := range item.Tags {
				counts[tag]++
			}
		}
		items := []raindrop.Tag{}
		for name, count := range counts {
			items = append(items, raindrop.Tag{Name: name, Count: count})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		writeJSON(w, map[string]any{"result": true, "items": items, "count": len(items)})
	case http.MethodPut:
		var body struct {
			Replace string   `json:"replace"`
			Tags    []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Replace == "" {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		if !s.renameTags(collectionID, body.Tags, body.Replace) {
			writeError(w, http.StatusNotFound, "Tag not found")
			return
		}
		writeJSON(w, map[string]any{"result": true})
	case http.MethodDelete:
		var body struct {
			Tags []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Bad body")
			return
		}
		remove := make(map[string]bool, len(body.Tags))
		for _, tag := range body.Tags {
			remove[tag] = true
		}
		for _, item := range s.raindrops {
			if !inCollection(item, collectionID) {
				continue
			}
			kept := item.Tags[:0]
			for _, tag := range item.Tags {
				if !remove[tag] {
					kept = append(kept, tag)
				}
			}
			item.Tags = kept
		}
		writeJSON(w, map[string]any{"result": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// renameTags replaces each listed tag with the new name. Returns false
// when none of the scoped bookmarks carry any of the tags.
func (s *Server) renameTags(collectionID int, tags []string, replace string) bool {
	rename := make(map[string]bool, len(tags))
	for _, tag := range tags {
		rename[tag] = true
	}
	touched := false
	for _, item := range s.raindrops {
		if !inCollection(item, collectionID) {
			continue
		}
		for i, tag := range item.Tags {
			if rename[tag] {
				item.Tags[i] = replace
				touched = true
			}
		}
	}
	return touched
}

func (s *Server) userStats(w http.ResponseWriter) {
	total := 0
	tags := make(map[string]bool)
	for _, item := range s.raindrops {
		if item.Collection.ID != raindrop.CollectionTrash {
			total++
		}
		for _, tag := range item.Tags {
			tags[tag] = true
		}
	}
	items := []map[string]any{{"_id": raindrop.CollectionAll, "count": total}}
	for id := range s.collections {
		count := 0
		for _, item := range s.raindrops {
			if item.Collection.ID == id {
				count++
			}
		}
		items = append(items, map[string]any{"_id": id, "count": count})
	}
	writeJSON(w, map[string]any{
		"result": true,
		"items":  items,
		"meta":   map[string]any{"tags": len(tags)},
	})
}

func (s *Server) startExport(w http.ResponseWriter, file string) {
	format := strings.TrimPrefix(file, "export.")
	if !raindrop.ValidExportFormat(raindrop.ExportFormat(format)) {
		writeError(w, http.StatusBadRequest, "Bad export format")
		return
	}
	s.exportRequested = true
	s.exportPollsLeft = s.ExportPollsUntilReady
	s.exportURL = s.URL + "/download/export." + format
	writeJSON(w, map[string]any{"result": true, "url": s.exportURL})
}

func (s *Server) exportStatusHandler(w http.ResponseWriter) {
	status := map[string]any{"status": "idle"}
	switch {
	case !s.exportRequested:
	case s.exportPollsLeft > 0:
		s.exportPollsLeft--
		status["status"] = "in_progress"
	default:
		status["status"] = "ready"
		status["url"] = s.exportURL
	}
	writeJSON(w, map[string]any{"result": true, "export": status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"result": false, "errorMessage": msg})
}
