package raindrop

import "time"

// Ref is a reference to another entity by id, as the API nests them
// (e.g. {"$id": 42}).
type Ref struct {
	ID int `json:"$id"`
}

// ViewMode is a collection's display mode.
type ViewMode string

const (
	ViewList    ViewMode = "list"
	ViewSimple  ViewMode = "simple"
	ViewGrid    ViewMode = "grid"
	ViewMasonry ViewMode = "masonry"
)

// MediaType classifies a bookmark's content.
type MediaType string

const (
	TypeLink     MediaType = "link"
	TypeArticle  MediaType = "article"
	TypeImage    MediaType = "image"
	TypeVideo    MediaType = "video"
	TypeDocument MediaType = "document"
	TypeAudio    MediaType = "audio"
)

// ValidMediaType reports whether s is a recognized media type.
func ValidMediaType(s string) bool {
	switch MediaType(s) {
	case TypeLink, TypeArticle, TypeImage, TypeVideo, TypeDocument, TypeAudio:
		return true
	}
	return false
}

// SortKey orders bookmark search results. A leading "-" reverses the order.
type SortKey string

const (
	SortTitle          SortKey = "title"
	SortTitleDesc      SortKey = "-title"
	SortDomain         SortKey = "domain"
	SortDomainDesc     SortKey = "-domain"
	SortCreated        SortKey = "created"
	SortCreatedDesc    SortKey = "-created"
	SortLastUpdate     SortKey = "lastUpdate"
	SortLastUpdateDesc SortKey = "-lastUpdate"
)

// ValidSortKey reports whether s is a recognized sort key.
func ValidSortKey(s string) bool {
	switch SortKey(s) {
	case SortTitle, SortTitleDesc, SortDomain, SortDomainDesc,
		SortCreated, SortCreatedDesc, SortLastUpdate, SortLastUpdateDesc:
		return true
	}
	return false
}

// System collection ids assigned by the service.
const (
	CollectionAll      = 0
	CollectionUnsorted = -1
	CollectionTrash    = -99
)

// Collection is a folder-like grouping of bookmarks. Identifiers are
// assigned by the remote service; this client never generates them.
type Collection struct {
	ID         int       `json:"_id"`
	Title      string    `json:"title"`
	Public     bool      `json:"public"`
	Count      int       `json:"count"`
	View       ViewMode  `json:"view,omitempty"`
	Sort       string    `json:"sort,omitempty"`
	Parent     *Ref      `json:"parent,omitempty"`
	Created    time.Time `json:"created"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Reminder is an optional per-bookmark reminder.
type Reminder struct {
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

// Raindrop is a bookmark. It belongs to exactly one collection at a time;
// moving it replaces the collection reference.
type Raindrop struct {
	ID         int         `json:"_id"`
	Title      string      `json:"title"`
	Link       string      `json:"link"`
	Excerpt    string      `json:"excerpt,omitempty"`
	Tags       []string    `json:"tags"`
	Collection Ref         `json:"collection"`
	Type       MediaType   `json:"type,omitempty"`
	Important  bool        `json:"important,omitempty"`
	Reminder   *Reminder   `json:"reminder,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
	Created    time.Time   `json:"created"`
	LastUpdate time.Time   `json:"lastUpdate"`
}

// Tag is identified by its name; it exists only as strings attached to
// bookmarks. Count is scoped to the collection it was listed from.
type Tag struct {
	Name  string `json:"_id"`
	Count int    `json:"count"`
}

// Highlight is a saved text excerpt attached to a bookmark.
type Highlight struct {
	ID         string    `json:"_id"`
	Text       string    `json:"text"`
	Note       string    `json:"note,omitempty"`
	Color      string    `json:"color,omitempty"`
	RaindropID int       `json:"raindropRef,omitempty"`
	Created    time.Time `json:"created"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// User is the account profile. Read-only; never mutated by this system.
type User struct {
	ID         int       `json:"_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Pro        bool      `json:"pro"`
	Registered time.Time `json:"registered"`
}

// UserStats holds aggregate account counters.
type UserStats struct {
	Raindrops   int `json:"count"`
	Collections int `json:"collections"`
	Tags        int `json:"tags"`
}
