package raindrop

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// ExportFormat selects the file format of a bookmark export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportHTML ExportFormat = "html"
	ExportZIP  ExportFormat = "zip"
)

// ValidExportFormat reports whether f is a format the export endpoint
// accepts.
func ValidExportFormat(f ExportFormat) bool {
	switch f {
	case ExportCSV, ExportHTML, ExportZIP:
		return true
	}
	return false
}

// ExportOptions narrows which bookmarks an export includes. A nil
// Collection exports everything.
type ExportOptions struct {
	Format     ExportFormat
	Collection *int
	Broken     bool
	Duplicates bool
}

// ExportBookmarks starts a server-side export and returns the URL the
// finished file will be downloadable from. The export itself runs
// asynchronously; poll GetExportStatus until it reports ready.
func (c *Client) ExportBookmarks(ctx context.Context, opts ExportOptions) (string, error) {
	format := opts.Format
	if format == "" {
		format = ExportCSV
	}
	collection := CollectionAll
	if opts.Collection != nil {
		collection = *opts.Collection
	}
	query := url.Values{}
	var flags []string
	if opts.Broken {
		flags = append(flags, "broken")
	}
	if opts.Duplicates {
		flags = append(flags, "duplicates")
	}
	if len(flags) > 0 {
		query.Set("options", strings.Join(flags, ","))
	}
	path := "/raindrops/" + strconv.Itoa(collection) + "/export." + string(format)
	var resp struct {
		Result bool   `json:"result"`
		URL    string `json:"url"`
	}
	if err := c.get(ctx, path, query, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// ExportStatus reports the progress of an asynchronous export.
type ExportStatus struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}

// Ready reports whether the export file is available for download.
func (s ExportStatus) Ready() bool {
	return s.Status == "ready"
}

// GetExportStatus returns the state of the most recent export.
func (c *Client) GetExportStatus(ctx context.Context) (*ExportStatus, error) {
	var resp struct {
		Result bool         `json:"result"`
		Status ExportStatus `json:"export"`
	}
	if err := c.get(ctx, "/export/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Status, nil
}

// ImportStatus reports the progress of a file import started from the
// Raindrop web application.
type ImportStatus struct {
	Status   string `json:"status"`
	Progress int    `json:"progress,omitempty"`
}

// GetImportStatus returns the state of the current or most recent
// import.
func (c *Client) GetImportStatus(ctx context.Context) (*ImportStatus, error) {
	var resp struct {
		Result bool         `json:"result"`
		Status ImportStatus `json:"import"`
	}
	if err := c.get(ctx, "/import/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Status, nil
}
