package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/raindropd/internal/poll"
	"github.com/fyrsmithlabs/raindropd/internal/raindrop"
)

type importStatusInput struct{}

type importStatusOutput struct {
	Status   string `json:"status"`
	Progress int    `json:"progress,omitempty"`
}

type exportBookmarksInput struct {
	Format             string `json:"format,omitempty" jsonschema:"Export format: csv html or zip (default csv)"`
	CollectionID       *int   `json:"collection_id,omitempty" jsonschema:"Export only this collection (default everything)"`
	IncludeBroken      bool   `json:"include_broken,omitempty" jsonschema:"Include broken links"`
	IncludeDuplicates  bool   `json:"include_duplicates,omitempty" jsonschema:"Include duplicates"`
	Wait               bool   `json:"wait,omitempty" jsonschema:"Poll until the export file is ready"`
	WaitTimeoutSeconds int    `json:"wait_timeout_seconds,omitempty" jsonschema:"How long to wait when wait is true (default 60)"`
}

type exportBookmarksOutput struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

type exportStatusInput struct{}

type exportStatusOutput struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	URL    string `json:"url,omitempty"`
}

func (s *Server) registerSyncTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "import_status",
		Description: "Check the progress of a bookmark file import started from the Raindrop app.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args importStatusInput) (*mcp.CallToolResult, importStatusOutput, error) {
		status, err := s.client.GetImportStatus(ctx)
		if err != nil {
			return nil, importStatusOutput{}, toolErrorf("get import status", err)
		}
		out := importStatusOutput{Status: status.Status, Progress: status.Progress}
		return textResult("Import status: %s.", out.Status), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "export_bookmarks",
		Description: "Start a server-side bookmark export, optionally waiting until the file is ready.",
	}, s.handleExportBookmarks)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "export_status",
		Description: "Check whether the most recent export is ready for download.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args exportStatusInput) (*mcp.CallToolResult, exportStatusOutput, error) {
		status, err := s.client.GetExportStatus(ctx)
		if err != nil {
			return nil, exportStatusOutput{}, toolErrorf("get export status", err)
		}
		out := exportStatusOutput{Status: status.Status, Ready: status.Ready(), URL: status.URL}
		return textResult("Export status: %s.", out.Status), out, nil
	})
}

func (s *Server) handleExportBookmarks(ctx context.Context, req *mcp.CallToolRequest, args exportBookmarksInput) (*mcp.CallToolResult, exportBookmarksOutput, error) {
	format := raindrop.ExportFormat(args.Format)
	if format == "" {
		format = raindrop.ExportCSV
	}
	if !raindrop.ValidExportFormat(format) {
		return nil, exportBookmarksOutput{}, validationErrorf("export bookmarks",
			"format must be one of csv, html, zip; got %q", args.Format)
	}

	url, err := s.client.ExportBookmarks(ctx, raindrop.ExportOptions{
		Format:     format,
		Collection: args.CollectionID,
		Broken:     args.IncludeBroken,
		Duplicates: args.IncludeDuplicates,
	})
	if err != nil {
		return nil, exportBookmarksOutput{}, toolErrorf("export bookmarks", err)
	}

	out := exportBookmarksOutput{URL: url, Status: "in_progress"}
	if !args.Wait {
		return textResult("Export started; poll export_status until ready. File will be at %s.", url), out, nil
	}

	timeout := time.Duration(args.WaitTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	err = poll.Until(ctx, poll.Options{Timeout: timeout}, func(ctx context.Context) (bool, error) {
		status, err := s.client.GetExportStatus(ctx)
		if err != nil {
			return false, err
		}
		if status.Ready() && status.URL != "" {
			out.URL = status.URL
		}
		return status.Ready(), nil
	})
	if err != nil {
		return nil, out, toolErrorf("export bookmarks", err)
	}
	out.Status = "ready"
	return textResult("Export ready: %s.", out.URL), out, nil
}
