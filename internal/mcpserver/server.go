// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the meeting notes to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/notebook"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/storage"
	"github.com/starford/rapport/internal/view"
)

const formatURI = "rapport://note-format"

// Server wraps the MCP server with the meeting note tools.
type Server struct {
	mcp  *server.MCPServer
	nb   *notebook.Notebook
	term *view.Terminal
	out  storage.Provider
}

// New creates a new MCP server with all tools registered. out receives
// exported documents; when nil, export_meeting_notes is not offered.
func New(nb *notebook.Notebook, term *view.Terminal, out storage.Provider, version string) *Server {
	s := &Server{nb: nb, term: term, out: out}

	s.mcp = server.NewMCPServer(
		"rapport",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_meeting_note",
		mcp.WithDescription("Record a 1x1 meeting note. All fields are required; points is Markdown. "+
			"Read the rapport://note-format resource for the field rules."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Meeting date, e.g. 2024-06-01")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Start time, HH:MM")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("End time, HH:MM")),
		mcp.WithString("reportee", mcp.Required(), mcp.Description("Name of the person met")),
		mcp.WithString("points", mcp.Required(), mcp.Description("Discussion points in Markdown")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("list_meeting_notes",
		mcp.WithDescription("List every meeting note in the order it was recorded, as JSON."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("render_meeting_notes",
		mcp.WithDescription("Render the meeting notes as the card or list view."),
		mcp.WithString("mode", mcp.Enum(string(view.ModeCard), string(view.ModeList)), mcp.Description("Projection mode (default card)")),
		mcp.WithString("format", mcp.Enum("text", "html"), mcp.Description("text for a terminal layout, html for the page fragment (default text)")),
	), s.renderNotes)

	if out != nil {
		s.mcp.AddTool(mcp.NewTool("export_meeting_notes",
			mcp.WithDescription("Write a printable snapshot of the meeting notes to the export directory."),
			mcp.WithString("mode", mcp.Enum(string(view.ModeCard), string(view.ModeList)), mcp.Description("Projection mode (default card)")),
			mcp.WithBoolean("pdf", mcp.Description("Also print the snapshot to PDF with headless Chrome")),
		), s.exportNotes)
	}

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Meeting Note Format",
			mcp.WithResourceDescription("Fields and rules of a 1x1 meeting note, and the inbox file format."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := &models.Draft{
		Date:      req.GetString("date", ""),
		StartTime: req.GetString("start_time", ""),
		EndTime:   req.GetString("end_time", ""),
		Reportee:  req.GetString("reportee", ""),
		Points:    req.GetString("points", ""),
	}
	note, err := s.nb.Submit(ctx, d)
	if err != nil {
		var verr *noteservice.ValidationError
		if errors.As(err, &verr) {
			msg := "note rejected"
			if len(verr.Missing) > 0 {
				msg += "; missing fields: " + strings.Join(verr.Missing, ", ")
			}
			if len(verr.Invalid) > 0 {
				msg += "; " + strings.Join(verr.Invalid, "; ")
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.nb.Notes(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renderNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := view.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch req.GetString("format", "text") {
	case "html":
		out, err := s.nb.Render(mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	case "text":
		out, err := s.term.Render(s.nb.Notes(), mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	default:
		return mcp.NewToolResultError("format must be text or html"), nil
	}
}

func (s *Server) exportNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := view.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.nb.Export(mode, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	base := "meeting-notes-" + snap.ID
	written := []string{base + ".html"}
	if err := s.out.Write(base+".html", []byte(snap.HTML)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save export: %v", err)), nil
	}

	if req.GetBool("pdf", false) {
		pdf, err := s.nb.PDF(ctx, snap)
		if err != nil {
			if errors.Is(err, apperr.ErrSurfaceUnavailable) {
				return mcp.NewToolResultError(fmt.Sprintf("saved %s but PDF printing is unavailable: %v", written[0], err)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.out.Write(base+".pdf", pdf); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save pdf: %v", err)), nil
		}
		written = append(written, base+".pdf")
	}

	return mcp.NewToolResultText("exported: " + strings.Join(written, ", ")), nil
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     NoteFormat,
		},
	}, nil
}
