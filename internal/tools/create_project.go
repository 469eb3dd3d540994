package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/project"
)

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	repo project.Repository
}

// NewCreateProjectTool creates a CreateProjectTool with the given repository.
func NewCreateProjectTool(repo project.Repository) *CreateProjectTool {
	return &CreateProjectTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create and track construction project"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("Site location"),
		),
		mcp.WithString("contact",
			mcp.Required(),
			mcp.Description("WhatsApp number receiving project updates"),
		),
		mcp.WithString("timeline",
			mcp.Description("Expected timeline, e.g. 'Q3 2026'"),
		),
		mcp.WithNumber("budget",
			mcp.Description("Project budget"),
		),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	location := strings.TrimSpace(req.GetString("location", ""))
	contact := strings.TrimSpace(req.GetString("contact", ""))
	if name == "" || location == "" || contact == "" {
		return mcp.NewToolResultError("'name', 'location' and 'contact' are required"), nil
	}

	p := project.New(name, location, contact, req.GetString("timeline", ""), req.GetFloat("budget", 0))
	if err := t.repo.PutProject(p); err != nil {
		return nil, fmt.Errorf("storing project: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Project %q created with ID: %s\nLocation: %s\nContact: %s\nReady for WhatsApp updates!",
		p.Name, p.ID, p.Location, p.Contact,
	)), nil
}
