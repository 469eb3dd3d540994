package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/notify"
	"sitechat/internal/project"
)

// SendUpdateTool handles the send_whatsapp_update MCP tool: an
// explicit, operator-requested update to the project contact.
type SendUpdateTool struct {
	repo   project.Repository
	engine *notify.Engine
}

// NewSendUpdateTool creates a SendUpdateTool with the given repository
// and notification engine.
func NewSendUpdateTool(repo project.Repository, engine *notify.Engine) *SendUpdateTool {
	return &SendUpdateTool{repo: repo, engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *SendUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("send_whatsapp_update",
		mcp.WithDescription("Send project update via WhatsApp to the project contact"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project identifier from create_project"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Update text to send"),
		),
		mcp.WithString("urgency",
			mcp.Description("Urgency level (default medium)"),
			mcp.Enum("low", "medium", "high"),
		),
	)
}

// Handle processes the send_whatsapp_update tool call. Unlike the
// automatic notification paths, delivery failure here fails the whole
// operation — the operator explicitly asked for this send.
func (t *SendUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	urgency, err := notify.ParseUrgency(req.GetString("urgency", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := t.repo.GetProject(projectID)
	if errors.Is(err, project.ErrNotFound) {
		return projectNotFoundResult(projectID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if _, err := t.engine.ProjectUpdate(ctx, p, message, urgency); err != nil {
		return channelFailure(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"WhatsApp update sent to %s:\n%q\n\nStatus: Delivered ✅\nUrgency: %s",
		p.Contact, message, urgency,
	)), nil
}
