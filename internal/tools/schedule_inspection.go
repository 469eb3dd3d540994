package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/notify"
	"sitechat/internal/project"
)

// ScheduleInspectionTool handles the schedule_inspection MCP tool.
// Every scheduled inspection sends a medium-urgency WhatsApp reminder
// to the project contact.
type ScheduleInspectionTool struct {
	repo   project.Repository
	engine *notify.Engine
}

// NewScheduleInspectionTool creates a ScheduleInspectionTool with the
// given repository and notification engine.
func NewScheduleInspectionTool(repo project.Repository, engine *notify.Engine) *ScheduleInspectionTool {
	return &ScheduleInspectionTool{repo: repo, engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *ScheduleInspectionTool) Definition() mcp.Tool {
	return mcp.NewTool("schedule_inspection",
		mcp.WithDescription("Schedule quality inspections with WhatsApp reminders"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project identifier from create_project"),
		),
		mcp.WithString("inspectionType",
			mcp.Required(),
			mcp.Description("What is being inspected"),
			mcp.Enum("foundation", "structure", "electrical", "plumbing"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Inspection date, e.g. '2026-03-15'"),
		),
		mcp.WithString("inspector",
			mcp.Description("Inspector name (optional)"),
		),
	)
}

// Handle processes the schedule_inspection tool call.
func (t *ScheduleInspectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	inspectionType := project.InspectionType(req.GetString("inspectionType", ""))
	date := strings.TrimSpace(req.GetString("date", ""))
	inspector := req.GetString("inspector", "")

	if err := project.ValidateInspectionType(inspectionType); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if date == "" {
		return mcp.NewToolResultError("'date' is required"), nil
	}

	// The project must exist before anything is written or notified.
	p, err := t.repo.GetProject(projectID)
	if errors.Is(err, project.ErrNotFound) {
		return projectNotFoundResult(projectID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	insp := project.NewInspection(p.ID, inspectionType, date, inspector)
	if err := t.repo.PutInspection(insp); err != nil {
		return nil, fmt.Errorf("storing inspection: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s inspection scheduled for %s\n", insp.Type, insp.Date)
	if insp.Inspector != "" {
		fmt.Fprintf(&b, "Inspector: %s\n", insp.Inspector)
	}

	if _, nerr := t.engine.InspectionScheduled(ctx, p, insp); nerr != nil {
		fmt.Fprintf(&b, "\n⚠️ WhatsApp reminder could not be delivered: %v", nerr)
	} else {
		b.WriteString("WhatsApp reminder sent! 📱")
	}

	return mcp.NewToolResultText(b.String()), nil
}
