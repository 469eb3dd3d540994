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

// TrackProgressTool handles the track_progress MCP tool.
// Updates landing on a positive multiple of 25 raise a low-urgency
// milestone notification as a side effect of the same call.
type TrackProgressTool struct {
	repo   project.Repository
	engine *notify.Engine
}

// NewTrackProgressTool creates a TrackProgressTool with the given
// repository and notification engine.
func NewTrackProgressTool(repo project.Repository, engine *notify.Engine) *TrackProgressTool {
	return &TrackProgressTool{repo: repo, engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *TrackProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("track_progress",
		mcp.WithDescription(
			"Update and track project progress. Completion percentages that are "+
				"multiples of 25 trigger an automatic WhatsApp milestone notification.",
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project identifier from create_project"),
		),
		mcp.WithString("phase",
			mcp.Required(),
			mcp.Description("Current construction phase"),
			mcp.Enum("planning", "excavation", "foundation", "structure", "finishing"),
		),
		mcp.WithNumber("completion",
			mcp.Required(),
			mcp.Description("Completion percentage (0-100)"),
		),
		mcp.WithString("notes",
			mcp.Description("Progress notes"),
		),
	)
}

// Handle processes the track_progress tool call.
func (t *TrackProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	phase := project.Phase(req.GetString("phase", ""))
	completion := intArg(req, "completion", -1)
	notes := req.GetString("notes", "")

	if err := project.ValidatePhase(phase); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := project.ValidateCompletion(completion); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, milestone, err := t.repo.UpdateProgress(projectID, phase, completion, notes)
	if errors.Is(err, project.ErrNotFound) {
		return projectNotFoundResult(projectID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating progress: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Progress updated: %d%% complete\nPhase: %s\n", p.Completion, p.Phase)
	if notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}

	if milestone {
		// The progress write is already committed — a failed
		// notification is reported, never rolled back into a failure.
		if _, nerr := t.engine.MilestoneReached(ctx, p, notes); nerr != nil {
			fmt.Fprintf(&b, "\n⚠️ Milestone notification could not be delivered: %v", nerr)
		} else {
			b.WriteString("\nMilestone notification sent! 🎉")
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
