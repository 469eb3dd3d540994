package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"sitechat/internal/construction"
)

// ComplianceCheckTool handles the compliance_check MCP tool.
type ComplianceCheckTool struct{}

// NewComplianceCheckTool creates a ComplianceCheckTool.
func NewComplianceCheckTool() *ComplianceCheckTool {
	return &ComplianceCheckTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ComplianceCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("compliance_check",
		mcp.WithDescription("Verify building code compliance"),
		mcp.WithString("structure",
			mcp.Required(),
			mcp.Description("Structure being checked, e.g. 'warehouse'"),
		),
		mcp.WithString("buildingType",
			mcp.Required(),
			mcp.Description("Building type"),
			mcp.Enum("residential", "commercial", "industrial"),
		),
		mcp.WithNumber("length",
			mcp.Required(),
			mcp.Description("Length in meters"),
		),
		mcp.WithNumber("width",
			mcp.Required(),
			mcp.Description("Width in meters"),
		),
		mcp.WithNumber("height",
			mcp.Required(),
			mcp.Description("Height in meters"),
		),
	)
}

// Handle processes the compliance_check tool call.
func (t *ComplianceCheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// The structure name is accepted for the record; the check itself
	// is driven by dimensions and building type.
	if req.GetString("structure", "") == "" {
		return mcp.NewToolResultError("'structure' is required"), nil
	}
	buildingType := req.GetString("buildingType", "")
	d := construction.Dimensions{
		Length: req.GetFloat("length", 0),
		Width:  req.GetFloat("width", 0),
		Height: req.GetFloat("height", 0),
	}

	violations, err := construction.CheckCompliance(d, buildingType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(violations) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"✅ COMPLIANT - All building codes satisfied for %s construction", buildingType,
		)), nil
	}

	lines := lo.Map(violations, func(v string, _ int) string { return "- " + v })
	return mcp.NewToolResultText(fmt.Sprintf(
		"⚠️ VIOLATIONS FOUND:\n%s\n\nConsult with local authorities!",
		strings.Join(lines, "\n"),
	)), nil
}
