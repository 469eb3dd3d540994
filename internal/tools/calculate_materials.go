package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/construction"
)

// CalculateMaterialsTool handles the calculate_materials MCP tool.
type CalculateMaterialsTool struct{}

// NewCalculateMaterialsTool creates a CalculateMaterialsTool.
func NewCalculateMaterialsTool() *CalculateMaterialsTool {
	return &CalculateMaterialsTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *CalculateMaterialsTool) Definition() mcp.Tool {
	return mcp.NewTool("calculate_materials",
		mcp.WithDescription("Calculate material quantities for a basic structure"),
		mcp.WithString("structure",
			mcp.Required(),
			mcp.Description("Structure type"),
			mcp.Enum("foundation", "wall", "slab", "beam"),
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

// Handle processes the calculate_materials tool call.
func (t *CalculateMaterialsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := construction.Dimensions{
		Length: req.GetFloat("length", 0),
		Width:  req.GetFloat("width", 0),
		Height: req.GetFloat("height", 0),
	}
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return mcp.NewToolResultError("'length', 'width' and 'height' must be positive"), nil
	}

	est, err := construction.CalculateMaterials(req.GetString("structure", ""), d)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := json.MarshalIndent(est, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding estimate: %w", err)
	}

	var b strings.Builder
	b.WriteString("🏗️ Material Calculation:\n\n")
	b.WriteString(est.Description)
	b.WriteString("\n\n")
	b.Write(detail)
	return mcp.NewToolResultText(b.String()), nil
}
