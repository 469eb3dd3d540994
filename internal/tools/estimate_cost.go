package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/construction"
)

// EstimateCostTool handles the estimate_cost MCP tool.
type EstimateCostTool struct{}

// NewEstimateCostTool creates an EstimateCostTool.
func NewEstimateCostTool() *EstimateCostTool {
	return &EstimateCostTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *EstimateCostTool) Definition() mcp.Tool {
	return mcp.NewTool("estimate_cost",
		mcp.WithDescription("Estimate the cost of a material quantity"),
		mcp.WithString("material",
			mcp.Required(),
			mcp.Description("Material name"),
			mcp.Enum(construction.MaterialNames()...),
		),
		mcp.WithNumber("quantity",
			mcp.Required(),
			mcp.Description("Quantity in the material's unit"),
		),
	)
}

// Handle processes the estimate_cost tool call.
func (t *EstimateCostTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	material := req.GetString("material", "")
	quantity := req.GetFloat("quantity", 0)
	if quantity < 0 {
		return mcp.NewToolResultError("'quantity' must not be negative"), nil
	}

	cost, err := construction.EstimateCost(material, quantity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"%v: must be one of: %s", err, strings.Join(construction.MaterialNames(), ", "),
		)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"💰 Cost Estimate:\n\n%s: %v %s = %s",
		material, quantity, construction.Materials[material].Unit, dollars(cost),
	)), nil
}
