package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/construction"
)

// WeatherImpactTool handles the weather_impact MCP tool. The forecast
// source is injected so tests can pin the condition.
type WeatherImpactTool struct {
	condition func() string
}

// NewWeatherImpactTool creates a WeatherImpactTool drawing conditions
// at random.
func NewWeatherImpactTool() *WeatherImpactTool {
	return &WeatherImpactTool{condition: construction.RandomCondition}
}

// Definition returns the MCP tool definition for registration.
func (t *WeatherImpactTool) Definition() mcp.Tool {
	return mcp.NewTool("weather_impact",
		mcp.WithDescription("Check weather impact on construction activities"),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("Site location the forecast applies to"),
		),
		mcp.WithString("activity",
			mcp.Required(),
			mcp.Description("Planned activity"),
			mcp.Enum("concrete_pour", "excavation", "roofing", "painting"),
		),
		mcp.WithString("date",
			mcp.Description("Planned date, e.g. '2026-09-02' (defaults to today)"),
		),
	)
}

// Handle processes the weather_impact tool call.
func (t *WeatherImpactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location := req.GetString("location", "")
	activity := req.GetString("activity", "")
	if location == "" {
		return mcp.NewToolResultError("'location' is required"), nil
	}
	if activity == "" {
		return mcp.NewToolResultError("'activity' is required"), nil
	}
	date := req.GetString("date", "")
	if date == "" {
		date = timeNow().Format("2006-01-02")
	}

	condition := t.condition()
	impact := construction.WeatherImpact(activity, condition)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Weather Impact for %s in %s on %s:\n\nCondition: %s\nRecommendation: %s",
		activity, location, date, condition, impact,
	)), nil
}
