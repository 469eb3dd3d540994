package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/whatsapp"
)

// ListGroupsTool handles the list_groups MCP tool.
type ListGroupsTool struct {
	session *whatsapp.Session
	client  whatsapp.Client
}

// NewListGroupsTool creates a ListGroupsTool over the given session and
// channel adapter.
func NewListGroupsTool(session *whatsapp.Session, client whatsapp.Client) *ListGroupsTool {
	return &ListGroupsTool{session: session, client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ListGroupsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_groups",
		mcp.WithDescription("List all WhatsApp groups you're part of"),
	)
}

// Handle processes the list_groups tool call.
func (t *ListGroupsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.session.RequireReady(); err != nil {
		return notConnectedResult(), nil
	}

	groups, err := t.client.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	if len(groups) == 0 {
		return mcp.NewToolResultText("📱 No WhatsApp groups found in your account."), nil
	}

	var b strings.Builder
	b.WriteString("📱 Your WhatsApp Groups:\n\n")
	for i, g := range groups {
		fmt.Fprintf(&b, "%d. %s (%d members)\n", i+1, g.DisplayName, g.MemberCount)
	}
	fmt.Fprintf(&b, "\n✅ Found %d groups", len(groups))

	return mcp.NewToolResultText(b.String()), nil
}
