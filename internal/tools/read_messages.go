package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"sitechat/internal/whatsapp"
)

// ReadMessagesTool handles the read_group_messages MCP tool.
type ReadMessagesTool struct {
	session      *whatsapp.Session
	client       whatsapp.Client
	defaultLimit int
}

// NewReadMessagesTool creates a ReadMessagesTool over the given session
// and channel adapter. defaultLimit applies when the caller omits the
// limit argument; zero means the built-in default.
func NewReadMessagesTool(session *whatsapp.Session, client whatsapp.Client, defaultLimit int) *ReadMessagesTool {
	if defaultLimit <= 0 {
		defaultLimit = whatsapp.DefaultLimit
	}
	return &ReadMessagesTool{session: session, client: client, defaultLimit: defaultLimit}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadMessagesTool) Definition() mcp.Tool {
	return mcp.NewTool("read_group_messages",
		mcp.WithDescription("Read recent messages from a WhatsApp group"),
		mcp.WithString("groupName",
			mcp.Required(),
			mcp.Description("Group name, exact or partial"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Number of messages to retrieve (max %d)", whatsapp.MaxLimit)),
		),
	)
}

// Handle processes the read_group_messages tool call.
func (t *ReadMessagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.session.RequireReady(); err != nil {
		return notConnectedResult(), nil
	}

	groupName := req.GetString("groupName", "")
	if groupName == "" {
		return mcp.NewToolResultError("'groupName' is required"), nil
	}
	limit := whatsapp.ClampLimit(intArg(req, "limit", t.defaultLimit))

	groups, err := t.client.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	group, err := whatsapp.ResolveGroup(groupName, groups)
	if err != nil {
		var nf *whatsapp.GroupNotFoundError
		if errors.As(err, &nf) {
			return groupNotFoundResult(nf), nil
		}
		return nil, err
	}

	raw, err := t.client.Messages(ctx, group.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	msgs := whatsapp.Normalize(raw, limit)
	if len(msgs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("📱 No recent messages found in %q", group.DisplayName)), nil
	}

	lines := lo.Map(msgs, func(m whatsapp.Message, _ int) string { return m.Line() })

	var b strings.Builder
	fmt.Fprintf(&b, "💬 Recent messages from %q:\n\n", group.DisplayName)
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n✅ Retrieved %d messages", len(msgs))

	return mcp.NewToolResultText(b.String()), nil
}
