package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/whatsapp"
)

// SendMessageTool handles the send_group_message MCP tool.
type SendMessageTool struct {
	session *whatsapp.Session
	client  whatsapp.Client
}

// NewSendMessageTool creates a SendMessageTool over the given session
// and channel adapter.
func NewSendMessageTool(session *whatsapp.Session, client whatsapp.Client) *SendMessageTool {
	return &SendMessageTool{session: session, client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *SendMessageTool) Definition() mcp.Tool {
	return mcp.NewTool("send_group_message",
		mcp.WithDescription("Send a message to a WhatsApp group"),
		mcp.WithString("groupName",
			mcp.Required(),
			mcp.Description("Group name, exact or partial"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message text to send"),
		),
	)
}

// Handle processes the send_group_message tool call.
func (t *SendMessageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.session.RequireReady(); err != nil {
		return notConnectedResult(), nil
	}

	groupName := req.GetString("groupName", "")
	message := req.GetString("message", "")
	if groupName == "" {
		return mcp.NewToolResultError("'groupName' is required"), nil
	}
	if message == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}

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

	if err := t.client.SendToGroup(ctx, group.ID, message); err != nil {
		return channelFailure(&whatsapp.SendError{Target: group.DisplayName, Err: err}), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ Message sent to %q:\n\n%q\n\n⏰ Sent at: %s",
		group.DisplayName, message, timeNow().Format("2006-01-02 15:04:05"),
	)), nil
}
