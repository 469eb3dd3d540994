// Package tools implements the MCP tool handlers.
//
// Each tool is a struct that receives its dependencies via the
// constructor and exposes Definition() for registration plus Handle()
// for dispatch. Taxonomy failures (unknown project, channel not
// ready, group not found, delivery failure) are recovered here and
// rendered as ❌-marked text inside the normal response envelope —
// callers never see a raw fault.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sitechat/internal/whatsapp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are
// float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// notConnectedResult is the uniform response for channel-dependent
// tools called while the session is not ready.
func notConnectedResult() *mcp.CallToolResult {
	return mcp.NewToolResultError(
		"❌ WhatsApp not connected. Please scan the QR code first.",
	)
}

// projectNotFoundResult renders the unknown-project failure.
func projectNotFoundResult(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("❌ Project %s not found", id))
}

// groupNotFoundResult renders the unknown-group failure with the
// available display names as remediation.
func groupNotFoundResult(nf *whatsapp.GroupNotFoundError) *mcp.CallToolResult {
	available := "(none)"
	if len(nf.Available) > 0 {
		available = strings.Join(nf.Available, ", ")
	}
	return mcp.NewToolResultError(fmt.Sprintf(
		"❌ Group %q not found.\n\nAvailable groups: %s\n\n"+
			"Tip: Try using partial names (e.g., \"family\" instead of \"Family Group 2024\")",
		nf.Name, available,
	))
}

// channelFailure maps a channel-layer error to its envelope rendering,
// or returns nil for errors the caller should handle itself.
func channelFailure(err error) *mcp.CallToolResult {
	var nf *whatsapp.GroupNotFoundError
	switch {
	case errors.Is(err, whatsapp.ErrChannelNotReady):
		return notConnectedResult()
	case errors.As(err, &nf):
		return groupNotFoundResult(nf)
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error sending message: %v", err))
	}
	return nil
}

// dollars renders a cost amount.
func dollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
