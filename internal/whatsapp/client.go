// Package whatsapp owns the WhatsApp channel core: the connection
// lifecycle state machine, group resolution, and normalization of
// provider message records into a stable representation.
//
// Actual provider connectivity lives behind the Client interface —
// this package gates, resolves, and normalizes, but never speaks the
// wire protocol itself.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Group is an external chat resource as reported by the adapter.
// Groups are fetched fresh on every resolution — this package does
// not cache them.
type Group struct {
	ID          string
	DisplayName string
	MemberCount int
}

// RawMessage is a single provider record, before normalization.
// Adapters return batches newest-first.
type RawMessage struct {
	Timestamp   time.Time
	Author      string // raw sender identifier (e.g. "4915112345678@c.us"); empty for system records
	ContactName string // resolved contact book name, if any
	PushName    string // sender's self-chosen display name, if any
	Body        string
	HasMedia    bool
}

// Client is the channel adapter: the external collaborator providing
// actual connectivity to the messaging provider. All methods may
// suspend while awaiting the provider and honor ctx cancellation.
type Client interface {
	// Groups lists the chats visible to the connected account.
	Groups(ctx context.Context) ([]Group, error)

	// Messages returns up to limit records for a group, newest first.
	Messages(ctx context.Context, groupID string, limit int) ([]RawMessage, error)

	// SendToGroup delivers a message to a group chat.
	SendToGroup(ctx context.Context, groupID, body string) error

	// SendToContact delivers a message to a direct chat address.
	SendToContact(ctx context.Context, contact, body string) error
}

// ErrChannelNotReady is returned when a channel-dependent operation is
// attempted while the session is not in the ready state. Callers must
// check this before any adapter call — it is a hard precondition.
var ErrChannelNotReady = errors.New("whatsapp: channel not ready")

// GroupNotFoundError reports a group name that matched nothing,
// carrying the full list of available display names as remediation.
type GroupNotFoundError struct {
	Name      string
	Available []string
}

func (e *GroupNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("group %q not found (no groups available)", e.Name)
	}
	return fmt.Sprintf("group %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// SendError wraps an adapter delivery failure. Adapter-specific faults
// never cross this package's boundary undecorated.
type SendError struct {
	Target string
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("whatsapp: send to %q: %v", e.Target, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
