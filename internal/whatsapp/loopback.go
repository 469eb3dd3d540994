package whatsapp

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Loopback is an in-process channel adapter used when no real provider
// is wired: groups and message history live in memory, and sends are
// appended to that history under the configured self identity. It
// keeps every channel-dependent operation exercisable end to end,
// including reading back a message just sent.
type Loopback struct {
	self string

	mu      sync.Mutex
	groups  []Group
	history map[string][]RawMessage // per group ID, newest first
	now     func() time.Time
}

// NewLoopback creates an empty Loopback whose sends are attributed to
// the given self identity.
func NewLoopback(self string) *Loopback {
	return &Loopback{
		self:    self,
		history: make(map[string][]RawMessage),
		now:     time.Now,
	}
}

// Seed registers a group with optional pre-existing history (newest
// first).
func (l *Loopback) Seed(g Group, msgs ...RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups = append(l.groups, g)
	l.history[g.ID] = append(l.history[g.ID], msgs...)
}

// Groups lists the registered groups.
func (l *Loopback) Groups(ctx context.Context) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Group, len(l.groups))
	copy(out, l.groups)
	return out, nil
}

// Messages returns up to limit records for a group, newest first.
func (l *Loopback) Messages(ctx context.Context, groupID string, limit int) ([]RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	msgs := l.history[groupID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]RawMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// SendToGroup appends a self-authored message to the group's history.
func (l *Loopback) SendToGroup(ctx context.Context, groupID, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.history[groupID]; !ok {
		return fmt.Errorf("loopback: unknown group %q", groupID)
	}
	msg := RawMessage{
		Timestamp: l.now(),
		Author:    l.self,
		PushName:  l.self,
		Body:      body,
	}
	l.history[groupID] = append([]RawMessage{msg}, l.history[groupID]...)
	return nil
}

// SendToContact records a direct message to a contact address.
func (l *Loopback) SendToContact(ctx context.Context, contact, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := RawMessage{
		Timestamp: l.now(),
		Author:    l.self,
		PushName:  l.self,
		Body:      body,
	}
	l.history[contact] = append([]RawMessage{msg}, l.history[contact]...)
	return nil
}
