package whatsapp

import (
	"fmt"
	"strings"
	"time"
)

// --- Message normalization ---

// Kind classifies a normalized message.
type Kind string

const (
	KindText   Kind = "text"
	KindMedia  Kind = "media"
	KindSystem Kind = "system"
)

// MediaPlaceholder stands in for payloads that carry no text.
const MediaPlaceholder = "[Media/Attachment]"

// Retrieval limits: callers that don't ask get DefaultLimit, and
// nobody gets more than MaxLimit — oversized requests are clamped,
// not rejected.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Message is the canonical chat record. Batches in display order are
// oldest first with non-decreasing timestamps.
type Message struct {
	Timestamp time.Time
	Sender    string
	Body      string
	Kind      Kind
}

// Line renders the canonical human-readable form.
func (m Message) Line() string {
	return fmt.Sprintf("[%s] %s: %s", m.Timestamp.Format("2006-01-02 15:04:05"), m.Sender, m.Body)
}

// ClampLimit normalizes a requested message count into [1, MaxLimit].
// Zero and negative values mean "use the default".
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Normalize converts a newest-first provider batch into at most limit
// canonical messages in chronological order.
func Normalize(raw []RawMessage, limit int) []Message {
	limit = ClampLimit(limit)
	if len(raw) > limit {
		raw = raw[:limit]
	}
	msgs := make([]Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		msgs = append(msgs, normalizeOne(raw[i]))
	}
	return msgs
}

func normalizeOne(r RawMessage) Message {
	body := r.Body
	if strings.TrimSpace(body) == "" {
		body = MediaPlaceholder
	}
	return Message{
		Timestamp: r.Timestamp,
		Sender:    resolveSender(r),
		Body:      body,
		Kind:      classify(r),
	}
}

// resolveSender walks the sender fallback chain: contact name →
// push name → bare identifier → "System".
func resolveSender(r RawMessage) string {
	if r.ContactName != "" {
		return r.ContactName
	}
	if r.PushName != "" {
		return r.PushName
	}
	if r.Author != "" {
		return strings.TrimSuffix(r.Author, "@c.us")
	}
	return "System"
}

func classify(r RawMessage) Kind {
	switch {
	case r.Author == "":
		return KindSystem
	case r.HasMedia || strings.TrimSpace(r.Body) == "":
		return KindMedia
	default:
		return KindText
	}
}
