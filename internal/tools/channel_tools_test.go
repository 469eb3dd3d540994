package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"sitechat/internal/whatsapp"
)

// --- Test helpers ---

// untouchableClient fails the test if any adapter method is reached.
// Used to prove the session gate fires before channel I/O.
type untouchableClient struct {
	t *testing.T
}

func (c untouchableClient) Groups(context.Context) ([]whatsapp.Group, error) {
	c.t.Fatal("adapter touched while session not ready")
	return nil, nil
}

func (c untouchableClient) Messages(context.Context, string, int) ([]whatsapp.RawMessage, error) {
	c.t.Fatal("adapter touched while session not ready")
	return nil, nil
}

func (c untouchableClient) SendToGroup(context.Context, string, string) error {
	c.t.Fatal("adapter touched while session not ready")
	return nil
}

func (c untouchableClient) SendToContact(context.Context, string, string) error {
	c.t.Fatal("adapter touched while session not ready")
	return nil
}

// seededLoopback returns a loopback with one site group and a short
// newest-first history.
func seededLoopback(t *testing.T) *whatsapp.Loopback {
	t.Helper()
	lb := whatsapp.NewLoopback("Site Bot")
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	lb.Seed(
		whatsapp.Group{ID: "g1", DisplayName: "Site Updates 2026", MemberCount: 8},
		whatsapp.RawMessage{Timestamp: base.Add(2 * time.Minute), ContactName: "Maya", Body: "Rebar delivered"},
		whatsapp.RawMessage{Timestamp: base.Add(time.Minute), PushName: "jkowalski", HasMedia: true},
		whatsapp.RawMessage{Timestamp: base, Author: "15550009999@c.us", Body: "Pour starts at 7"},
	)
	return lb
}

// --- ListGroupsTool ---

func TestListGroups_Definition(t *testing.T) {
	def := NewListGroupsTool(whatsapp.NewSession(), whatsapp.NewLoopback("Site Bot")).Definition()
	if def.Name != "list_groups" {
		t.Errorf("tool name = %q, want %q", def.Name, "list_groups")
	}
}

func TestListGroups_NotConnectedSkipsAdapter(t *testing.T) {
	tool := NewListGroupsTool(whatsapp.NewSession(), untouchableClient{t})

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(result), "❌ WhatsApp not connected") {
		t.Errorf("unexpected response: %q", resultText(result))
	}
}

func TestListGroups_Empty(t *testing.T) {
	tool := NewListGroupsTool(readySession(t), whatsapp.NewLoopback("Site Bot"))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if got := resultText(result); got != "📱 No WhatsApp groups found in your account." {
		t.Errorf("unexpected response: %q", got)
	}
}

func TestListGroups_NumbersAndCounts(t *testing.T) {
	lb := seededLoopback(t)
	lb.Seed(whatsapp.Group{ID: "g2", DisplayName: "Suppliers", MemberCount: 3})
	tool := NewListGroupsTool(readySession(t), lb)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	text := resultText(result)
	for _, want := range []string{
		"1. Site Updates 2026 (8 members)",
		"2. Suppliers (3 members)",
		"✅ Found 2 groups",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}
}

// --- ReadMessagesTool ---

func TestReadMessages_NotConnectedSkipsAdapter(t *testing.T) {
	tool := NewReadMessagesTool(whatsapp.NewSession(), untouchableClient{t}, 0)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "site",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(result), "❌ WhatsApp not connected") {
		t.Errorf("unexpected response: %q", resultText(result))
	}
}

func TestReadMessages_PartialNameChronological(t *testing.T) {
	tool := NewReadMessagesTool(readySession(t), seededLoopback(t), 0)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "site",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, `Recent messages from "Site Updates 2026"`) {
		t.Errorf("resolved group name missing: %q", text)
	}
	// Oldest first, with the sender fallback chain applied.
	first := strings.Index(text, "15550009999: Pour starts at 7")
	second := strings.Index(text, "jkowalski: [Media/Attachment]")
	third := strings.Index(text, "Maya: Rebar delivered")
	if first < 0 || second < 0 || third < 0 || !(first < second && second < third) {
		t.Errorf("messages out of order or missing:\n%s", text)
	}
	if !strings.Contains(text, "✅ Retrieved 3 messages") {
		t.Errorf("count line missing: %q", text)
	}
}

func TestReadMessages_UnknownGroupListsAvailable(t *testing.T) {
	tool := NewReadMessagesTool(readySession(t), seededLoopback(t), 0)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "payroll",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	text := resultText(result)
	if !result.IsError {
		t.Error("unknown group should be an error result")
	}
	if !strings.Contains(text, `❌ Group "payroll" not found`) {
		t.Errorf("unexpected response: %q", text)
	}
	if !strings.Contains(text, "Available groups: Site Updates 2026") {
		t.Errorf("available groups missing: %q", text)
	}
	if !strings.Contains(text, "Tip: Try using partial names") {
		t.Errorf("remediation tip missing: %q", text)
	}
}

func TestReadMessages_EmptyHistory(t *testing.T) {
	lb := whatsapp.NewLoopback("Site Bot")
	lb.Seed(whatsapp.Group{ID: "g1", DisplayName: "Quiet Group", MemberCount: 2})
	tool := NewReadMessagesTool(readySession(t), lb, 0)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "quiet",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if got := resultText(result); got != `📱 No recent messages found in "Quiet Group"` {
		t.Errorf("unexpected response: %q", got)
	}
}

func TestReadMessages_LimitClamped(t *testing.T) {
	lb := whatsapp.NewLoopback("Site Bot")
	base := time.Now().Add(-time.Hour)
	msgs := make([]whatsapp.RawMessage, 60)
	for i := range msgs {
		msgs[i] = whatsapp.RawMessage{
			Timestamp: base.Add(time.Duration(60-i) * time.Second),
			PushName:  "Maya",
			Body:      fmt.Sprintf("update %d", 60-i),
		}
	}
	lb.Seed(whatsapp.Group{ID: "g1", DisplayName: "Busy Group", MemberCount: 20}, msgs...)
	tool := NewReadMessagesTool(readySession(t), lb, 0)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "busy",
		"limit":     500.0,
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(result), "✅ Retrieved 50 messages") {
		t.Errorf("limit should clamp to 50: %q", resultText(result))
	}
}

// --- SendMessageTool ---

func TestSendMessage_RoundTrip(t *testing.T) {
	lb := seededLoopback(t)
	session := readySession(t)
	start := time.Now()

	sendTool := NewSendMessageTool(session, lb)
	result, err := sendTool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "updates",
		"message":   "Inspection passed, closing up walls",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, `✅ Message sent to "Site Updates 2026"`) {
		t.Errorf("unexpected response: %q", text)
	}

	// Read it back through the channel: it must surface under the
	// configured self identity with a timestamp from this call.
	readTool := NewReadMessagesTool(session, lb, 0)
	result, err = readTool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "site updates",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(result), "Site Bot: Inspection passed, closing up walls") {
		t.Errorf("sent message not readable back:\n%s", resultText(result))
	}

	raw, err := lb.Messages(context.Background(), "g1", 1)
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(raw) != 1 || raw[0].Timestamp.Before(start) {
		t.Errorf("newest message timestamp %v should not precede send time %v", raw[0].Timestamp, start)
	}
}

func TestSendMessage_NotConnectedSkipsAdapter(t *testing.T) {
	tool := NewSendMessageTool(whatsapp.NewSession(), untouchableClient{t})

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "site",
		"message":   "hello",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(resultText(result), "❌ WhatsApp not connected") {
		t.Errorf("unexpected response: %q", resultText(result))
	}
}

func TestSendMessage_UnknownGroup(t *testing.T) {
	tool := NewSendMessageTool(readySession(t), seededLoopback(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "payroll",
		"message":   "hello",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(result), `❌ Group "payroll" not found`) {
		t.Errorf("unexpected response: %q", resultText(result))
	}
}

func TestSendMessage_RequiresMessage(t *testing.T) {
	tool := NewSendMessageTool(readySession(t), seededLoopback(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"groupName": "site",
	}))
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !result.IsError {
		t.Error("empty message should be rejected")
	}
}
