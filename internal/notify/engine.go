// Package notify composes and dispatches project notification
// messages over the WhatsApp channel.
//
// Two invocation paths converge on the same render-and-dispatch
// primitive: explicit updates requested by an operation, and automatic
// notifications raised by domain-state transitions (an inspection
// scheduled, a completion milestone reached). Every dispatch appends
// to the append-only record log before delivery is attempted, so the
// log reflects what the system tried to say even when the channel was
// down.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"sitechat/internal/project"
	"sitechat/internal/whatsapp"
)

// Urgency grades a notification.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency maps a user-supplied string to an Urgency, defaulting
// to medium for the empty string.
func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return Urgency(s), nil
	case "":
		return UrgencyMedium, nil
	default:
		return "", fmt.Errorf("invalid urgency %q: must be one of: low, medium, high", s)
	}
}

// Record is one entry in the append-only notification log. Records
// are never mutated after creation.
type Record struct {
	TargetContact string
	Body          string
	Urgency       Urgency
	DispatchedAt  time.Time
}

// Sink receives every record for durable append. Sink failures are
// logged, never surfaced — the in-memory log is the source of truth
// within a process.
type Sink interface {
	AppendNotification(Record) error
}

// Engine is the notification engine. It gates on the session state,
// renders the urgency-framed message body, records, and delivers.
type Engine struct {
	session *whatsapp.Session
	client  whatsapp.Client
	sink    Sink

	mu      sync.Mutex
	records []Record

	now func() time.Time
}

// NewEngine creates an Engine sending through the given session and
// channel adapter.
func NewEngine(session *whatsapp.Session, client whatsapp.Client) *Engine {
	return &Engine{session: session, client: client, now: time.Now}
}

// SetSink wires an optional durable sink for dispatched records.
func (e *Engine) SetSink(sink Sink) {
	e.sink = sink
}

// Records returns a copy of the notification log in dispatch order.
func (e *Engine) Records() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.records))
	copy(out, e.records)
	return out
}

// ProjectUpdate sends an explicit update to the project's contact.
func (e *Engine) ProjectUpdate(ctx context.Context, p *project.Project, message string, urgency Urgency) (Record, error) {
	body := fmt.Sprintf(
		"🏗️ Project Update: %s\n\n%s\n\nUrgency: %s\nTime: %s",
		p.Name, message, strings.ToUpper(string(urgency)), e.now().Format("2006-01-02 15:04:05"),
	)
	return e.dispatch(ctx, p.Contact, body, urgency)
}

// InspectionScheduled raises the automatic medium-urgency reminder
// that accompanies every newly scheduled inspection.
func (e *Engine) InspectionScheduled(ctx context.Context, p *project.Project, insp *project.Inspection) (Record, error) {
	inspector := insp.Inspector
	if inspector == "" {
		inspector = "TBD"
	}
	message := fmt.Sprintf(
		"📋 Inspection Scheduled:\n\nType: %s\nDate: %s\nInspector: %s\n\nPlease ensure site is ready!",
		insp.Type, insp.Date, inspector,
	)
	return e.ProjectUpdate(ctx, p, message, UrgencyMedium)
}

// MilestoneReached raises the automatic low-urgency notification for a
// completion percentage landing on a positive multiple of 25.
func (e *Engine) MilestoneReached(ctx context.Context, p *project.Project, notes string) (Record, error) {
	if notes == "" {
		notes = "On track"
	}
	message := fmt.Sprintf(
		"🎯 Milestone Reached!\n\nPhase: %s\nProgress: %d%%\n\nNotes: %s",
		p.Phase, p.Completion, notes,
	)
	return e.ProjectUpdate(ctx, p, message, UrgencyLow)
}

// dispatch appends the record, then attempts delivery. The record is
// returned even when delivery fails — callers decide whether the
// failure is fatal for their operation.
func (e *Engine) dispatch(ctx context.Context, contact, body string, urgency Urgency) (Record, error) {
	rec := Record{
		TargetContact: contact,
		Body:          body,
		Urgency:       urgency,
		DispatchedAt:  e.now(),
	}
	e.append(rec)

	if err := e.session.RequireReady(); err != nil {
		return rec, err
	}
	if err := e.client.SendToContact(ctx, contact, body); err != nil {
		return rec, &whatsapp.SendError{Target: contact, Err: err}
	}
	return rec, nil
}

func (e *Engine) append(rec Record) {
	e.mu.Lock()
	e.records = append(e.records, rec)
	e.mu.Unlock()

	if e.sink != nil {
		if err := e.sink.AppendNotification(rec); err != nil {
			log.Printf("WARNING: notification log append: %v", err)
		}
	}
}
