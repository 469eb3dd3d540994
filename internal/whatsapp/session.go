package whatsapp

import (
	"fmt"
	"sync"
	"time"
)

// --- Connection lifecycle state machine ---
//
// The provider connection moves through a fixed graph:
//
//	unauthenticated → pairing → ready
//	ready | pairing → disconnected
//	pairing         → failed
//	disconnected | failed → pairing   (operator re-initialization)
//
// Every transition validates its precondition state; skipping is not
// possible. Channel-dependent operations poll Current()/RequireReady()
// synchronously at call time; observers may watch Events().

// State is a connection lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StatePairing         State = "pairing"
	StateReady           State = "ready"
	StateDisconnected    State = "disconnected"
	StateFailed          State = "failed"
)

// Transition is an observable state change event.
type Transition struct {
	From   State
	To     State
	Reason string
	At     time.Time
}

// Session owns the channel connection lifecycle. Exactly one Session
// exists per process; it starts unauthenticated.
type Session struct {
	mu        sync.Mutex
	state     State
	lastErr   error
	challenge string
	events    chan Transition
	now       func() time.Time
}

// NewSession creates a Session in the unauthenticated state.
func NewSession() *Session {
	return &Session{
		state:  StateUnauthenticated,
		events: make(chan Transition, 16),
		now:    time.Now,
	}
}

// Current returns the session's current state.
func (s *Session) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RequireReady fails with ErrChannelNotReady unless the session is
// ready. Channel-dependent operations call this before attempting any
// adapter I/O.
func (s *Session) RequireReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrChannelNotReady
	}
	return nil
}

// PairingChallenge returns the current pairing challenge (e.g. the
// payload of a scannable code). It is only present while pairing.
func (s *Session) PairingChallenge() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge, s.state == StatePairing && s.challenge != ""
}

// LastError returns the error recorded by the most recent failed or
// disconnected transition, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Events returns the transition event channel. Emission is
// non-blocking: a slow observer loses events, never stalls the
// session.
func (s *Session) Events() <-chan Transition {
	return s.events
}

// BeginPairing issues a pairing challenge. Legal from unauthenticated
// and from the recoverable terminal states (disconnected, failed).
func (s *Session) BeginPairing(challenge string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateUnauthenticated, StateDisconnected, StateFailed:
	default:
		return fmt.Errorf("whatsapp: cannot begin pairing from state %q", s.state)
	}
	from := s.state
	s.state = StatePairing
	s.challenge = challenge
	s.lastErr = nil
	s.emitLocked(from, StatePairing, "pairing challenge issued")
	return nil
}

// MarkReady confirms the pairing challenge and makes the channel fully
// usable. Legal only from pairing.
func (s *Session) MarkReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePairing {
		return fmt.Errorf("whatsapp: cannot become ready from state %q", s.state)
	}
	s.state = StateReady
	s.challenge = ""
	s.lastErr = nil
	s.emitLocked(StatePairing, StateReady, "pairing confirmed")
	return nil
}

// MarkDisconnected records that the underlying channel dropped. Legal
// from ready and pairing.
func (s *Session) MarkDisconnected(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateReady, StatePairing:
	default:
		return fmt.Errorf("whatsapp: cannot disconnect from state %q", s.state)
	}
	from := s.state
	s.state = StateDisconnected
	s.challenge = ""
	s.lastErr = fmt.Errorf("whatsapp: disconnected: %s", reason)
	s.emitLocked(from, StateDisconnected, reason)
	return nil
}

// MarkFailed records a rejected pairing. Legal only from pairing.
func (s *Session) MarkFailed(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePairing {
		return fmt.Errorf("whatsapp: cannot fail pairing from state %q", s.state)
	}
	s.state = StateFailed
	s.challenge = ""
	s.lastErr = fmt.Errorf("whatsapp: pairing failed: %s", reason)
	s.emitLocked(StatePairing, StateFailed, reason)
	return nil
}

// emitLocked publishes a transition event without blocking. Callers
// hold s.mu.
func (s *Session) emitLocked(from, to State, reason string) {
	ev := Transition{From: from, To: to, Reason: reason, At: s.now()}
	select {
	case s.events <- ev:
	default:
	}
}
