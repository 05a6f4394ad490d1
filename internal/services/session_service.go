package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"printshop/internal/store"
)

// DefaultSessionTTL is used when a caller passes a zero ttl.
const DefaultSessionTTL = 7 * 24 * time.Hour

const SessionKey = "session"

var ErrInvalidPIN = errors.New("invalid PIN")

type SessionState string

const (
	SessionActive  SessionState = "active"
	SessionExpired SessionState = "expired"
	SessionAbsent  SessionState = "absent"
)

// Session is the admin's logged-in state. Expired marks a record kept
// after expiry was detected, until the expiry has been reported.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired,omitempty"`
}

type SessionService interface {
	Login(ctx context.Context, pin string) (*Session, error)
	Logout(ctx context.Context) error
	Touch(ctx context.Context, ttl time.Duration) (*Session, error)
	Status(ctx context.Context, token string) SessionState
	IsActive(ctx context.Context) bool
	Watch(ctx context.Context, interval time.Duration, onExpire func(SessionState))
}

type sessionService struct {
	slot     *store.Slot[*Session]
	settings SettingsService
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(kv store.KV, settings SettingsService, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionService{
		slot:     store.NewSlot(kv, SessionKey, func() *Session { return nil }, false),
		settings: settings,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the PIN and starts a fresh session with a new token.
func (s *sessionService) Login(ctx context.Context, pin string) (*Session, error) {
	if !s.settings.VerifyPIN(ctx, pin) {
		return nil, ErrInvalidPIN
	}
	session := &Session{Token: uuid.NewString(), ExpiresAt: s.now().Add(s.ttl)}
	if err := s.slot.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	log.Printf("Admin session started, expires %s", session.ExpiresAt.Format(time.RFC3339))
	return session, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	return s.slot.Clear(ctx)
}

// Touch moves the expiry to now+ttl. Without a stored session a new one
// is created.
func (s *sessionService) Touch(ctx context.Context, ttl time.Duration) (*Session, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	session := s.slot.Load(ctx)
	if session == nil {
		session = &Session{Token: uuid.NewString()}
	}
	session.ExpiresAt = s.now().Add(ttl)
	session.Expired = false
	if err := s.slot.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// Status reports the session state. A non-empty token must match the
// stored one. Malformed records are cleared; an expired record is cleared
// once its expiry has been reported here.
func (s *sessionService) Status(ctx context.Context, token string) SessionState {
	state := s.check(ctx, token)
	if state == SessionExpired {
		s.clear(ctx)
	}
	return state
}

// IsActive does not consume an expiry.
func (s *sessionService) IsActive(ctx context.Context) bool {
	return s.check(ctx, "") == SessionActive
}

// check evaluates the stored session without reporting it. A lapsed
// session is kept as an expired marker so the next Status still sees it.
func (s *sessionService) check(ctx context.Context, token string) SessionState {
	session := s.slot.Load(ctx)
	if session == nil || session.ExpiresAt.IsZero() {
		s.clear(ctx)
		return SessionAbsent
	}
	if token != "" && token != session.Token {
		return SessionAbsent
	}
	if session.Expired {
		return SessionExpired
	}
	if s.now().After(session.ExpiresAt) {
		session.Expired = true
		if err := s.slot.Save(ctx, session); err != nil {
			log.Printf("Warning: failed to mark session expired: %v", err)
		}
		return SessionExpired
	}
	return SessionActive
}

// Watch checks the session immediately and then every interval until ctx
// is done, calling onExpire once for every active to inactive change. It
// leaves the expired marker in place for the next request to report.
func (s *sessionService) Watch(ctx context.Context, interval time.Duration, onExpire func(SessionState)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasActive := false
	tick := func() {
		state := s.check(ctx, "")
		if wasActive && state != SessionActive && onExpire != nil {
			onExpire(state)
		}
		wasActive = state == SessionActive
	}

	tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

func (s *sessionService) clear(ctx context.Context) {
	if err := s.slot.Clear(ctx); err != nil {
		log.Printf("Warning: failed to clear session: %v", err)
	}
}
