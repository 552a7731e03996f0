package service

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/contable-ledger/internal/auth"
	"github.com/contable-ledger/internal/domain/journal"
)

// ErrInvalidCredentials is returned by Login when the credential pair
// is rejected. The message is shown inline; there is no lockout.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is one authenticated actor plus the draft entry they are
// editing. The draft is scoped to the session and vanishes with it.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu    sync.Mutex
	draft journal.JournalEntry
}

// SetHeader replaces the draft's shared entry metadata, leaving the
// lines untouched.
func (s *Session) SetHeader(date time.Time, document, counterparty, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Date = date
	s.draft.Document = document
	s.draft.Counterparty = counterparty
	s.draft.Description = description
}

// AddLine appends one line to the draft.
func (s *Session) AddLine(line journal.LedgerLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Lines = append(s.draft.Lines, line)
}

// RemoveLine deletes the line at the given position, preserving the
// order of the rest. Reports false when the index is out of range.
func (s *Session) RemoveLine(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.draft.Lines) {
		return false
	}
	s.draft.Lines = append(s.draft.Lines[:index], s.draft.Lines[index+1:]...)
	return true
}

// Draft returns a copy of the current draft. Callers may validate or
// expand the copy without racing concurrent edits.
func (s *Session) Draft() journal.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.draft
	draft.Lines = append([]journal.LedgerLine(nil), s.draft.Lines...)
	return draft
}

// ClearDraft resets the draft after a successful post.
func (s *Session) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = journal.JournalEntry{}
}

// SessionServiceImpl implements SessionService with an in-memory
// session table. Sessions do not survive a restart.
type SessionServiceImpl struct {
	authenticator auth.Authenticator
	ttl           time.Duration
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionService creates a session service over the given
// credential table.
func NewSessionService(logger *slog.Logger, authenticator auth.Authenticator, ttl time.Duration) *SessionServiceImpl {
	return &SessionServiceImpl{
		authenticator: authenticator,
		ttl:           ttl,
		logger:        logger,
		sessions:      make(map[string]*Session),
	}
}

// Login validates the credentials and opens a new session with a fresh
// bearer token.
func (s *SessionServiceImpl) Login(username, password string) (*Session, error) {
	identity, ok := s.authenticator.Authenticate(username, password)
	if !ok {
		s.logger.Warn("Login rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &Session{
		Token:     uuid.NewString(),
		Username:  identity.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Info("Session opened", "username", identity.Username)
	return session, nil
}

// Get resolves a token, evicting it first if expired.
func (s *SessionServiceImpl) Get(token string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		s.logger.Info("Session expired", "username", session.Username)
		return nil, false
	}

	return session, true
}

// Logout drops the session along with its draft.
func (s *SessionServiceImpl) Logout(token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		s.logger.Info("Session closed", "username", session.Username)
	}
}

// Count returns the number of live sessions, expired ones included
// until their next lookup.
func (s *SessionServiceImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
