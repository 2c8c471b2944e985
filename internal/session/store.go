package session

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"course-manager-client/internal/logging"
	"course-manager-client/internal/storage"
)

const (
	UserKey  = "user"
	TokenKey = "authToken"
)

// Store is the single process-wide authority on who is logged in. It is the
// only writer of UserKey and TokenKey.
type Store struct {
	storage  storage.Storage
	log      *zap.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	current *Session

	watchers *watchers
}

func NewStore(st storage.Storage, logger *zap.Logger) *Store {
	return &Store{
		storage:  st,
		log:      logging.OrNop(logger).Named("session"),
		validate: validator.New(),
		watchers: newWatchers(),
	}
}

// Initialize rehydrates the session from storage. Anything short of a complete,
// valid record leaves the store anonymous, and a partial record is erased so
// no stale token goes out with later requests.
func (s *Store) Initialize() {
	sess, err := s.rehydrate()

	s.mu.Lock()
	s.current = sess
	if err != nil {
		s.log.Debug("persisted session discarded", zap.Error(err))
		s.clearLocked()
	}
	s.mu.Unlock()

	s.broadcast()
}

func (s *Store) rehydrate() (*Session, error) {
	blob, hasBlob, err := s.storage.Read(UserKey)
	if err != nil {
		s.log.Warn("reading persisted user failed", zap.Error(err))
		return nil, errors.Wrap(err, "read user")
	}
	token, hasToken, err := s.storage.Read(TokenKey)
	if err != nil {
		s.log.Warn("reading persisted token failed", zap.Error(err))
		return nil, errors.Wrap(err, "read token")
	}

	switch {
	case !hasBlob && !hasToken:
		return nil, nil
	case !hasBlob || !hasToken || blob == "" || token == "":
		return nil, errors.Wrap(errPersistedStateCorrupt, "user and token must both be present")
	}

	sess, err := decodeIdentity(blob, token)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(sess); err != nil {
		return nil, errors.Wrapf(errPersistedStateCorrupt, "missing %s", validationFields(err))
	}
	return &sess, nil
}

// Login activates the session described by p and persists it. An incomplete
// payload is rejected with ErrInvalidSession and leaves the store untouched.
// When persisting fails the store ends up anonymous and ErrNotPersisted is
// returned.
func (s *Store) Login(p LoginPayload) (Session, error) {
	sess := p.session()
	if err := s.validate.Struct(sess); err != nil {
		return Session{}, errors.Wrapf(ErrInvalidSession, "missing %s", validationFields(err))
	}

	s.mu.Lock()
	if err := s.persistLocked(sess); err != nil {
		s.current = nil
		s.clearLocked()
		s.mu.Unlock()
		s.log.Error("login not persisted", zap.Int64("user_id", sess.ID), zap.Error(err))
		s.broadcast()
		return Session{}, errors.Wrap(ErrNotPersisted, err.Error())
	}
	s.current = &sess
	s.mu.Unlock()

	s.log.Info("logged in", zap.Int64("user_id", sess.ID))
	s.broadcast()
	return sess, nil
}

func (s *Store) persistLocked(sess Session) error {
	blob, err := encodeIdentity(sess)
	if err != nil {
		return errors.Wrap(err, "encode user")
	}
	if err := s.storage.Write(UserKey, blob); err != nil {
		return errors.Wrap(err, "write user")
	}
	if err := s.storage.Write(TokenKey, sess.Token); err != nil {
		return errors.Wrap(err, "write token")
	}
	return nil
}

// clearLocked erases both persisted entries. Failures are logged only.
func (s *Store) clearLocked() {
	if err := s.storage.Clear(UserKey); err != nil {
		s.log.Error("clearing persisted user failed", zap.Error(err))
	}
	if err := s.storage.Clear(TokenKey); err != nil {
		s.log.Error("clearing persisted token failed", zap.Error(err))
	}
}

// Logout clears the session and both persisted entries.
func (s *Store) Logout() {
	s.mu.Lock()
	wasActive := s.current != nil
	s.current = nil
	s.clearLocked()
	s.mu.Unlock()

	if wasActive {
		s.log.Info("logged out")
	}
	s.broadcast()
}

// Current returns a copy of the active session; false means anonymous.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Credentials returns a token source backed by the same storage the store
// writes to.
func (s *Store) Credentials() *Credentials {
	return NewCredentials(s.storage, s.log)
}

func (s *Store) broadcast() {
	sess, ok := s.Current()
	s.watchers.broadcast(Change{Session: sess, Active: ok})
}
