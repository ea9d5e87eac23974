// Package session persists the operator's ERP token in a single local slot.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "arco.session")

// TTL is the client-side validity window, counted from issuance and
// enforced independently of any server-side expiry.
const TTL = 24 * time.Hour

// Session is the persisted slot content. Timestamp is issuance time in
// epoch milliseconds, same representation the web front end used.
type Session struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Session) IssuedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Store keeps exactly one session on disk. Last writer wins, there is no
// coordination between concurrent processes.
type Store struct {
	path  string
	clock clockwork.Clock
}

func NewStore(path string, clock clockwork.Clock) *Store {
	return &Store{path: path, clock: clock}
}

// Load returns the persisted session if it is still inside the TTL.
// An expired or unreadable slot is purged and reported as absent (nil).
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session file")
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		logger.Warn("stored session is unreadable, purging")
		return nil, s.Clear()
	}

	if s.clock.Now().Sub(sess.IssuedAt()) >= TTL {
		logger.Debug("stored session expired, purging")
		return nil, s.Clear()
	}

	return &sess, nil
}

// Save replaces any prior session with a fresh one issued now.
func (s *Store) Save(token string) (*Session, error) {
	sess := &Session{
		Token:     token,
		Timestamp: s.clock.Now().UnixMilli(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, errors.Wrap(err, "encode session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create session dir")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return nil, errors.Wrap(err, "write session file")
	}
	return sess, nil
}

// Clear purges the persisted slot. Clearing an empty slot is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}

// Token satisfies the API client token source: it yields the current
// token when a valid session exists.
func (s *Store) Token() (string, bool) {
	sess, err := s.Load()
	if err != nil || sess == nil {
		return "", false
	}
	return sess.Token, true
}
