// Package session holds the identity of the logged-in user and mirrors it into
// durable storage so that a restart does not force a new login.
package session

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidSession is returned by Login for a payload missing the token or
	// a primary identity field.
	ErrInvalidSession = errors.New("session: invalid session")

	// ErrNotPersisted is returned by Login when the session could not be
	// written to storage. The store is left anonymous.
	ErrNotPersisted = errors.New("session: session not persisted")

	errPersistedStateCorrupt = errors.New("session: persisted state corrupt")
)

// Session is the authenticated actor. The zero value is never handed out as an
// active session; anonymity is reported separately.
type Session struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Firstname   string `json:"firstname" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Email       string `json:"email" validate:"required"`
	IsOrganizer bool   `json:"isOrganizer"`
	Token       string `json:"-" validate:"required"`
}

// LoginPayload is the body returned by POST /api/auth/login. The backend calls
// its primary key userId; callers that already hold an id may set ID instead.
type LoginPayload struct {
	UserID      int64  `json:"userId"`
	ID          int64  `json:"id"`
	Firstname   string `json:"firstname"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"isOrganizer"`
	Token       string `json:"token"`
	Message     string `json:"message,omitempty"`
}

func (p LoginPayload) session() Session {
	id := p.UserID
	if id == 0 {
		id = p.ID
	}
	return Session{
		ID:          id,
		Firstname:   p.Firstname,
		Surname:     p.Surname,
		Email:       p.Email,
		IsOrganizer: p.IsOrganizer,
		Token:       p.Token,
	}
}

// FullName is "Firstname Surname".
func (s Session) FullName() string {
	return strings.TrimSpace(s.Firstname + " " + s.Surname)
}

// persistedIdentity is the shape read back from the "user" key. userId is only
// consulted for blobs written before ids were normalized.
type persistedIdentity struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Firstname   string `json:"firstname"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"isOrganizer"`
}

func decodeIdentity(blob, token string) (Session, error) {
	var pi persistedIdentity
	if err := json.Unmarshal([]byte(blob), &pi); err != nil {
		return Session{}, errors.Wrap(errPersistedStateCorrupt, err.Error())
	}
	id := pi.ID
	if id == 0 {
		id = pi.UserID
	}
	return Session{
		ID:          id,
		Firstname:   pi.Firstname,
		Surname:     pi.Surname,
		Email:       pi.Email,
		IsOrganizer: pi.IsOrganizer,
		Token:       token,
	}, nil
}

func encodeIdentity(s Session) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func validationFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}
