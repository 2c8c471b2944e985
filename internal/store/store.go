// Package store is the in-memory data behind the development backend. It keeps
// just enough of the course-manager rules to exercise the client.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"course-manager-client/internal/model"
)

var (
	ErrUserNotFound       = errors.New("User does not exist")
	ErrEmailTaken         = errors.New("A user with this email already exists.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrWrongPassword      = errors.New("Current password is incorrect.")
	ErrEventNotFound      = errors.New("Event not found")
	ErrEventFull          = errors.New("Event is full")
	ErrAlreadyEnrolled    = errors.New("User is already enrolled in this event")
	ErrOrganizerNotFound  = errors.New("Organizer not found")
	ErrClassroomNotFound  = errors.New("Classroom not found")
	ErrTagNotFound        = errors.New("Tag not found")
	ErrTagsNotFound       = errors.New("Some tags not found")
)

type userRecord struct {
	model.User
	PasswordHash []byte
}

type eventRecord struct {
	model.Event
	participants map[int64]struct{}
}

type Store struct {
	mu   sync.RWMutex
	now  func() time.Time
	cost int
	ids  *idGenerator

	users         map[int64]userRecord
	userIDByEmail map[string]int64
	events        map[int64]*eventRecord
	tags          map[int64]model.Tag
	classrooms    map[int64]model.Classroom
}

type Option func(*Store)

// WithNow overrides the clock used for past/upcoming decisions.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPasswordCost sets the bcrypt cost for stored passwords.
func WithPasswordCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:           time.Now,
		cost:          bcrypt.DefaultCost,
		ids:           newIDGenerator(),
		users:         make(map[int64]userRecord),
		userIDByEmail: make(map[string]int64),
		events:        make(map[int64]*eventRecord),
		tags:          make(map[int64]model.Tag),
		classrooms:    make(map[int64]model.Classroom),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Users

func (s *Store) RegisterUser(req model.RegisterRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(req.Email)
	if _, taken := s.userIDByEmail[key]; taken {
		return model.User{}, ErrEmailTaken
	}

	u := model.User{
		ID:          s.ids.next("user"),
		Firstname:   req.Firstname,
		Surname:     req.Surname,
		Age:         req.Age,
		Email:       req.Email,
		IsOrganizer: req.IsOrganizer,
	}
	s.users[u.ID] = userRecord{User: u, PasswordHash: hash}
	s.userIDByEmail[key] = u.ID
	return u, nil
}

func (s *Store) Authenticate(email, password string) (model.User, error) {
	s.mu.RLock()
	id, ok := s.userIDByEmail[emailKey(email)]
	rec := s.users[id]
	s.mu.RUnlock()

	if !ok {
		return model.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.User, 0, len(s.users))
	for _, rec := range s.users {
		result = append(result, rec.User)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) GetUser(id int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return rec.User, nil
}

func (s *Store) GetUserByEmail(email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userIDByEmail[emailKey(email)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return s.users[id].User, nil
}

func (s *Store) UpdateUser(id int64, upd model.UserUpdate) (model.User, error) {
	var hash []byte
	if upd.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), s.cost)
		if err != nil {
			return model.User{}, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	if upd.Email != nil && emailKey(*upd.Email) != emailKey(rec.Email) {
		if _, taken := s.userIDByEmail[emailKey(*upd.Email)]; taken {
			return model.User{}, ErrEmailTaken
		}
		delete(s.userIDByEmail, emailKey(rec.Email))
		rec.Email = *upd.Email
		s.userIDByEmail[emailKey(rec.Email)] = id
	}
	if upd.Firstname != nil {
		rec.Firstname = *upd.Firstname
	}
	if upd.Surname != nil {
		rec.Surname = *upd.Surname
	}
	if upd.Age != nil {
		rec.Age = *upd.Age
	}
	if upd.IsOrganizer != nil {
		rec.IsOrganizer = *upd.IsOrganizer
	}
	if hash != nil {
		rec.PasswordHash = hash
	}
	s.users[id] = rec
	return rec.User, nil
}

// DeleteUser removes the user, the events they organize and their enrollments.
func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.userIDByEmail, emailKey(rec.Email))
	for eventID, ev := range s.events {
		if ev.OrganizerID == id {
			delete(s.events, eventID)
			continue
		}
		delete(ev.participants, id)
	}
	return nil
}

func (s *Store) UpdatePassword(id int64, current, next string) error {
	s.mu.RLock()
	rec, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(current)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok = s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	rec.PasswordHash = hash
	s.users[id] = rec
	return nil
}
