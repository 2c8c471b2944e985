package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// LocalTimeLayout is the zone-less datetime format the backend speaks.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a wall-clock datetime without zone.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t.Truncate(time.Second)}
}

func ParseLocalTime(s string) (LocalTime, error) {
	// seconds are optional in form input ("2025-01-15T10:00")
	layout := LocalTimeLayout
	if strings.Count(s, ":") == 1 {
		layout = "2006-01-02T15:04"
	}
	t, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return LocalTime{}, err
	}
	return LocalTime{Time: t}, nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(LocalTimeLayout))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	// tolerate fractional seconds
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type User struct {
	ID          int64  `json:"id"`
	Firstname   string `json:"firstname"`
	Surname     string `json:"surname"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"isOrganizer"`
}

type RegisterRequest struct {
	Firstname   string `json:"firstname" validate:"required,max=50"`
	Surname     string `json:"surname" validate:"required,max=50"`
	Age         int    `json:"age" validate:"gte=0"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=255"`
	IsOrganizer bool   `json:"isOrganizer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate carries only the fields to change.
type UserUpdate struct {
	Firstname   *string `json:"firstname,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=0"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsOrganizer *bool   `json:"isOrganizer,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Event struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	StartDatetime   LocalTime `json:"startDatetime"`
	EndDatetime     LocalTime `json:"endDatetime"`
	MaxParticipants int       `json:"maxParticipants"`
	MinAge          int       `json:"minAge"`
	Info            string    `json:"info"`
	OrganizerID     int64     `json:"organizerId"`
	OrganizerName   string    `json:"organizerName"`
	ClassroomID     int64     `json:"classroomId"`
	ClassroomName   string    `json:"classroomName"`
	TagIDs          []int64   `json:"tagIds"`
}

type EventRequest struct {
	Name            string    `json:"name" validate:"required"`
	StartDatetime   LocalTime `json:"startDatetime"`
	EndDatetime     LocalTime `json:"endDatetime"`
	MaxParticipants int       `json:"maxParticipants" validate:"gte=1"`
	MinAge          int       `json:"minAge" validate:"gte=0"`
	Info            string    `json:"info"`
	ClassroomID     int64     `json:"classroomId" validate:"gt=0"`
	OrganizerID     int64     `json:"organizerId" validate:"gt=0"`
	TagIDs          []int64   `json:"tagIds"`
}

// EventFilter mirrors the query parameters of GET /api/events/filtered.
type EventFilter struct {
	OrganizerID int64
	ClassroomID int64
	TagID       int64
	ExcludeFull bool
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

type Classroom struct {
	ID            int64  `json:"id"`
	Capacity      int    `json:"capacity" validate:"gte=1"`
	Location      string `json:"location" validate:"required"`
	Info          string `json:"info"`
	ClassroomName string `json:"classroomName" validate:"required"`
}
