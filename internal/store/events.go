package store

import (
	"sort"

	"course-manager-client/internal/model"
)

func (s *Store) CreateEvent(req model.EventRequest) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEventRefsLocked(req); err != nil {
		return model.Event{}, err
	}
	rec := &eventRecord{participants: make(map[int64]struct{})}
	rec.ID = s.ids.next("event")
	applyEventRequest(&rec.Event, req)
	s.events[rec.ID] = rec
	return s.projectLocked(rec), nil
}

func (s *Store) UpdateEvent(id int64, req model.EventRequest) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	if err := s.checkEventRefsLocked(req); err != nil {
		return model.Event{}, err
	}
	applyEventRequest(&rec.Event, req)
	return s.projectLocked(rec), nil
}

func (s *Store) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) GetEvent(id int64) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return s.projectLocked(rec), nil
}

func (s *Store) ListEvents() []model.Event {
	return s.selectEvents(func(*eventRecord) bool { return true })
}

func (s *Store) OrganizedEvents(organizerID int64) []model.Event {
	return s.selectEvents(func(ev *eventRecord) bool { return ev.OrganizerID == organizerID })
}

func (s *Store) ParticipatingEvents(userID int64) []model.Event {
	return s.selectEvents(func(ev *eventRecord) bool { return ev.hasParticipant(userID) })
}

// PastEvents are the user's events that already ended.
func (s *Store) PastEvents(userID int64) []model.Event {
	now := s.now()
	return s.selectEvents(func(ev *eventRecord) bool {
		return ev.hasParticipant(userID) && ev.EndDatetime.Before(now)
	})
}

// FutureEvents are the user's events that have not started yet.
func (s *Store) FutureEvents(userID int64) []model.Event {
	now := s.now()
	return s.selectEvents(func(ev *eventRecord) bool {
		return ev.hasParticipant(userID) && ev.StartDatetime.After(now)
	})
}

// FilterEvents lists upcoming events matching every non-zero field of f.
func (s *Store) FilterEvents(f model.EventFilter) []model.Event {
	now := s.now()
	return s.selectEvents(func(ev *eventRecord) bool {
		if !ev.StartDatetime.After(now) {
			return false
		}
		if f.OrganizerID != 0 && ev.OrganizerID != f.OrganizerID {
			return false
		}
		if f.ClassroomID != 0 && ev.ClassroomID != f.ClassroomID {
			return false
		}
		if f.TagID != 0 && !containsID(ev.TagIDs, f.TagID) {
			return false
		}
		if f.ExcludeFull && len(ev.participants) >= ev.MaxParticipants {
			return false
		}
		return true
	})
}

func (s *Store) Enroll(eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if rec.hasParticipant(userID) {
		return ErrAlreadyEnrolled
	}
	if len(rec.participants) >= rec.MaxParticipants {
		return ErrEventFull
	}
	rec.participants[userID] = struct{}{}
	return nil
}

func (s *Store) selectEvents(keep func(*eventRecord) bool) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Event, 0)
	for _, rec := range s.events {
		if keep(rec) {
			result = append(result, s.projectLocked(rec))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) checkEventRefsLocked(req model.EventRequest) error {
	if _, ok := s.users[req.OrganizerID]; !ok {
		return ErrOrganizerNotFound
	}
	if _, ok := s.classrooms[req.ClassroomID]; !ok {
		return ErrClassroomNotFound
	}
	for _, id := range req.TagIDs {
		if _, ok := s.tags[id]; !ok {
			return ErrTagsNotFound
		}
	}
	return nil
}

// projectLocked fills the display names the way the backend's DTO does.
func (s *Store) projectLocked(rec *eventRecord) model.Event {
	ev := rec.Event
	ev.TagIDs = append([]int64(nil), rec.TagIDs...)
	if ev.TagIDs == nil {
		ev.TagIDs = []int64{}
	}
	if org, ok := s.users[ev.OrganizerID]; ok {
		ev.OrganizerName = org.Firstname + " " + org.Surname
	}
	if room, ok := s.classrooms[ev.ClassroomID]; ok {
		ev.ClassroomName = room.ClassroomName
	}
	return ev
}

func (ev *eventRecord) hasParticipant(userID int64) bool {
	_, ok := ev.participants[userID]
	return ok
}

func applyEventRequest(ev *model.Event, req model.EventRequest) {
	ev.Name = req.Name
	ev.StartDatetime = req.StartDatetime
	ev.EndDatetime = req.EndDatetime
	ev.MaxParticipants = req.MaxParticipants
	ev.MinAge = req.MinAge
	ev.Info = req.Info
	ev.OrganizerID = req.OrganizerID
	ev.ClassroomID = req.ClassroomID
	ev.TagIDs = append([]int64(nil), req.TagIDs...)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
