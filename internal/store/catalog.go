package store

import (
	"sort"

	"course-manager-client/internal/model"
)

// Tags

func (s *Store) ListTags() []model.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) GetTag(id int64) (model.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok {
		return model.Tag{}, ErrTagNotFound
	}
	return t, nil
}

func (s *Store) CreateTag(t model.Tag) model.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.ids.next("tag")
	s.tags[t.ID] = t
	return t
}

func (s *Store) UpdateTag(id int64, t model.Tag) (model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return model.Tag{}, ErrTagNotFound
	}
	t.ID = id
	s.tags[id] = t
	return t, nil
}

// DeleteTag also detaches the tag from every event.
func (s *Store) DeleteTag(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return ErrTagNotFound
	}
	delete(s.tags, id)
	for _, ev := range s.events {
		kept := ev.TagIDs[:0]
		for _, tagID := range ev.TagIDs {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		ev.TagIDs = kept
	}
	return nil
}

// Classrooms

func (s *Store) ListClassrooms() []model.Classroom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Classroom, 0, len(s.classrooms))
	for _, c := range s.classrooms {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) GetClassroom(id int64) (model.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.classrooms[id]
	if !ok {
		return model.Classroom{}, ErrClassroomNotFound
	}
	return c, nil
}

func (s *Store) CreateClassroom(c model.Classroom) model.Classroom {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.ids.next("classroom")
	s.classrooms[c.ID] = c
	return c
}

func (s *Store) UpdateClassroom(id int64, c model.Classroom) (model.Classroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classrooms[id]; !ok {
		return model.Classroom{}, ErrClassroomNotFound
	}
	c.ID = id
	s.classrooms[id] = c
	return c, nil
}

// DeleteClassroom drops the classroom together with the events held in it.
func (s *Store) DeleteClassroom(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classrooms[id]; !ok {
		return ErrClassroomNotFound
	}
	delete(s.classrooms, id)
	for eventID, ev := range s.events {
		if ev.ClassroomID == id {
			delete(s.events, eventID)
		}
	}
	return nil
}
