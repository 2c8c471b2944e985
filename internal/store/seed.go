package store

import (
	"time"

	"course-manager-client/internal/model"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "SecurePass123"

// Seed loads a small sample catalog: two organizers, two participants, a few
// classrooms and tags, and events on both sides of the current time.
func (s *Store) Seed() error {
	users := []model.RegisterRequest{
		{Firstname: "Anna", Surname: "Nowak", Age: 34, Email: "anna.nowak@agh.edu.pl", IsOrganizer: true},
		{Firstname: "Robert", Surname: "Kowalski", Age: 45, Email: "robert.kowalski@agh.edu.pl", IsOrganizer: true},
		{Firstname: "Ewa", Surname: "Lewandowska", Age: 29, Email: "ewa.lewandowska@agh.edu.pl"},
		{Firstname: "Mateusz", Surname: "Zielinski", Age: 26, Email: "mateusz.zielinski@gmail.com"},
	}
	var ids []int64
	for _, u := range users {
		u.Password = SeedPassword
		created, err := s.RegisterUser(u)
		if err != nil {
			return err
		}
		ids = append(ids, created.ID)
	}

	rooms := []model.Classroom{
		s.CreateClassroom(model.Classroom{Capacity: 30, Location: "D10 AGH Campus", Info: "Projector", ClassroomName: "101A"}),
		s.CreateClassroom(model.Classroom{Capacity: 50, Location: "C5 AGH Campus", Info: "VR lab", ClassroomName: "302B"}),
		s.CreateClassroom(model.Classroom{Capacity: 20, Location: "B1 AGH Campus", Info: "Group work", ClassroomName: "205C"}),
	}
	tags := []model.Tag{
		s.CreateTag(model.Tag{Name: "Computer science"}),
		s.CreateTag(model.Tag{Name: "Management"}),
		s.CreateTag(model.Tag{Name: "Artificial intelligence"}),
	}

	day := 24 * time.Hour
	today := s.now().Truncate(day)
	events := []struct {
		req          model.EventRequest
		participants []int64
	}{
		{
			req: eventAt("Introduction to AI", today.Add(-30*day+9*time.Hour), 3*time.Hour, 40,
				ids[0], rooms[0].ID, tags[2].ID),
			participants: []int64{ids[2], ids[3]},
		},
		{
			req: eventAt("Team management workshop", today.Add(14*day+10*time.Hour), 4*time.Hour, 30,
				ids[1], rooms[1].ID, tags[1].ID),
			participants: []int64{ids[2]},
		},
		{
			req: eventAt("Advanced AI algorithms", today.Add(40*day+10*time.Hour), 4*time.Hour, 2,
				ids[0], rooms[2].ID, tags[0].ID, tags[2].ID),
		},
	}
	for _, e := range events {
		ev, err := s.CreateEvent(e.req)
		if err != nil {
			return err
		}
		for _, uid := range e.participants {
			if err := s.Enroll(ev.ID, uid); err != nil {
				return err
			}
		}
	}
	return nil
}

func eventAt(name string, start time.Time, length time.Duration, capacity int, organizer, room int64, tagIDs ...int64) model.EventRequest {
	return model.EventRequest{
		Name:            name,
		StartDatetime:   model.NewLocalTime(start),
		EndDatetime:     model.NewLocalTime(start.Add(length)),
		MaxParticipants: capacity,
		MinAge:          18,
		OrganizerID:     organizer,
		ClassroomID:     room,
		TagIDs:          tagIDs,
	}
}
