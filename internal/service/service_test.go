package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deanery-backend/config"
	"deanery-backend/internal/model"
	"deanery-backend/internal/storage/memory"
)

// fixture wires the three services over shared in-memory stores, the same
// way main wires them over a durable backend.
type fixture struct {
	students *StudentService
	groups   *GroupService
	dorms    *DormitoryService

	// raw store access for tests that plant corrupted records
	studentStore *memory.Store[model.Student]
}

func newFixture(deletePolicy string) *fixture {
	students := memory.New[model.Student]()
	groups := memory.New[model.Group]()
	dorms := memory.New[model.Dormitory]()
	rooms := memory.New[model.Room]()

	return &fixture{
		students:     NewStudentService(students, groups, rooms, deletePolicy),
		groups:       NewGroupService(groups, students),
		dorms:        NewDormitoryService(dorms, rooms, students),
		studentStore: students,
	}
}

func newRestrictFixture() *fixture { return newFixture(config.DeletePolicyRestrict) }

func (f *fixture) mustStudent(t *testing.T, first, last, email string) model.Student {
	t.Helper()
	student, err := f.students.Create(context.Background(), StudentInput{
		FirstName:   first,
		LastName:    last,
		MiddleName:  "Ivanovych",
		DateOfBirth: time.Date(2004, time.September, 1, 0, 0, 0, 0, time.UTC),
		Email:       email,
		Phone:       "+380 (44) 123-45-67",
	})
	require.NoError(t, err)
	return student
}

func (f *fixture) mustGroup(t *testing.T, name string) model.Group {
	t.Helper()
	group, err := f.groups.Create(context.Background(), GroupInput{
		Name:           name,
		Specialization: "Computer Science",
		Year:           2,
	})
	require.NoError(t, err)
	return group
}

func (f *fixture) mustDorm(t *testing.T, name string) model.Dormitory {
	t.Helper()
	dorm, err := f.dorms.CreateDormitory(context.Background(), DormitoryInput{
		Name:    name,
		Address: "12 Peremohy Ave",
	})
	require.NoError(t, err)
	return dorm
}

func (f *fixture) mustRoom(t *testing.T, dormID, number string, capacity int) model.Room {
	t.Helper()
	room, err := f.dorms.CreateRoom(context.Background(), dormID, RoomInput{
		Number:      number,
		Floor:       1,
		MaxCapacity: capacity,
	})
	require.NoError(t, err)
	return room
}
