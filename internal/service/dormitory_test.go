package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomValidation(t *testing.T) {
	testCases := []struct {
		name string
		in   RoomInput
	}{
		{"empty number", RoomInput{Number: "", Floor: 1, MaxCapacity: 2}},
		{"floor below one", RoomInput{Number: "101", Floor: 0, MaxCapacity: 2}},
		{"capacity below one", RoomInput{Number: "101", Floor: 1, MaxCapacity: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRestrictFixture()
			dorm := f.mustDorm(t, "Hurtozhytok 4")

			_, err := f.dorms.CreateRoom(context.Background(), dorm.ID, tc.in)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateRoomRequiresDormitory(t *testing.T) {
	f := newRestrictFixture()

	var nferr *NotFoundError
	_, err := f.dorms.CreateRoom(context.Background(), "missing-dorm", RoomInput{
		Number: "101", Floor: 1, MaxCapacity: 2,
	})
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "Dormitory", nferr.Kind)
}

func TestRoomNumberUniquePerDormitory(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	d1 := f.mustDorm(t, "Hurtozhytok 4")
	d2 := f.mustDorm(t, "Hurtozhytok 5")
	f.mustRoom(t, d1.ID, "101", 2)

	var dup *DuplicateError
	_, err := f.dorms.CreateRoom(ctx, d1.ID, RoomInput{Number: "101", Floor: 1, MaxCapacity: 2})
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Room", dup.Kind)
	assert.Equal(t, "101", dup.Key)

	// The same number in a different dormitory is fine.
	_, err = f.dorms.CreateRoom(ctx, d2.ID, RoomInput{Number: "101", Floor: 1, MaxCapacity: 2})
	assert.NoError(t, err)
}

func TestCheckInUpToCapacity(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	room := f.mustRoom(t, dorm.ID, "101", 2)
	s1 := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	s2 := f.mustStudent(t, "Iryna", "Bondar", "iryna@example.com")
	s3 := f.mustStudent(t, "Petro", "Kovalenko", "petro@example.com")

	require.NoError(t, f.dorms.CheckIn(ctx, s1.ID, room.ID))

	got, err := f.dorms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s1.ID}, got.ResidentIDs)

	gotStudent, err := f.students.GetByID(ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, gotStudent.RoomID)

	require.NoError(t, f.dorms.CheckIn(ctx, s2.ID, room.ID))

	// Third check-in hits the capacity limit and changes nothing.
	var caperr *CapacityError
	err = f.dorms.CheckIn(ctx, s3.ID, room.ID)
	require.ErrorAs(t, err, &caperr)
	assert.Equal(t, 2, caperr.Current)
	assert.Equal(t, 2, caperr.Max)

	got, err = f.dorms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s1.ID, s2.ID}, got.ResidentIDs)

	gotStudent, err = f.students.GetByID(ctx, s3.ID)
	require.NoError(t, err)
	assert.Empty(t, gotStudent.RoomID)
}

func TestCheckInRejectsHousedStudent(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	r1 := f.mustRoom(t, dorm.ID, "101", 2)
	r2 := f.mustRoom(t, dorm.ID, "102", 2)
	student := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")

	require.NoError(t, f.dorms.CheckIn(ctx, student.ID, r1.ID))

	// No migration on the housing side; a transfer is checkout then check-in.
	var verr *ValidationError
	err := f.dorms.CheckIn(ctx, student.ID, r2.ID)
	assert.ErrorAs(t, err, &verr)
}

func TestCheckOutLifecycle(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	room := f.mustRoom(t, dorm.ID, "101", 2)
	student := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	require.NoError(t, f.dorms.CheckIn(ctx, student.ID, room.ID))

	require.NoError(t, f.dorms.CheckOut(ctx, student.ID))

	got, err := f.dorms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ResidentIDs)

	gotStudent, err := f.students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, gotStudent.RoomID)

	// Checking out an unhoused student is rejected, not ignored.
	var verr *ValidationError
	err = f.dorms.CheckOut(ctx, student.ID)
	assert.ErrorAs(t, err, &verr)
}

func TestCheckOutSurfacesMissingRoom(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	student := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")

	// Plant a dangling room pointer directly in the store: a data-integrity
	// failure no service operation can produce on its own.
	student.RoomID = "vanished-room"
	require.NoError(t, f.studentStore.Replace(ctx, student))

	var nferr *NotFoundError
	err := f.dorms.CheckOut(ctx, student.ID)
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "Room", nferr.Kind)
}

func TestReduceCapacityBelowOccupancy(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	room := f.mustRoom(t, dorm.ID, "101", 1)

	// Capacity can never drop below one.
	var verr *ValidationError
	_, err := f.dorms.UpdateRoom(ctx, room.ID, RoomInput{Number: "101", Floor: 1, MaxCapacity: 0})
	require.ErrorAs(t, err, &verr)

	got, err := f.dorms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MaxCapacity)

	// Nor below the current resident count.
	bigger := f.mustRoom(t, dorm.ID, "102", 3)
	s1 := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	s2 := f.mustStudent(t, "Iryna", "Bondar", "iryna@example.com")
	require.NoError(t, f.dorms.CheckIn(ctx, s1.ID, bigger.ID))
	require.NoError(t, f.dorms.CheckIn(ctx, s2.ID, bigger.ID))

	_, err = f.dorms.UpdateRoom(ctx, bigger.ID, RoomInput{Number: "102", Floor: 1, MaxCapacity: 1})
	require.ErrorAs(t, err, &verr)

	got, err = f.dorms.GetRoom(ctx, bigger.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MaxCapacity)
}

func TestCapacityReport(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	r1 := f.mustRoom(t, dorm.ID, "101", 2)
	f.mustRoom(t, dorm.ID, "102", 3)
	s1 := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	require.NoError(t, f.dorms.CheckIn(ctx, s1.ID, r1.ID))

	report, err := f.dorms.Capacity(ctx, dorm.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalCapacity)
	assert.Equal(t, 1, report.Occupied)
	assert.Equal(t, 4, report.Available)
	require.Len(t, report.Rooms, 2)
	assert.Equal(t, RoomSpace{Number: "101", Capacity: 2, Available: 1}, report.Rooms[0])
	assert.Equal(t, RoomSpace{Number: "102", Capacity: 3, Available: 3}, report.Rooms[1])
}

func TestResidentListings(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	other := f.mustDorm(t, "Hurtozhytok 5")
	r1 := f.mustRoom(t, dorm.ID, "101", 2)
	r2 := f.mustRoom(t, other.ID, "101", 2)

	s1 := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	s2 := f.mustStudent(t, "Iryna", "Bondar", "iryna@example.com")
	require.NoError(t, f.dorms.CheckIn(ctx, s1.ID, r1.ID))
	require.NoError(t, f.dorms.CheckIn(ctx, s2.ID, r2.ID))

	roomResidents, err := f.dorms.RoomResidents(ctx, r1.ID)
	require.NoError(t, err)
	require.Len(t, roomResidents, 1)
	assert.Equal(t, s1.ID, roomResidents[0].ID)

	dormResidents, err := f.dorms.Residents(ctx, dorm.ID)
	require.NoError(t, err)
	require.Len(t, dormResidents, 1)
	assert.Equal(t, s1.ID, dormResidents[0].ID)
}

func TestDeleteRoomAndDormitoryGuards(t *testing.T) {
	f := newRestrictFixture()
	ctx := context.Background()

	dorm := f.mustDorm(t, "Hurtozhytok 4")
	room := f.mustRoom(t, dorm.ID, "101", 2)
	student := f.mustStudent(t, "Oleh", "Shevchenko", "oleh@example.com")
	require.NoError(t, f.dorms.CheckIn(ctx, student.ID, room.ID))

	var verr *ValidationError

	// Occupied room and non-empty dormitory both refuse deletion.
	err := f.dorms.DeleteRoom(ctx, room.ID)
	require.ErrorAs(t, err, &verr)
	err = f.dorms.DeleteDormitory(ctx, dorm.ID)
	require.ErrorAs(t, err, &verr)

	require.NoError(t, f.dorms.CheckOut(ctx, student.ID))
	require.NoError(t, f.dorms.DeleteRoom(ctx, room.ID))

	gotDorm, err := f.dorms.GetDormitory(ctx, dorm.ID)
	require.NoError(t, err)
	assert.Empty(t, gotDorm.RoomIDs)

	require.NoError(t, f.dorms.DeleteDormitory(ctx, dorm.ID))

	var nferr *NotFoundError
	_, err = f.dorms.GetDormitory(ctx, dorm.ID)
	assert.ErrorAs(t, err, &nferr)
}
