package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"deanery-backend/internal/model"
	"deanery-backend/internal/storage"
)

// DormitoryInput carries the caller-supplied fields for creating or updating
// a dormitory.
type DormitoryInput struct {
	Name    string
	Address string
}

// RoomInput carries the caller-supplied fields for creating or updating a
// room.
type RoomInput struct {
	Number      string
	Floor       int
	MaxCapacity int
}

// RoomSpace describes one room's occupancy inside a capacity report.
type RoomSpace struct {
	Number    string `json:"number"`
	Capacity  int    `json:"capacity"`
	Available int    `json:"available"`
}

// CapacityReport aggregates occupancy over every room of one dormitory. It
// is derived from the room collection on each call, never stored.
type CapacityReport struct {
	TotalCapacity int         `json:"totalCapacity"`
	Occupied      int         `json:"occupied"`
	Available     int         `json:"available"`
	Rooms         []RoomSpace `json:"rooms"`
}

// DormitoryService owns the dormitory and room collections and the housing
// side of the student relationship. Check-in rejects a student who is housed
// anywhere, unlike enrollment's migrate-on-reassign; the two policies differ
// on purpose and mirror the institution's existing rules.
type DormitoryService struct {
	dorms    storage.Store[model.Dormitory]
	rooms    storage.Store[model.Room]
	students storage.Store[model.Student]
}

// NewDormitoryService creates the service.
func NewDormitoryService(
	dorms storage.Store[model.Dormitory],
	rooms storage.Store[model.Room],
	students storage.Store[model.Student],
) *DormitoryService {
	return &DormitoryService{dorms: dorms, rooms: rooms, students: students}
}

// CreateDormitory validates the input and persists a new dormitory.
func (s *DormitoryService) CreateDormitory(ctx context.Context, in DormitoryInput) (model.Dormitory, error) {
	if err := validateDormitory(in); err != nil {
		return model.Dormitory{}, err
	}

	dorm := model.Dormitory{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Address: in.Address,
	}

	if err := s.dorms.Insert(ctx, dorm); err != nil {
		return model.Dormitory{}, fmt.Errorf("insert dormitory: %w", err)
	}
	if err := s.dorms.Commit(ctx); err != nil {
		return model.Dormitory{}, fmt.Errorf("commit dormitories: %w", err)
	}
	return dorm, nil
}

// UpdateDormitory validates and replaces the mutable fields of an existing
// dormitory. The room list is untouched.
func (s *DormitoryService) UpdateDormitory(ctx context.Context, id string, in DormitoryInput) (model.Dormitory, error) {
	dorm, err := s.GetDormitory(ctx, id)
	if err != nil {
		return model.Dormitory{}, err
	}
	if err := validateDormitory(in); err != nil {
		return model.Dormitory{}, err
	}

	dorm.Name = in.Name
	dorm.Address = in.Address

	if err := s.dorms.Replace(ctx, dorm); err != nil {
		return model.Dormitory{}, fmt.Errorf("replace dormitory: %w", err)
	}
	if err := s.dorms.Commit(ctx); err != nil {
		return model.Dormitory{}, fmt.Errorf("commit dormitories: %w", err)
	}
	return dorm, nil
}

// DeleteDormitory removes a dormitory. A dormitory that still has rooms is
// rejected; rooms have no transfer operation, so they must be deleted first.
func (s *DormitoryService) DeleteDormitory(ctx context.Context, id string) error {
	dorm, err := s.GetDormitory(ctx, id)
	if err != nil {
		return err
	}
	if dorm.RoomCount() > 0 {
		return validationf("dormitory still has %d rooms; delete them first", dorm.RoomCount())
	}
	if err := s.dorms.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dormitory: %w", err)
	}
	if err := s.dorms.Commit(ctx); err != nil {
		return fmt.Errorf("commit dormitories: %w", err)
	}
	return nil
}

// CreateRoom validates the input and persists a new room under the given
// dormitory. The room number must be unique within that dormitory's room
// set; rooms live in one flat collection, so the check cross-references the
// dormitory's room ids.
func (s *DormitoryService) CreateRoom(ctx context.Context, dormitoryID string, in RoomInput) (model.Room, error) {
	dorm, err := s.GetDormitory(ctx, dormitoryID)
	if err != nil {
		return model.Room{}, err
	}
	if err := validateRoom(in); err != nil {
		return model.Room{}, err
	}

	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return model.Room{}, fmt.Errorf("list rooms: %w", err)
	}
	for _, other := range rooms {
		if other.Number == in.Number && dorm.HasRoom(other.ID) {
			return model.Room{}, &DuplicateError{Kind: "Room", Key: in.Number}
		}
	}

	room := model.Room{
		ID:          uuid.NewString(),
		Number:      in.Number,
		Floor:       in.Floor,
		MaxCapacity: in.MaxCapacity,
	}
	dorm.AddRoom(room.ID)

	if err := s.rooms.Insert(ctx, room); err != nil {
		return model.Room{}, fmt.Errorf("insert room: %w", err)
	}
	if err := s.dorms.Replace(ctx, dorm); err != nil {
		return model.Room{}, fmt.Errorf("replace dormitory: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return model.Room{}, fmt.Errorf("commit rooms: %w", err)
	}
	if err := s.dorms.Commit(ctx); err != nil {
		return model.Room{}, fmt.Errorf("commit dormitories: %w", err)
	}
	return room, nil
}

// UpdateRoom validates and replaces the mutable fields of an existing room.
// Reducing capacity below the current resident count is rejected.
func (s *DormitoryService) UpdateRoom(ctx context.Context, id string, in RoomInput) (model.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return model.Room{}, err
	}
	if err := validateRoom(in); err != nil {
		return model.Room{}, err
	}
	if in.MaxCapacity < room.ResidentCount() {
		return model.Room{}, validationf(
			"cannot reduce capacity below current resident count (%d)", room.ResidentCount())
	}

	room.Number = in.Number
	room.Floor = in.Floor
	room.MaxCapacity = in.MaxCapacity

	if err := s.rooms.Replace(ctx, room); err != nil {
		return model.Room{}, fmt.Errorf("replace room: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return model.Room{}, fmt.Errorf("commit rooms: %w", err)
	}
	return room, nil
}

// DeleteRoom removes an empty room and drops it from the owning dormitory's
// room list. An occupied room is rejected; residents must check out first.
func (s *DormitoryService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if room.ResidentCount() > 0 {
		return validationf("room still has %d residents; check them out first", room.ResidentCount())
	}

	dorms, err := s.dorms.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list dormitories: %w", err)
	}
	for _, dorm := range dorms {
		if !dorm.RemoveRoom(id) {
			continue
		}
		if err := s.dorms.Replace(ctx, dorm); err != nil {
			return fmt.Errorf("replace dormitory: %w", err)
		}
		if err := s.dorms.Commit(ctx); err != nil {
			return fmt.Errorf("commit dormitories: %w", err)
		}
		break
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms: %w", err)
	}
	return nil
}

// CheckIn houses the student in the room. A student already housed anywhere
// is rejected; a full room is rejected with the occupancy figures.
func (s *DormitoryService) CheckIn(ctx context.Context, studentID, roomID string) error {
	student, ok, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("load student: %w", err)
	}
	if !ok {
		return &NotFoundError{Kind: "Student", ID: studentID}
	}
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if student.Housed() {
		return validationf("student is already living in a dormitory")
	}
	if room.IsFull() {
		return &CapacityError{Kind: "Room", Current: room.ResidentCount(), Max: room.MaxCapacity}
	}

	room.AddResident(studentID)
	student.RoomID = roomID

	if err := s.rooms.Replace(ctx, room); err != nil {
		return fmt.Errorf("replace room: %w", err)
	}
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// CheckOut releases the student's room. A student who is not housed is
// rejected. A room pointer naming a missing room is a data-integrity failure
// and is surfaced, not ignored.
func (s *DormitoryService) CheckOut(ctx context.Context, studentID string) error {
	student, ok, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("load student: %w", err)
	}
	if !ok {
		return &NotFoundError{Kind: "Student", ID: studentID}
	}
	if !student.Housed() {
		return validationf("student is not living in a dormitory")
	}

	room, ok, err := s.rooms.GetByID(ctx, student.RoomID)
	if err != nil {
		return fmt.Errorf("load room: %w", err)
	}
	if !ok {
		return &NotFoundError{Kind: "Room", ID: student.RoomID}
	}

	room.RemoveResident(studentID)
	student.RoomID = ""

	if err := s.rooms.Replace(ctx, room); err != nil {
		return fmt.Errorf("replace room: %w", err)
	}
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// ListDormitories returns every dormitory.
func (s *DormitoryService) ListDormitories(ctx context.Context) ([]model.Dormitory, error) {
	dorms, err := s.dorms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dormitories: %w", err)
	}
	return dorms, nil
}

// GetDormitory returns the dormitory with the given id.
func (s *DormitoryService) GetDormitory(ctx context.Context, id string) (model.Dormitory, error) {
	dorm, ok, err := s.dorms.GetByID(ctx, id)
	if err != nil {
		return model.Dormitory{}, fmt.Errorf("load dormitory: %w", err)
	}
	if !ok {
		return model.Dormitory{}, &NotFoundError{Kind: "Dormitory", ID: id}
	}
	return dorm, nil
}

// Rooms returns every room belonging to the given dormitory.
func (s *DormitoryService) Rooms(ctx context.Context, dormitoryID string) ([]model.Room, error) {
	dorm, err := s.GetDormitory(ctx, dormitoryID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	owned := make([]model.Room, 0)
	for _, room := range rooms {
		if dorm.HasRoom(room.ID) {
			owned = append(owned, room)
		}
	}
	return owned, nil
}

// GetRoom returns the room with the given id.
func (s *DormitoryService) GetRoom(ctx context.Context, id string) (model.Room, error) {
	room, ok, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return model.Room{}, fmt.Errorf("load room: %w", err)
	}
	if !ok {
		return model.Room{}, &NotFoundError{Kind: "Room", ID: id}
	}
	return room, nil
}

// RoomResidents returns every student whose room pointer names the given
// room.
func (s *DormitoryService) RoomResidents(ctx context.Context, roomID string) ([]model.Student, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	residents := make([]model.Student, 0)
	for _, student := range students {
		if student.RoomID == roomID {
			residents = append(residents, student)
		}
	}
	return residents, nil
}

// Residents returns every student housed in any room of the given dormitory.
func (s *DormitoryService) Residents(ctx context.Context, dormitoryID string) ([]model.Student, error) {
	dorm, err := s.GetDormitory(ctx, dormitoryID)
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	residents := make([]model.Student, 0)
	for _, student := range students {
		if student.Housed() && dorm.HasRoom(student.RoomID) {
			residents = append(residents, student)
		}
	}
	return residents, nil
}

// Capacity builds the occupancy report for one dormitory.
func (s *DormitoryService) Capacity(ctx context.Context, dormitoryID string) (CapacityReport, error) {
	rooms, err := s.Rooms(ctx, dormitoryID)
	if err != nil {
		return CapacityReport{}, err
	}

	report := CapacityReport{Rooms: make([]RoomSpace, 0, len(rooms))}
	for _, room := range rooms {
		report.TotalCapacity += room.MaxCapacity
		report.Occupied += room.ResidentCount()
		report.Rooms = append(report.Rooms, RoomSpace{
			Number:    room.Number,
			Capacity:  room.MaxCapacity,
			Available: room.AvailableSpaces(),
		})
	}
	report.Available = report.TotalCapacity - report.Occupied
	return report, nil
}

func validateDormitory(in DormitoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("dormitory name cannot be empty")
	}
	if strings.TrimSpace(in.Address) == "" {
		return validationf("address cannot be empty")
	}
	return nil
}

func validateRoom(in RoomInput) error {
	if strings.TrimSpace(in.Number) == "" {
		return validationf("room number cannot be empty")
	}
	if in.Floor < 1 {
		return validationf("floor must be at least 1")
	}
	if in.MaxCapacity < 1 {
		return validationf("max capacity must be at least 1")
	}
	return nil
}
