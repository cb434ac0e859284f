package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"deanery-backend/config"
	"deanery-backend/internal/model"
	"deanery-backend/internal/storage"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s+\-()]+$`)
)

// StudentInput carries the caller-supplied fields for creating or updating a
// student record.
type StudentInput struct {
	FirstName   string
	LastName    string
	MiddleName  string
	DateOfBirth time.Time
	Email       string
	Phone       string
}

// StudentService owns the student collection. Its group primitives mutate
// only the student's side of the relationship; callers that need both sides
// kept consistent go through GroupService.Enroll instead.
type StudentService struct {
	students     storage.Store[model.Student]
	groups       storage.Store[model.Group]
	rooms        storage.Store[model.Room]
	deletePolicy string
}

// NewStudentService creates the service. The group and room stores are only
// touched by the cascade delete policy.
func NewStudentService(
	students storage.Store[model.Student],
	groups storage.Store[model.Group],
	rooms storage.Store[model.Room],
	deletePolicy string,
) *StudentService {
	return &StudentService{
		students:     students,
		groups:       groups,
		rooms:        rooms,
		deletePolicy: deletePolicy,
	}
}

// Create validates the input, enforces email uniqueness and persists a new
// student with a fresh id.
func (s *StudentService) Create(ctx context.Context, in StudentInput) (model.Student, error) {
	if err := validateStudent(in); err != nil {
		return model.Student{}, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return model.Student{}, err
	}

	student := model.Student{
		ID:          uuid.NewString(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		MiddleName:  in.MiddleName,
		DateOfBirth: in.DateOfBirth,
		Email:       in.Email,
		Phone:       in.Phone,
	}

	if err := s.students.Insert(ctx, student); err != nil {
		return model.Student{}, fmt.Errorf("insert student: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return model.Student{}, fmt.Errorf("commit students: %w", err)
	}
	return student, nil
}

// Update validates and replaces the mutable fields of an existing student.
// Group and room membership is untouched.
func (s *StudentService) Update(ctx context.Context, id string, in StudentInput) (model.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Student{}, err
	}
	if err := validateStudent(in); err != nil {
		return model.Student{}, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, id); err != nil {
		return model.Student{}, err
	}

	student.FirstName = in.FirstName
	student.LastName = in.LastName
	student.MiddleName = in.MiddleName
	student.DateOfBirth = in.DateOfBirth
	student.Email = in.Email
	student.Phone = in.Phone

	if err := s.students.Replace(ctx, student); err != nil {
		return model.Student{}, fmt.Errorf("replace student: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return model.Student{}, fmt.Errorf("commit students: %w", err)
	}
	return student, nil
}

// Delete removes a student. Under the restrict policy a student that is
// still enrolled or housed is rejected; under the cascade policy both
// memberships are dissolved first, keeping the referencing collections
// consistent.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.deletePolicy == config.DeletePolicyRestrict {
		if student.InGroup() {
			return validationf("student is still enrolled in a group; unenroll first")
		}
		if student.Housed() {
			return validationf("student is still housed in a room; check out first")
		}
	} else {
		if err := s.dissolveGroupMembership(ctx, student); err != nil {
			return err
		}
		if err := s.dissolveResidency(ctx, student); err != nil {
			return err
		}
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// dissolveGroupMembership removes the student from its group's member list
// before deletion.
func (s *StudentService) dissolveGroupMembership(ctx context.Context, student model.Student) error {
	if !student.InGroup() {
		return nil
	}
	group, ok, err := s.groups.GetByID(ctx, student.GroupID)
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}
	if !ok {
		return nil
	}
	group.RemoveStudent(student.ID)
	if err := s.groups.Replace(ctx, group); err != nil {
		return fmt.Errorf("replace group: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return fmt.Errorf("commit groups: %w", err)
	}
	return nil
}

// dissolveResidency removes the student from its room's resident list before
// deletion.
func (s *StudentService) dissolveResidency(ctx context.Context, student model.Student) error {
	if !student.Housed() {
		return nil
	}
	room, ok, err := s.rooms.GetByID(ctx, student.RoomID)
	if err != nil {
		return fmt.Errorf("load room: %w", err)
	}
	if !ok {
		return nil
	}
	room.RemoveResident(student.ID)
	if err := s.rooms.Replace(ctx, room); err != nil {
		return fmt.Errorf("replace room: %w", err)
	}
	if err := s.rooms.Commit(ctx); err != nil {
		return fmt.Errorf("commit rooms: %w", err)
	}
	return nil
}

// GetByID returns the student with the given id.
func (s *StudentService) GetByID(ctx context.Context, id string) (model.Student, error) {
	student, ok, err := s.students.GetByID(ctx, id)
	if err != nil {
		return model.Student{}, fmt.Errorf("load student: %w", err)
	}
	if !ok {
		return model.Student{}, &NotFoundError{Kind: "Student", ID: id}
	}
	return student, nil
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Search returns students whose first, last or middle name contains the
// query, case-insensitively.
func (s *StudentService) Search(ctx context.Context, query string) ([]model.Student, error) {
	students, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	matches := make([]model.Student, 0)
	for _, student := range students {
		if strings.Contains(strings.ToLower(student.FirstName), q) ||
			strings.Contains(strings.ToLower(student.LastName), q) ||
			strings.Contains(strings.ToLower(student.MiddleName), q) {
			matches = append(matches, student)
		}
	}
	return matches, nil
}

// AssignToGroup sets the student's group pointer only. The group's member
// list is not updated; this is a lower-level primitive than
// GroupService.Enroll and deliberately stays one-sided.
func (s *StudentService) AssignToGroup(ctx context.Context, studentID, groupID string) error {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	student.GroupID = groupID
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// RemoveFromGroup clears the student's group pointer only, mirroring
// AssignToGroup's one-sided contract.
func (s *StudentService) RemoveFromGroup(ctx context.Context, studentID string) error {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	student.GroupID = ""
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// ensureEmailFree scans the collection for another student with the same
// email. selfID excludes the record being updated.
func (s *StudentService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	for _, other := range students {
		if other.Email == email && other.ID != selfID {
			return &DuplicateError{Kind: "Student", Key: email}
		}
	}
	return nil
}

func validateStudent(in StudentInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return validationf("first name cannot be empty")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return validationf("last name cannot be empty")
	}
	if strings.TrimSpace(in.MiddleName) == "" {
		return validationf("middle name cannot be empty")
	}
	if !emailRe.MatchString(in.Email) {
		return validationf("invalid email format")
	}
	if len(in.Phone) < 10 || !phoneRe.MatchString(in.Phone) {
		return validationf("invalid phone format")
	}
	return nil
}
