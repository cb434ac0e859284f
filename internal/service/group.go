package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"deanery-backend/internal/model"
	"deanery-backend/internal/storage"
)

// GroupInput carries the caller-supplied fields for creating or updating a
// group.
type GroupInput struct {
	Name           string
	Specialization string
	Year           int
}

// GroupService owns the group collection and the bidirectional side of the
// student-group relationship. Enrollment keeps the group's member list and
// the student's group pointer consistent across the two collections.
type GroupService struct {
	groups   storage.Store[model.Group]
	students storage.Store[model.Student]
}

// NewGroupService creates the service.
func NewGroupService(groups storage.Store[model.Group], students storage.Store[model.Student]) *GroupService {
	return &GroupService{groups: groups, students: students}
}

// Create validates the input, enforces name uniqueness and persists a new
// group with a fresh id.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (model.Group, error) {
	if err := validateGroup(in); err != nil {
		return model.Group{}, err
	}
	if err := s.ensureNameFree(ctx, in.Name, ""); err != nil {
		return model.Group{}, err
	}

	group := model.Group{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Specialization: in.Specialization,
		Year:           in.Year,
	}

	if err := s.groups.Insert(ctx, group); err != nil {
		return model.Group{}, fmt.Errorf("insert group: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return model.Group{}, fmt.Errorf("commit groups: %w", err)
	}
	return group, nil
}

// Update validates and replaces the mutable fields of an existing group. The
// member list is untouched.
func (s *GroupService) Update(ctx context.Context, id string, in GroupInput) (model.Group, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Group{}, err
	}
	if err := validateGroup(in); err != nil {
		return model.Group{}, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return model.Group{}, err
	}

	group.Name = in.Name
	group.Specialization = in.Specialization
	group.Year = in.Year

	if err := s.groups.Replace(ctx, group); err != nil {
		return model.Group{}, fmt.Errorf("replace group: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return model.Group{}, fmt.Errorf("commit groups: %w", err)
	}
	return group, nil
}

// Delete removes a group and clears the group pointer of every member
// student first, so no student is left pointing at a missing group. The
// student scan is O(all students); students are not indexed by group.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	students, err := s.students.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	for _, student := range students {
		if student.GroupID != id {
			continue
		}
		student.GroupID = ""
		if err := s.students.Replace(ctx, student); err != nil {
			return fmt.Errorf("replace student: %w", err)
		}
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return fmt.Errorf("commit groups: %w", err)
	}
	return nil
}

// GetByID returns the group with the given id.
func (s *GroupService) GetByID(ctx context.Context, id string) (model.Group, error) {
	group, ok, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return model.Group{}, fmt.Errorf("load group: %w", err)
	}
	if !ok {
		return model.Group{}, &NotFoundError{Kind: "Group", ID: id}
	}
	return group, nil
}

// List returns every group.
func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	groups, err := s.groups.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Enroll adds the student to the group and points the student at it. A
// student already belonging to another group is migrated: the old group's
// member list is updated and persisted first, so the student is never a
// member of two groups at once. Re-enrolling into the current group is a
// no-op.
func (s *GroupService) Enroll(ctx context.Context, groupID, studentID string) error {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	student, ok, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("load student: %w", err)
	}
	if !ok {
		return &NotFoundError{Kind: "Student", ID: studentID}
	}

	if student.GroupID == groupID && group.HasStudent(studentID) {
		return nil
	}

	if student.InGroup() && student.GroupID != groupID {
		oldGroup, ok, err := s.groups.GetByID(ctx, student.GroupID)
		if err != nil {
			return fmt.Errorf("load old group: %w", err)
		}
		if ok {
			oldGroup.RemoveStudent(studentID)
			if err := s.groups.Replace(ctx, oldGroup); err != nil {
				return fmt.Errorf("replace old group: %w", err)
			}
		}
	}

	group.AddStudent(studentID)
	student.GroupID = groupID

	if err := s.groups.Replace(ctx, group); err != nil {
		return fmt.Errorf("replace group: %w", err)
	}
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return fmt.Errorf("commit groups: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// Unenroll removes the student from the group's member list and clears the
// student's group pointer. Removing an absent member is a no-op, so the
// operation is idempotent. The pointer is cleared unconditionally, even when
// it names a different group.
func (s *GroupService) Unenroll(ctx context.Context, groupID, studentID string) error {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	student, ok, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("load student: %w", err)
	}
	if !ok {
		return &NotFoundError{Kind: "Student", ID: studentID}
	}

	group.RemoveStudent(studentID)
	student.GroupID = ""

	if err := s.groups.Replace(ctx, group); err != nil {
		return fmt.Errorf("replace group: %w", err)
	}
	if err := s.students.Replace(ctx, student); err != nil {
		return fmt.Errorf("replace student: %w", err)
	}
	if err := s.groups.Commit(ctx); err != nil {
		return fmt.Errorf("commit groups: %w", err)
	}
	if err := s.students.Commit(ctx); err != nil {
		return fmt.Errorf("commit students: %w", err)
	}
	return nil
}

// Students returns every student whose group pointer names the given group.
func (s *GroupService) Students(ctx context.Context, groupID string) ([]model.Student, error) {
	if _, err := s.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	members := make([]model.Student, 0)
	for _, student := range students {
		if student.GroupID == groupID {
			members = append(members, student)
		}
	}
	return members, nil
}

// ensureNameFree scans the collection for another group with the same name.
// selfID excludes the record being updated.
func (s *GroupService) ensureNameFree(ctx context.Context, name, selfID string) error {
	groups, err := s.groups.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	for _, other := range groups {
		if other.Name == name && other.ID != selfID {
			return &DuplicateError{Kind: "Group", Key: name}
		}
	}
	return nil
}

func validateGroup(in GroupInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("group name cannot be empty")
	}
	if strings.TrimSpace(in.Specialization) == "" {
		return validationf("specialization cannot be empty")
	}
	if in.Year < 1 || in.Year > 6 {
		return validationf("year must be between 1 and 6")
	}
	return nil
}
