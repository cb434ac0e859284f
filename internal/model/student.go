package model

import (
	"strings"
	"time"
)

// Student represents a single student record. Group and room membership is
// referenced by id only; the referencing collections own the other side.
type Student struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName   string    `json:"firstName" gorm:"size:128;not null"`
	LastName    string    `json:"lastName" gorm:"size:128;not null"`
	MiddleName  string    `json:"middleName" gorm:"size:128;not null"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Email       string    `json:"email" gorm:"size:256;not null"`
	Phone       string    `json:"phone" gorm:"size:64"`
	GroupID     string    `json:"groupId,omitempty" gorm:"size:36;index"`
	RoomID      string    `json:"roomId,omitempty" gorm:"size:36;index"`
}

// EntityID returns the record's unique id.
func (s Student) EntityID() string { return s.ID }

// FullName returns the student's display name, family name first.
func (s Student) FullName() string {
	return strings.Join([]string{s.LastName, s.FirstName, s.MiddleName}, " ")
}

// InGroup reports whether the student is assigned to an academic group.
func (s Student) InGroup() bool { return s.GroupID != "" }

// Housed reports whether the student currently lives in a dormitory room.
func (s Student) Housed() bool { return s.RoomID != "" }
