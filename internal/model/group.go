package model

// Group represents an academic group and the ids of its member students.
type Group struct {
	ID             string   `json:"id" gorm:"primaryKey;size:36"`
	Name           string   `json:"name" gorm:"size:128;not null"`
	Specialization string   `json:"specialization" gorm:"size:128;not null"`
	Year           int      `json:"year" gorm:"not null"`
	StudentIDs     []string `json:"studentIds" gorm:"serializer:json"`
}

// EntityID returns the record's unique id.
func (g Group) EntityID() string { return g.ID }

// AddStudent records the student id as a member. Adding an existing member is
// a no-op; membership stays unique and insertion-ordered.
func (g *Group) AddStudent(studentID string) {
	if !g.HasStudent(studentID) {
		g.StudentIDs = appendID(g.StudentIDs, studentID)
	}
}

// RemoveStudent drops the student id from the member list. It reports whether
// the id was present.
func (g *Group) RemoveStudent(studentID string) bool {
	ids, ok := removeID(g.StudentIDs, studentID)
	g.StudentIDs = ids
	return ok
}

// HasStudent reports whether the student id is a member.
func (g *Group) HasStudent(studentID string) bool {
	for _, id := range g.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// StudentCount returns the number of members.
func (g *Group) StudentCount() int { return len(g.StudentIDs) }
