package model

// Room represents a dormitory room and the ids of its residents.
type Room struct {
	ID          string   `json:"id" gorm:"primaryKey;size:36"`
	Number      string   `json:"number" gorm:"size:32;not null"`
	Floor       int      `json:"floor" gorm:"not null"`
	MaxCapacity int      `json:"maxCapacity" gorm:"not null"`
	ResidentIDs []string `json:"residentIds" gorm:"serializer:json"`
}

// EntityID returns the record's unique id.
func (r Room) EntityID() string { return r.ID }

// AddResident records the student id as a resident. Adding an existing
// resident is a no-op. Capacity is enforced by the service layer, not here.
func (r *Room) AddResident(studentID string) {
	if !r.HasResident(studentID) {
		r.ResidentIDs = appendID(r.ResidentIDs, studentID)
	}
}

// RemoveResident drops the student id from the resident list. It reports
// whether the id was present.
func (r *Room) RemoveResident(studentID string) bool {
	ids, ok := removeID(r.ResidentIDs, studentID)
	r.ResidentIDs = ids
	return ok
}

// HasResident reports whether the student id is a resident.
func (r *Room) HasResident(studentID string) bool {
	for _, id := range r.ResidentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// ResidentCount returns the current number of residents.
func (r *Room) ResidentCount() int { return len(r.ResidentIDs) }

// AvailableSpaces returns the number of free places left.
func (r *Room) AvailableSpaces() int { return r.MaxCapacity - len(r.ResidentIDs) }

// IsFull reports whether the room is at capacity.
func (r *Room) IsFull() bool { return len(r.ResidentIDs) >= r.MaxCapacity }
