package model

// Dormitory represents a dormitory building and the ids of its rooms. A room
// belongs to exactly one dormitory for its lifetime.
type Dormitory struct {
	ID      string   `json:"id" gorm:"primaryKey;size:36"`
	Name    string   `json:"name" gorm:"size:128;not null"`
	Address string   `json:"address" gorm:"size:256;not null"`
	RoomIDs []string `json:"roomIds" gorm:"serializer:json"`
}

// EntityID returns the record's unique id.
func (d Dormitory) EntityID() string { return d.ID }

// AddRoom records the room id. Adding an existing room is a no-op.
func (d *Dormitory) AddRoom(roomID string) {
	if !d.HasRoom(roomID) {
		d.RoomIDs = appendID(d.RoomIDs, roomID)
	}
}

// RemoveRoom drops the room id from the list. It reports whether the id was
// present.
func (d *Dormitory) RemoveRoom(roomID string) bool {
	ids, ok := removeID(d.RoomIDs, roomID)
	d.RoomIDs = ids
	return ok
}

// HasRoom reports whether the room id belongs to this dormitory.
func (d *Dormitory) HasRoom(roomID string) bool {
	for _, id := range d.RoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}

// RoomCount returns the number of rooms.
func (d *Dormitory) RoomCount() int { return len(d.RoomIDs) }
