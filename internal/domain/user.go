package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBrand    Role = "BRAND"
	RoleLab      Role = "LAB"
	RoleConsumer Role = "CONSUMER"
)

// SystemActorID is recorded on actions performed by auto-assignment.
const SystemActorID = "SYSTEM"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Reviewer is a user eligible for assignment. RotationSeq is the persisted
// round-robin pointer: the store hands out strictly increasing values, so the
// reviewer with the highest one was assigned last. Zero means never assigned.
type Reviewer struct {
	ID             string     `bson:"_id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Role           Role       `bson:"role" json:"role"`
	Expertise      []string   `bson:"expertise,omitempty" json:"expertise,omitempty"`
	RotationSeq    int64      `bson:"rotation_seq,omitempty" json:"rotationSeq,omitempty"`
	LastAssignedAt *time.Time `bson:"last_assigned_at,omitempty" json:"lastAssignedAt,omitempty"`
}

func (r Reviewer) HasExpertise(category string) bool {
	for _, c := range r.Expertise {
		if c == category {
			return true
		}
	}
	return false
}
