package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActionCreated       = "CREATED"
	ActionAssigned      = "ASSIGNED"
	ActionStatusChanged = "STATUS_CHANGED"
	ActionCancelled     = "CANCELLED"
)

// QueueActionLog rows are append-only.
type QueueActionLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QueueID        primitive.ObjectID `bson:"queue_id" json:"queueId"`
	ActorID        string             `bson:"actor_id" json:"actorId"`
	Action         string             `bson:"action" json:"action"`
	PreviousStatus *QueueStatus       `bson:"previous_status,omitempty" json:"previousStatus,omitempty"`
	NewStatus      QueueStatus        `bson:"new_status" json:"newStatus"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Metadata       map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}
