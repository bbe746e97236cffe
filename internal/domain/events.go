package domain

import "time"

type AutoAssignmentMessage struct {
	QueueID  string `json:"queueId"`
	Strategy string `json:"strategy"`
}

type QueueEvent struct {
	ID             string      `json:"id"`
	EventType      string      `json:"eventType"`
	QueueID        string      `json:"queueId"`
	ProductID      string      `json:"productId"`
	RequestedByID  string      `json:"requestedById"`
	AssignedToID   string      `json:"assignedToId,omitempty"`
	PreviousStatus QueueStatus `json:"previousStatus,omitempty"`
	Status         QueueStatus `json:"status"`
	Reason         string      `json:"reason,omitempty"`
	ActorID        string      `json:"actorId"`
	Timestamp      time.Time   `json:"timestamp"`
	Entry          *QueueEntry `json:"entry,omitempty"`
}

const (
	EventQueueCreated       = "queue:created"
	EventQueueAssigned      = "queue:assigned"
	EventQueueStatusChanged = "queue:status-changed"
)

// Involves reports whether userID is the requester or the assignee.
func (e QueueEvent) Involves(userID string) bool {
	if userID == "" {
		return false
	}
	return e.RequestedByID == userID || e.AssignedToID == userID
}
