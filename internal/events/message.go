package events

import (
	"encoding/json"
	"time"
)

// Action names the mutation a ChangeEvent reports.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionImported Action = "imported"
)

// ChangeEvent is a lightweight notice that a user's transactions changed.
// Consumers fetch the current data themselves.
type ChangeEvent struct {
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId,omitempty"`
	Action        Action    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewChangeEvent(userID, transactionID string, action Action) *ChangeEvent {
	return &ChangeEvent{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now().UTC(),
	}
}

func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
