package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSavedMessage tells the mirror worker that the ledger snapshot
// changed. It carries only the revision counter and a timestamp; the
// worker reloads the full snapshot from storage.
type SnapshotSavedMessage struct {
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSavedMessage(revision int64) *SnapshotSavedMessage {
	return &SnapshotSavedMessage{
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

func (m *SnapshotSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SnapshotSavedMessageFromJSON(data []byte) (*SnapshotSavedMessage, error) {
	var msg SnapshotSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
