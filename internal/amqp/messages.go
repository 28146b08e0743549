package amqp

import (
	"encoding/json"
	"time"
)

// RecordSyncMessage asks the worker to push one captured record to the
// spreadsheet. It carries only the record id; the worker reads the full
// record from the capture database, so a stale message never overwrites
// newer data.
type RecordSyncMessage struct {
	RecordID  string    `json:"recordId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(recordID string) *RecordSyncMessage {
	return &RecordSyncMessage{
		RecordID:  recordID,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
