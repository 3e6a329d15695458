package amqp

import (
	"encoding/json"
	"time"
)

// TransactionRecordedMessage announces a committed transaction to the
// export pipeline. It carries only identifiers; the worker loads the full
// row from the store.
type TransactionRecordedMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(id, userID int64) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
