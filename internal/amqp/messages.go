package amqp

import (
	"encoding/json"
	"time"
)

// ReportGeneratedMessage announces one generated report. It carries only
// the report kind and the file path; the worker re-reads the payload
// from disk before archiving.
type ReportGeneratedMessage struct {
	Kind        string    `json:"kind"`
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReportGeneratedMessage creates a message for one saved report file.
func NewReportGeneratedMessage(kind, path string, generatedAt time.Time) *ReportGeneratedMessage {
	return &ReportGeneratedMessage{
		Kind:        kind,
		Path:        path,
		GeneratedAt: generatedAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReportGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportGeneratedMessageFromJSON creates a message from JSON bytes.
func ReportGeneratedMessageFromJSON(data []byte) (*ReportGeneratedMessage, error) {
	var msg ReportGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
