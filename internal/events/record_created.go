package events

import "time"

const RecordCreatedTopic = "hr.tenure.record.created.v1"

type RecordCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	RecordID       string    `json:"record_id"`
	HireDate       string    `json:"hire_date"`
	GrossSalary    float64   `json:"gross_salary"`
	UpliftedSalary float64   `json:"uplifted_salary"`
	OccurredAt     time.Time `json:"occurred_at"`
}
