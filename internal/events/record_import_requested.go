package events

import "github.com/shopspring/decimal"

const RecordImportRequestedTopic = "hr.tenure.record.import.v1"

// RecordImportRequestedEvent asks the consumer to store one record. The
// tenure and uplift fields are optional overrides; missing ones are computed.
type RecordImportRequestedEvent struct {
	RequestID      string           `json:"request_id"`
	HireDate       string           `json:"hire_date"`
	GrossSalary    *decimal.Decimal `json:"gross_salary"`
	Years          *int             `json:"years,omitempty"`
	Months         *int             `json:"months,omitempty"`
	Days           *int             `json:"days,omitempty"`
	UpliftedSalary *decimal.Decimal `json:"uplifted_salary,omitempty"`
}
