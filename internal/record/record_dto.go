package record

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type CreateRecordRequest struct {
	HireDate    string           `json:"hireDate" binding:"required"`
	GrossSalary *decimal.Decimal `json:"grossSalary" binding:"required"`
}

// ImportRecordRequest is the seed and bulk import input. Any override left
// nil is computed from HireDate and GrossSalary.
type ImportRecordRequest struct {
	HireDate       string
	GrossSalary    *decimal.Decimal
	Years          *int
	Months         *int
	Days           *int
	UpliftedSalary *decimal.Decimal
}

// ListRecordsRequest carries the raw query string values; parseListQuery
// validates them.
type ListRecordsRequest struct {
	Page         string `form:"page"`
	Limit        string `form:"limit"`
	SortBy       string `form:"sortBy"`
	SortOrder    string `form:"sortOrder"`
	SalaryMin    string `form:"salaryMin"`
	SalaryMax    string `form:"salaryMax"`
	HireDateFrom string `form:"hireDateFrom"`
	HireDateTo   string `form:"hireDateTo"`
}

type RecordResponse struct {
	ID             string    `json:"id"`
	HireDate       string    `json:"hireDate"`
	GrossSalary    float64   `json:"grossSalary"`
	Years          int       `json:"years"`
	Months         int       `json:"months"`
	Days           int       `json:"days"`
	UpliftedSalary float64   `json:"upliftedSalary"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ListRecordsResponse struct {
	Records    []RecordResponse `json:"records"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type SortField string

const (
	SortByHireDate       SortField = "hireDate"
	SortByGrossSalary    SortField = "grossSalary"
	SortByYears          SortField = "years"
	SortByMonths         SortField = "months"
	SortByDays           SortField = "days"
	SortByUpliftedSalary SortField = "upliftedSalary"
	SortByCreatedAt      SortField = "createdAt"
	SortByUpdatedAt      SortField = "updatedAt"
)

var sortColumns = map[SortField]string{
	SortByHireDate:       "hire_date",
	SortByGrossSalary:    "gross_salary",
	SortByYears:          "years",
	SortByMonths:         "months",
	SortByDays:           "days",
	SortByUpliftedSalary: "uplifted_salary",
	SortByCreatedAt:      "created_at",
	SortByUpdatedAt:      "updated_at",
}

// SortFields lists the accepted sortBy values in a stable order.
var SortFields = []SortField{
	SortByHireDate, SortByGrossSalary, SortByYears, SortByMonths,
	SortByDays, SortByUpliftedSalary, SortByCreatedAt, SortByUpdatedAt,
}

// Valid reports whether f is one of the accepted sort keys.
func (f SortField) Valid() bool {
	_, ok := sortColumns[f]
	return ok
}

// Column is the SQL column for f.
func (f SortField) Column() string {
	return sortColumns[f]
}

// Document field names match the JSON names.
func (f SortField) BSONField() string {
	return string(f)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is a validated list request.
type ListQuery struct {
	Page         int
	Limit        int
	SortBy       SortField
	SortOrder    SortOrder
	SalaryMin    *decimal.Decimal
	SalaryMax    *decimal.Decimal
	HireDateFrom *time.Time
	HireDateTo   *time.Time
}

func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}
