package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one stored employee record. Years, months, days and the uplifted
// salary are derived once at creation and never recomputed.
type Record struct {
	ID             string          `gorm:"column:id;type:char(24);primaryKey"`
	HireDate       time.Time       `gorm:"column:hire_date;type:date;not null"`
	GrossSalary    decimal.Decimal `gorm:"column:gross_salary;type:numeric(12,2);not null"`
	Years          int             `gorm:"column:years;not null"`
	Months         int             `gorm:"column:months;not null"`
	Days           int             `gorm:"column:days;not null"`
	UpliftedSalary decimal.Decimal `gorm:"column:uplifted_salary;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

func (Record) TableName() string {
	return "employee_records"
}
