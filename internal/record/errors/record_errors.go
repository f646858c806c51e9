package recorderrors

import (
	"fmt"
	"net/http"

	"go-tenure/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Record not found",
		http.StatusNotFound,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid record ID, expected 24 hexadecimal characters",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Hire Date must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrFutureHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Hire Date cannot be in the future",
		http.StatusBadRequest,
	)
	ErrSalaryOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Gross Salary must be between 1320 and 50000",
		http.StatusBadRequest,
	)
	ErrInvalidYears = apperror.New(
		apperror.CodeInvalidInput,
		"Years must be zero or greater",
		http.StatusBadRequest,
	)
	ErrInvalidMonths = apperror.New(
		apperror.CodeInvalidInput,
		"Months must be between 0 and 11",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be between 0 and 30",
		http.StatusBadRequest,
	)
	ErrInvalidUpliftedSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Uplifted Salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidRecordData = apperror.New(
		apperror.CodeInvalidInput,
		"Record data was rejected by storage",
		http.StatusBadRequest,
	)
	ErrCreateFailed = apperror.New(
		apperror.CodeInvalidInput,
		"Could not save the record, please try again",
		http.StatusBadRequest,
	)
	ErrInvalidPage = apperror.New(
		apperror.CodeInvalidInput,
		"Page must be an integer greater than or equal to 1",
		http.StatusBadRequest,
	)
	ErrInvalidLimit = apperror.New(
		apperror.CodeInvalidInput,
		"Limit must be an integer between 1 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidSortField = apperror.New(
		apperror.CodeInvalidInput,
		"Sort By must be one of: hireDate, grossSalary, years, months, days, upliftedSalary, createdAt, updatedAt",
		http.StatusBadRequest,
	)
	ErrInvalidSortOrder = apperror.New(
		apperror.CodeInvalidInput,
		"Sort Order must be one of: asc, desc",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Salary filters must be numbers greater than or equal to 0",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Hire date filters must be valid dates in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)

// RecordNotFound is ErrRecordNotFound naming the id that was looked up.
func RecordNotFound(id string) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Record with id %s not found", id),
		http.StatusNotFound,
	)
}
