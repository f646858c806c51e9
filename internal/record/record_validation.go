package record

import (
	"strconv"
	"strings"
	"time"

	recorderrors "go-tenure/internal/record/errors"
	"go-tenure/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	MinGrossSalary = decimal.NewFromInt(1320)
	MaxGrossSalary = decimal.NewFromInt(50000)
)

// parseHireDate accepts a YYYY-MM-DD date that is not after today.
func parseHireDate(raw string, today time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.RequiredField("Hire Date")
	}

	hire, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, recorderrors.ErrInvalidHireDate
	}
	if hire.After(today) {
		return time.Time{}, recorderrors.ErrFutureHireDate
	}
	return hire, nil
}

func validateGrossSalary(gross *decimal.Decimal) (decimal.Decimal, error) {
	if gross == nil {
		return decimal.Zero, apperror.RequiredField("Gross Salary")
	}
	if gross.LessThan(MinGrossSalary) || gross.GreaterThan(MaxGrossSalary) {
		return decimal.Zero, recorderrors.ErrSalaryOutOfRange
	}
	return *gross, nil
}

func validateCreate(req CreateRecordRequest, today time.Time) (time.Time, decimal.Decimal, error) {
	hire, err := parseHireDate(req.HireDate, today)
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}
	gross, err := validateGrossSalary(req.GrossSalary)
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}
	return hire, gross, nil
}

func validateImport(req ImportRecordRequest, today time.Time) (time.Time, decimal.Decimal, error) {
	hire, gross, err := validateCreate(CreateRecordRequest{HireDate: req.HireDate, GrossSalary: req.GrossSalary}, today)
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}

	if req.Years != nil && *req.Years < 0 {
		return time.Time{}, decimal.Zero, recorderrors.ErrInvalidYears
	}
	if req.Months != nil && (*req.Months < 0 || *req.Months > 11) {
		return time.Time{}, decimal.Zero, recorderrors.ErrInvalidMonths
	}
	if req.Days != nil && (*req.Days < 0 || *req.Days > 30) {
		return time.Time{}, decimal.Zero, recorderrors.ErrInvalidDays
	}
	if req.UpliftedSalary != nil && !req.UpliftedSalary.IsPositive() {
		return time.Time{}, decimal.Zero, recorderrors.ErrInvalidUpliftedSalary
	}
	return hire, gross, nil
}

func validateRecordID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return recorderrors.ErrInvalidRecordID
	}
	return nil
}

func parseListQuery(req ListRecordsRequest) (ListQuery, error) {
	q := ListQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByCreatedAt,
		SortOrder: SortDesc,
	}

	if v := strings.TrimSpace(req.Page); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return ListQuery{}, recorderrors.ErrInvalidPage
		}
		q.Page = page
	}

	if v := strings.TrimSpace(req.Limit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MaxLimit {
			return ListQuery{}, recorderrors.ErrInvalidLimit
		}
		q.Limit = limit
	}

	if v := strings.TrimSpace(req.SortBy); v != "" {
		field := SortField(v)
		if !field.Valid() {
			return ListQuery{}, recorderrors.ErrInvalidSortField
		}
		q.SortBy = field
	}

	if v := strings.ToLower(strings.TrimSpace(req.SortOrder)); v != "" {
		switch SortOrder(v) {
		case SortAsc, SortDesc:
			q.SortOrder = SortOrder(v)
		default:
			return ListQuery{}, recorderrors.ErrInvalidSortOrder
		}
	}

	var err error
	if q.SalaryMin, err = parseSalaryBound(req.SalaryMin); err != nil {
		return ListQuery{}, err
	}
	if q.SalaryMax, err = parseSalaryBound(req.SalaryMax); err != nil {
		return ListQuery{}, err
	}
	if q.HireDateFrom, err = parseDateBound(req.HireDateFrom); err != nil {
		return ListQuery{}, err
	}
	if q.HireDateTo, err = parseDateBound(req.HireDateTo); err != nil {
		return ListQuery{}, err
	}

	return q, nil
}

func parseSalaryBound(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, recorderrors.ErrInvalidSalaryFilter
	}
	return &d, nil
}

func parseDateBound(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, recorderrors.ErrInvalidDateFilter
	}
	return &t, nil
}

// emptyRange reports whether the bounds in q can never match a record.
func (q ListQuery) emptyRange() bool {
	if q.SalaryMin != nil && q.SalaryMax != nil && q.SalaryMin.GreaterThan(*q.SalaryMax) {
		return true
	}
	if q.HireDateFrom != nil && q.HireDateTo != nil && q.HireDateFrom.After(*q.HireDateTo) {
		return true
	}
	return false
}
