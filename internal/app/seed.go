package app

import (
	"context"
	"fmt"
	"time"

	"go-tenure/internal/record"
	"go-tenure/internal/tenure"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type sampleRecord struct {
	gross          string
	tenure         tenure.Tenure
	upliftedSalary string
}

var sampleRecords = []sampleRecord{
	{gross: "3500", tenure: tenure.Tenure{Years: 2, Months: 6, Days: 15}, upliftedSalary: "4725"},
	{gross: "4200", tenure: tenure.Tenure{Years: 1, Months: 3, Days: 8}, upliftedSalary: "5670"},
	{gross: "5800", tenure: tenure.Tenure{Years: 3, Months: 0, Days: 22}, upliftedSalary: "7830"},
	{gross: "2800", tenure: tenure.Tenure{Years: 0, Months: 8, Days: 12}, upliftedSalary: "3780"},
	{gross: "7500", tenure: tenure.Tenure{Years: 5, Months: 2, Days: 5}, upliftedSalary: "10125"},
	{gross: "3200", tenure: tenure.Tenure{Years: 1, Months: 9, Days: 18}, upliftedSalary: "4320"},
	{gross: "4800", tenure: tenure.Tenure{Years: 0, Months: 4, Days: 25}, upliftedSalary: "6480"},
	{gross: "6200", tenure: tenure.Tenure{Years: 2, Months: 11, Days: 3}, upliftedSalary: "8370"},
}

// SampleRequests returns the demo dataset with hire dates counted back from today.
func SampleRequests(today time.Time) []record.ImportRecordRequest {
	reqs := make([]record.ImportRecordRequest, 0, len(sampleRecords))
	for _, s := range sampleRecords {
		gross := decimal.RequireFromString(s.gross)
		uplifted := decimal.RequireFromString(s.upliftedSalary)
		years, months, days := s.tenure.Years, s.tenure.Months, s.tenure.Days

		reqs = append(reqs, record.ImportRecordRequest{
			HireDate:       today.AddDate(-years, -months, 0).Format(record.DateLayout),
			GrossSalary:    &gross,
			Years:          &years,
			Months:         &months,
			Days:           &days,
			UpliftedSalary: &uplifted,
		})
	}
	return reqs
}

// Seed imports the demo dataset. With reset set, every stored record is
// deleted first.
func Seed(ctx context.Context, svc record.Service, reset bool, today time.Time) ([]record.RecordResponse, error) {
	logger := zap.L().Named("app.seed")

	if reset {
		deleted, err := svc.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("reset records: %w", err)
		}
		logger.Info("records deleted", zap.Int64("count", deleted))
	}

	created := make([]record.RecordResponse, 0, len(sampleRecords))
	for i, req := range SampleRequests(today) {
		res, err := svc.Import(ctx, req)
		if err != nil {
			return created, fmt.Errorf("import sample %d: %w", i+1, err)
		}
		created = append(created, res)
	}

	logger.Info("records seeded", zap.Int("count", len(created)))
	return created, nil
}
