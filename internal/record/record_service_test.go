package record_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-tenure/internal/events"
	"go-tenure/internal/record"
	recorderrors "go-tenure/internal/record/errors"
	recordMock "go-tenure/internal/record/mock"
	"go-tenure/internal/shared/apperror"
	"go-tenure/internal/shared/contextutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, time.December, 25, 10, 30, 0, 0, time.UTC)

type serviceDeps struct {
	service   record.Service
	repo      *recordMock.MockRepository
	publisher *recordMock.MockEventPublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	repo := recordMock.NewMockRepository(ctrl)
	publisher := recordMock.NewMockEventPublisher(ctrl)

	svc := record.NewServiceWithPublisher(repo, publisher)
	svc = record.WithClock(svc, func() time.Time { return fixedNow })

	return &serviceDeps{service: svc, repo: repo, publisher: publisher}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int { return &v }

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperror.ToHTTP(err).Status)
}

func TestRecordService_Create(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *record.Record) error {
				assert.Equal(t, time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC), rec.HireDate)
				assert.Equal(t, 2, rec.Years)
				assert.Equal(t, 11, rec.Months)
				assert.Equal(t, 10, rec.Days)
				assert.True(t, decimal.RequireFromString("6750").Equal(rec.UpliftedSalary))
				rec.ID = "507f1f77bcf86cd799439011"
				rec.CreatedAt = fixedNow
				rec.UpdatedAt = fixedNow
				return nil
			})

		deps.publisher.EXPECT().
			PublishRecordCreated(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev events.RecordCreatedEvent) error {
				assert.Equal(t, record.EventTypeRecordCreated, ev.EventType)
				assert.Equal(t, "req-1", ev.RequestID)
				assert.Equal(t, "507f1f77bcf86cd799439011", ev.RecordID)
				assert.Equal(t, "2022-01-15", ev.HireDate)
				assert.Equal(t, 6750.0, ev.UpliftedSalary)
				return nil
			})

		resp, err := deps.service.Create(ctx, record.CreateRecordRequest{
			HireDate:    "2022-01-15",
			GrossSalary: dec("5000"),
		})

		require.NoError(t, err)
		assert.Equal(t, "507f1f77bcf86cd799439011", resp.ID)
		assert.Equal(t, "2022-01-15", resp.HireDate)
		assert.Equal(t, 5000.0, resp.GrossSalary)
		assert.Equal(t, 6750.0, resp.UpliftedSalary)
		assert.Equal(t, 2, resp.Years)
		assert.Equal(t, 11, resp.Months)
		assert.Equal(t, 10, resp.Days)
	})

	t.Run("rounds the uplift", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.publisher.EXPECT().PublishRecordCreated(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, record.CreateRecordRequest{
			HireDate:    "2024-12-25",
			GrossSalary: dec("3333.33"),
		})

		require.NoError(t, err)
		assert.Equal(t, 4500.0, resp.UpliftedSalary)
		assert.Zero(t, resp.Years)
		assert.Zero(t, resp.Months)
		assert.Zero(t, resp.Days)
	})

	t.Run("validation failures never reach storage", func(t *testing.T) {
		deps := setupServiceTest(t)

		cases := []struct {
			name string
			req  record.CreateRecordRequest
			want error
		}{
			{"malformed date", record.CreateRecordRequest{HireDate: "15/01/2022", GrossSalary: dec("5000")}, recorderrors.ErrInvalidHireDate},
			{"impossible date", record.CreateRecordRequest{HireDate: "2023-02-30", GrossSalary: dec("5000")}, recorderrors.ErrInvalidHireDate},
			{"future date", record.CreateRecordRequest{HireDate: "2024-12-26", GrossSalary: dec("5000")}, recorderrors.ErrFutureHireDate},
			{"salary below range", record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("1319.99")}, recorderrors.ErrSalaryOutOfRange},
			{"salary above range", record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("50000.01")}, recorderrors.ErrSalaryOutOfRange},
			{"negative salary", record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("-1000")}, recorderrors.ErrSalaryOutOfRange},
			{"missing salary", record.CreateRecordRequest{HireDate: "2022-01-15"}, apperror.RequiredField("Gross Salary")},
			{"missing date", record.CreateRecordRequest{GrossSalary: dec("5000")}, apperror.RequiredField("Hire Date")},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := deps.service.Create(ctx, tc.req)

				assert.ErrorIs(t, err, tc.want)
				assertStatus(t, err, http.StatusBadRequest)
			})
		}
	})

	t.Run("boundary salaries are accepted", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(2)
		deps.publisher.EXPECT().PublishRecordCreated(ctx, gomock.Any()).Return(nil).Times(2)

		resp, err := deps.service.Create(ctx, record.CreateRecordRequest{HireDate: "2020-01-01", GrossSalary: dec("1320")})
		require.NoError(t, err)
		assert.Equal(t, 1782.0, resp.UpliftedSalary)

		resp, err = deps.service.Create(ctx, record.CreateRecordRequest{HireDate: "2020-01-01", GrossSalary: dec("50000")})
		require.NoError(t, err)
		assert.Equal(t, 67500.0, resp.UpliftedSalary)
	})

	t.Run("persistence failure is a generic client error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("connection reset by peer"))

		_, err := deps.service.Create(ctx, record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("5000")})

		assert.ErrorIs(t, err, recorderrors.ErrCreateFailed)
		assertStatus(t, err, http.StatusBadRequest)
		assert.NotContains(t, apperror.ToHTTP(err).Message, "connection reset")
	})

	t.Run("schema rejection", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23514", ConstraintName: "employee_records_months_check"})

		_, err := deps.service.Create(ctx, record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("5000")})

		assert.ErrorIs(t, err, recorderrors.ErrInvalidRecordData)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.publisher.EXPECT().PublishRecordCreated(ctx, gomock.Any()).Return(errors.New("broker down"))

		_, err := deps.service.Create(ctx, record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("5000")})

		assert.NoError(t, err)
	})
}

func TestRecordService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("overrides are kept", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *record.Record) error {
				assert.Equal(t, 7, rec.Years)
				assert.Equal(t, 3, rec.Months)
				assert.Equal(t, 12, rec.Days)
				assert.True(t, decimal.RequireFromString("9999.99").Equal(rec.UpliftedSalary))
				return nil
			})
		deps.publisher.EXPECT().PublishRecordCreated(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Import(ctx, record.ImportRecordRequest{
			HireDate:       "2022-01-15",
			GrossSalary:    dec("5000"),
			Years:          intPtr(7),
			Months:         intPtr(3),
			Days:           intPtr(12),
			UpliftedSalary: dec("9999.987"),
		})

		assert.NoError(t, err)
	})

	t.Run("missing overrides are computed", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *record.Record) error {
				assert.Equal(t, 5, rec.Years)
				assert.Equal(t, 11, rec.Months)
				assert.Equal(t, 10, rec.Days)
				assert.True(t, decimal.RequireFromString("5400").Equal(rec.UpliftedSalary))
				return nil
			})
		deps.publisher.EXPECT().PublishRecordCreated(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Import(ctx, record.ImportRecordRequest{
			HireDate:    "2022-01-15",
			GrossSalary: dec("4000"),
			Years:       intPtr(5),
		})

		assert.NoError(t, err)
	})

	t.Run("invalid overrides", func(t *testing.T) {
		deps := setupServiceTest(t)
		base := func() record.ImportRecordRequest {
			return record.ImportRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("5000")}
		}

		req := base()
		req.Years = intPtr(-1)
		_, err := deps.service.Import(ctx, req)
		assert.ErrorIs(t, err, recorderrors.ErrInvalidYears)

		req = base()
		req.Months = intPtr(12)
		_, err = deps.service.Import(ctx, req)
		assert.ErrorIs(t, err, recorderrors.ErrInvalidMonths)

		req = base()
		req.Days = intPtr(31)
		_, err = deps.service.Import(ctx, req)
		assert.ErrorIs(t, err, recorderrors.ErrInvalidDays)

		req = base()
		req.UpliftedSalary = dec("0")
		_, err = deps.service.Import(ctx, req)
		assert.ErrorIs(t, err, recorderrors.ErrInvalidUpliftedSalary)
	})
}

func TestRecordService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, q record.ListQuery) ([]record.Record, int64, error) {
				assert.Equal(t, 1, q.Page)
				assert.Equal(t, 10, q.Limit)
				assert.Equal(t, record.SortByCreatedAt, q.SortBy)
				assert.Equal(t, record.SortDesc, q.SortOrder)
				assert.Nil(t, q.SalaryMin)
				assert.Nil(t, q.HireDateFrom)
				return nil, 0, nil
			})

		resp, err := deps.service.GetAll(ctx, record.ListRecordsRequest{})

		require.NoError(t, err)
		assert.NotNil(t, resp.Records)
		assert.Empty(t, resp.Records)
		assert.Zero(t, resp.Total)
		assert.Zero(t, resp.TotalPages)
	})

	t.Run("pagination metadata", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, q record.ListQuery) ([]record.Record, int64, error) {
				assert.Equal(t, 2, q.Skip())
				return []record.Record{{ID: "507f1f77bcf86cd799439013", HireDate: fixedNow}}, 3, nil
			})

		resp, err := deps.service.GetAll(ctx, record.ListRecordsRequest{Page: "2", Limit: "2"})

		require.NoError(t, err)
		assert.Len(t, resp.Records, 1)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 2, resp.Limit)
		assert.Equal(t, 2, resp.TotalPages)
	})

	t.Run("inverted salary range is empty without a query", func(t *testing.T) {
		deps := setupServiceTest(t)

		resp, err := deps.service.GetAll(ctx, record.ListRecordsRequest{SalaryMin: "5000", SalaryMax: "4000"})

		require.NoError(t, err)
		assert.Empty(t, resp.Records)
		assert.Zero(t, resp.Total)
	})

	t.Run("invalid query", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, record.ListRecordsRequest{SortBy: "salary"})

		assert.ErrorIs(t, err, recorderrors.ErrInvalidSortField)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("storage failure is opaque", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			Return(nil, int64(0), errors.New("server selection timeout"))

		_, err := deps.service.GetAll(ctx, record.ListRecordsRequest{})

		assert.ErrorIs(t, err, apperror.ErrInternal)
		assertStatus(t, err, http.StatusInternalServerError)
	})
}

func TestRecordService_GetByID(t *testing.T) {
	ctx := context.Background()
	const id = "507f1f77bcf86cd799439011"

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), id).
			Return(&record.Record{
				ID:             id,
				HireDate:       time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC),
				GrossSalary:    decimal.RequireFromString("5000"),
				Years:          2,
				Months:         11,
				Days:           10,
				UpliftedSalary: decimal.RequireFromString("6750"),
			}, nil)

		resp, err := deps.service.GetByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "2022-01-15", resp.HireDate)
		assert.Equal(t, 6750.0, resp.UpliftedSalary)
	})

	t.Run("malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "id-invalido")

		assert.ErrorIs(t, err, recorderrors.ErrInvalidRecordID)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("not found names the id", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, mongo.ErrNoDocuments)

		_, err := deps.service.GetByID(ctx, id)

		assertStatus(t, err, http.StatusNotFound)
		assert.Contains(t, apperror.ToHTTP(err).Message, id)
	})

	t.Run("storage failure is opaque", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, errors.New("socket closed"))

		_, err := deps.service.GetByID(ctx, id)

		assertStatus(t, err, http.StatusInternalServerError)
	})

	t.Run("concurrent lookups share one query", func(t *testing.T) {
		deps := setupServiceTest(t)

		release := make(chan struct{})
		deps.repo.EXPECT().
			FindByID(gomock.Any(), id).
			DoAndReturn(func(context.Context, string) (*record.Record, error) {
				<-release
				return &record.Record{ID: id}, nil
			}).
			MinTimes(1).MaxTimes(5)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := deps.service.GetByID(ctx, id)
				assert.NoError(t, err)
				assert.Equal(t, id, resp.ID)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()
	})

	t.Run("cancelled caller does not fail a shared lookup", func(t *testing.T) {
		deps := setupServiceTest(t)

		started := make(chan struct{})
		release := make(chan struct{})
		deps.repo.EXPECT().
			FindByID(gomock.Any(), id).
			DoAndReturn(func(lookupCtx context.Context, _ string) (*record.Record, error) {
				close(started)
				<-release
				if err := lookupCtx.Err(); err != nil {
					return nil, err
				}
				return &record.Record{ID: id}, nil
			})

		firstCtx, cancelFirst := context.WithCancel(ctx)
		firstErr := make(chan error, 1)
		go func() {
			_, err := deps.service.GetByID(firstCtx, id)
			firstErr <- err
		}()
		<-started

		type result struct {
			resp record.RecordResponse
			err  error
		}
		second := make(chan result, 1)
		go func() {
			resp, err := deps.service.GetByID(ctx, id)
			second <- result{resp, err}
		}()
		time.Sleep(20 * time.Millisecond)

		cancelFirst()
		assert.ErrorIs(t, <-firstErr, context.Canceled)

		close(release)
		got := <-second
		require.NoError(t, got.err)
		assert.Equal(t, id, got.resp.ID)
	})
}

func TestRecordService_DeleteAll(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.repo.EXPECT().DeleteAll(ctx).Return(int64(8), nil)

	n, err := deps.service.DeleteAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
}

func TestRecordService_NoPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recordMock.NewMockRepository(ctrl)
	svc := record.WithClock(record.NewService(repo), func() time.Time { return fixedNow })

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Create(context.Background(), record.CreateRecordRequest{HireDate: "2022-01-15", GrossSalary: dec("5000")})

	assert.NoError(t, err)
}
