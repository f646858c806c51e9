package record

import (
	"context"
	"errors"
	"time"

	"go-tenure/internal/events"
	recorderrors "go-tenure/internal/record/errors"
	"go-tenure/internal/salary"
	"go-tenure/internal/shared/apperror"
	"go-tenure/internal/shared/contextutil"
	"go-tenure/internal/shared/response"
	"go-tenure/internal/tenure"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EventTypeRecordCreated = "record_created"

//go:generate mockgen -source=record_service.go -destination=mock/record_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	Import(ctx context.Context, req ImportRecordRequest) (RecordResponse, error)
	GetAll(ctx context.Context, req ListRecordsRequest) (ListRecordsResponse, error)
	GetByID(ctx context.Context, id string) (RecordResponse, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(repo, nil, logger...)
}

func NewServiceWithPublisher(
	repo Repository,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("record.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("record.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) today() time.Time {
	return tenure.DateOf(s.now())
}

func (s *service) Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error) {
	log := s.log(ctx)
	log.Debug("create record requested", zap.String("hire_date", req.HireDate))

	today := s.today()
	hire, gross, err := validateCreate(req, today)
	if err != nil {
		log.Warn("create record validation failed", zap.Error(err))
		return RecordResponse{}, err
	}

	uplifted, err := salary.Uplift(gross)
	if err != nil {
		return RecordResponse{}, apperror.ErrInvalidInput.Wrap(err)
	}

	t := tenure.Between(hire, today)
	rec := &Record{
		HireDate:       hire,
		GrossSalary:    gross,
		Years:          t.Years,
		Months:         t.Months,
		Days:           t.Days,
		UpliftedSalary: uplifted,
	}

	return s.persist(ctx, rec)
}

func (s *service) Import(ctx context.Context, req ImportRecordRequest) (RecordResponse, error) {
	log := s.log(ctx)
	log.Debug("import record requested", zap.String("hire_date", req.HireDate))

	today := s.today()
	hire, gross, err := validateImport(req, today)
	if err != nil {
		log.Warn("import record validation failed", zap.Error(err))
		return RecordResponse{}, err
	}

	t := tenure.Between(hire, today)
	rec := &Record{
		HireDate:    hire,
		GrossSalary: gross,
		Years:       valueOr(req.Years, t.Years),
		Months:      valueOr(req.Months, t.Months),
		Days:        valueOr(req.Days, t.Days),
	}

	if req.UpliftedSalary != nil {
		rec.UpliftedSalary = req.UpliftedSalary.Round(2)
	} else {
		uplifted, err := salary.Uplift(gross)
		if err != nil {
			return RecordResponse{}, apperror.ErrInvalidInput.Wrap(err)
		}
		rec.UpliftedSalary = uplifted
	}

	return s.persist(ctx, rec)
}

func (s *service) persist(ctx context.Context, rec *Record) (RecordResponse, error) {
	log := s.log(ctx)
	rid := contextutil.GetRequestID(ctx)

	if err := s.repo.Create(ctx, rec); err != nil {
		log.Error("create record persist failed", zap.Error(err))
		var appErr *apperror.AppError
		if mapped := mapRepositoryError(err); errors.As(mapped, &appErr) {
			return RecordResponse{}, mapped
		}
		return RecordResponse{}, recorderrors.ErrCreateFailed.Wrap(err)
	}

	event := events.RecordCreatedEvent{
		EventType:      EventTypeRecordCreated,
		RequestID:      rid,
		RecordID:       rec.ID,
		HireDate:       rec.HireDate.Format(DateLayout),
		GrossSalary:    rec.GrossSalary.InexactFloat64(),
		UpliftedSalary: rec.UpliftedSalary.InexactFloat64(),
		OccurredAt:     s.now().UTC(),
	}
	if err := s.publisher.PublishRecordCreated(ctx, event); err != nil {
		log.Warn("publish record_created failed",
			zap.String("record_id", rec.ID),
			zap.Error(err),
		)
	}

	log.Info("create record success", zap.String("record_id", rec.ID))
	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, req ListRecordsRequest) (ListRecordsResponse, error) {
	log := s.log(ctx)

	q, err := parseListQuery(req)
	if err != nil {
		log.Warn("list records invalid query", zap.Error(err))
		return ListRecordsResponse{}, err
	}

	resp := ListRecordsResponse{
		Records: []RecordResponse{},
		Page:    q.Page,
		Limit:   q.Limit,
	}
	if q.emptyRange() {
		return resp, nil
	}

	log.Debug("list records requested",
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.String("sort_by", string(q.SortBy)),
		zap.String("sort_order", string(q.SortOrder)),
	)

	records, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		log.Error("list records failed", zap.Error(err))
		return ListRecordsResponse{}, apperror.ErrInternal.Wrap(err)
	}

	resp.Records = mapToListResponse(records)
	resp.Total = total
	resp.TotalPages = response.TotalPages(total, q.Limit)
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RecordResponse, error) {
	log := s.log(ctx)
	log.Debug("get record by id requested", zap.String("record_id", id))

	if err := validateRecordID(id); err != nil {
		return RecordResponse{}, err
	}

	// The shared lookup outlives any one caller; each caller waits on its own ctx.
	lookupCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(id, func() (any, error) {
		return s.repo.FindByID(lookupCtx, id)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		log.Info("get record by id abandoned by caller", zap.String("record_id", id), zap.Error(ctx.Err()))
		return RecordResponse{}, apperror.ErrInternal.Wrap(ctx.Err())
	case res = <-ch:
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		if errors.Is(mapRepositoryError(err), recorderrors.ErrRecordNotFound) {
			log.Info("record not found", zap.String("record_id", id))
			return RecordResponse{}, recorderrors.RecordNotFound(id)
		}
		log.Error("get record by id failed", zap.String("record_id", id), zap.Error(err))
		return RecordResponse{}, apperror.ErrInternal.Wrap(err)
	}
	if shared {
		log.Debug("get record by id shared an in-flight lookup", zap.String("record_id", id))
	}

	rec, _ := v.(*Record)
	if rec == nil {
		return RecordResponse{}, recorderrors.RecordNotFound(id)
	}
	return mapToResponse(*rec), nil
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.log(ctx).Error("delete all records failed", zap.Error(err))
		return 0, apperror.ErrInternal.Wrap(err)
	}
	s.log(ctx).Info("deleted all records", zap.Int64("count", n))
	return n, nil
}

func mapToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:             rec.ID,
		HireDate:       rec.HireDate.Format(DateLayout),
		GrossSalary:    rec.GrossSalary.InexactFloat64(),
		Years:          rec.Years,
		Months:         rec.Months,
		Days:           rec.Days,
		UpliftedSalary: rec.UpliftedSalary.InexactFloat64(),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func mapToListResponse(records []Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i, r := range records {
		res[i] = mapToResponse(r)
	}
	return res
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
