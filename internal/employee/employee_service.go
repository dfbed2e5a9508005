package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "github.com/djfabrix/vidiemme/internal/employee/errors"
	"github.com/djfabrix/vidiemme/internal/events"
	"github.com/djfabrix/vidiemme/internal/messaging/kafka"
	"github.com/djfabrix/vidiemme/internal/shared/contextutil"
	"github.com/djfabrix/vidiemme/internal/shared/pagination"
	"github.com/djfabrix/vidiemme/internal/task"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ProfileCacheKeyPrefix = "employees:profile:"

const profileCacheTTL = time.Hour

func GetProfileCacheKey(serial string) string {
	return ProfileCacheKeyPrefix + serial
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page pagination.Window) ([]EmployeeResponse, error)
	GetBySerial(ctx context.Context, serial string) (EmployeeResponse, error)
	GetTasks(ctx context.Context, serial string, page pagination.Window) ([]task.TaskResponse, error)
	Update(ctx context.Context, serial string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ValidateHiringDismissalDate(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error)
	Delete(ctx context.Context, serial string) (int64, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	taskRepo task.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, taskRepo task.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, taskRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	taskRepo task.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		taskRepo: taskRepo,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("serial_number", req.SerialNumber),
		zap.String("email", req.Email),
	)

	hiringDate, err := parseDate(req.HiringDate)
	if err != nil {
		s.logger.Warn("create employee invalid hiring_date",
			zap.String("hiring_date", req.HiringDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	var dismissalDate *time.Time
	if req.DismissalDate != "" {
		d, err := parseDate(req.DismissalDate)
		if err != nil {
			s.logger.Warn("create employee invalid dismissal_date",
				zap.String("dismissal_date", req.DismissalDate),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
		if !d.After(hiringDate) {
			return EmployeeResponse{}, employeeerrors.ErrDismissalBeforeHiring
		}
		dismissalDate = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		SerialNumber:  req.SerialNumber,
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         req.Email,
		Role:          req.Role,
		HiringDate:    hiringDate,
		DismissalDate: dismissalDate,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EmployeeCreatedEventType, empl.SerialNumber); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.String("serial_number", empl.SerialNumber),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("serial_number", empl.SerialNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, page pagination.Window) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.Int("offset", page.Offset),
		zap.Int("limit", page.Limit),
	)

	empls, err := s.repo.FindAll(ctx, page)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// GetBySerial serves the profile from redis when possible; concurrent cache
// misses for the same serial collapse into a single repository read.
func (s *service) GetBySerial(ctx context.Context, serial string) (EmployeeResponse, error) {
	cacheKey := GetProfileCacheKey(serial)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindBySerial(ctx, serial)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(*empl)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, profileCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("get employee by serial failed",
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	return v.(EmployeeResponse), nil
}

func (s *service) GetTasks(ctx context.Context, serial string, page pagination.Window) ([]task.TaskResponse, error) {
	s.logger.Debug("get employee tasks requested",
		zap.String("serial_number", serial),
		zap.Int("offset", page.Offset),
		zap.Int("limit", page.Limit),
	)

	tasks, err := s.taskRepo.FindAll(ctx, page, serial)
	if err != nil {
		s.logger.Error("get employee tasks failed",
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return nil, err
	}

	return task.ToListResponse(tasks), nil
}

// ValidateHiringDismissalDate checks that the dismissal date stays strictly
// after the hiring date. When exactly one date is supplied, the other half
// is read from the stored employee; a missing employee is a NotFound error.
// With neither date supplied there is nothing to check.
func (s *service) ValidateHiringDismissalDate(
	ctx context.Context,
	serial string,
	hiringDate, dismissalDate *time.Time,
) (bool, error) {
	if hiringDate == nil && dismissalDate == nil {
		return true, nil
	}

	if hiringDate != nil && dismissalDate != nil {
		return dismissalDate.After(*hiringDate), nil
	}

	empl, err := s.repo.FindBySerial(ctx, serial)
	if err != nil {
		s.logger.Warn("date validation lookup failed",
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return false, mapRepositoryError(err)
	}

	if hiringDate != nil {
		// Stored dismissal date must stay after the new hiring date. A
		// stored null never satisfies a strict comparison.
		if empl.DismissalDate == nil {
			return false, nil
		}
		return empl.DismissalDate.After(*hiringDate), nil
	}

	return dismissalDate.After(empl.HiringDate), nil
}

// Update delegates to the repository. Callers are expected to have run
// ValidateHiringDismissalDate on the request's date fields first.
func (s *service) Update(ctx context.Context, serial string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("serial_number", serial),
	)

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Surname != nil {
		fields["surname"] = *req.Surname
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.HiringDate != nil {
		d, err := parseDate(*req.HiringDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		fields["hiring_date"] = d
	}
	if req.DismissalDate != nil {
		d, err := parseDate(*req.DismissalDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		fields["dismissal_date"] = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.Update(ctx, serial, fields)
	if err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("request_id", rid),
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateProfileCache(ctx, serial)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("serial_number", serial),
	)

	return mapToResponse(*empl), nil
}

// Delete soft-deletes the employee unless active tasks still reference it.
// The guard reads every matching task (no pagination cap). The read and the
// delete are separate statements: a task created for the same employee in
// between is not prevented.
func (s *service) Delete(ctx context.Context, serial string) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("serial_number", serial),
	)

	activeTasks, err := s.taskRepo.FindAll(ctx, pagination.Window{}, serial)
	if err != nil {
		s.logger.Error("delete employee guard query failed",
			zap.String("request_id", rid),
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return 0, err
	}
	if len(activeTasks) > 0 {
		s.logger.Warn("delete employee blocked by active tasks",
			zap.String("request_id", rid),
			zap.String("serial_number", serial),
			zap.Int("active_tasks", len(activeTasks)),
		)
		return 0, employeeerrors.ErrEmployeeHasActiveTasks
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	affected, err := qtx.SoftDelete(ctx, serial)
	if err != nil {
		s.logger.Error("delete employee failed",
			zap.String("request_id", rid),
			zap.String("serial_number", serial),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}

	// No event when nothing was deleted: the serial either does not exist
	// or was already soft-deleted by an earlier call.
	if affected > 0 {
		if err := s.enqueueLifecycleEvent(ctx, tx, events.EmployeeDeletedEventType, serial); err != nil {
			s.logger.Error("delete employee outbox persist failed",
				zap.String("serial_number", serial),
				zap.Error(err),
			)
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.invalidateProfileCache(ctx, serial)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("serial_number", serial),
		zap.Int64("affected", affected),
	)

	return affected, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType, serial string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:    eventType,
		RequestID:    rid,
		SerialNumber: serial,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   serial,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateProfileCache(ctx context.Context, serial string) {
	if s.rdb == nil {
		return
	}

	cacheKey := GetProfileCacheKey(serial)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee profile cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}
