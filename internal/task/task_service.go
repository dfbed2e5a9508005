package task

import (
	"context"
	"database/sql"

	"github.com/djfabrix/vidiemme/internal/shared/contextutil"
	"github.com/djfabrix/vidiemme/internal/shared/pagination"

	"go.uber.org/zap"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, page pagination.Window, employeeSN string) ([]TaskResponse, error)
	GetByID(ctx context.Context, id uint) (TaskResponse, error)
	Update(ctx context.Context, id uint, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// service delegates to the repository; the only logic it adds is surfacing
// referential-integrity failures with the offending serial number.
type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create task requested",
		zap.String("request_id", rid),
		zap.String("title", req.Title),
		zap.String("employee", req.Employee),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	t := &Task{
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
	}
	if req.Employee != "" {
		t.EmployeeSN = &req.Employee
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err, req.Employee)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("request_id", rid),
		zap.Uint("task_id", t.ID),
	)

	return ToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, page pagination.Window, employeeSN string) ([]TaskResponse, error) {
	s.logger.Debug("get all tasks requested",
		zap.String("employee", employeeSN),
		zap.Int("offset", page.Offset),
		zap.Int("limit", page.Limit),
	)

	tasks, err := s.repo.FindAll(ctx, page, employeeSN)
	if err != nil {
		s.logger.Error("get all tasks failed", zap.Error(err))
		return nil, mapRepositoryError(err, "")
	}

	return ToListResponse(tasks), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (TaskResponse, error) {
	s.logger.Debug("get task by id requested", zap.Uint("task_id", id))

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get task by id failed", zap.Uint("task_id", id), zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err, "")
	}

	return ToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateTaskRequest) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update task requested",
		zap.String("request_id", rid),
		zap.Uint("task_id", id),
	)

	fields := map[string]any{}
	serial := ""
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Progress != nil {
		fields["progress"] = *req.Progress
	}
	if req.Employee != nil {
		fields["employee_sn"] = *req.Employee
		serial = *req.Employee
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update task begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("update task persist failed",
			zap.String("request_id", rid),
			zap.Uint("task_id", id),
			zap.Error(err),
		)
		return TaskResponse{}, mapRepositoryError(err, serial)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update task commit failed", zap.String("request_id", rid), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task success",
		zap.String("request_id", rid),
		zap.Uint("task_id", id),
	)

	return ToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id uint) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete task requested",
		zap.String("request_id", rid),
		zap.Uint("task_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete task begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	affected, err := qtx.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error("delete task failed",
			zap.String("request_id", rid),
			zap.Uint("task_id", id),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err, "")
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete task commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("delete task success",
		zap.String("request_id", rid),
		zap.Uint("task_id", id),
		zap.Int64("affected", affected),
	)

	return affected, nil
}
