package task

import (
	"context"
	"database/sql"

	"github.com/djfabrix/vidiemme/internal/shared/pagination"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id uint) (*Task, error)
	FindAll(ctx context.Context, page pagination.Window, employeeSN string) ([]Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, id uint, fields map[string]any) (*Task, error)
	SoftDelete(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction: statements run on
// the caller's *sql.Tx and commit or roll back with it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	sess := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	sess.Statement.ConnPool = tx
	return &repository{db: sess}
}

// FindByID matches on id regardless of soft-delete state, mirroring the
// employee repository lookup.
func (r *repository) FindByID(ctx context.Context, id uint) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Unscoped().
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindAll lists active tasks. A non-empty employeeSN narrows the result to
// that employee's tasks; the delete guard calls this with a bare window so
// every match is scanned.
func (r *repository) FindAll(ctx context.Context, page pagination.Window, employeeSN string) ([]Task, error) {
	var tasks []Task
	q := r.db.WithContext(ctx).Scopes(page.Scope())
	if employeeSN != "" {
		q = q.Where("employee_sn = ?", employeeSN)
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update applies the given fields to the active row only; a soft-deleted
// target is a silent no-op and the stored state is returned unchanged.
func (r *repository) Update(ctx context.Context, id uint, fields map[string]any) (*Task, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&Task{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

func (r *repository) SoftDelete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&Task{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
