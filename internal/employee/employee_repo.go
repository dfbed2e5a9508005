package employee

import (
	"context"
	"database/sql"

	"github.com/djfabrix/vidiemme/internal/shared/pagination"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindBySerial(ctx context.Context, serial string) (*Employee, error)
	FindAll(ctx context.Context, page pagination.Window) ([]Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, serial string, fields map[string]any) (*Employee, error)
	SoftDelete(ctx context.Context, serial string) (int64, error)
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

// FindBySerial matches on serial number regardless of soft-delete state.
// Whether a deleted row counts as "found" is a service-level decision.
func (r *repository) FindBySerial(ctx context.Context, serial string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Unscoped().
		First(&empl, "serial_number = ?", serial).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context, page pagination.Window) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(page.Scope()).
		Find(&empls).Error
	return empls, err
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

// Update applies the given fields to the active row only. A soft-deleted
// target is a silent no-op: the stored state is returned unchanged.
func (r *repository) Update(ctx context.Context, serial string, fields map[string]any) (*Employee, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&Employee{}).
			Where("serial_number = ?", serial).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}

	return r.FindBySerial(ctx, serial)
}

func (r *repository) SoftDelete(ctx context.Context, serial string) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&Employee{}, "serial_number = ?", serial)
	return res.RowsAffected, res.Error
}
