package task

import (
	"time"

	"gorm.io/gorm"
)

// Progress tokens. Validated at the binding layer with oneof.
const (
	ProgressNew        = "new"
	ProgressInProgress = "in_progress"
	ProgressDone       = "done"
)

// Task row. EmployeeSN is a nullable reference to employee.serial_number;
// nil means the task is unassigned. The foreign key is enforced by the
// store (constraint fk_task_employee).
type Task struct {
	ID          uint    `gorm:"column:id;primaryKey"`
	Title       string  `gorm:"column:title"`
	Description string  `gorm:"column:description"`
	Progress    string  `gorm:"column:progress"`
	EmployeeSN  *string `gorm:"column:employee_sn;size:5"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Task) TableName() string {
	return "task"
}
