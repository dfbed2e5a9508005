package employee

import (
	"time"

	"gorm.io/gorm"
)

// Employee row. The serial number is the primary identity and is immutable
// after creation. Soft delete via gorm.DeletedAt: deleted rows stay in
// storage but drop out of default queries.
type Employee struct {
	SerialNumber  string     `gorm:"column:serial_number;primaryKey;size:5"`
	Name          string     `gorm:"column:name"`
	Surname       string     `gorm:"column:surname"`
	Email         string     `gorm:"column:email"`
	Role          string     `gorm:"column:role"`
	HiringDate    time.Time  `gorm:"column:hiring_date;not null"`
	DismissalDate *time.Time `gorm:"column:dismissal_date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employee"
}
