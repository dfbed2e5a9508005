package employee

import (
	"time"

	employeeerrors "github.com/djfabrix/vidiemme/internal/employee/errors"
)

type CreateEmployeeRequest struct {
	SerialNumber  string `json:"serial_number" binding:"required,len=5,numeric"`
	Name          string `json:"name" binding:"required"`
	Surname       string `json:"surname" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Role          string `json:"role" binding:"required"`
	HiringDate    string `json:"hiring_date" binding:"required"`
	DismissalDate string `json:"dismissal_date"`
}

// UpdateEmployeeRequest carries a partial field replacement: nil pointers
// are left untouched on the stored row. The serial number is immutable and
// therefore absent here.
type UpdateEmployeeRequest struct {
	Name          *string `json:"name"`
	Surname       *string `json:"surname"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Role          *string `json:"role"`
	HiringDate    *string `json:"hiring_date"`
	DismissalDate *string `json:"dismissal_date"`
}

type EmployeeResponse struct {
	SerialNumber  string `json:"serial_number"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	HiringDate    string `json:"hiring_date"`
	DismissalDate string `json:"dismissal_date,omitempty"`
	DeletedAt     string `json:"deleted_at,omitempty"`
}

// The two textual date formats accepted on the wire.
var dateLayouts = []string{"2006-01-02", "02-01-2006"}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, employeeerrors.ErrInvalidDateFormat
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		SerialNumber: empl.SerialNumber,
		Name:         empl.Name,
		Surname:      empl.Surname,
		Email:        empl.Email,
		Role:         empl.Role,
		HiringDate:   empl.HiringDate.Format("2006-01-02"),
	}
	if empl.DismissalDate != nil {
		resp.DismissalDate = empl.DismissalDate.Format("2006-01-02")
	}
	if empl.DeletedAt.Valid {
		resp.DeletedAt = empl.DeletedAt.Time.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
