package task

import "time"

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Progress    string `json:"progress" binding:"required,oneof=new in_progress done"`
	Employee    string `json:"employee" binding:"omitempty,len=5,numeric"`
}

// UpdateTaskRequest carries a partial field replacement: nil pointers are
// left untouched on the stored row.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Progress    *string `json:"progress" binding:"omitempty,oneof=new in_progress done"`
	Employee    *string `json:"employee" binding:"omitempty,len=5,numeric"`
}

type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    string `json:"progress"`
	Employee    string `json:"employee,omitempty"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

func ToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Progress:    t.Progress,
	}
	if t.EmployeeSN != nil {
		resp.Employee = *t.EmployeeSN
	}
	if t.DeletedAt.Valid {
		resp.DeletedAt = t.DeletedAt.Time.Format(time.RFC3339)
	}
	return resp
}

func ToListResponse(tasks []Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = ToResponse(t)
	}
	return res
}
