package events

import "time"

// EmployeeLifecycleTopic carries employee_created and employee_deleted
// events, keyed by serial number.
const EmployeeLifecycleTopic = "vidiemme.employee.lifecycle.v1"

const (
	EmployeeCreatedEventType = "employee_created"
	EmployeeDeletedEventType = "employee_deleted"
)

type EmployeeLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	SerialNumber string    `json:"serial_number"`
	OccurredAt   time.Time `json:"occurred_at"`
}
