package tasks

// CreateTaskRequest is the payload for creating a task. Status defaults to
// pending when omitted; the owner is never part of the payload — it is always
// the authenticated caller.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required" example:"Write report"`
	Description string  `json:"description,omitempty" example:"Q3 numbers"`
	Status      Status  `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed" example:"pending"`
	DueDate     *string `json:"dueDate,omitempty" example:"2025-06-15"`
}

// UpdateTaskRequest is the partial-update payload. Pointer fields distinguish
// "absent, keep the old value" from "present, set this value": an explicitly
// empty description clears it, an absent one leaves it alone.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// TaskResponse pairs a success message with the affected task.
type TaskResponse struct {
	Message string `json:"message" example:"Task created successfully"`
	Task    *Task  `json:"task"`
}

// ListResponse carries the caller's tasks and their count.
type ListResponse struct {
	Count int    `json:"count" example:"3"`
	Tasks []Task `json:"tasks"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"Task deleted successfully"`
}
