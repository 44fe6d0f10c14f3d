package api

// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required" example:"Write workshop notes"`
	Description string `json:"description" example:"Summarize session three"`
	Status      string `json:"status" validate:"omitempty,oneof=todo doing done" example:"todo"`
	AssigneeID  *int   `json:"assignee_id,omitempty" example:"2"`
}
