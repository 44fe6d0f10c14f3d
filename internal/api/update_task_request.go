package api

// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required" example:"Write workshop notes"`
	Description string `json:"description" example:"Summarize session three"`
	AssigneeID  *int   `json:"assignee_id,omitempty" example:"2"`
}
