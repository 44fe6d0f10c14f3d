package api

import "time"

// swagger:model api.TaskResponse
type TaskResponse struct {
	ID          int           `json:"id" example:"1"`
	OwnerID     int           `json:"owner_id" example:"1"`
	AssigneeID  *int          `json:"assignee_id,omitempty" example:"2"`
	Title       string        `json:"title" example:"Write workshop notes"`
	Description string        `json:"description" example:"Summarize session three"`
	Status      string        `json:"status" example:"todo"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
