package api

// swagger:model api.UpdateTaskStatusRequest
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo doing done" example:"doing"`
}
