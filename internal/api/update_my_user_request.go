package api

// swagger:model api.UpdateMyUserRequest
type UpdateMyUserRequest struct {
	Name  string `json:"name" validate:"required" example:"alice"`
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}
