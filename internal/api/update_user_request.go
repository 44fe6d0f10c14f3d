package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required" example:"alice"`
	Email   string `json:"email" validate:"required,email" example:"alice@example.com"`
	IsAdmin bool   `json:"is_admin" example:"false"`
}
