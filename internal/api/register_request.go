package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
}
