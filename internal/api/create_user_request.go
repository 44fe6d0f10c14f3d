package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}
