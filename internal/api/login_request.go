package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Name     string `json:"name" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}
