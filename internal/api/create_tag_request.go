package api

// swagger:model api.CreateTagRequest
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required" example:"backend"`
	Color string `json:"color" validate:"omitempty,hexcolor" example:"#36b37e"`
}
