package api

// swagger:model api.UpdateCategoryRequest
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required" example:"Beverages"`
	Description string `json:"description" example:"Hot and cold drinks"`
}
