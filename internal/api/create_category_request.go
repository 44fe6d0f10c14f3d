package api

// swagger:model api.CreateCategoryRequest
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required" example:"Beverages"`
	Description string `json:"description" example:"Hot and cold drinks"`
}
