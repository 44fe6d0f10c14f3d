package api

// swagger:model api.UpdateProductRequest
type UpdateProductRequest struct {
	CategoryID  int     `json:"category_id" validate:"required,gte=1" example:"1"`
	Name        string  `json:"name" validate:"required" example:"Espresso"`
	Description string  `json:"description" example:"Double shot"`
	Price       float64 `json:"price" validate:"gte=0" example:"2.5"`
	Stock       int     `json:"stock" validate:"gte=0" example:"100"`
}
