package api

// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	CategoryID  int     `json:"category_id" validate:"required,gte=1" example:"1"`
	SKU         string  `json:"sku" validate:"required" example:"BEV-001"`
	Name        string  `json:"name" validate:"required" example:"Espresso"`
	Description string  `json:"description" example:"Double shot"`
	Price       float64 `json:"price" validate:"gte=0" example:"2.5"`
	Stock       int     `json:"stock" validate:"gte=0" example:"100"`
}
