package api

import "time"

// swagger:model api.ProductResponse
type ProductResponse struct {
	ID          int       `json:"id" example:"1"`
	CategoryID  int       `json:"category_id" example:"1"`
	SKU         string    `json:"sku" example:"BEV-001"`
	Name        string    `json:"name" example:"Espresso"`
	Description string    `json:"description" example:"Double shot"`
	Price       float64   `json:"price" example:"2.5"`
	Stock       int       `json:"stock" example:"100"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
