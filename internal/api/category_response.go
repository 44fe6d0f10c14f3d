package api

import "time"

// swagger:model api.CategoryResponse
type CategoryResponse struct {
	ID          int       `json:"id" example:"1"`
	Name        string    `json:"name" example:"Beverages"`
	Description string    `json:"description" example:"Hot and cold drinks"`
	CreatedAt   time.Time `json:"created_at"`
}
