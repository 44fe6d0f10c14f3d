package api

import "time"

// swagger:model api.TagResponse
type TagResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"backend"`
	Color     string    `json:"color" example:"#36b37e"`
	CreatedAt time.Time `json:"created_at"`
}
