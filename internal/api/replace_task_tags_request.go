package api

// swagger:model api.ReplaceTaskTagsRequest
type ReplaceTaskTagsRequest struct {
	TagIDs []int `json:"tag_ids" validate:"dive,gte=1" example:"1,2"`
}
