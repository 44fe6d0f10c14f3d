package api

// BoardResponse 依看板欄位分組的任務列表
// swagger:model api.BoardResponse
type BoardResponse struct {
	Todo  []TaskResponse `json:"todo"`
	Doing []TaskResponse `json:"doing"`
	Done  []TaskResponse `json:"done"`
}
