package api

import "time"

// TaskEventResponse 任務事件串流的單筆事件
// swagger:model api.TaskEventResponse
type TaskEventResponse struct {
	ID      string    `json:"id" example:"9f4e1c1a-0b5a-4719-9be7-1b7a4c7e4b11"`
	Type    string    `json:"type" example:"task.moved"`
	TaskID  int       `json:"task_id" example:"1"`
	Status  string    `json:"status,omitempty" example:"doing"`
	ActorID int       `json:"actor_id" example:"1"`
	At      time.Time `json:"at"`
}
