// File: internal/model/task_event.go
package model

import "time"

// 任務事件型別，發佈於 Redis 頻道供 SSE 串流轉送
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskMoved   = "task.moved"
	EventTaskDeleted = "task.deleted"
)

type TaskEvent struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	TaskID  int       `json:"task_id"`
	Status  string    `json:"status,omitempty"`
	ActorID int       `json:"actor_id"`
	At      time.Time `json:"at"`
}
