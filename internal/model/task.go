// File: internal/model/task.go
package model

import "time"

// 看板欄位狀態，資料庫層以 CHECK 約束保證一致
const (
	StatusTodo  = "todo"
	StatusDoing = "doing"
	StatusDone  = "done"
)

// ValidStatus 回報 s 是否為合法的看板欄位
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          int       `db:"id" json:"id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	AssigneeID  *int      `db:"assignee_id" json:"assignee_id,omitempty"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	Tags        []Tag     `db:"-" json:"tags,omitempty"`
}
