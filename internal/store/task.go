package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateTask(ctx context.Context, db database.DB, t *model.Task) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tasks (owner_id, assignee_id, title, description, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.OwnerID,
		t.AssigneeID,
		t.Title,
		t.Description,
		t.Status,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return t, nil
}

func GetTaskByID(ctx context.Context, db database.DB, taskID int) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`SELECT id, owner_id, assignee_id, title, description, status, created_at, updated_at
		 FROM tasks WHERE id = $1`,
		taskID,
	)
	t := &model.Task{}
	if err := scanTask(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetTaskByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetTaskByID: %w", err)
	}
	return t, nil
}

// TaskFilter 列表過濾條件，零值表示不過濾
// OwnerID 供非管理員限定自己的任務
type TaskFilter struct {
	OwnerID int
	Status  string
	TagID   int
}

func ListTasks(ctx context.Context, db database.DB, f TaskFilter) ([]model.Task, error) {
	query := `SELECT DISTINCT t.id, t.owner_id, t.assignee_id, t.title, t.description, t.status, t.created_at, t.updated_at
		 FROM tasks t`
	args := []any{}
	where := ""

	appendCond := func(cond string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if f.TagID > 0 {
		query += ` JOIN task_tags tt ON tt.task_id = t.id`
		appendCond("tt.tag_id = $%d", f.TagID)
	}
	if f.OwnerID > 0 {
		appendCond("t.owner_id = $%d", f.OwnerID)
	}
	if f.Status != "" {
		appendCond("t.status = $%d", f.Status)
	}

	rows, err := db.Query(ctx, query+where+" ORDER BY t.id", args...)
	if err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("ListTasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	return tasks, nil
}

func UpdateTask(ctx context.Context, db database.DB, t *model.Task) error {
	tag, err := db.Exec(ctx,
		`UPDATE tasks SET
			title = $1,
			description = $2,
			assignee_id = $3,
			updated_at = now()
		 WHERE id = $4`,
		t.Title,
		t.Description,
		t.AssigneeID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTask: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateTask: %w", ErrNotFound)
	}
	return nil
}

func UpdateTaskStatus(ctx context.Context, db database.DB, taskID int, status string) error {
	tag, err := db.Exec(ctx,
		`UPDATE tasks SET status = $1, updated_at = now()
		 WHERE id = $2`,
		status,
		taskID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTaskStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateTaskStatus: %w", ErrNotFound)
	}
	return nil
}

func DeleteTask(ctx context.Context, db database.DB, taskID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		taskID,
	)
	if err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTask: %w", ErrNotFound)
	}
	return nil
}

// ReplaceTaskTags 以整組取代任務標籤
// 先驗證所有 tag id 存在，缺漏回傳 ErrNotFound
// 注意：delete 與 insert 非單一交易，insert 失敗時舊標籤已被清除，
// 呼叫端重送同一請求即可回到一致狀態
func ReplaceTaskTags(ctx context.Context, db database.DB, taskID int, tagIDs []int) error {
	if len(tagIDs) > 0 {
		row := db.QueryRow(ctx,
			`SELECT count(*) FROM tags WHERE id = ANY($1)`,
			tagIDs,
		)
		var n int
		if err := row.Scan(&n); err != nil {
			return fmt.Errorf("ReplaceTaskTags: %w", err)
		}
		if n != len(uniqueInts(tagIDs)) {
			return fmt.Errorf("ReplaceTaskTags: %w", ErrNotFound)
		}
	}

	if _, err := db.Exec(ctx,
		`DELETE FROM task_tags WHERE task_id = $1`,
		taskID,
	); err != nil {
		return fmt.Errorf("ReplaceTaskTags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO task_tags (task_id, tag_id)
		 SELECT $1, unnest($2::int[])
		 ON CONFLICT DO NOTHING`,
		taskID,
		tagIDs,
	); err != nil {
		return fmt.Errorf("ReplaceTaskTags: %w", err)
	}
	return nil
}

func uniqueInts(in []int) []int {
	seen := map[int]struct{}{}
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func scanTask(row pgx.Row, t *model.Task) error {
	return row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.AssigneeID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}
