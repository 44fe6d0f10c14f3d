package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateTag(ctx context.Context, db database.DB, t *model.Tag) (*model.Tag, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tags (name, color)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		t.Name,
		t.Color,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTag: %w", err)
	}
	return t, nil
}

func GetTagByID(ctx context.Context, db database.DB, tagID int) (*model.Tag, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, color, created_at
		 FROM tags WHERE id = $1`,
		tagID,
	)
	t := &model.Tag{}
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetTagByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetTagByID: %w", err)
	}
	return t, nil
}

func ListTags(ctx context.Context, db database.DB) ([]model.Tag, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, color, created_at
		 FROM tags ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListTags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	return tags, nil
}

func UpdateTag(ctx context.Context, db database.DB, t *model.Tag) error {
	tag, err := db.Exec(ctx,
		`UPDATE tags SET name = $1, color = $2
		 WHERE id = $3`,
		t.Name,
		t.Color,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateTag: %w", ErrNotFound)
	}
	return nil
}

// DeleteTag 刪除標籤，task_tags 由外鍵 CASCADE 一併清除
func DeleteTag(ctx context.Context, db database.DB, tagID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM tags WHERE id = $1`,
		tagID,
	)
	if err != nil {
		return fmt.Errorf("DeleteTag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTag: %w", ErrNotFound)
	}
	return nil
}

// GetTagsByTaskIDs 以單一 ANY 查詢批次載入多個任務的標籤，
// 避免逐任務查詢造成 N+1
func GetTagsByTaskIDs(ctx context.Context, db database.DB, taskIDs []int) (map[int][]model.Tag, error) {
	result := map[int][]model.Tag{}
	if len(taskIDs) == 0 {
		return result, nil
	}

	rows, err := db.Query(ctx,
		`SELECT tt.task_id, t.id, t.name, t.color, t.created_at
		 FROM task_tags tt
		 JOIN tags t ON t.id = tt.tag_id
		 WHERE tt.task_id = ANY($1)
		 ORDER BY t.name`,
		taskIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("GetTagsByTaskIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			taskID int
			t      model.Tag
		)
		if err := rows.Scan(&taskID, &t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("GetTagsByTaskIDs: %w", err)
		}
		result[taskID] = append(result[taskID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetTagsByTaskIDs: %w", err)
	}
	return result, nil
}
