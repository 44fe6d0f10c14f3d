package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateCategory(ctx context.Context, db database.DB, c *model.Category) (*model.Category, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		c.Name,
		c.Description,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}
	return c, nil
}

func GetCategoryByID(ctx context.Context, db database.DB, categoryID int) (*model.Category, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, created_at
		 FROM categories WHERE id = $1`,
		categoryID,
	)
	c := &model.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetCategoryByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetCategoryByID: %w", err)
	}
	return c, nil
}

func ListCategories(ctx context.Context, db database.DB) ([]model.Category, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, description, created_at
		 FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListCategories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

func UpdateCategory(ctx context.Context, db database.DB, c *model.Category) error {
	tag, err := db.Exec(ctx,
		`UPDATE categories SET name = $1, description = $2
		 WHERE id = $3`,
		c.Name,
		c.Description,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateCategory: %w", ErrNotFound)
	}
	return nil
}

func DeleteCategory(ctx context.Context, db database.DB, categoryID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1`,
		categoryID,
	)
	if err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteCategory: %w", ErrNotFound)
	}
	return nil
}

// CountProductsByCategory 回傳分類下商品數，刪除前檢查用
func CountProductsByCategory(ctx context.Context, db database.DB, categoryID int) (int, error) {
	row := db.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE category_id = $1`,
		categoryID,
	)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("CountProductsByCategory: %w", err)
	}
	return n, nil
}
