package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (category_id, sku, name, description, price, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.CategoryID,
		p.SKU,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

func GetProductByID(ctx context.Context, db database.DB, productID int) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`SELECT id, category_id, sku, name, description, price, stock, created_at, updated_at
		 FROM products WHERE id = $1`,
		productID,
	)
	p := &model.Product{}
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetProductByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetProductByID: %w", err)
	}
	return p, nil
}

// ListProducts 依選填的分類過濾並分頁，categoryID = 0 表示不過濾
func ListProducts(ctx context.Context, db database.DB, categoryID, limit, offset int) ([]model.Product, error) {
	// limit 未指定或超出上限時以 100 筆為準
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows pgx.Rows
		err  error
	)
	if categoryID > 0 {
		rows, err = db.Query(ctx,
			`SELECT id, category_id, sku, name, description, price, stock, created_at, updated_at
			 FROM products WHERE category_id = $1
			 ORDER BY id LIMIT $2 OFFSET $3`,
			categoryID, limit, offset,
		)
	} else {
		rows, err = db.Query(ctx,
			`SELECT id, category_id, sku, name, description, price, stock, created_at, updated_at
			 FROM products
			 ORDER BY id LIMIT $1 OFFSET $2`,
			limit, offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	tag, err := db.Exec(ctx,
		`UPDATE products SET
			category_id = $1,
			name = $2,
			description = $3,
			price = $4,
			stock = $5,
			updated_at = now()
		 WHERE id = $6`,
		p.CategoryID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateProduct: %w", ErrNotFound)
	}
	return nil
}

func DeleteProduct(ctx context.Context, db database.DB, productID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteProduct: %w", ErrNotFound)
	}
	return nil
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
