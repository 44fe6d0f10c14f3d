package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
)

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_admin, created_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByName(ctx context.Context, db database.DB, userName string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_admin, created_at
		 FROM users WHERE name = $1`,
		userName,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByName: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByName: %w", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, email, password_hash, is_admin, created_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, is_admin = $3
		 WHERE id = $4`,
		u.Name,
		u.Email,
		u.IsAdmin,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
