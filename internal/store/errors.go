package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound 查無資料，handler 層對應 404
var ErrNotFound = errors.New("not found")

// IsUniqueViolation 回報 err 是否為唯一鍵衝突 (23505)，handler 層對應 409
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation 回報 err 是否為外鍵違反 (23503)
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
