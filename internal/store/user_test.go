package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	now := time.Now().UTC()

	scanUser := func(dest ...any) {
		*dest[0].(*int) = 1
		*dest[1].(*string) = "alice"
		*dest[2].(*string) = "alice@example.com"
		*dest[3].(*string) = "hash"
		*dest[4].(*bool) = false
		*dest[5].(*time.Time) = now
	}

	t.Run("GetUserByID ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanFn: scanUser}
			},
		}
		u, err := GetUserByID(context.Background(), db, 1)
		require.NoError(t, err)
		require.Equal(t, "alice", u.Name)
		require.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("GetUserByID no rows", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByID(context.Background(), db, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetUserByName ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, "alice", args[0])
				return &fakeRow{scanFn: scanUser}
			},
		}
		u, err := GetUserByName(context.Background(), db, "alice")
		require.NoError(t, err)
		require.Equal(t, 1, u.ID)
	})

	t.Run("ListUsers ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeRows{n: 2, scanFn: func(_ int, dest ...any) { scanUser(dest...) }}, nil
			},
		}
		users, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, users, 2)
	})

	t.Run("ListUsers query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("q")
			},
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("CreateUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanFn: func(dest ...any) {
					*dest[0].(*int) = 7
					*dest[1].(*time.Time) = now
				}}
			},
		}
		u, err := CreateUser(context.Background(), db, &model.User{Name: "bob"})
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
		require.Equal(t, now, u.CreatedAt)
	})

	t.Run("UpdateUser not found", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return execTag(0), nil
			},
		}
		err := UpdateUser(context.Background(), db, &model.User{ID: 1})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateUserPassword ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, "newhash", args[0])
				require.Equal(t, 3, args[1])
				return execTag(1), nil
			},
		}
		require.NoError(t, UpdateUserPassword(context.Background(), db, 3, "newhash"))
	})

	t.Run("DeleteUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return execTag(1), nil
			},
		}
		require.NoError(t, DeleteUser(context.Background(), db, 1))
	})

	t.Run("DeleteUser exec error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("x")
			},
		}
		require.Error(t, DeleteUser(context.Background(), db, 1))
	})
}

func TestUniqueViolationHelpers(t *testing.T) {
	require.False(t, IsUniqueViolation(errors.New("plain")))
	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}
