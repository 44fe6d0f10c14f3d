package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 實作 pgx.Row，用於模擬單筆掃描行為。
type fakeRow struct {
	scanErr error
	scanFn  func(dest ...any)
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if r.scanFn != nil {
		r.scanFn(dest...)
	}
	return nil
}

// fakeRows 實作 pgx.Rows，用於模擬多筆掃描行為。
type fakeRows struct {
	n       int
	idx     int
	scanErr error
	err     error
	scanFn  func(idx int, dest ...any)
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < r.n }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if r.scanFn != nil {
		r.scanFn(r.idx, dest...)
	}
	r.idx++
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func execTag(affected int) pgconn.CommandTag {
	if affected == 0 {
		return pgconn.NewCommandTag("UPDATE 0")
	}
	return pgconn.NewCommandTag("UPDATE 1")
}
