package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/iliyamo/table-reservation/internal/booking"
	"github.com/iliyamo/table-reservation/internal/model"
)

// TableRepo is the table catalog. Tables are read-mostly: they are
// registered once and never mutated in this scope. Storage does not
// enforce uniqueness of the human-facing number, so the catalog
// resolves duplicates deterministically and flags the anomaly.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// Register validates the candidate and persists it. A generated UUID
// is assigned when the caller supplies no id. Validation failures
// are reported as booking.ErrValidation before any write.
func (r *TableRepo) Register(ctx context.Context, t model.Table) (model.Table, error) {
	if t.Number < 1 {
		return model.Table{}, fmt.Errorf("%w: number must be a positive integer", booking.ErrValidation)
	}
	if t.Capacity < 1 {
		return model.Table{}, fmt.Errorf("%w: places must be a positive integer", booking.ErrValidation)
	}
	if t.MinOrder < 0 {
		return model.Table{}, fmt.Errorf("%w: minOrder must not be negative", booking.ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tables (id, number, capacity, is_vip, min_order) VALUES (?,?,?,?,?)",
		t.ID, t.Number, t.Capacity, t.IsVip, t.MinOrder)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	return t, nil
}

// ResolveByNumber looks a table up by its human-facing number. When
// several records share a number (a data-quality condition correct
// registration never produces) the lowest id wins on every call and
// the anomaly is logged rather than silently picking per call.
func (r *TableRepo) ResolveByNumber(ctx context.Context, number int) (model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, number, capacity, is_vip, min_order FROM tables WHERE number=? ORDER BY id",
		number)
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var matches []model.Table
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.IsVip, &t.MinOrder); err != nil {
			return model.Table{}, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
		}
		matches = append(matches, t)
	}
	if err := rows.Err(); err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	if len(matches) == 0 {
		return model.Table{}, booking.ErrUnknownTable
	}
	if len(matches) > 1 {
		log.Printf("catalog: %d tables registered with number %d; resolving to id %s",
			len(matches), number, matches[0].ID)
	}
	return matches[0], nil
}

// GetByID fetches a table by its opaque identifier.
func (r *TableRepo) GetByID(ctx context.Context, id string) (model.Table, error) {
	var t model.Table
	err := r.db.QueryRowContext(ctx,
		"SELECT id, number, capacity, is_vip, min_order FROM tables WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Number, &t.Capacity, &t.IsVip, &t.MinOrder)
	if err == sql.ErrNoRows {
		return model.Table{}, booking.ErrUnknownTable
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	return t, nil
}

// ListAll returns every registered table ordered by number.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, number, capacity, is_vip, min_order FROM tables ORDER BY number, id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.IsVip, &t.MinOrder); err != nil {
			return nil, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	return tables, nil
}
