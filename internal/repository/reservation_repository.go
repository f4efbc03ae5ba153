package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/table-reservation/internal/booking"
	"github.com/iliyamo/table-reservation/internal/model"
)

// ReservationRepo is the reservation store. Reservations are written
// exactly once by Commit and never mutated; every read path is a
// finite snapshot. Date and time columns hold the zero-padded string
// tokens from the model, so the SQL comparisons below have the same
// semantics as model.TimeSlot.Overlaps.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, table_id, table_number, customer_name, contact_number, requester, booking_date, start_time, end_time, created_at`

// readRetries bounds the transparent retries for idempotent reads on
// transient driver failures. The commit write is never retried here;
// retry policy for commits belongs to the admission engine.
const readRetries = 2

// MySQL server errors that signal lock contention between concurrent
// transactions rather than a violated precondition.
const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
)

// Commit inserts the reservation if and only if no stored reservation
// for the same table and date overlaps its slot. The precondition and
// the write are one atomic statement, so concurrent commits on the
// same key can never both pass: the loser either observes zero
// affected rows (booking.ErrSlotConflict) or loses a lock race
// (booking.ErrCommitContention) and may be retried by the caller.
func (r *ReservationRepo) Commit(ctx context.Context, res model.Reservation) error {
	const q = `INSERT INTO reservations (` + reservationColumns + `)
	           SELECT ?,?,?,?,?,?,?,?,?,?
	           FROM DUAL
	           WHERE NOT EXISTS (
	               SELECT 1 FROM reservations
	               WHERE table_id = ? AND booking_date = ?
	                 AND start_time < ? AND ? < end_time
	           )`
	result, err := r.db.ExecContext(ctx, q,
		res.ID, res.TableID, res.TableNumber, res.CustomerName, res.ContactNumber,
		res.Requester, res.Slot.Date, res.Slot.Start, res.Slot.End, res.CreatedAt.UTC(),
		res.TableID, res.Slot.Date, res.Slot.End, res.Slot.Start)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && (me.Number == mysqlErrLockDeadlock || me.Number == mysqlErrLockWaitTimeout) {
			return booking.ErrCommitContention
		}
		return fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	if n == 0 {
		return booking.ErrSlotConflict
	}
	return nil
}

// FindOverlapping returns every reservation for the table and date
// whose interval overlaps the half-open slot [start, end).
func (r *ReservationRepo) FindOverlapping(ctx context.Context, tableID string, slot model.TimeSlot) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE table_id = ? AND booking_date = ?
	             AND start_time < ? AND ? < end_time
	           ORDER BY start_time`
	return r.queryReservations(ctx, q, tableID, slot.Date, slot.End, slot.Start)
}

// ListAll returns every reservation, newest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id`
	return r.queryReservations(ctx, q)
}

// ListByTable returns every reservation held against one table.
func (r *ReservationRepo) ListByTable(ctx context.Context, tableID string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE table_id = ?
	           ORDER BY booking_date, start_time`
	return r.queryReservations(ctx, q, tableID)
}

// ListByRequester returns every reservation created by one caller
// identity.
func (r *ReservationRepo) ListByRequester(ctx context.Context, requester string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations WHERE requester = ?
	           ORDER BY booking_date, start_time`
	return r.queryReservations(ctx, q, requester)
}

// queryReservations runs a reservation select and scans the rows.
// Transient failures are retried a bounded number of times; the
// query is idempotent so this cannot mask a conflict.
func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	var lastErr error
	for attempt := 0; attempt <= readRetries; attempt++ {
		out, err := r.queryReservationsOnce(ctx, q, args...)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, ctx.Err())
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, lastErr)
}

func (r *ReservationRepo) queryReservationsOnce(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.TableID, &res.TableNumber, &res.CustomerName, &res.ContactNumber,
			&res.Requester, &res.Slot.Date, &res.Slot.Start, &res.Slot.End, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		res.CreatedAt = res.CreatedAt.UTC()
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
