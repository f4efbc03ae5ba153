package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/table-reservation/internal/model"
)

// TableCatalog resolves a human-facing table number to a registered
// table. Implementations must pick deterministically when duplicate
// numbers exist and return ErrUnknownTable when nothing matches.
type TableCatalog interface {
	ResolveByNumber(ctx context.Context, number int) (model.Table, error)
}

// ReservationStore is the storage contract the admission engine
// commits through. Commit must evaluate the no-overlap precondition
// and the insert as one atomic unit with respect to any concurrent
// Commit on the same (tableID, date) key: it returns ErrSlotConflict
// when a stored reservation overlaps the candidate slot at write
// time, and ErrCommitContention when the write lost a storage-level
// race that does not by itself imply an overlap.
type ReservationStore interface {
	FindOverlapping(ctx context.Context, tableID string, slot model.TimeSlot) ([]model.Reservation, error)
	Commit(ctx context.Context, res model.Reservation) error
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByTable(ctx context.Context, tableID string) ([]model.Reservation, error)
	ListByRequester(ctx context.Context, requester string) ([]model.Reservation, error)
}

// Request carries everything the engine needs to decide admission of
// one reservation. Requester is the already-resolved caller identity;
// resolving it from the transport is the HTTP layer's job.
type Request struct {
	TableNumber   int
	Date          string
	Start         string
	End           string
	CustomerName  string
	ContactNumber string
	Requester     string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// maxCommitAttempts bounds the read-check-write retries after a
	// contended commit. Conflicts caused by a true overlap never
	// retry; only disjoint-insert races burn attempts.
	maxCommitAttempts = 3
)

// Engine decides whether a requested slot may become a reservation
// and makes that decision durable. It holds no mutable state of its
// own; the ReservationStore is the single source of truth and the
// sole arbiter of the atomic commit, which keeps the engine correct
// across multiple processes.
type Engine struct {
	catalog TableCatalog
	store   ReservationStore

	now   func() time.Time // stubbed in tests
	newID func() string
}

// NewEngine constructs an admission engine over injected storage
// contracts. Both dependencies must be non-nil.
func NewEngine(catalog TableCatalog, store ReservationStore) *Engine {
	if catalog == nil || store == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{
		catalog: catalog,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// Admit validates the request, resolves the table and commits a new
// reservation if and only if no existing reservation for the same
// table and date overlaps the requested interval. For concurrent
// requests with mutually overlapping intervals on one table and date,
// exactly one succeeds; the rest receive ErrSlotConflict. Requests
// for different tables or dates never contend with each other.
//
// Validation failures return before any storage access.
func (e *Engine) Admit(ctx context.Context, req Request) (model.Reservation, error) {
	if err := validate(req); err != nil {
		return model.Reservation{}, err
	}

	table, err := e.catalog.ResolveByNumber(ctx, req.TableNumber)
	if err != nil {
		return model.Reservation{}, err
	}

	slot := model.TimeSlot{Date: req.Date, Start: req.Start, End: req.End}
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		existing, err := e.store.FindOverlapping(ctx, table.ID, slot)
		if err != nil {
			return model.Reservation{}, err
		}
		if len(existing) > 0 {
			return model.Reservation{}, ErrSlotConflict
		}

		res := model.Reservation{
			ID:            e.newID(),
			TableID:       table.ID,
			TableNumber:   table.Number,
			Slot:          slot,
			CustomerName:  req.CustomerName,
			ContactNumber: req.ContactNumber,
			Requester:     req.Requester,
			CreatedAt:     e.now(),
		}
		err = e.store.Commit(ctx, res)
		switch {
		case err == nil:
			return res, nil
		case errors.Is(err, ErrSlotConflict):
			// The precondition failed at write time: a concurrent
			// winner committed an interval that overlaps ours.
			return model.Reservation{}, ErrSlotConflict
		case errors.Is(err, ErrCommitContention):
			// A disjoint insert on the same key raced us. Redo the
			// cycle fresh; the re-read decides the outcome.
			continue
		default:
			return model.Reservation{}, err
		}
	}
	// Retry budget exhausted without ruling the overlap out.
	return model.Reservation{}, ErrSlotConflict
}

// validate enforces presence and shape of the request fields. Times
// must be zero-padded HH:MM tokens so that lexical order equals
// chronological order, and the slot must be non-empty.
func validate(req Request) error {
	if req.TableNumber < 1 {
		return fmt.Errorf("%w: tableNumber must be a positive integer", ErrValidation)
	}
	if req.Date == "" || req.Start == "" || req.End == "" {
		return fmt.Errorf("%w: date, start and end are required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return fmt.Errorf("%w: date must use the format %s", ErrValidation, dateLayout)
	}
	if _, err := time.Parse(timeLayout, req.Start); err != nil {
		return fmt.Errorf("%w: start must use the format %s", ErrValidation, timeLayout)
	}
	if _, err := time.Parse(timeLayout, req.End); err != nil {
		return fmt.Errorf("%w: end must use the format %s", ErrValidation, timeLayout)
	}
	if req.Start >= req.End {
		return fmt.Errorf("%w: start must be before end", ErrValidation)
	}
	return nil
}
