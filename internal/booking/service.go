package booking

import (
	"context"

	"github.com/iliyamo/table-reservation/internal/model"
)

// ListFilter narrows a reservation listing. Zero values mean no
// filtering on that dimension. When both are set, Requester wins;
// the read paths are simple finite snapshots either way.
type ListFilter struct {
	Requester string
	TableID   string
}

// Service implements the booking use cases consumed by the HTTP
// layer. It sequences catalog lookup and admission and passes
// engine outcomes through untranslated; no business rules live here.
type Service struct {
	engine *Engine
	store  ReservationStore
}

// NewService wires a booking service over the admission engine and
// the reservation read paths.
func NewService(engine *Engine, store ReservationStore) *Service {
	if engine == nil || store == nil {
		panic("nil dependency passed to NewService")
	}
	return &Service{engine: engine, store: store}
}

// CreateReservation admits the request. The requester identity must
// already be resolved; an empty identity is rejected without
// touching storage.
func (s *Service) CreateReservation(ctx context.Context, req Request) (model.Reservation, error) {
	if req.Requester == "" {
		return model.Reservation{}, ErrUnauthenticated
	}
	return s.engine.Admit(ctx, req)
}

// ListReservations returns the reservations matching the filter.
// Calling it twice with no intervening writes yields identical
// results.
func (s *Service) ListReservations(ctx context.Context, f ListFilter) ([]model.Reservation, error) {
	switch {
	case f.Requester != "":
		return s.store.ListByRequester(ctx, f.Requester)
	case f.TableID != "":
		return s.store.ListByTable(ctx, f.TableID)
	default:
		return s.store.ListAll(ctx)
	}
}
