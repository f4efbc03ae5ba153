package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/booking"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/table-reservation/internal/service"
)

// ReservationHandler serves the reservation endpoints. All decisions
// about admission live in the booking service and engine; this layer
// only binds requests, resolves the caller identity from the context
// the JWT middleware populated, and maps outcomes to HTTP statuses.
type ReservationHandler struct {
	Bookings *booking.Service
	// PublishEvents enables best-effort reservation.created events.
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *booking.Service, publishEvents bool) *ReservationHandler {
	if svc == nil {
		panic("nil booking service passed to NewReservationHandler")
	}
	return &ReservationHandler{Bookings: svc, PublishEvents: publishEvents}
}

type reservationReq struct {
	TableNumber   int    `json:"tableNumber"`
	Date          string `json:"date"`
	SlotTimeStart string `json:"slotTimeStart"`
	SlotTimeEnd   string `json:"slotTimeEnd"`
	ClientName    string `json:"clientName"`
	PhoneNumber   string `json:"phoneNumber"`
}

// reservationView mirrors the wire shape of a reservation in list
// responses: flat fields rather than the nested slot struct.
type reservationView struct {
	ID            string `json:"id"`
	TableNumber   int    `json:"tableNumber"`
	ClientName    string `json:"clientName"`
	PhoneNumber   string `json:"phoneNumber"`
	Date          string `json:"date"`
	SlotTimeStart string `json:"slotTimeStart"`
	SlotTimeEnd   string `json:"slotTimeEnd"`
}

// requesterIdentity pulls the identity string the JWT middleware
// stored in the context. Empty means unauthenticated.
func requesterIdentity(c echo.Context) string {
	if v, ok := c.Get("email").(string); ok {
		return v
	}
	return ""
}

// Create handles POST /reservations. It delegates admission to the
// booking service and answers 201 with the reservation id on
// success, 400 on validation failure or unknown table, 409 when the
// slot conflicts with an existing reservation.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Bookings.CreateReservation(ctx, booking.Request{
		TableNumber:   req.TableNumber,
		Date:          req.Date,
		Start:         req.SlotTimeStart,
		End:           req.SlotTimeEnd,
		CustomerName:  req.ClientName,
		ContactNumber: req.PhoneNumber,
		Requester:     requesterIdentity(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		case errors.Is(err, booking.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrUnknownTable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "specified table does not exist"})
		case errors.Is(err, booking.ErrSlotConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table is already booked for the selected time slot"})
		case errors.Is(err, booking.ErrStorageUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
		}
	}

	if h.PublishEvents {
		ev := queue.ReservationCreatedEvent{
			ReservationID: res.ID,
			TableID:       res.TableID,
			TableNumber:   res.TableNumber,
			CustomerName:  res.CustomerName,
			Requester:     res.Requester,
			Date:          res.Slot.Date,
			SlotTimeStart: res.Slot.Start,
			SlotTimeEnd:   res.Slot.End,
			CreatedAt:     res.CreatedAt.Format(time.RFC3339),
		}
		if err := queue_publisher.PublishReservationCreated(ctx, ev); err != nil {
			log.Printf("reservation %s created but event publish failed: %v", res.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"reservationId": res.ID})
}

// List handles GET /reservations. The optional ?user= query filters
// to reservations created by that identity.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.Bookings.ListReservations(ctx, booking.ListFilter{
		Requester: c.QueryParam("user"),
	})
	if err != nil {
		if errors.Is(err, booking.ErrStorageUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}

	views := make([]reservationView, 0, len(list))
	for _, res := range list {
		views = append(views, toView(res))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": views})
}

func toView(res model.Reservation) reservationView {
	return reservationView{
		ID:            res.ID,
		TableNumber:   res.TableNumber,
		ClientName:    res.CustomerName,
		PhoneNumber:   res.ContactNumber,
		Date:          res.Slot.Date,
		SlotTimeStart: res.Slot.Start,
		SlotTimeEnd:   res.Slot.End,
	}
}
