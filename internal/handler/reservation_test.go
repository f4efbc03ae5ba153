package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/booking"
	"github.com/iliyamo/table-reservation/internal/model"
)

// stubCatalog satisfies both the engine's catalog contract and the
// table endpoints' catalog slice.
type stubCatalog struct {
	mu     sync.Mutex
	byID   map[string]model.Table
	byNum  map[int]model.Table
	nextID int
}

func newStubCatalog(tables ...model.Table) *stubCatalog {
	c := &stubCatalog{byID: map[string]model.Table{}, byNum: map[int]model.Table{}}
	for _, t := range tables {
		c.byID[t.ID] = t
		c.byNum[t.Number] = t
	}
	return c
}

func (c *stubCatalog) ResolveByNumber(ctx context.Context, number int) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.byNum[number]
	if !ok {
		return model.Table{}, booking.ErrUnknownTable
	}
	return t, nil
}

func (c *stubCatalog) Register(ctx context.Context, t model.Table) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Number < 1 || t.Capacity < 1 {
		return model.Table{}, booking.ErrValidation
	}
	if t.ID == "" {
		c.nextID++
		t.ID = fmt.Sprintf("table-%d", c.nextID)
	}
	c.byID[t.ID] = t
	c.byNum[t.Number] = t
	return t, nil
}

func (c *stubCatalog) GetByID(ctx context.Context, id string) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.byID[id]
	if !ok {
		return model.Table{}, booking.ErrUnknownTable
	}
	return t, nil
}

func (c *stubCatalog) ListAll(ctx context.Context) ([]model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Table, 0, len(c.byID))
	for _, t := range c.byID {
		out = append(out, t)
	}
	return out, nil
}

// stubStore mirrors the MySQL store's conditional commit in memory.
type stubStore struct {
	mu           sync.Mutex
	reservations []model.Reservation
}

func (s *stubStore) FindOverlapping(ctx context.Context, tableID string, slot model.TimeSlot) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Slot.Overlaps(slot) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) Commit(ctx context.Context, res model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.TableID == res.TableID && r.Slot.Overlaps(res.Slot) {
			return booking.ErrSlotConflict
		}
	}
	s.reservations = append(s.reservations, res)
	return nil
}

func (s *stubStore) ListAll(ctx context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reservation(nil), s.reservations...), nil
}

func (s *stubStore) ListByTable(ctx context.Context, tableID string) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID == tableID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) ListByRequester(ctx context.Context, requester string) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.Requester == requester {
			out = append(out, r)
		}
	}
	return out, nil
}

func newReservationHandler(t *testing.T) (*ReservationHandler, *stubStore) {
	t.Helper()
	cat := newStubCatalog(model.Table{ID: "t1", Number: 5, Capacity: 4})
	store := &stubStore{}
	svc := booking.NewService(booking.NewEngine(cat, store), store)
	return NewReservationHandler(svc, false), store
}

func doCreate(h *ReservationHandler, body, email string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set("email", email)
	}
	_ = h.Create(c)
	return rec
}

const validBody = `{"tableNumber":5,"date":"2024-06-01","slotTimeStart":"18:00","slotTimeEnd":"19:00","clientName":"Ann","phoneNumber":"+100"}`

func TestReservationCreate_Success(t *testing.T) {
	h, store := newReservationHandler(t)

	rec := doCreate(h, validBody, "ann@example.com")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReservationID string `json:"reservationId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ReservationID == "" {
		t.Fatalf("missing reservationId in %s", rec.Body.String())
	}
	if len(store.reservations) != 1 || store.reservations[0].Requester != "ann@example.com" {
		t.Fatalf("stored reservations: %+v", store.reservations)
	}
}

func TestReservationCreate_Conflict(t *testing.T) {
	h, _ := newReservationHandler(t)

	if rec := doCreate(h, validBody, "ann@example.com"); rec.Code != http.StatusCreated {
		t.Fatalf("seed status = %d", rec.Code)
	}
	overlapping := `{"tableNumber":5,"date":"2024-06-01","slotTimeStart":"18:30","slotTimeEnd":"19:30","clientName":"Bob","phoneNumber":"+200"}`
	rec := doCreate(h, overlapping, "bob@example.com")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestReservationCreate_ValidationError(t *testing.T) {
	h, _ := newReservationHandler(t)

	bad := `{"tableNumber":5,"date":"2024-06-01","slotTimeStart":"19:00","slotTimeEnd":"18:00","clientName":"Ann","phoneNumber":"+100"}`
	rec := doCreate(h, bad, "ann@example.com")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestReservationCreate_UnknownTable(t *testing.T) {
	h, _ := newReservationHandler(t)

	body := `{"tableNumber":42,"date":"2024-06-01","slotTimeStart":"18:00","slotTimeEnd":"19:00","clientName":"Ann","phoneNumber":"+100"}`
	rec := doCreate(h, body, "ann@example.com")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "does not exist") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestReservationCreate_Unauthenticated(t *testing.T) {
	h, _ := newReservationHandler(t)

	rec := doCreate(h, validBody, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestReservationList_FiltersByUser(t *testing.T) {
	h, _ := newReservationHandler(t)

	if rec := doCreate(h, validBody, "ann@example.com"); rec.Code != http.StatusCreated {
		t.Fatalf("seed ann: %d", rec.Code)
	}
	later := `{"tableNumber":5,"date":"2024-06-01","slotTimeStart":"19:00","slotTimeEnd":"20:00","clientName":"Bob","phoneNumber":"+200"}`
	if rec := doCreate(h, later, "bob@example.com"); rec.Code != http.StatusCreated {
		t.Fatalf("seed bob: %d", rec.Code)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reservations?user=bob@example.com", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Reservations []struct {
			TableNumber   int    `json:"tableNumber"`
			ClientName    string `json:"clientName"`
			Date          string `json:"date"`
			SlotTimeStart string `json:"slotTimeStart"`
			SlotTimeEnd   string `json:"slotTimeEnd"`
		} `json:"reservations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(resp.Reservations))
	}
	got := resp.Reservations[0]
	if got.ClientName != "Bob" || got.SlotTimeStart != "19:00" || got.SlotTimeEnd != "20:00" {
		t.Fatalf("unexpected view: %+v", got)
	}
}
