package model

import "time"

// TimeSlot is a half-open occupancy window [Start, End) on a single
// calendar date. Date uses the layout 2006-01-02 and the time tokens
// use 15:04. Because both tokens are zero padded, lexical comparison
// matches chronological comparison and slots never span midnight.
type TimeSlot struct {
	Date  string `json:"date"`          // reservations.booking_date
	Start string `json:"slotTimeStart"` // reservations.start_time
	End   string `json:"slotTimeEnd"`   // reservations.end_time
}

// Overlaps reports whether two slots share any instant. Both
// intervals are half-open, so back-to-back slots such as
// [18:00,19:00) and [19:00,20:00) do not overlap. Slots on different
// dates never overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	if s.Date != o.Date {
		return false
	}
	return s.Start < o.End && o.Start < s.End
}

// Reservation records a committed booking of one table for one time
// slot. A reservation is created exactly once by a successful
// admission commit and is never mutated afterwards. TableID is a
// non-owning reference into the tables table.
//
// Fields:
//  ID            – opaque unique identifier (reservations.id).
//  TableID       – table being reserved (reservations.table_id).
//  TableNumber   – denormalized human-facing table number.
//  Slot          – date plus start/end time window.
//  CustomerName  – name given by the booking customer.
//  ContactNumber – phone number for the booking.
//  Requester     – identity of the authenticated caller who booked.
//  CreatedAt     – UTC commit timestamp.
type Reservation struct {
	ID            string    `json:"id"`
	TableID       string    `json:"tableId"`
	TableNumber   int       `json:"tableNumber"`
	Slot          TimeSlot  `json:"slot"`
	CustomerName  string    `json:"clientName"`
	ContactNumber string    `json:"phoneNumber"`
	Requester     string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}
