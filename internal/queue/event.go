// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published after a reservation commit
// succeeds. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	TableID       string `json:"table_id"`
	TableNumber   int    `json:"table_number"`
	CustomerName  string `json:"customer_name"`
	Requester     string `json:"requester"`
	Date          string `json:"date"`
	SlotTimeStart string `json:"slot_time_start"`
	SlotTimeEnd   string `json:"slot_time_end"`
	CreatedAt     string `json:"created_at"`
}
