package model

// Table represents a physical restaurant table as stored in the
// `tables` table. The ID is an opaque UUID string assigned at
// registration; Number is the human-facing table number printed on
// the menu card and used by customers when booking.
//
// Fields:
//  ID       – opaque unique identifier (tables.id).
//  Number   – human-facing table number, unique under correct registration.
//  Capacity – how many guests the table seats.
//  IsVip    – whether this is a VIP table.
//  MinOrder – minimum order amount required to book the table.
type Table struct {
	ID       string  `json:"id"`       // tables.id
	Number   int     `json:"number"`   // tables.number
	Capacity int     `json:"places"`   // tables.capacity
	IsVip    bool    `json:"isVip"`    // tables.is_vip
	MinOrder float64 `json:"minOrder"` // tables.min_order
}
