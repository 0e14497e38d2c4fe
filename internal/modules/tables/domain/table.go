package domain

// Table represents a seating resource in the dining room. ReservationID is
// nil while the table is free.
type Table struct {
	ID            int    `json:"id,omitempty"`
	TableName     string `json:"table_name"`
	Capacity      int    `json:"capacity"`
	ReservationID *int   `json:"reservation_id,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Occupied reports whether a reservation is currently seated at the table.
func (t Table) Occupied() bool {
	return t.ReservationID != nil
}

// Fits reports whether a party of the given size can be seated here.
func (t Table) Fits(people int) bool {
	return people > 0 && people <= t.Capacity
}
