package domain

// Reservation represents a booking request for a party at the restaurant.
// Field tags follow the backend wire contract.
type Reservation struct {
	ID              int    `json:"id,omitempty"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          Status `json:"status,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// Editable reports whether the reservation may still be modified by the
// dashboard. Only booked reservations are open for edits.
func (r Reservation) Editable() bool {
	return r.Status == StatusBooked || r.Status == StatusUnknown
}
