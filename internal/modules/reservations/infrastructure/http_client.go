package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"periodictables/internal/modules/reservations/domain"
	"periodictables/internal/platform/rest"
	"periodictables/internal/shared/normalization"
)

// Filter narrows a reservation listing. Zero-valued fields are omitted from
// the query string; each set field is appended exactly once.
type Filter struct {
	// Date is an ISO calendar date (YYYY-MM-DD).
	Date string
	// MobileNumber is a full or partial phone number for search.
	MobileNumber string
}

func (f Filter) values() url.Values {
	values := url.Values{}
	if date := strings.TrimSpace(f.Date); date != "" {
		values.Set("date", date)
	}
	if mobile := strings.TrimSpace(f.MobileNumber); mobile != "" {
		values.Set("mobile_number", mobile)
	}
	return values
}

// Client is the reservations operation catalog. Every method performs
// exactly one backend call through the shared REST client.
type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List fetches reservations matching the filter. On success the result runs
// through the date and time formatting pipeline; a failed request bypasses
// the formatters entirely.
func (c *Client) List(ctx context.Context, filter Filter) ([]domain.Reservation, error) {
	reservations, err := rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/reservations",
		Query:  filter.values(),
	}, []domain.Reservation{})
	if err != nil {
		return nil, err
	}

	for i := range reservations {
		reservations[i].ReservationDate = normalization.FormatDate(reservations[i].ReservationDate)
	}
	for i := range reservations {
		reservations[i].ReservationTime = normalization.FormatTime(reservations[i].ReservationTime)
	}
	return reservations, nil
}

// Get fetches a single reservation by id.
func (c *Client) Get(ctx context.Context, id int) (domain.Reservation, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/reservations/%d", id),
	}, domain.Reservation{})
}

// Create books a new reservation. The backend assigns the id and defaults
// the status to booked.
func (c *Client) Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodPost,
		Path:   "/reservations",
		Body:   reservation,
	}, domain.Reservation{})
}

// Update replaces the reservation identified by reservation.ID with the
// supplied entity.
func (c *Client) Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/reservations/%d", reservation.ID),
		Body:   reservation,
	}, domain.Reservation{})
}

type statusUpdate struct {
	Status domain.Status `json:"status"`
}

// UpdateStatus transitions the reservation between the lifecycle statuses.
func (c *Client) UpdateStatus(ctx context.Context, id int, status domain.Status) (domain.Reservation, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/reservations/%d/status", id),
		Body:   statusUpdate{Status: status},
	}, domain.Reservation{})
}
