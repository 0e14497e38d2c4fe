package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"periodictables/internal/modules/tables/domain"
	"periodictables/internal/platform/rest"
)

// Client is the tables operation catalog.
type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List fetches every table, unfiltered.
func (c *Client) List(ctx context.Context) ([]domain.Table, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodGet,
		Path:   "/tables",
	}, []domain.Table{})
}

// Create registers a new table.
func (c *Client) Create(ctx context.Context, table domain.Table) (domain.Table, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodPost,
		Path:   "/tables",
		Body:   table,
	}, domain.Table{})
}

type seatRequest struct {
	ReservationID int `json:"reservation_id"`
}

// Seat assigns the reservation to the table, marking it occupied. The
// backend transitions the reservation to seated as a side effect.
func (c *Client) Seat(ctx context.Context, tableID, reservationID int) (domain.Table, error) {
	return rest.Fetch(ctx, c.rest, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/tables/%d/seat", tableID),
		Body:   seatRequest{ReservationID: reservationID},
	}, domain.Table{})
}

// Finish clears the table's occupancy. The backend finishes the associated
// reservation and replies 204, so there is no payload to return.
func (c *Client) Finish(ctx context.Context, tableID int) error {
	_, err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/tables/%d/seat", tableID),
	})
	if errors.Is(err, rest.ErrCancelled) {
		return nil
	}
	return err
}
