package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	reservations "periodictables/internal/modules/reservations/domain"
	reservationsinfra "periodictables/internal/modules/reservations/infrastructure"
	tables "periodictables/internal/modules/tables/domain"
	"periodictables/internal/shared/httputil"
)

// ReservationService is the slice of the reservations catalog the gateway
// handlers consume.
type ReservationService interface {
	List(ctx context.Context, filter reservationsinfra.Filter) ([]reservations.Reservation, error)
	Get(ctx context.Context, id int) (reservations.Reservation, error)
	Create(ctx context.Context, reservation reservations.Reservation) (reservations.Reservation, error)
	Update(ctx context.Context, reservation reservations.Reservation) (reservations.Reservation, error)
	UpdateStatus(ctx context.Context, id int, status reservations.Status) (reservations.Reservation, error)
}

// TableService is the slice of the tables catalog the gateway handlers consume.
type TableService interface {
	List(ctx context.Context) ([]tables.Table, error)
	Create(ctx context.Context, table tables.Table) (tables.Table, error)
	Seat(ctx context.Context, tableID, reservationID int) (tables.Table, error)
	Finish(ctx context.Context, tableID int) error
}

// Handler exposes the dashboard HTTP surface. Responses reuse the backend's
// {data}/{error} envelope so the UI handles both hops uniformly.
type Handler struct {
	reservations ReservationService
	tables       TableService
	mapper       *httputil.ErrorMapper
}

func NewHandler(reservationSvc ReservationService, tableSvc TableService) *Handler {
	return &Handler{
		reservations: reservationSvc,
		tables:       tableSvc,
		mapper:       httputil.NewErrorMapper(),
	}
}

// Register wires the dashboard routes onto the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/dashboard/reservations", h.listReservations)
	e.POST("/dashboard/reservations", h.createReservation)
	e.GET("/dashboard/reservations/:id", h.getReservation)
	e.PUT("/dashboard/reservations/:id", h.updateReservation)
	e.PUT("/dashboard/reservations/:id/status", h.updateReservationStatus)
	e.GET("/dashboard/tables", h.listTables)
	e.POST("/dashboard/tables", h.createTable)
	e.PUT("/dashboard/tables/:id/seat", h.seatTable)
	e.DELETE("/dashboard/tables/:id/seat", h.finishTable)
}

type reservationEnvelope struct {
	Data reservations.Reservation `json:"data"`
}

type tableEnvelope struct {
	Data tables.Table `json:"data"`
}

type statusEnvelope struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

type seatEnvelope struct {
	Data struct {
		ReservationID int `json:"reservation_id"`
	} `json:"data"`
}

func (h *Handler) listReservations(c echo.Context) error {
	filter := reservationsinfra.Filter{
		Date:         c.QueryParam("date"),
		MobileNumber: c.QueryParam("mobile_number"),
	}
	result, err := h.reservations.List(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) getReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid reservation id")
	}
	result, err := h.reservations.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) createReservation(c echo.Context) error {
	var body reservationEnvelope
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed reservation payload")
	}
	result, err := h.reservations.Create(c.Request().Context(), body.Data)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, result)
}

func (h *Handler) updateReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid reservation id")
	}
	var body reservationEnvelope
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed reservation payload")
	}
	body.Data.ID = id
	result, err := h.reservations.Update(c.Request().Context(), body.Data)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) updateReservationStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid reservation id")
	}
	var body statusEnvelope
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed status payload")
	}
	status := reservations.NormalizeStatus(body.Data.Status)
	if !status.Known() {
		return respondError(c, http.StatusBadRequest, "unknown status: "+strings.TrimSpace(body.Data.Status))
	}
	result, err := h.reservations.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) listTables(c echo.Context) error {
	result, err := h.tables.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) createTable(c echo.Context) error {
	var body tableEnvelope
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed table payload")
	}
	result, err := h.tables.Create(c.Request().Context(), body.Data)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusCreated, result)
}

func (h *Handler) seatTable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid table id")
	}
	var body seatEnvelope
	if err := c.Bind(&body); err != nil || body.Data.ReservationID == 0 {
		return respondError(c, http.StatusBadRequest, "malformed seat payload")
	}
	result, err := h.tables.Seat(c.Request().Context(), id, body.Data.ReservationID)
	if err != nil {
		return h.fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) finishTable(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid table id")
	}
	if err := h.tables.Finish(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) fail(c echo.Context, err error) error {
	info := h.mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("gateway request failed", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	} else {
		slog.Debug("gateway request rejected", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.String("message", info.Message))
	}
	return respondError(c, info.Status, info.Message)
}

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(strings.TrimSpace(c.Param("id")))
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"data": data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
