package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"periodictables/internal/modules/realtime/domain"
	"periodictables/internal/modules/realtime/infrastructure"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewUpdatesWebsocketHandler bridges the hub to dashboard browsers: each
// connection gets its own hub subscription and a write pump that relays
// events as JSON frames.
func NewUpdatesWebsocketHandler(hub *infrastructure.Hub) func(echo.Context) error {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Warn("ws upgrade failed", slog.String("ip", c.RealIP()), slog.Any("error", err))
			return nil
		}

		events, cancel := hub.Subscribe()
		slog.Info("dashboard subscriber connected", slog.String("ip", c.RealIP()))

		// Read loop only services control frames and detects close.
		go func() {
			defer cancel()
			conn.SetReadLimit(1 << 10)
			_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(wsPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go writePump(conn, events, cancel, c.RealIP())
		return nil
	}
}

func writePump(conn *websocket.Conn, events <-chan domain.Event, cancel func(), peer string) {
	ping := time.NewTicker(wsPingPeriod)
	defer func() {
		ping.Stop()
		cancel()
		_ = conn.Close()
		slog.Info("dashboard subscriber disconnected", slog.String("ip", peer))
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
