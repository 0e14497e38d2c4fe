package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"periodictables/internal/modules/realtime/domain"
)

const (
	readLimit  = 1 << 16
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// StreamClient subscribes to the backend's update stream and forwards
// decoded events to the hub. It holds a single connection; reconnecting
// after Run returns is the caller's decision.
type StreamClient struct {
	url    string
	dialer *websocket.Dialer
	hub    *Hub
	logger *slog.Logger
}

func NewStreamClient(url string, hub *Hub, logger *slog.Logger) *StreamClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamClient{
		url:    strings.TrimSpace(url),
		dialer: websocket.DefaultDialer,
		hub:    hub,
		logger: logger,
	}
}

// Run dials the stream and pumps events until the context is cancelled or
// the connection drops.
func (s *StreamClient) Run(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("stream url not configured")
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.logger.Error("stream dial failed", slog.String("url", s.url), slog.Any("error", err))
		return fmt.Errorf("dial update stream: %w", err)
	}
	defer conn.Close()

	s.logger.Info("stream connected", slog.String("url", s.url))

	// Close the connection when the context ends so the read loop unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			_ = conn.Close()
		case <-done:
		}
	}()

	go s.pingLoop(ctx, conn)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("stream closed", slog.String("url", s.url))
				return nil
			}
			s.logger.Error("stream read failed", slog.String("url", s.url), slog.Any("error", err))
			return fmt.Errorf("read update stream: %w", err)
		}

		event, ok := domain.DecodeEvent(raw)
		if !ok {
			s.logger.Debug("stream frame dropped", slog.Int("bytes", len(raw)))
			continue
		}
		s.logger.Debug("stream event", slog.String("entity", string(event.Entity)), slog.String("action", string(event.Action)))
		s.hub.Broadcast(event)
	}
}

func (s *StreamClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
