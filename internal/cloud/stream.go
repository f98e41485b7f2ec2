package cloud

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

// EventHandler receives parsed stream events.
//
// Handlers are invoked from the stream's read goroutine and should not block
// for extended periods.
type EventHandler func(Event)

// StreamClient pushes appliance state change events.
type StreamClient interface {
	// Subscribe connects to the stream and subscribes to the given
	// appliances. Any previous subscription is torn down first, so a
	// renewal never leaves two readers on the wire.
	Subscribe(ctx context.Context, applianceIDs []string, handler EventHandler) error

	// Disconnect tears down the current subscription, waiting for the
	// reader to exit until ctx expires.
	Disconnect(ctx context.Context) error

	// Close releases all resources.
	Close() error
}

// WebSocketStream implements StreamClient over a websocket connection.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type WebSocketStream struct {
	url   string
	token string

	mu     sync.Mutex
	conn   *websocket.Conn
	done   chan struct{}
	logger Logger
}

// NewWebSocketStream creates a stream client for the vendor websocket
// endpoint. The access token is sent during the handshake.
func NewWebSocketStream(url, token string) *WebSocketStream {
	return &WebSocketStream{
		url:    url,
		token:  token,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the stream.
func (s *WebSocketStream) SetLogger(logger Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// Subscribe connects and subscribes to state events for the given appliances.
func (s *WebSocketStream) Subscribe(ctx context.Context, applianceIDs []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.token)

	conn, _, err := dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return fmt.Errorf("dialing stream: %w", err)
	}

	frame := map[string]any{
		"action":       "subscribe",
		"applianceIds": applianceIDs,
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		conn.Close()
		return fmt.Errorf("subscribing: %w", err)
	}
	conn.SetWriteDeadline(time.Time{})

	s.conn = conn
	s.done = make(chan struct{})
	go s.readLoop(conn, s.done, handler)

	s.logger.Debug("stream subscribed", "appliance_count", len(applianceIDs))
	return nil
}

// Disconnect tears down the current subscription.
func (s *WebSocketStream) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.teardownLocked()
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for stream reader: %w", ctx.Err())
	}
}

// Close releases all resources.
func (s *WebSocketStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	return nil
}

// teardownLocked closes the active connection. The read goroutine exits on
// the resulting read error and closes its done channel.
func (s *WebSocketStream) teardownLocked() {
	if s.conn == nil {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.conn.Close()
	s.conn = nil
}

func (s *WebSocketStream) readLoop(conn *websocket.Conn, done chan struct{}, handler EventHandler) {
	defer close(done)

	for {
		var payload map[string]any
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}
			s.logger.Warn("stream read ended", "error", err)
			return
		}

		event, err := ParseEvent(payload)
		if err != nil {
			s.logger.Warn("dropping malformed stream payload", "error", err)
			continue
		}
		s.dispatch(handler, event)
	}
}

// dispatch invokes the handler with panic recovery so one bad payload cannot
// kill the read loop.
func (s *WebSocketStream) dispatch(handler EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in stream handler",
				"appliance_id", event.ApplianceID, "panic", r)
		}
	}()
	handler(event)
}
