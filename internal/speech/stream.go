package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neurofolio/neurofolio/internal/model/options"
)

// StreamRecognizer talks to a speech-to-text websocket endpoint. The
// endpoint captures audio on its side; this client only drives the session
// and consumes result frames.
type StreamRecognizer struct {
	endpoint string
	apiKey   string
	language options.Language
	dialer   *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	active   bool
	stopping bool

	events chan Event
}

// serverFrame is one JSON message from the recognition endpoint.
type serverFrame struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Final   bool   `json:"final,omitempty"`
	Message string `json:"message,omitempty"`
}

type startFrame struct {
	Type     string `json:"type"`
	Language string `json:"language"`
}

// NewStreamRecognizer builds a recognizer for the given websocket endpoint.
// An empty endpoint yields a recognizer whose Start always reports
// ErrUnavailable, mirroring a browser without the capability.
func NewStreamRecognizer(endpoint, apiKey string, language options.Language) *StreamRecognizer {
	return &StreamRecognizer{
		endpoint: endpoint,
		apiKey:   apiKey,
		language: language,
		dialer:   &websocket.Dialer{HandshakeTimeout: 30 * time.Second},
		events:   make(chan Event, 8),
	}
}

// SetLanguage selects the recognition language for subsequent sessions.
func (r *StreamRecognizer) SetLanguage(language options.Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.language = language
}

// Events delivers recognizer notifications in order.
func (r *StreamRecognizer) Events() <-chan Event {
	return r.events
}

// Start dials the endpoint and begins one recognition session.
func (r *StreamRecognizer) Start(ctx context.Context) error {
	if r.endpoint == "" {
		return ErrUnavailable
	}

	r.mu.Lock()
	if r.active {
		// The session already listens; nothing to do.
		r.mu.Unlock()
		return nil
	}
	r.active = true
	language := r.language
	r.mu.Unlock()

	header := http.Header{}
	if r.apiKey != "" {
		header.Set("Authorization", "Bearer "+r.apiKey)
	}

	conn, _, err := r.dialer.DialContext(ctx, r.endpoint, header)
	if err != nil {
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := conn.WriteJSON(startFrame{Type: "start", Language: string(language)}); err != nil {
		conn.Close()
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
		return fmt.Errorf("failed to open recognition session: %w", err)
	}

	r.mu.Lock()
	r.conn = conn
	r.mu.Unlock()

	go r.readLoop(conn)
	return nil
}

// Stop ends the active session. The read loop still emits EventEnded.
func (r *StreamRecognizer) Stop() {
	r.mu.Lock()
	conn := r.conn
	if conn != nil {
		r.stopping = true
	}
	r.mu.Unlock()

	if conn == nil {
		return
	}
	// Best effort: ask the endpoint to finish, then close. The read loop
	// unwinds on the closed connection.
	_ = conn.WriteJSON(serverFrame{Type: "stop"})
	_ = conn.Close()
}

func (r *StreamRecognizer) readLoop(conn *websocket.Conn) {
	defer r.finish(conn)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			// A locally stopped session surfaces as a read error too; the
			// ended event is enough in that case.
			if r.wasStopped() {
				return
			}
			r.events <- Event{Kind: EventError, Err: fmt.Errorf("recognition stream failed: %w", err)}
			return
		}

		var frame serverFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			r.events <- Event{Kind: EventError, Err: fmt.Errorf("bad recognition frame: %w", err)}
			return
		}

		switch frame.Type {
		case "partial":
			// Interim results are ignored; the adapter reports one final
			// utterance per session.
		case "transcript":
			if frame.Final {
				r.events <- Event{Kind: EventUtterance, Text: frame.Text}
				return
			}
		case "error":
			r.events <- Event{Kind: EventError, Err: fmt.Errorf("recognition failed: %s", frame.Message)}
			return
		default:
			log.Printf("[speech] ignoring unknown frame type %q", frame.Type)
		}
	}
}

func (r *StreamRecognizer) wasStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopping
}

func (r *StreamRecognizer) finish(conn *websocket.Conn) {
	conn.Close()

	r.mu.Lock()
	if r.conn == conn {
		r.conn = nil
	}
	r.active = false
	r.stopping = false
	r.mu.Unlock()

	r.events <- Event{Kind: EventEnded}
}
