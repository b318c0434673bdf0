package speech_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neurofolio/neurofolio/internal/model/options"
	"github.com/neurofolio/neurofolio/internal/speech"
)

var upgrader = websocket.Upgrader{}

func newRecognitionServer(t *testing.T, script func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade err: %v", err)
			return
		}
		defer conn.Close()

		var start map[string]any
		if err := conn.ReadJSON(&start); err != nil {
			t.Errorf("read start frame err: %v", err)
			return
		}
		if start["type"] != "start" {
			t.Errorf("expected start frame, got %v", start)
			return
		}
		script(conn)
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func collectEvents(t *testing.T, r speech.Recognizer, n int) []speech.Event {
	t.Helper()
	events := make([]speech.Event, 0, n)
	for len(events) < n {
		select {
		case ev := <-r.Events():
			events = append(events, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d, got %v", len(events), events)
		}
	}
	return events
}

func TestStreamRecognizerDeliversFinalUtterance(t *testing.T) {
	srv := newRecognitionServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(map[string]any{"type": "partial", "text": "hel"})
		conn.WriteJSON(map[string]any{"type": "transcript", "text": "hello world", "final": true})
	})
	defer srv.Close()

	r := speech.NewStreamRecognizer(wsURL(srv), "", options.LangEnglish)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start err: %v", err)
	}

	events := collectEvents(t, r, 2)
	if events[0].Kind != speech.EventUtterance || events[0].Text != "hello world" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Kind != speech.EventEnded {
		t.Fatalf("expected ended event, got %+v", events[1])
	}
}

func TestStreamRecognizerReportsFailure(t *testing.T) {
	srv := newRecognitionServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(map[string]any{"type": "error", "message": "no speech detected"})
	})
	defer srv.Close()

	r := speech.NewStreamRecognizer(wsURL(srv), "", options.LangEnglish)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start err: %v", err)
	}

	events := collectEvents(t, r, 2)
	if events[0].Kind != speech.EventError || events[0].Err == nil {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Kind != speech.EventEnded {
		t.Fatalf("expected ended event, got %+v", events[1])
	}
}

func TestStreamRecognizerStopEmitsEnded(t *testing.T) {
	release := make(chan struct{})
	srv := newRecognitionServer(t, func(conn *websocket.Conn) {
		<-release
	})
	defer srv.Close()
	defer close(release)

	r := speech.NewStreamRecognizer(wsURL(srv), "", options.LangEnglish)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start err: %v", err)
	}

	r.Stop()

	events := collectEvents(t, r, 1)
	if events[0].Kind != speech.EventEnded {
		t.Fatalf("expected ended event, got %+v", events[0])
	}
}

func TestStreamRecognizerStartWhileActiveIsNoop(t *testing.T) {
	dials := make(chan struct{}, 4)
	release := make(chan struct{})
	srv := newRecognitionServer(t, func(conn *websocket.Conn) {
		dials <- struct{}{}
		<-release
	})
	defer srv.Close()
	defer close(release)

	r := speech.NewStreamRecognizer(wsURL(srv), "", options.LangEnglish)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start err: %v", err)
	}
	defer r.Stop()
	<-dials

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("second Start should be a no-op, got %v", err)
	}

	select {
	case <-dials:
		t.Fatal("second Start opened a new session")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStreamRecognizerUnavailableWithoutEndpoint(t *testing.T) {
	r := speech.NewStreamRecognizer("", "", options.LangEnglish)
	if err := r.Start(context.Background()); !errors.Is(err, speech.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
