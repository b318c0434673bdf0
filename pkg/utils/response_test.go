package utils_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/neurofolio/neurofolio/pkg/utils"
)

func TestRespondJSONSetsStatusAndBody(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.RespondJSON(rr, 201, map[string]string{"id": "42"})

	if rr.Code != 201 {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body err: %v", err)
	}
	if body["id"] != "42" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRespondJSONUnencodablePayload(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.RespondJSON(rr, 200, map[string]any{"bad": func() {}})

	if rr.Code != 500 {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("fallback body should stay valid JSON: %v", err)
	}
}

func TestRespondErrorShape(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.RespondError(rr, 400, "text is required")

	if rr.Code != 400 {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body err: %v", err)
	}
	if body["error"] != "text is required" {
		t.Fatalf("unexpected error document: %v", body)
	}
}
