package transcript_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/neurofolio/neurofolio/internal/model/chat"
	"github.com/neurofolio/neurofolio/internal/transcript"
)

func sampleTurns() []chat.Turn {
	return []chat.Turn{
		{ID: "1", Role: chat.RoleUser, Text: "hello"},
		{ID: "2", Role: chat.RoleAI, Text: "hi there"},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := transcript.Encode(sampleTurns())
	if err != nil {
		t.Fatalf("Encode err: %v", err)
	}

	records, err := transcript.Decode("application/json", data)
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}

	want := []chat.Record{
		{Role: chat.RoleUser, Text: "hello"},
		{Role: chat.RoleAI, Text: "hi there"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("round trip mismatch: got %+v want %+v", records, want)
	}
}

func TestEncodeEmptyTranscript(t *testing.T) {
	if _, err := transcript.Encode(nil); !errors.Is(err, transcript.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
}

func TestDecodeRejectsWrongMediaType(t *testing.T) {
	_, err := transcript.Decode("text/plain", []byte(`[]`))
	if !errors.Is(err, transcript.ErrWrongMediaType) {
		t.Fatalf("expected ErrWrongMediaType, got %v", err)
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	_, err := transcript.Decode("application/json", []byte(`{"a":1}`))
	if !errors.Is(err, transcript.ErrNotAnArray) {
		t.Fatalf("expected ErrNotAnArray, got %v", err)
	}
}

func TestDecodeRejectsUnknownRole(t *testing.T) {
	doc := []byte(`[{"role":"narrator","text":"once upon a time"}]`)
	_, err := transcript.Decode("application/json", doc)
	if !errors.Is(err, transcript.ErrBadRecord) {
		t.Fatalf("expected ErrBadRecord, got %v", err)
	}
}

func TestDecodeAcceptsCharsetParameter(t *testing.T) {
	doc := []byte(`[{"role":"user","text":"hello"}]`)
	records, err := transcript.Decode("application/json; charset=utf-8", doc)
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if len(records) != 1 || records[0].Text != "hello" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := transcript.Save(dir, sampleTurns())
	if err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if filepath.Base(path) != transcript.FileName {
		t.Fatalf("unexpected file name: %s", path)
	}

	records, err := transcript.Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(records) != 2 || records[1].Role != chat.RoleAI {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat-log.txt")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write fixture err: %v", err)
	}

	if _, err := transcript.Load(path); !errors.Is(err, transcript.ErrWrongMediaType) {
		t.Fatalf("expected ErrWrongMediaType, got %v", err)
	}
}

func TestExportSummaryWritesPDF(t *testing.T) {
	dir := t.TempDir()

	path, err := transcript.PDFExporter{}.ExportSummary(dir, "A caching project.", "Un proyecto de caché.")
	if err != nil {
		t.Fatalf("ExportSummary err: %v", err)
	}
	if filepath.Base(path) != transcript.SummaryFileName {
		t.Fatalf("unexpected file name: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat err: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("exported pdf is empty")
	}
}

func TestExportSummaryWithoutSummary(t *testing.T) {
	_, err := transcript.PDFExporter{}.ExportSummary(t.TempDir(), "", "")
	if !errors.Is(err, transcript.ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}
