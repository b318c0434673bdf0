// Package transcript moves the chat log across the session boundary: it
// serializes turns into the portable chat-log.json document and validates
// uploaded documents before they replace the live transcript.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/neurofolio/neurofolio/internal/model/chat"
)

// FileName is the download name of a saved chat log.
const FileName = "chat-log.json"

// MediaType is the only accepted media type for uploaded chat logs.
const MediaType = "application/json"

var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrWrongMediaType  = errors.New("chat log must be a JSON file")
	ErrNotAnArray      = errors.New("chat log must be a JSON array")
	ErrBadRecord       = errors.New("chat log record is malformed")
)

// Encode renders turns as the portable document: an indented JSON array of
// {role, text} records.
func Encode(turns []chat.Turn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyTranscript
	}
	return json.MarshalIndent(chat.ToRecords(turns), "", "  ")
}

// Decode validates an uploaded document and returns its records. The
// declared media type must be application/json, the content must parse as
// an array, and every element must be a turn-shaped record with a known
// role.
func Decode(mediaType string, data []byte) ([]chat.Record, error) {
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil || parsed != MediaType {
		return nil, ErrWrongMediaType
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnArray, err)
	}

	records := make([]chat.Record, 0, len(raw))
	for i, element := range raw {
		var record chat.Record
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrBadRecord, i, err)
		}
		if !record.Role.Valid() {
			return nil, fmt.Errorf("%w: element %d: unknown role %q", ErrBadRecord, i, record.Role)
		}
		records = append(records, record)
	}
	return records, nil
}

// Save writes the portable document into dir under FileName and returns the
// written path.
func Save(dir string, turns []chat.Turn) (string, error) {
	data, err := Encode(turns)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write chat log: %w", err)
	}
	return path, nil
}

// Load reads a chat log file from disk, inferring the media type from the
// file extension the way a browser upload declares it.
func Load(path string) ([]chat.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat log: %w", err)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return Decode(mediaType, data)
}
