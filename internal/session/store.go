// Package session owns the single in-memory aggregate behind the assistant
// UI. Every mutation is total: observers reading a snapshot never see a
// half-applied update.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neurofolio/neurofolio/internal/model/chat"
	"github.com/neurofolio/neurofolio/internal/model/options"
)

// State is a consistent copy of the session visible to observers.
type State struct {
	ProjectText       string
	Summary           string
	TranslatedSummary string
	Transcript        []chat.Turn
	PendingImage      *chat.ImageAttachment
	Busy              bool
	Listening         bool
	LastError         string
	Model             options.Model
	Language          options.Language
	Persona           options.Persona
}

// Store holds the mutable session for one page visit. All mutations take the
// write lock so concurrent readers always observe a complete state.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a session with all fields at their defaults.
func NewStore() *Store {
	return &Store{
		state: State{
			Model:    options.DefaultModel,
			Language: options.DefaultLanguage,
			Persona:  options.DefaultPersona,
		},
	}
}

// Snapshot returns a copy of the current state. The transcript slice is
// copied so callers cannot mutate the store through it.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Transcript = append([]chat.Turn(nil), s.state.Transcript...)
	return snap
}

func (s *Store) SetProjectText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ProjectText = text
}

// SetSummary replaces the summary and always drops the translation: a
// translation is only ever valid for the summary it was produced from.
func (s *Store) SetSummary(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Summary = summary
	s.state.TranslatedSummary = ""
}

func (s *Store) SetTranslatedSummary(translated string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TranslatedSummary = translated
}

// AppendTurn adds a turn to the transcript, assigning its id and timestamp,
// and returns the stored turn.
func (s *Store) AppendTurn(role chat.Role, text string) chat.Turn {
	turn := chat.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.state.Transcript = append(s.state.Transcript, turn)
	s.mu.Unlock()

	return turn
}

// ReplaceTranscript swaps the transcript wholesale, as done by the explicit
// clear and load operations.
func (s *Store) ReplaceTranscript(turns []chat.Turn) {
	copied := append([]chat.Turn(nil), turns...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transcript = copied
}

// SetPendingImage installs a new pending attachment, releasing the preview
// handle of any attachment it supersedes.
func (s *Store) SetPendingImage(attachment *chat.ImageAttachment) {
	s.mu.Lock()
	prior := s.state.PendingImage
	s.state.PendingImage = attachment
	s.mu.Unlock()

	if prior != nil && prior != attachment {
		prior.Release()
	}
}

// ClearPendingImage discards the pending attachment and releases its preview.
func (s *Store) ClearPendingImage() {
	s.SetPendingImage(nil)
}

// BeginBusy marks the session busy for one in-flight action. It reports
// false when another action already holds the gate.
func (s *Store) BeginBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Busy {
		return false
	}
	s.state.Busy = true
	return true
}

// EndBusy releases the busy gate.
func (s *Store) EndBusy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Busy = false
}

func (s *Store) SetListening(listening bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Listening = listening
}

func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = message
}

func (s *Store) ClearError() {
	s.SetError("")
}

func (s *Store) SetModel(m options.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Model = m
}

func (s *Store) SetLanguage(l options.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Language = l
}

func (s *Store) SetPersona(p options.Persona) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Persona = p
}
