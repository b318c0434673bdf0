// Package controller sequences user actions against the AI gateway and the
// session store. Each network-bound action brackets its work with the busy
// gate, clears the error banner on entry and converts every failure into a
// user-visible message; nothing propagates as an unhandled fault.
package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/neurofolio/neurofolio/internal/model/chat"
	"github.com/neurofolio/neurofolio/internal/model/options"
	"github.com/neurofolio/neurofolio/internal/session"
	"github.com/neurofolio/neurofolio/internal/speech"
	"github.com/neurofolio/neurofolio/internal/transcript"
)

// Gateway is the stateless request/response surface the controller drives.
type Gateway interface {
	Summarize(ctx context.Context, text string, model options.Model) (string, error)
	Translate(ctx context.Context, text string, target options.Language) (string, error)
	Chat(ctx context.Context, prompt string, model options.Model, language options.Language, persona options.Persona) (string, error)
	AnalyzeImage(ctx context.Context, name, mediaType string, data []byte) (string, error)
}

// PreviewFunc materializes a display preview for image bytes. It returns
// the preview handle and a release function revoking it.
type PreviewFunc func(name string, data []byte) (string, func(), error)

// Config carries the controller's optional collaborators.
type Config struct {
	// Recognizer is the speech input capability; nil means the capability
	// is absent for the whole session.
	Recognizer speech.Recognizer
	// Exporter renders the summary panel to a document. Defaults to the
	// PDF exporter.
	Exporter transcript.SummaryExporter
	// DownloadDir receives saved chat logs and exported documents.
	// Defaults to the current directory.
	DownloadDir string
	// Preview materializes image previews; nil disables previews.
	Preview PreviewFunc
}

// Controller owns the single session and sequences all user actions.
type Controller struct {
	store      *session.Store
	gw         Gateway
	recognizer speech.Recognizer
	exporter   transcript.SummaryExporter
	downloads  string
	preview    PreviewFunc

	mu    sync.Mutex
	draft string

	done chan struct{}
	once sync.Once
}

// New wires a controller and, when a recognizer is present, starts pumping
// its events into the session.
func New(store *session.Store, gw Gateway, cfg Config) *Controller {
	c := &Controller{
		store:      store,
		gw:         gw,
		recognizer: cfg.Recognizer,
		exporter:   cfg.Exporter,
		downloads:  cfg.DownloadDir,
		preview:    cfg.Preview,
		done:       make(chan struct{}),
	}
	if c.exporter == nil {
		c.exporter = transcript.PDFExporter{}
	}
	if c.downloads == "" {
		c.downloads = "."
	}
	if c.recognizer != nil {
		go c.pumpSpeechEvents()
	}
	return c
}

// Close stops consuming recognizer events. The session itself needs no
// teardown beyond releasing an outstanding image preview.
func (c *Controller) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.recognizer != nil {
			c.recognizer.Stop()
		}
		c.store.ClearPendingImage()
	})
}

// Draft returns the pending chat input, as populated by typing or voice.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the pending chat input.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Summarize condenses the project text into a summary. A new summary always
// invalidates the previous translation.
func (c *Controller) Summarize(ctx context.Context) error {
	snap := c.store.Snapshot()
	if strings.TrimSpace(snap.ProjectText) == "" {
		c.store.SetError(msgEnterText)
		return validationErr(msgEnterText)
	}

	if !c.store.BeginBusy() {
		return ErrBusy
	}
	defer c.store.EndBusy()
	c.store.ClearError()

	summary, err := c.gw.Summarize(ctx, snap.ProjectText, snap.Model)
	if err != nil {
		log.Printf("[controller] summarize failed: %v", err)
		c.store.SetError(msgSummarizeFailed)
		return err
	}

	c.store.SetSummary(summary)
	return nil
}

// Translate renders the current summary into the selected language.
func (c *Controller) Translate(ctx context.Context) error {
	snap := c.store.Snapshot()
	if snap.Summary == "" {
		c.store.SetError(msgSummaryFirst)
		return validationErr(msgSummaryFirst)
	}

	if !c.store.BeginBusy() {
		return ErrBusy
	}
	defer c.store.EndBusy()
	c.store.ClearError()

	translated, err := c.gw.Translate(ctx, snap.Summary, snap.Language)
	if err != nil {
		log.Printf("[controller] translate failed: %v", err)
		c.store.SetError(msgTranslateFailed)
		return err
	}

	c.store.SetTranslatedSummary(translated)
	return nil
}

// SendChat sends the drafted message as one chat turn. The user's turn is
// appended before the request resolves so the UI reflects input instantly;
// on failure the transcript gains a fixed fallback reply and the banner is
// set, and the optimistic turn is kept.
func (c *Controller) SendChat(ctx context.Context) error {
	message := c.Draft()
	snap := c.store.Snapshot()
	if strings.TrimSpace(message) == "" && snap.PendingImage == nil {
		// The frontend disables Send in this state; no banner either.
		return validationErr("message is empty")
	}

	if !c.store.BeginBusy() {
		return ErrBusy
	}
	defer c.store.EndBusy()
	c.store.ClearError()

	c.store.AppendTurn(chat.RoleUser, message)

	reply, err := c.gw.Chat(ctx, message, snap.Model, snap.Language, snap.Persona)
	if err != nil {
		log.Printf("[controller] chat failed: %v", err)
		c.store.AppendTurn(chat.RoleAI, fallbackChatReply)
		c.store.SetError(msgChatFailed)
		return err
	}

	c.store.AppendTurn(chat.RoleAI, reply)
	c.SetDraft("")
	return nil
}

// VoiceToggle starts or stops the speech input session. Listening gates a
// separate UI affordance and deliberately never touches the busy flag.
func (c *Controller) VoiceToggle(ctx context.Context) error {
	if c.recognizer == nil {
		c.store.SetError(msgSpeechUnsupported)
		return speech.ErrUnavailable
	}

	if c.store.Snapshot().Listening {
		c.recognizer.Stop()
		c.store.SetListening(false)
		return nil
	}

	c.store.ClearError()
	if err := c.recognizer.Start(ctx); err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			c.store.SetError(msgSpeechUnsupported)
		} else {
			log.Printf("[controller] voice input failed to start: %v", err)
			c.store.SetError(msgSpeechFailed)
		}
		return err
	}

	c.store.SetListening(true)
	return nil
}

func (c *Controller) pumpSpeechEvents() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.recognizer.Events():
			switch ev.Kind {
			case speech.EventUtterance:
				c.SetDraft(ev.Text)
			case speech.EventError:
				log.Printf("[controller] speech recognition error: %v", ev.Err)
				c.store.SetError(msgSpeechFailed)
			case speech.EventEnded:
				c.store.SetListening(false)
			}
		}
	}
}

// UploadImage attaches an image and asks the backend to describe it. The
// attachment and its preview are installed immediately and survive an
// analysis failure; only an explicit RemoveImage discards them.
func (c *Controller) UploadImage(ctx context.Context, name, mediaType string, data []byte) error {
	if !chat.IsImageMediaType(mediaType) {
		c.store.SetError(msgNotAnImage)
		return validationErr(msgNotAnImage)
	}

	var previewURL string
	var release func()
	if c.preview != nil {
		url, rel, err := c.preview(name, data)
		if err != nil {
			log.Printf("[controller] preview unavailable for %s: %v", name, err)
		} else {
			previewURL, release = url, rel
		}
	}
	c.store.SetPendingImage(chat.NewImageAttachment(name, mediaType, data, previewURL, release))

	if !c.store.BeginBusy() {
		return ErrBusy
	}
	defer c.store.EndBusy()
	c.store.ClearError()

	description, err := c.gw.AnalyzeImage(ctx, name, mediaType, data)
	if err != nil {
		log.Printf("[controller] image analysis failed: %v", err)
		c.store.AppendTurn(chat.RoleAI, fallbackImageAnalysis)
		c.store.SetError(msgImageFailed)
		return err
	}

	c.store.AppendTurn(chat.RoleAI, description)
	return nil
}

// RemoveImage discards the pending attachment and releases its preview.
func (c *Controller) RemoveImage() {
	c.store.ClearPendingImage()
}

// ClearChat empties the transcript and the error banner. Synchronous and
// idempotent.
func (c *Controller) ClearChat() {
	c.store.ReplaceTranscript(nil)
	c.store.ClearError()
}

// SaveChat writes the transcript as the portable chat-log.json document and
// returns the written path. No session state changes.
func (c *Controller) SaveChat() (string, error) {
	snap := c.store.Snapshot()
	if len(snap.Transcript) == 0 {
		c.store.SetError(msgNothingToSave)
		return "", validationErr(msgNothingToSave)
	}

	path, err := transcript.Save(c.downloads, snap.Transcript)
	if err != nil {
		log.Printf("[controller] save chat failed: %v", err)
		c.store.SetError(msgSaveFailed)
		return "", err
	}
	return path, nil
}

// LoadChat replaces the transcript with a validated uploaded document. On
// any validation failure the existing transcript is left untouched.
func (c *Controller) LoadChat(path string) error {
	records, err := transcript.Load(path)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrWrongMediaType):
			c.store.SetError(msgUploadJSON)
		case errors.Is(err, transcript.ErrNotAnArray), errors.Is(err, transcript.ErrBadRecord):
			c.store.SetError(msgBadChatFile)
		default:
			c.store.SetError(msgReadFailed)
		}
		return err
	}

	turns := make([]chat.Turn, 0, len(records))
	for _, record := range records {
		turns = append(turns, chat.Turn{Role: record.Role, Text: record.Text})
	}
	c.store.ReplaceTranscript(turns)
	c.store.ClearError()
	return nil
}

// ExportSummary renders the summary panel through the external document
// collaborator and returns the written path.
func (c *Controller) ExportSummary() (string, error) {
	snap := c.store.Snapshot()
	if snap.Summary == "" {
		c.store.SetError(msgNothingToExport)
		return "", validationErr(msgNothingToExport)
	}

	path, err := c.exporter.ExportSummary(c.downloads, snap.Summary, snap.TranslatedSummary)
	if err != nil {
		log.Printf("[controller] summary export failed: %v", err)
		c.store.SetError(msgExportFailed)
		return "", err
	}
	return path, nil
}

// SetModel selects the backing AI provider.
func (c *Controller) SetModel(m options.Model) error {
	if !m.Valid() {
		return validationErr("unknown model: " + string(m))
	}
	c.store.SetModel(m)
	return nil
}

// SetLanguage selects the response language and, when the recognizer
// supports it, the recognition language for subsequent voice sessions.
func (c *Controller) SetLanguage(l options.Language) error {
	if !l.Valid() {
		return validationErr("unknown language: " + string(l))
	}
	c.store.SetLanguage(l)
	if setter, ok := c.recognizer.(interface{ SetLanguage(options.Language) }); ok {
		setter.SetLanguage(l)
	}
	return nil
}

// SetPersona selects the assistant's conversational style.
func (c *Controller) SetPersona(p options.Persona) error {
	if !p.Valid() {
		return validationErr("unknown persona: " + string(p))
	}
	c.store.SetPersona(p)
	return nil
}
