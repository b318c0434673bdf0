// Package api serves the four assistant endpoints of the reference
// backend. When an AI service is wired in, responses come from the model;
// otherwise the deterministic canned responder keeps the contract alive.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neurofolio/neurofolio/internal/model/chat"
	"github.com/neurofolio/neurofolio/internal/model/options"
	"github.com/neurofolio/neurofolio/pkg/utils"
)

// AIService abstracts the model-backed operations so the handler can be
// tested without credentials.
type AIService interface {
	Summarize(ctx context.Context, text string, m options.Model) (string, error)
	Translate(ctx context.Context, text string, target options.Language) (string, error)
	Chat(ctx context.Context, prompt string, m options.Model, language options.Language, persona options.Persona) (string, error)
	DescribeImage(ctx context.Context, name, mediaType string, data []byte) (string, error)
}

// CannedService is the offline fallback surface.
type CannedService interface {
	Summarize(text string, m options.Model) string
	Translate(text string, target options.Language) string
	Chat(prompt string, persona options.Persona) string
	DescribeImage(name, mediaType string, size int) string
}

// Handler serves the assistant API.
type Handler struct {
	aiSvc  AIService
	canned CannedService
}

// New creates the API handler. aiSvc may be nil; canned must not be.
func New(aiSvc AIService, canned CannedService) *Handler {
	return &Handler{aiSvc: aiSvc, canned: canned}
}

// RegisterRoutes mounts the assistant endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/summarize", h.handleSummarize)
	r.Post("/translate", h.handleTranslate)
	r.Post("/chat", h.handleChat)
	r.Post("/image-analyze", h.handleImageAnalyze)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text  string        `json:"text"`
		Model options.Model `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if payload.Model == "" {
		payload.Model = options.DefaultModel
	}
	if !payload.Model.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "unknown model")
		return
	}

	summary, err := h.summarize(r.Context(), payload.Text, payload.Model)
	if err != nil {
		log.Printf("[api] summarize failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "summarization failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) summarize(ctx context.Context, text string, m options.Model) (string, error) {
	if h.aiSvc != nil {
		return h.aiSvc.Summarize(ctx, text, m)
	}
	return h.canned.Summarize(text, m), nil
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text           string           `json:"text"`
		TargetLanguage options.Language `json:"targetLanguage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if !payload.TargetLanguage.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "unknown target language")
		return
	}

	translated, err := h.translate(r.Context(), payload.Text, payload.TargetLanguage)
	if err != nil {
		log.Printf("[api] translate failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "translation failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"translated": translated})
}

func (h *Handler) translate(ctx context.Context, text string, target options.Language) (string, error) {
	if h.aiSvc != nil {
		return h.aiSvc.Translate(ctx, text, target)
	}
	return h.canned.Translate(text, target), nil
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt   string           `json:"prompt"`
		Model    options.Model    `json:"model"`
		Language options.Language `json:"language"`
		Persona  options.Persona  `json:"persona"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Model == "" {
		payload.Model = options.DefaultModel
	}
	if payload.Language == "" {
		payload.Language = options.DefaultLanguage
	}
	if payload.Persona == "" {
		payload.Persona = options.DefaultPersona
	}
	if !payload.Model.Valid() || !payload.Language.Valid() || !payload.Persona.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "unknown selector value")
		return
	}

	reply, err := h.chat(r.Context(), payload.Prompt, payload.Model, payload.Language, payload.Persona)
	if err != nil {
		log.Printf("[api] chat failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "chat failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (h *Handler) chat(ctx context.Context, prompt string, m options.Model, language options.Language, persona options.Persona) (string, error) {
	if h.aiSvc != nil {
		return h.aiSvc.Chat(ctx, prompt, m, language, persona)
	}
	return h.canned.Chat(prompt, persona), nil
}

func (h *Handler) handleImageAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if !chat.IsImageMediaType(mediaType) {
		utils.RespondError(w, http.StatusBadRequest, "uploaded file is not an image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	description, err := h.describeImage(r.Context(), header.Filename, mediaType, data)
	if err != nil {
		log.Printf("[api] image analysis failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "image analysis failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"description": description})
}

func (h *Handler) describeImage(ctx context.Context, name, mediaType string, data []byte) (string, error) {
	if h.aiSvc != nil {
		return h.aiSvc.DescribeImage(ctx, name, mediaType, data)
	}
	return h.canned.DescribeImage(name, mediaType, len(data)), nil
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"status":       "ok",
		"modelBackend": h.aiSvc != nil,
	}
	utils.RespondJSON(w, http.StatusOK, status)
}
