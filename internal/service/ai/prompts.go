package ai

import (
	"fmt"
	"strings"

	"github.com/neurofolio/neurofolio/internal/model/options"
)

// personaTemplate shapes the assistant's voice for one persona.
type personaTemplate struct {
	systemPrompt string
	styleHints   []string
}

var personaTemplates = map[options.Persona]personaTemplate{
	options.PersonaFriendly: {
		systemPrompt: "You are NeuroFolio, a warm and encouraging project assistant.",
		styleHints: []string{
			"Keep a conversational, upbeat tone",
			"Acknowledge the user's effort before answering",
			"Prefer plain language over jargon",
		},
	},
	options.PersonaProfessional: {
		systemPrompt: "You are NeuroFolio, a precise assistant for professional project work.",
		styleHints: []string{
			"Keep a formal, measured tone",
			"Structure longer answers with short paragraphs",
			"Cite concrete details from the user's project text when relevant",
		},
	},
	options.PersonaConcise: {
		systemPrompt: "You are NeuroFolio, an assistant that answers with maximum brevity.",
		styleHints: []string{
			"Answer in at most three sentences",
			"Skip greetings and filler",
			"Use lists only when they shorten the answer",
		},
	},
	options.PersonaCreative: {
		systemPrompt: "You are NeuroFolio, an imaginative assistant for project brainstorming.",
		styleHints: []string{
			"Offer unexpected angles and analogies",
			"Suggest at least one alternative the user has not mentioned",
			"Keep the energy high without losing substance",
		},
	},
}

// chatSystemPrompt builds the system prompt for a chat turn.
func chatSystemPrompt(persona options.Persona, language options.Language) string {
	template, ok := personaTemplates[persona]
	if !ok {
		template = personaTemplates[options.PersonaFriendly]
	}

	var builder strings.Builder
	builder.WriteString(template.systemPrompt)
	builder.WriteString("\n\nStyle:")
	for _, hint := range template.styleHints {
		builder.WriteString("\n- ")
		builder.WriteString(hint)
	}
	fmt.Fprintf(&builder, "\n\nAlways respond in %s.", language.Name())
	return builder.String()
}

// summarizeSystemPrompt builds the system prompt for summarization. The
// selected provider is surfaced so the model can mimic its register.
func summarizeSystemPrompt(m options.Model) string {
	return fmt.Sprintf(
		"You summarize project descriptions into a single short paragraph. "+
			"Capture the goal and the approach, drop implementation detail. "+
			"Serve the request the way the %q provider would.", m)
}

// translateSystemPrompt builds the system prompt for translation.
func translateSystemPrompt(target options.Language) string {
	return fmt.Sprintf(
		"Translate the user's text into %s. Return only the translation, "+
			"preserving tone and technical terms.", target.Name())
}

const describeImageSystemPrompt = "You describe uploaded images for a project assistant. " +
	"Report what the image shows in two or three sentences, focusing on " +
	"content relevant to project work such as diagrams, text and interfaces."
