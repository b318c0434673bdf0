package ai

import (
	"fmt"
	"strings"

	"github.com/neurofolio/neurofolio/internal/model/options"
)

// Canned produces deterministic responses for every operation so the
// reference backend works without model credentials. Useful for local
// development and for the controller's tests.
type Canned struct{}

const summaryBudget = 220

// Summarize extracts the leading sentences of the text, up to a small
// character budget.
func (Canned) Summarize(text string, _ options.Model) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var builder strings.Builder
	for _, sentence := range strings.SplitAfter(text, ". ") {
		if builder.Len() > 0 && builder.Len()+len(sentence) > summaryBudget {
			break
		}
		builder.WriteString(sentence)
		if builder.Len() > summaryBudget {
			break
		}
	}

	summary := strings.TrimSpace(builder.String())
	if len(summary) > summaryBudget {
		summary = strings.TrimSpace(summary[:summaryBudget]) + "..."
	}
	return summary
}

// Translate marks the text with its target language. A stand-in, not a
// translation.
func (Canned) Translate(text string, target options.Language) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", target, text)
}

// Chat echoes the prompt in a persona-appropriate frame.
func (Canned) Chat(prompt string, persona options.Persona) string {
	prompt = strings.TrimSpace(prompt)
	switch persona {
	case options.PersonaProfessional:
		return fmt.Sprintf("Understood. Regarding %q: the configured model is offline, so this is a placeholder response.", prompt)
	case options.PersonaConcise:
		return fmt.Sprintf("Offline. Re %q: no model configured.", prompt)
	case options.PersonaCreative:
		return fmt.Sprintf("Imagine a world where %q had an answer - it will, once a model is configured.", prompt)
	default:
		return fmt.Sprintf("Thanks for asking about %q! The backend is running without a model, so this is a canned reply.", prompt)
	}
}

// DescribeImage reports what is known about the upload without vision
// capability.
func (Canned) DescribeImage(name, mediaType string, size int) string {
	return fmt.Sprintf("Received image %q (%s, %d bytes). Vision analysis is not configured on this backend.", name, mediaType, size)
}
