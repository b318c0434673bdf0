// Package options defines the fixed selector sets exposed to the frontend:
// backing AI model, response language and assistant persona.
package options

// Model selects the AI provider backing summarize and chat requests.
type Model string

const (
	ModelGroqLlama3      Model = "groq-llama3"
	ModelOpenAIGPT4      Model = "openai-gpt4"
	ModelAnthropicClaude Model = "anthropic-claude"
)

// DefaultModel matches the frontend's initial selection.
const DefaultModel = ModelGroqLlama3

// Models lists the selectable providers in display order.
func Models() []Model {
	return []Model{ModelGroqLlama3, ModelOpenAIGPT4, ModelAnthropicClaude}
}

// Valid reports whether the model is one of the fixed option set.
func (m Model) Valid() bool {
	switch m {
	case ModelGroqLlama3, ModelOpenAIGPT4, ModelAnthropicClaude:
		return true
	}
	return false
}

// Language selects the target language for translation and replies.
type Language string

const (
	LangEnglish  Language = "en"
	LangSpanish  Language = "es"
	LangFrench   Language = "fr"
	LangGerman   Language = "de"
	LangJapanese Language = "ja"
)

const DefaultLanguage = LangEnglish

// Languages lists the selectable languages in display order.
func Languages() []Language {
	return []Language{LangEnglish, LangSpanish, LangFrench, LangGerman, LangJapanese}
}

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangSpanish, LangFrench, LangGerman, LangJapanese:
		return true
	}
	return false
}

// Name returns the human-readable language name.
func (l Language) Name() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangSpanish:
		return "Spanish"
	case LangFrench:
		return "French"
	case LangGerman:
		return "German"
	case LangJapanese:
		return "Japanese"
	}
	return string(l)
}

// Persona selects the assistant's conversational style.
type Persona string

const (
	PersonaFriendly     Persona = "friendly"
	PersonaProfessional Persona = "professional"
	PersonaConcise      Persona = "concise"
	PersonaCreative     Persona = "creative"
)

const DefaultPersona = PersonaFriendly

// Personas lists the selectable personas in display order.
func Personas() []Persona {
	return []Persona{PersonaFriendly, PersonaProfessional, PersonaConcise, PersonaCreative}
}

func (p Persona) Valid() bool {
	switch p {
	case PersonaFriendly, PersonaProfessional, PersonaConcise, PersonaCreative:
		return true
	}
	return false
}
