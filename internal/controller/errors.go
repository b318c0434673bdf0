package controller

import "errors"

// ErrBusy reports an action attempted while another network-bound action is
// in flight. The UI disables triggers while busy, so hitting this is a
// programming error rather than a user-facing condition.
var ErrBusy = errors.New("another action is in progress")

// ValidationError reports a failed precondition. No request is issued and
// the busy gate is never entered.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// User-facing messages, kept verbatim from the frontend copy.
const (
	msgEnterText          = "Please enter some text to summarize"
	msgSummarizeFailed    = "Sorry, something went wrong while generating the summary."
	msgSummaryFirst       = "Please generate a summary first"
	msgTranslateFailed    = "Sorry, something went wrong while translating the summary."
	msgChatFailed         = "Failed to get response from AI. Please try again."
	msgSpeechUnsupported  = "Speech recognition is not supported in your browser"
	msgSpeechFailed       = "Speech recognition failed. Please try again or type your message."
	msgNotAnImage         = "Please upload an image file"
	msgImageFailed        = "Image analysis failed"
	msgNothingToSave      = "No chat history to save"
	msgSaveFailed         = "Failed to save chat history"
	msgUploadJSON         = "Please upload a JSON file"
	msgBadChatFile        = "Invalid chat file format"
	msgReadFailed         = "Failed to read the file"
	msgNothingToExport    = "Nothing to export"
	msgExportFailed       = "Failed to export PDF"
	fallbackChatReply     = "Sorry, something went wrong. Please try again."
	fallbackImageAnalysis = "Sorry, image analysis failed. Please try again."
)
