package chat

import "strings"

// ImageAttachment holds a user-selected image waiting to be analyzed.
// The attachment owns a transient preview handle that must be released
// when the attachment is discarded or replaced.
type ImageAttachment struct {
	Name      string
	MediaType string
	Data      []byte

	PreviewURL string
	release    func()
}

// NewImageAttachment wraps image bytes together with their preview handle.
// release may be nil when the preview needs no explicit revocation.
func NewImageAttachment(name, mediaType string, data []byte, previewURL string, release func()) *ImageAttachment {
	return &ImageAttachment{
		Name:       name,
		MediaType:  mediaType,
		Data:       data,
		PreviewURL: previewURL,
		release:    release,
	}
}

// Release revokes the preview handle. Safe to call more than once.
func (a *ImageAttachment) Release() {
	if a == nil || a.release == nil {
		return
	}
	a.release()
	a.release = nil
}

// IsImageMediaType reports whether the declared media type names an image.
func IsImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}
