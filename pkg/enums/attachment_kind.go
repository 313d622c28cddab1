package enums

import (
	"fmt"
	"strings"
)

// AttachmentKind selects the Cloudinary resource type used to store a quote
// attachment.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindRaw   AttachmentKind = "raw"
)

var validAttachmentKinds = []AttachmentKind{
	AttachmentKindImage,
	AttachmentKindRaw,
}

// String implements fmt.Stringer.
func (a AttachmentKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttachmentKind.
func (a AttachmentKind) IsValid() bool {
	for _, candidate := range validAttachmentKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttachmentKind converts the raw string to AttachmentKind.
func ParseAttachmentKind(value string) (AttachmentKind, error) {
	for _, candidate := range validAttachmentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attachment kind %q", value)
}

// ClassifyMIME maps a declared content type onto the attachment kind. Image
// types upload as Cloudinary images, everything else as raw files.
func ClassifyMIME(mimeType string) AttachmentKind {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/") {
		return AttachmentKindImage
	}
	return AttachmentKindRaw
}
