package services

import (
	"net/http"
	"strings"

	"github.com/igrejaviva/media-backend/internal/platform/apierr"
)

// MaxUploadBytes caps every incoming file. Checked before any byte leaves
// for the asset store.
const MaxUploadBytes = 5 << 20

func validateImagePayload(raw []byte) error {
	if len(raw) == 0 {
		return apierr.Validation("file is required")
	}
	if len(raw) > MaxUploadBytes {
		return apierr.Validation("file exceeds the 5MB limit")
	}
	ct := http.DetectContentType(raw)
	if !strings.HasPrefix(ct, "image/") {
		return apierr.Validation("unsupported file type %q, expected an image", ct)
	}
	return nil
}

func validateAudioPayload(raw []byte) error {
	if len(raw) == 0 {
		return apierr.Validation("file is required")
	}
	if len(raw) > MaxUploadBytes {
		return apierr.Validation("file exceeds the 5MB limit")
	}
	// mp4/webm audio sniffs as video/*, so both prefixes are accepted.
	ct := http.DetectContentType(raw)
	if !strings.HasPrefix(ct, "audio/") && !strings.HasPrefix(ct, "video/") && ct != "application/ogg" {
		return apierr.Validation("unsupported file type %q, expected audio", ct)
	}
	return nil
}
