// Package validation rejects malformed uploads before any network cost is
// incurred. Every check here runs strictly ahead of the provider calls.
package validation

import (
	"voicescribe/internal/app/errors"
)

// MaxUploadBytes is the upload size ceiling (25 MiB).
const MaxUploadBytes = 25 * 1024 * 1024

// supportedMediaTypes is the set of declared media types accepted for upload.
var supportedMediaTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/mp4":   true,
	"audio/x-m4a": true,
	"audio/aac":   true,
	"audio/ogg":   true,
	"audio/webm":  true,
}

// Upload is the candidate examined by the gate. Size comes from the multipart
// header so oversized uploads are rejected before the payload is buffered.
type Upload struct {
	Present   bool
	Size      int64
	MediaType string
}

// Check validates a candidate upload against the current configuration.
// It returns nil when the upload is accepted, otherwise a kind-tagged error
// naming the specific rejection reason.
func Check(upload Upload, providerKeyPresent bool) error {
	if !upload.Present {
		return errors.Validation("No audio file provided. Please select an audio file.")
	}
	if upload.Size == 0 {
		return errors.Validation("Audio file is empty. Please select a valid audio file.")
	}
	if !supportedMediaTypes[upload.MediaType] {
		return errors.Validationf("Invalid file type: %s. Supported formats: MP3, WAV, M4A, AAC, OGG, WEBM", upload.MediaType)
	}
	if upload.Size > MaxUploadBytes {
		return errors.Validation("File too large. Maximum size is 25MB.")
	}
	if !providerKeyPresent {
		return errors.Config("speech-to-text provider credential is not configured")
	}
	return nil
}

// SupportedMediaType reports whether the declared media type is accepted.
func SupportedMediaType(mediaType string) bool {
	return supportedMediaTypes[mediaType]
}
