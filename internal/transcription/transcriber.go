// Package transcription wraps the speech-to-text provider call and the
// audio duration estimate.
package transcription

import (
	"context"
	"math"
)

// Transcriber converts stored audio into transcript text. Implementations
// do not retry; retries, if any, belong to the caller.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

const bytesPerMiB = 1024 * 1024

// EstimateDuration estimates the audio length in seconds from the file size,
// at roughly one minute per MiB, never below one second. This is a rough
// heuristic standing in for real audio decoding, not ground truth.
func EstimateDuration(sizeBytes int64) int {
	seconds := int(math.Round(float64(sizeBytes) / bytesPerMiB * 60))
	if seconds < 1 {
		return 1
	}
	return seconds
}
