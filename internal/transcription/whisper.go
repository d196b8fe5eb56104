package transcription

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"momento/internal/apperr"
)

// AudioAPI is the slice of the OpenAI client used for transcription.
// *openai.Client satisfies it; tests substitute a fake.
type AudioAPI interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// WhisperTranscriber transcribes audio through the OpenAI Whisper API with a
// fixed target language.
type WhisperTranscriber struct {
	client   AudioAPI
	language string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewWhisperTranscriber creates a Whisper-backed Transcriber. A zero timeout
// disables the call deadline.
func NewWhisperTranscriber(client AudioAPI, language string, timeout time.Duration, log zerolog.Logger) *WhisperTranscriber {
	return &WhisperTranscriber{client: client, language: language, timeout: timeout, log: log}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		// Missing file is the caller's data problem, not a provider failure.
		return "", apperr.NotFound("audio file")
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Language: t.language,
	})
	if err != nil {
		t.log.Error().Err(err).Msg("whisper transcription failed")
		return "", apperr.Upstream("speech-to-text provider failed", err)
	}

	text := strings.TrimSpace(resp.Text)
	t.log.Info().
		Int("transcript_chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("transcription complete")

	return text, nil
}
