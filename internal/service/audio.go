// Package service implements the audio processing lifecycle and the recipe
// derivation flow on top of the repositories and provider adapters.
package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"momento/internal/apperr"
	"momento/internal/model"
	"momento/internal/repository"
	"momento/internal/storage"
	"momento/internal/transcription"
)

// AudioService owns the audio asset lifecycle:
// uploaded -> processing -> completed | failed. Terminal states may re-enter
// processing on a new process request.
type AudioService struct {
	blobs       storage.BlobStore
	assets      repository.AudioRepository
	transcriber transcription.Transcriber
	log         zerolog.Logger
}

func NewAudioService(
	blobs storage.BlobStore,
	assets repository.AudioRepository,
	transcriber transcription.Transcriber,
	log zerolog.Logger,
) *AudioService {
	return &AudioService{
		blobs:       blobs,
		assets:      assets,
		transcriber: transcriber,
		log:         log,
	}
}

// Upload persists the audio bytes and creates the asset record with status
// uploaded. The duration is a file-size estimate, not decoded audio length.
func (s *AudioService) Upload(ctx context.Context, userID uuid.UUID, src io.Reader, filename, contentType string) (*model.AudioAsset, error) {
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, apperr.Validation("only audio files are allowed")
	}

	ref, size, err := s.blobs.Save(src, userID.String(), filename)
	if err != nil {
		return nil, apperr.Processing("failed to save audio file", err)
	}

	now := time.Now()
	asset := &model.AudioAsset{
		ID:               uuid.New(),
		UserID:           userID,
		StoragePath:      ref,
		FileName:         filename,
		FileSize:         size,
		Duration:         transcription.EstimateDuration(size),
		ProcessingStatus: model.StatusUploaded,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		s.blobs.Delete(ref)
		return nil, apperr.Processing("failed to record audio upload", err)
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Int64("size_bytes", size).
		Int("estimated_duration_s", asset.Duration).
		Msg("audio uploaded")

	return asset, nil
}

// Process transcribes the asset. The transition to processing is committed
// before the provider call starts, so a concurrent second submission for the
// same asset observes the guard and is rejected with a conflict. An observed
// failure is always recorded as status failed before it is surfaced; the
// transcript is left untouched on failure.
func (s *AudioService) Process(ctx context.Context, userID, assetID uuid.UUID) (*model.AudioAsset, error) {
	asset, err := s.assets.MarkProcessing(ctx, assetID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyProcessing):
			return nil, apperr.Conflict("audio file is already being processed")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("audio file")
		default:
			return nil, apperr.Processing("failed to update processing status", err)
		}
	}

	text, err := s.transcriber.Transcribe(ctx, asset.StoragePath)
	if err != nil {
		s.markFailed(ctx, asset)
		return nil, apperr.Processing("failed to transcribe audio", err)
	}
	if text == "" {
		s.markFailed(ctx, asset)
		return nil, apperr.Processing("no speech detected in audio", nil)
	}

	asset.TranscriptText = &text
	asset.ProcessingStatus = model.StatusCompleted
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, apperr.Processing("failed to store transcript", err)
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Int("transcript_chars", len(text)).
		Msg("audio processed")

	return asset, nil
}

// markFailed persists the failed status so the asset is never left stuck at
// processing after an observed failure.
func (s *AudioService) markFailed(ctx context.Context, asset *model.AudioAsset) {
	asset.ProcessingStatus = model.StatusFailed
	if err := s.assets.Update(ctx, asset); err != nil {
		s.log.Error().Err(err).
			Str("asset_id", asset.ID.String()).
			Msg("failed to record failed status")
	}
}

// Get returns a single asset owned by the user.
func (s *AudioService) Get(ctx context.Context, userID, assetID uuid.UUID) (*model.AudioAsset, error) {
	asset, err := s.assets.GetByID(ctx, assetID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("audio file")
	}
	if err != nil {
		return nil, apperr.Processing("failed to load audio file", err)
	}
	return asset, nil
}

// List returns the user's assets, newest first.
func (s *AudioService) List(ctx context.Context, userID uuid.UUID) ([]model.AudioAsset, error) {
	assets, err := s.assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Processing("failed to list audio files", err)
	}
	return assets, nil
}
