// Package repository defines owner-scoped data access for users, audio
// assets and recipes, decoupling the services from any storage engine.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"momento/internal/model"
)

// ErrNotFound is returned when a record is absent or owned by another user.
// The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyProcessing is returned by MarkProcessing when the asset is
// already mid-processing.
var ErrAlreadyProcessing = errors.New("asset already processing")

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AudioRepository persists audio assets. All lookups are scoped to the
// owning user.
type AudioRepository interface {
	Create(ctx context.Context, asset *model.AudioAsset) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AudioAsset, error)
	Update(ctx context.Context, asset *model.AudioAsset) error

	// MarkProcessing transitions the asset to processing. The write commits
	// before the caller starts transcription, so a concurrent second request
	// observes the processing state. Returns ErrAlreadyProcessing if the
	// asset is already mid-processing, ErrNotFound if absent or not owned.
	MarkProcessing(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error)
}

// RecipeRepository persists recipes. All lookups are scoped to the owning
// user.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Recipe, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
