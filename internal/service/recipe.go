package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"momento/internal/apperr"
	"momento/internal/model"
	"momento/internal/organizer"
	"momento/internal/repository"
)

// RecipeOrganizer is the language-model step that structures transcripts.
// *organizer.Organizer satisfies it; tests substitute a fake.
type RecipeOrganizer interface {
	Organize(ctx context.Context, transcript string) (*organizer.RecipeDraft, error)
	ImproveDescription(ctx context.Context, recipe *model.Recipe) (string, error)
}

// RecipeUpdate carries a partial edit: only non-nil fields overwrite.
type RecipeUpdate struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Ingredients *model.IngredientList `json:"ingredients"`
	Steps       *model.StepList       `json:"steps"`
	Tips        *string               `json:"tips"`
	Servings    *string               `json:"servings"`
	CookingTime *string               `json:"cooking_time"`
	Difficulty  *string               `json:"difficulty"`
	Category    *string               `json:"category"`
}

// RecipeService derives recipes from completed audio assets and manages
// their lifecycle.
type RecipeService struct {
	recipes   repository.RecipeRepository
	assets    repository.AudioRepository
	organizer RecipeOrganizer
	log       zerolog.Logger
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	assets repository.AudioRepository,
	org RecipeOrganizer,
	log zerolog.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		assets:    assets,
		organizer: org,
		log:       log,
	}
}

// CreateFromAudio organizes the asset's transcript into a recipe and
// persists it linked to the source asset. The asset must already be
// transcribed.
func (s *RecipeService) CreateFromAudio(ctx context.Context, userID, assetID uuid.UUID) (*model.Recipe, error) {
	asset, err := s.assets.GetByID(ctx, assetID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("audio file")
	}
	if err != nil {
		return nil, apperr.Processing("failed to load audio file", err)
	}
	if asset.TranscriptText == nil {
		return nil, apperr.Precondition("audio file has not been transcribed yet")
	}

	draft, err := s.organizer.Organize(ctx, *asset.TranscriptText)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperr.Upstream("failed to organize recipe", nil)
	}

	now := time.Now()
	recipe := &model.Recipe{
		ID:            uuid.New(),
		UserID:        userID,
		SourceAudioID: &asset.ID,
		Title:         draft.Title,
		Description:   draft.Description,
		Ingredients:   draft.Ingredients,
		Steps:         draft.Steps,
		Tips:          draft.Tips,
		Servings:      draft.Servings,
		CookingTime:   draft.CookingTime,
		Difficulty:    draft.Difficulty,
		Category:      draft.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, apperr.Processing("failed to save recipe", err)
	}

	s.log.Info().
		Str("recipe_id", recipe.ID.String()).
		Str("source_audio_id", asset.ID.String()).
		Str("title", recipe.Title).
		Msg("recipe created from audio")

	return recipe, nil
}

// Get returns a single recipe owned by the user.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("recipe")
	}
	if err != nil {
		return nil, apperr.Processing("failed to load recipe", err)
	}
	return recipe, nil
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Processing("failed to list recipes", err)
	}
	return recipes, nil
}

// Update applies a partial edit: fields absent from the payload are left
// untouched.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, update RecipeUpdate) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Ingredients != nil {
		recipe.Ingredients = *update.Ingredients
	}
	if update.Steps != nil {
		recipe.Steps = *update.Steps
	}
	if update.Tips != nil {
		recipe.Tips = *update.Tips
	}
	if update.Servings != nil {
		recipe.Servings = *update.Servings
	}
	if update.CookingTime != nil {
		recipe.CookingTime = *update.CookingTime
	}
	if update.Difficulty != nil {
		recipe.Difficulty = *update.Difficulty
	}
	if update.Category != nil {
		recipe.Category = *update.Category
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, apperr.Processing("failed to update recipe", err)
	}
	return recipe, nil
}

// Delete removes the recipe.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.recipes.Delete(ctx, recipeID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("recipe")
	}
	if err != nil {
		return apperr.Processing("failed to delete recipe", err)
	}
	return nil
}

// ImproveDescription regenerates the recipe description with the language
// model and overwrites the stored one.
func (s *RecipeService) ImproveDescription(ctx context.Context, userID, recipeID uuid.UUID) (string, error) {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return "", err
	}

	description, err := s.organizer.ImproveDescription(ctx, recipe)
	if err != nil {
		return "", err
	}
	if description == "" {
		return "", apperr.Upstream("failed to improve description", nil)
	}

	recipe.Description = description
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return "", apperr.Processing("failed to save description", err)
	}
	return description, nil
}
