package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"momento/internal/model"
)

// OpenPostgres connects to Postgres and migrates the schema.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.AudioAsset{}, &model.Recipe{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}

type postgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a Postgres-backed UserRepository.
func NewPostgresUserRepository(db *gorm.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return &user, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &user, nil
}

type postgresAudioRepository struct {
	db *gorm.DB
}

// NewPostgresAudioRepository creates a Postgres-backed AudioRepository.
func NewPostgresAudioRepository(db *gorm.DB) AudioRepository {
	return &postgresAudioRepository{db: db}
}

func (r *postgresAudioRepository) Create(ctx context.Context, asset *model.AudioAsset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("creating audio asset: %w", err)
	}
	return nil
}

func (r *postgresAudioRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error) {
	var asset model.AudioAsset
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting audio asset: %w", err)
	}
	return &asset, nil
}

func (r *postgresAudioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AudioAsset, error) {
	var assets []model.AudioAsset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("listing audio assets: %w", err)
	}
	return assets, nil
}

func (r *postgresAudioRepository) Update(ctx context.Context, asset *model.AudioAsset) error {
	if err := r.db.WithContext(ctx).Save(asset).Error; err != nil {
		return fmt.Errorf("updating audio asset: %w", err)
	}
	return nil
}

func (r *postgresAudioRepository) MarkProcessing(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error) {
	// Conditional update so two concurrent submissions cannot both pass the
	// guard: only one row transition wins.
	res := r.db.WithContext(ctx).
		Model(&model.AudioAsset{}).
		Where("id = ? AND user_id = ? AND processing_status <> ?", id, userID, model.StatusProcessing).
		Updates(map[string]interface{}{
			"processing_status": model.StatusProcessing,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("marking asset processing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either absent, not owned, or already processing.
		if _, err := r.GetByID(ctx, id, userID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyProcessing
	}
	return r.GetByID(ctx, id, userID)
}

type postgresRecipeRepository struct {
	db *gorm.DB
}

// NewPostgresRecipeRepository creates a Postgres-backed RecipeRepository.
func NewPostgresRecipeRepository(db *gorm.DB) RecipeRepository {
	return &postgresRecipeRepository{db: db}
}

func (r *postgresRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("creating recipe: %w", err)
	}
	return nil
}

func (r *postgresRecipeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	return &recipe, nil
}

func (r *postgresRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

func (r *postgresRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	return nil
}

func (r *postgresRecipeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Recipe{})
	if res.Error != nil {
		return fmt.Errorf("deleting recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
