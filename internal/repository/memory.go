package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"momento/internal/model"
)

// In-memory implementations used when no DATABASE_URL is configured and in
// tests. Records are copied on read so callers never share map memory.

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

// NewMemoryUserRepository creates an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]model.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

type memoryAudioRepository struct {
	mu     sync.Mutex
	assets map[uuid.UUID]model.AudioAsset
}

// NewMemoryAudioRepository creates an in-memory AudioRepository.
func NewMemoryAudioRepository() AudioRepository {
	return &memoryAudioRepository{assets: make(map[uuid.UUID]model.AudioAsset)}
}

func (r *memoryAudioRepository) Create(ctx context.Context, asset *model.AudioAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.ID] = *asset
	return nil
}

func (r *memoryAudioRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	asset := a
	return &asset, nil
}

func (r *memoryAudioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AudioAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assets := make([]model.AudioAsset, 0)
	for _, a := range r.assets {
		if a.UserID == userID {
			assets = append(assets, a)
		}
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

func (r *memoryAudioRepository) Update(ctx context.Context, asset *model.AudioAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[asset.ID]; !ok {
		return ErrNotFound
	}
	asset.UpdatedAt = time.Now()
	r.assets[asset.ID] = *asset
	return nil
}

func (r *memoryAudioRepository) MarkProcessing(ctx context.Context, id, userID uuid.UUID) (*model.AudioAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	if a.ProcessingStatus == model.StatusProcessing {
		return nil, ErrAlreadyProcessing
	}
	a.ProcessingStatus = model.StatusProcessing
	a.UpdatedAt = time.Now()
	r.assets[id] = a
	asset := a
	return &asset, nil
}

type memoryRecipeRepository struct {
	mu      sync.Mutex
	recipes map[uuid.UUID]model.Recipe
}

// NewMemoryRecipeRepository creates an in-memory RecipeRepository.
func NewMemoryRecipeRepository() RecipeRepository {
	return &memoryRecipeRepository{recipes: make(map[uuid.UUID]model.Recipe)}
}

func (r *memoryRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *memoryRecipeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recipes[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	recipe := rec
	return &recipe, nil
}

func (r *memoryRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipes := make([]model.Recipe, 0)
	for _, rec := range r.recipes {
		if rec.UserID == userID {
			recipes = append(recipes, rec)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	return recipes, nil
}

func (r *memoryRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID]; !ok {
		return ErrNotFound
	}
	recipe.UpdatedAt = time.Now()
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *memoryRecipeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recipes[id]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}
