package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"momento/internal/api"
	"momento/internal/auth"
	"momento/internal/config"
	"momento/internal/organizer"
	"momento/internal/repository"
	"momento/internal/service"
	"momento/internal/storage"
	"momento/internal/transcription"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "momento-backend").Logger()

	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		users   repository.UserRepository
		assets  repository.AudioRepository
		recipes repository.RecipeRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := repository.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		users = repository.NewPostgresUserRepository(db)
		assets = repository.NewPostgresAudioRepository(db)
		recipes = repository.NewPostgresRecipeRepository(db)
		log.Info().Msg("postgres repositories initialized")
	} else {
		users = repository.NewMemoryUserRepository()
		assets = repository.NewMemoryAudioRepository()
		recipes = repository.NewMemoryRecipeRepository()
		log.Warn().Msg("DATABASE_URL not set, using in-memory storage")
	}

	client := openai.NewClient(cfg.OpenAIKey)
	transcriber := transcription.NewWhisperTranscriber(client, "ko", cfg.TranscribeTimeout, log)
	org := organizer.New(client, "", cfg.OrganizeTimeout, log)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	blobs := storage.NewLocalStore(cfg.UploadDir)

	audioService := service.NewAudioService(blobs, assets, transcriber, log)
	recipeService := service.NewRecipeService(recipes, assets, org, log)

	r := api.NewRouter(api.Deps{
		Audio:   audioService,
		Recipes: recipeService,
		Users:   users,
		Tokens:  tokens,
		Log:     log,
	})
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	log.Info().Str("port", cfg.Port).Msg("momento backend running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
