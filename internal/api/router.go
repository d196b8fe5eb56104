// Package api exposes the HTTP surface of the service through gin.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"momento/internal/auth"
	"momento/internal/repository"
	"momento/internal/service"
)

// Deps carries everything the routes need.
type Deps struct {
	Audio   *service.AudioService
	Recipes *service.RecipeService
	Users   repository.UserRepository
	Tokens  *auth.TokenService
	Log     zerolog.Logger
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Log))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		respondOK(c, gin.H{"status": "ok", "service": "momento-backend"})
	})

	ah := &authHandler{users: deps.Users, tokens: deps.Tokens}
	audio := &audioHandler{audio: deps.Audio}
	recipes := &recipeHandler{recipes: deps.Recipes}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", ah.signup)
		authGroup.POST("/login", ah.login)
		authGroup.GET("/me", AuthRequired(deps.Tokens), ah.me)
	}

	audioGroup := r.Group("/audio", AuthRequired(deps.Tokens))
	{
		audioGroup.POST("/upload", audio.upload)
		audioGroup.POST("/process", audio.process)
		audioGroup.GET("/", audio.list)
		audioGroup.GET("/:audio_id/transcript", audio.transcript)
	}

	recipeGroup := r.Group("/recipes", AuthRequired(deps.Tokens))
	{
		recipeGroup.POST("/", recipes.create)
		recipeGroup.GET("/", recipes.list)
		recipeGroup.GET("/:recipe_id", recipes.get)
		recipeGroup.PUT("/:recipe_id", recipes.update)
		recipeGroup.DELETE("/:recipe_id", recipes.delete)
		recipeGroup.POST("/:recipe_id/improve-description", recipes.improveDescription)
	}

	return r
}
