package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"momento/internal/service"
)

type createRecipeRequest struct {
	SourceAudioID string `json:"source_audio_id" binding:"required"`
}

type recipeHandler struct {
	recipes *service.RecipeService
}

func (h *recipeHandler) create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "source_audio_id is required")
		return
	}
	assetID, err := uuid.Parse(req.SourceAudioID)
	if err != nil {
		respondValidation(c, "invalid source_audio_id format")
		return
	}

	recipe, err := h.recipes.CreateFromAudio(c.Request.Context(), currentUserID(c), assetID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipe)
}

func (h *recipeHandler) list(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipes)
}

func (h *recipeHandler) get(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		respondValidation(c, "invalid recipe_id format")
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), currentUserID(c), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipe)
}

func (h *recipeHandler) update(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		respondValidation(c, "invalid recipe_id format")
		return
	}

	var update service.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, "invalid update payload")
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), currentUserID(c), recipeID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipe)
}

func (h *recipeHandler) delete(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		respondValidation(c, "invalid recipe_id format")
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), currentUserID(c), recipeID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "recipe deleted"})
}

func (h *recipeHandler) improveDescription(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipe_id"))
	if err != nil {
		respondValidation(c, "invalid recipe_id format")
		return
	}

	description, err := h.recipes.ImproveDescription(c.Request.Context(), currentUserID(c), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"description": description})
}
