package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"momento/internal/apperr"
	"momento/internal/auth"
	"momento/internal/model"
	"momento/internal/repository"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authHandler struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func (h *authHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "email and a password of at least 8 characters are required")
		return
	}

	if _, err := h.users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		respondValidation(c, "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Processing("failed to create account", err))
		return
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, apperr.Processing("failed to create account", err))
		return
	}

	respondOK(c, gin.H{
		"id":        user.ID.String(),
		"email":     user.Email,
		"full_name": user.FullName,
		"is_active": user.IsActive,
	})
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "email and password are required")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !auth.VerifyPassword(req.Password, user.PasswordHash)) {
		respondError(c, apperr.Auth("incorrect email or password"))
		return
	}
	if err != nil {
		respondError(c, apperr.Processing("failed to log in", err))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, apperr.Processing("failed to issue token", err))
		return
	}

	respondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *authHandler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), currentUserID(c))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, apperr.Auth("account no longer exists"))
		return
	}
	if err != nil {
		respondError(c, apperr.Processing("failed to load account", err))
		return
	}

	respondOK(c, gin.H{
		"id":        user.ID.String(),
		"email":     user.Email,
		"full_name": user.FullName,
		"is_active": user.IsActive,
	})
}
