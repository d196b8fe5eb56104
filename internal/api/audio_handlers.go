package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"momento/internal/model"
	"momento/internal/service"
)

type processRequest struct {
	AudioID string `json:"audio_id" binding:"required"`
}

type audioHandler struct {
	audio *service.AudioService
}

func (h *audioHandler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondValidation(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	asset, err := h.audio.Upload(
		c.Request.Context(),
		currentUserID(c),
		src,
		file.Filename,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, assetView(asset))
}

func (h *audioHandler) process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "audio_id is required")
		return
	}
	assetID, err := uuid.Parse(req.AudioID)
	if err != nil {
		respondValidation(c, "invalid audio_id format")
		return
	}

	asset, err := h.audio.Process(c.Request.Context(), currentUserID(c), assetID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"audio_id":          asset.ID.String(),
		"transcript_text":   asset.TranscriptText,
		"processing_status": asset.ProcessingStatus,
	})
}

func (h *audioHandler) list(c *gin.Context) {
	assets, err := h.audio.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(assets))
	for i := range assets {
		views = append(views, assetView(&assets[i]))
	}
	respondOK(c, views)
}

func (h *audioHandler) transcript(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("audio_id"))
	if err != nil {
		respondValidation(c, "invalid audio_id format")
		return
	}

	asset, err := h.audio.Get(c.Request.Context(), currentUserID(c), assetID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"audio_id":          asset.ID.String(),
		"transcript_text":   asset.TranscriptText,
		"processing_status": asset.ProcessingStatus,
	})
}

func assetView(asset *model.AudioAsset) gin.H {
	return gin.H{
		"id":                asset.ID.String(),
		"user_id":           asset.UserID.String(),
		"file_name":         asset.FileName,
		"file_size":         asset.FileSize,
		"duration":          asset.Duration,
		"transcript_text":   asset.TranscriptText,
		"processing_status": asset.ProcessingStatus,
		"created_at":        asset.CreatedAt,
	}
}
