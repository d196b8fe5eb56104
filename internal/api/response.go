package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momento/internal/apperr"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.HTTPStatus(), gin.H{
		"success": false,
		"kind":    string(ae.Kind),
		"error":   ae.Message,
	})
}

func respondValidation(c *gin.Context, msg string) {
	respondError(c, apperr.Validation(msg))
}
