package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiregate/internal/backend"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request."})
		return
	}

	res, st := h.api.SubmitAuth(c.Request.Context(), "/auth/login", req)
	if st != backend.StatusOK {
		reject(c, st, "Invalid email or password.")
		return
	}

	if !h.establishSession(c, res) {
		return
	}

	h.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("login")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": res.User},
	})
}
