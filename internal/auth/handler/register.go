package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiregate/internal/backend"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=employer candidate"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request."})
		return
	}

	res, st := h.api.SubmitAuth(c.Request.Context(), "/auth/register", req)
	if st != backend.StatusOK {
		reject(c, st, res.Message)
		return
	}

	if !h.establishSession(c, res) {
		return
	}

	h.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("registration")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"user": res.User},
	})
}
