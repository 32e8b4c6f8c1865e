package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiregate/internal/backend"
)

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ForgotPassword forwards the reset-mail request. The response is the same
// whether or not the address exists; the backend owns that policy and this
// layer must not sharpen it.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request."})
		return
	}

	res, st := h.api.SubmitAuth(c.Request.Context(), "/auth/forgot-password", req)
	if st != backend.StatusOK {
		reject(c, st, res.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message})
}

// ResetPassword completes the flow with the emailed token. No session is
// established; the user logs in with the new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request."})
		return
	}

	res, st := h.api.SubmitAuth(c.Request.Context(), "/auth/reset-password", req)
	if st != backend.StatusOK {
		reject(c, st, res.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message})
}
