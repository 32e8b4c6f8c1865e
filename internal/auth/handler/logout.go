package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout destroys the session by deleting the whole cookie triplet. There is
// no server-side state to revoke, so logging out while already logged out is
// a no-op with the same response.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c.Writer)
	c.Status(http.StatusNoContent)
}
