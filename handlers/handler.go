package handlers

import (
	"encoding/json"
	"net/http"

	"table-service-api/apperrors"
	"table-service-api/events"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the store and the event bus into every endpoint. The
// bus is injected so tests can swap in a recording fake and assert the
// exact event sequence.
type Handler struct {
	DB  *gorm.DB
	Bus events.Bus
}

func New(db *gorm.DB, bus events.Bus) *Handler {
	return &Handler{DB: db, Bus: bus}
}

// respondError maps a kinded domain error to its HTTP shape; anything
// unclassified is a 500.
func respondError(c *gin.Context, err error) {
	if ae, ok := apperrors.As(err); ok {
		c.JSON(ae.HTTPStatus(), gin.H{"error": ae.Message, "code": ae.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// callerID returns the authenticated user ID, or nil on public routes.
func callerID(c *gin.Context) *uint {
	val, ok := c.Get("userID")
	if !ok {
		return nil
	}
	id, ok := val.(uint)
	if !ok {
		return nil
	}
	return &id
}

// logAction appends one row to the audit trail. Logging never fails
// the request it describes.
func (h *Handler) logAction(c *gin.Context, action string, detail gin.H) {
	blob, _ := json.Marshal(detail)
	h.DB.Create(&models.ActionLog{
		UserID: callerID(c),
		Action: action,
		Detail: string(blob),
	})
}
