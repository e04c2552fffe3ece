package routes

import (
	"net/http"

	"gift-registry/internal/storage"

	"github.com/gin-gonic/gin"
)

// AdminGetEvent handles GET /api/admin/event.
func AdminGetEvent(c *gin.Context) {
	event, err := Store(c).GetEventConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// AdminUpdateEvent handles PUT /api/admin/event. The whole config row is
// replaced; the admin UI always submits the full form.
func AdminUpdateEvent(c *gin.Context) {
	var event storage.EventConfig
	if err := c.ShouldBindJSON(&event); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := Store(c).UpdateEventConfig(c.Request.Context(), &event); err != nil {
		AbortWithError(c, err)
		return
	}

	updated, err := Store(c).GetEventConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AdminListRsvps handles GET /api/admin/rsvp.
func AdminListRsvps(c *gin.Context) {
	rsvps, err := Store(c).ListRsvps(c.Request.Context())
	if err != nil {
		AbortWithError(c, ErrDatabaseError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}
