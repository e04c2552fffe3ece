package routes

import (
	"net/http"
	"strings"

	"gift-registry/internal/storage"

	"github.com/gin-gonic/gin"
)

type rsvpRequest struct {
	GuestName       string `json:"guest_name"`
	Attending       bool   `json:"attending"`
	CompanionsCount int    `json:"companions_count"`
}

// CreateRsvp handles POST /api/rsvp. RSVPs are append-only; a guest who
// changes their mind submits again and the couple reads the latest entry.
func CreateRsvp(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.GuestName) == "" {
		AbortWithError(c, ErrMissingGuestName)
		return
	}
	if req.CompanionsCount < 0 || req.CompanionsCount > 10 {
		AbortWithError(c, ErrInvalidCompanions)
		return
	}

	rsvp := &storage.GuestRsvp{
		GuestName:       strings.TrimSpace(req.GuestName),
		Attending:       req.Attending,
		CompanionsCount: req.CompanionsCount,
	}

	if err := Store(c).CreateRsvp(c.Request.Context(), rsvp); err != nil {
		AbortWithError(c, err)
		return
	}

	Notify(c).RsvpCreated(rsvp.GuestName, rsvp.Attending, rsvp.CompanionsCount)

	c.JSON(http.StatusOK, gin.H{"ok": true, "rsvp_id": rsvp.ID})
}
