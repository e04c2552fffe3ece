// Public gift list and guest actions: reserve an item, cancel a
// reservation, contribute to a group gift.
package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gift-registry/internal/storage"
	"gift-registry/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListGifts handles GET /api/gifts. Archived items are not listed.
func ListGifts(c *gin.Context) {
	items, err := Store(c).ListItemsPublic(c.Request.Context())
	if err != nil {
		slog.Error("ListGifts: failed to list items", "error", err)
		AbortWithError(c, ErrDatabaseError)
		return
	}

	type publicItem struct {
		storage.GiftItemPublic
		ProgressPercent int `json:"progress_percent"`
	}

	out := make([]publicItem, 0, len(items))
	for _, item := range items {
		out = append(out, publicItem{
			GiftItemPublic:  item,
			ProgressPercent: item.ProgressPercent(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out})
}

type reserveRequest struct {
	GuestName   string `json:"guest_name"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// ReserveGift handles POST /api/gifts/:id/reserve. At most one guest can
// hold a live reservation on an item; the loser of a race gets a 409 with
// the ALREADY_RESERVED stop code.
func ReserveGift(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.GuestName) == "" {
		AbortWithError(c, ErrMissingGuestName)
		return
	}

	itemID := c.Param("id")
	reservation, err := Store(c).ReserveItem(c.Request.Context(), itemID, strings.TrimSpace(req.GuestName), req.IsAnonymous)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyReserved) {
			// Wire contract for the reserve flow: the client switches on
			// this exact envelope.
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":    false,
				"error": "ALREADY_RESERVED",
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	if item, err := Store(c).GetItem(c.Request.Context(), itemID); err == nil {
		Notify(c).ReservationCreated(item.Title, reservation.GuestName)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"reservation_id": reservation.ID,
	})
}

type cancelRequest struct {
	GuestName string `json:"guest_name"`
}

// CancelReservation handles POST /api/reservations/:id/cancel. The guest
// name is the only credential: it must match the reservation under
// normalization. Cancellation is terminal.
func CancelReservation(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.GuestName) == "" {
		AbortWithError(c, ErrMissingGuestName)
		return
	}

	store := Store(c)
	reservation, err := store.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if !utils.SameGuestName(reservation.GuestName, req.GuestName) {
		AbortWithError(c, ErrNameMismatch)
		return
	}

	cancelled, err := store.CancelReservation(c.Request.Context(), reservation.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"reservation": cancelled,
	})
}

type contributeRequest struct {
	GuestName   string `json:"guest_name"`
	IsAnonymous bool   `json:"is_anonymous"`
	AmountCents int64  `json:"amount_cents"`
}

func (r *contributeRequest) validate() error {
	if strings.TrimSpace(r.GuestName) == "" {
		return ErrMissingGuestName
	}
	if r.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ContributeToGift handles POST /api/gifts/:id/contribute. The item must
// be an active group gift. Contributions past the goal are accepted; only
// the displayed progress saturates.
func ContributeToGift(c *gin.Context) {
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := req.validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	itemID := c.Param("id")
	contribution := &storage.GiftContribution{
		ItemID:      &itemID,
		GuestName:   strings.TrimSpace(req.GuestName),
		IsAnonymous: req.IsAnonymous,
		AmountCents: req.AmountCents,
	}

	if err := Store(c).CreateContribution(c.Request.Context(), contribution); err != nil {
		AbortWithError(c, err)
		return
	}

	if item, err := Store(c).GetItem(c.Request.Context(), itemID); err == nil {
		Notify(c).ContributionCreated(item.Title, contribution.GuestName, contribution.AmountCents)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"contribution_id": contribution.ID,
	})
}

// CreateGeneralContribution handles POST /api/contributions: a PIX
// contribution not tied to any item.
func CreateGeneralContribution(c *gin.Context) {
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := req.validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	contribution := &storage.GiftContribution{
		GuestName:   strings.TrimSpace(req.GuestName),
		IsAnonymous: req.IsAnonymous,
		AmountCents: req.AmountCents,
	}

	if err := Store(c).CreateContribution(c.Request.Context(), contribution); err != nil {
		AbortWithError(c, err)
		return
	}

	Notify(c).ContributionCreated("", contribution.GuestName, contribution.AmountCents)

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"contribution_id": contribution.ID,
	})
}
