// Admin inventory management: item CRUD, image upload, bulk import.
package routes

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gift-registry/internal/config"
	"gift-registry/internal/media"
	"gift-registry/internal/storage"

	"github.com/gin-gonic/gin"
)

// AdminListItems handles GET /api/admin/items: every item regardless of
// status, with its reservations and contributions nested for moderation.
func AdminListItems(c *gin.Context) {
	store := Store(c)
	ctx := c.Request.Context()

	items, err := store.ListItems(ctx)
	if err != nil {
		AbortWithError(c, ErrDatabaseError)
		return
	}

	type adminItem struct {
		storage.GiftItem
		Reservations  []storage.GiftReservation  `json:"reservations"`
		Contributions []storage.GiftContribution `json:"contributions"`
	}

	out := make([]adminItem, 0, len(items))
	for _, item := range items {
		reservations, err := store.ListReservationsByItem(ctx, item.ID)
		if err != nil {
			AbortWithError(c, ErrDatabaseError)
			return
		}
		contributions, err := store.ListContributionsByItem(ctx, item.ID)
		if err != nil {
			AbortWithError(c, ErrDatabaseError)
			return
		}
		out = append(out, adminItem{
			GiftItem:      item,
			Reservations:  reservations,
			Contributions: contributions,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out})
}

type itemRequest struct {
	Title               string  `json:"title"`
	Description         *string `json:"description"`
	ImageURL            *string `json:"image_url"`
	StoreURL            *string `json:"store_url"`
	Category            *string `json:"category"`
	PriceSuggestedCents int64   `json:"price_suggested_cents"`
	IsGroupGift         bool    `json:"is_group_gift"`
	GoalCents           *int64  `json:"goal_cents"`
	Status              string  `json:"status"`
}

func validStatus(s string) bool {
	switch s {
	case storage.ItemStatusActive, storage.ItemStatusDelivered, storage.ItemStatusArchived:
		return true
	}
	return false
}

// checkGoalInvariant enforces is_group_gift <=> goal_cents present.
func checkGoalInvariant(isGroupGift bool, goalCents *int64) error {
	if isGroupGift {
		if goalCents == nil || *goalCents <= 0 {
			return ErrGoalRequired
		}
		return nil
	}
	if goalCents != nil {
		return ErrGoalNotAllowed
	}
	return nil
}

func (r *itemRequest) toItem() (*storage.GiftItem, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	if r.PriceSuggestedCents < 0 {
		return nil, ErrInvalidAmount
	}
	status := r.Status
	if status == "" {
		status = storage.ItemStatusActive
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := checkGoalInvariant(r.IsGroupGift, r.GoalCents); err != nil {
		return nil, err
	}

	return &storage.GiftItem{
		Title:               title,
		Description:         r.Description,
		ImageURL:            r.ImageURL,
		StoreURL:            r.StoreURL,
		Category:            r.Category,
		PriceSuggestedCents: r.PriceSuggestedCents,
		IsGroupGift:         r.IsGroupGift,
		GoalCents:           r.GoalCents,
		Status:              status,
	}, nil
}

// AdminCreateItem handles POST /api/admin/items.
func AdminCreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := req.toItem()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := Store(c).CreateItem(c.Request.Context(), item); err != nil {
		AbortWithError(c, ErrDatabaseError)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// itemPatch carries a partial update; absent fields keep their current
// value.
type itemPatch struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	ImageURL            *string `json:"image_url"`
	StoreURL            *string `json:"store_url"`
	Category            *string `json:"category"`
	PriceSuggestedCents *int64  `json:"price_suggested_cents"`
	IsGroupGift         *bool   `json:"is_group_gift"`
	GoalCents           *int64  `json:"goal_cents"`
	Status              *string `json:"status"`
}

// AdminUpdateItem handles PUT /api/admin/items/:id. Fields absent from
// the body keep their current value; the group-gift invariant is checked
// against the merged result.
func AdminUpdateItem(c *gin.Context) {
	var patch itemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	store := Store(c)
	item, err := store.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			AbortWithError(c, ErrMissingTitle)
			return
		}
		item.Title = title
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.ImageURL != nil {
		item.ImageURL = patch.ImageURL
	}
	if patch.StoreURL != nil {
		item.StoreURL = patch.StoreURL
	}
	if patch.Category != nil {
		item.Category = patch.Category
	}
	if patch.PriceSuggestedCents != nil {
		if *patch.PriceSuggestedCents < 0 {
			AbortWithError(c, ErrInvalidAmount)
			return
		}
		item.PriceSuggestedCents = *patch.PriceSuggestedCents
	}
	if patch.IsGroupGift != nil {
		item.IsGroupGift = *patch.IsGroupGift
	}
	if patch.GoalCents != nil {
		if !item.IsGroupGift {
			AbortWithError(c, ErrGoalNotAllowed)
			return
		}
		item.GoalCents = patch.GoalCents
	} else if patch.IsGroupGift != nil && !*patch.IsGroupGift {
		// Turning a group gift back into a regular item drops its goal.
		item.GoalCents = nil
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			AbortWithError(c, ErrInvalidStatus)
			return
		}
		item.Status = *patch.Status
	}

	if err := checkGoalInvariant(item.IsGroupGift, item.GoalCents); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := store.UpdateItem(c.Request.Context(), item); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// AdminDeleteItem handles DELETE /api/admin/items/:id. Reservations on the
// item go with it; contributions are kept and become general ones.
func AdminDeleteItem(c *gin.Context) {
	if err := Store(c).DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AdminUploadImage handles POST /api/admin/items/upload: multipart image,
// stored via the configured media store.
func AdminUploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, ErrUploadMissing)
		return
	}
	if file.Size > config.MaxUploadSize {
		AbortWithError(c, ErrUploadTooLarge)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !media.AllowedType(contentType) {
		AbortWithError(c, ErrUploadType)
		return
	}

	src, err := file.Open()
	if err != nil {
		AbortWithError(c, ErrMediaError)
		return
	}
	defer src.Close()

	path := media.ObjectPath(contentType)
	url, err := Media(c).Put(c.Request.Context(), path, contentType, io.LimitReader(src, config.MaxUploadSize))
	if err != nil {
		slog.Error("AdminUploadImage: failed to store image", "path", path, "error", err)
		AbortWithError(c, ErrMediaError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "path": path})
}

type bulkImportRequest struct {
	Items []itemRequest `json:"items"`
}

type bulkItemError struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// AdminBulkImport handles POST /api/admin/items/bulk. Items are processed
// independently; a bad row never aborts the batch. External image URLs are
// re-hosted through the media store when possible, keeping the original
// URL on fetch failure.
func AdminBulkImport(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if len(req.Items) == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if len(req.Items) > config.MaxBulkItems {
		AbortWithError(c, ErrBulkTooManyItems)
		return
	}

	store := Store(c)
	var created []storage.GiftItem
	var failures []bulkItemError

	for i, row := range req.Items {
		item, err := row.toItem()
		if err != nil {
			failures = append(failures, bulkItemError{Index: i, Title: row.Title, Error: GetErrorMessage(err)})
			continue
		}

		if item.ImageURL != nil && strings.HasPrefix(*item.ImageURL, "http") {
			if hosted, err := rehostImage(c, *item.ImageURL); err == nil {
				item.ImageURL = &hosted
			} else {
				slog.Warn("AdminBulkImport: keeping original image URL", "url", *item.ImageURL, "error", err)
			}
		}

		if err := store.CreateItem(c.Request.Context(), item); err != nil {
			failures = append(failures, bulkItemError{Index: i, Title: item.Title, Error: GetErrorMessage(ErrDatabaseError)})
			continue
		}
		created = append(created, *item)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d of %d items imported", len(created), len(req.Items)),
		"total":        len(req.Items),
		"successCount": len(created),
		"errorCount":   len(failures),
		"success":      created,
		"errors":       failures,
	})
}

var rehostClient = &http.Client{Timeout: 15 * time.Second}

// rehostImage downloads an external image and stores a copy in the media
// store. Fetches are size-capped at the upload limit.
func rehostImage(c *gin.Context, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "gift-registry/1.0")

	resp, err := rehostClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !media.AllowedType(contentType) {
		return "", ErrUploadType
	}

	path := media.ObjectPath(contentType)
	return Media(c).Put(c.Request.Context(), path, contentType, io.LimitReader(resp.Body, config.MaxUploadSize))
}
