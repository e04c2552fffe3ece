package storage

import "time"

// Gift item lifecycle.
const (
	ItemStatusActive    = "active"
	ItemStatusDelivered = "delivered"
	ItemStatusArchived  = "archived"
)

// Reservation lifecycle. Cancelled is terminal.
const (
	ReservationStatusReserved  = "reserved"
	ReservationStatusCancelled = "cancelled"
)

// EventConfig is the single-row event description shown on the public pages:
// who is getting married, when, and how to pay via PIX.
type EventConfig struct {
	ID                  string    `db:"id" json:"id"`
	EventTitle          string    `db:"event_title" json:"event_title"`
	CoupleName          string    `db:"couple_name" json:"couple_name"`
	EventDate           *string   `db:"event_date" json:"event_date"`
	EventTime           *string   `db:"event_time" json:"event_time"`
	EventAddressFull    *string   `db:"event_address_full" json:"event_address_full"`
	PixReceiverName     string    `db:"pix_receiver_name" json:"pix_receiver_name"`
	PixKey              string    `db:"pix_key" json:"pix_key"`
	PixQrCodeURL        *string   `db:"pix_qr_code_url" json:"pix_qr_code_url"`
	DeliveryAddressFull string    `db:"delivery_address_full" json:"delivery_address_full"`
	StoreURL            *string   `db:"store_url" json:"store_url"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// GiftItem is a catalog entry. Invariant: GoalCents is non-nil iff
// IsGroupGift is true.
type GiftItem struct {
	ID                  string    `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Description         *string   `db:"description" json:"description"`
	ImageURL            *string   `db:"image_url" json:"image_url"`
	StoreURL            *string   `db:"store_url" json:"store_url"`
	Category            *string   `db:"category" json:"category"`
	PriceSuggestedCents int64     `db:"price_suggested_cents" json:"price_suggested_cents"`
	IsGroupGift         bool      `db:"is_group_gift" json:"is_group_gift"`
	GoalCents           *int64    `db:"goal_cents" json:"goal_cents"`
	Status              string    `db:"status" json:"status"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// GiftItemPublic is a GiftItem as the guest-facing list sees it.
type GiftItemPublic struct {
	GiftItem
	ContributedCents int64 `db:"contributed_cents" json:"contributed_cents"`
	IsReserved       bool  `db:"is_reserved" json:"is_reserved"`
}

// ProgressPercent reports funding progress for group gifts, saturating at 100.
// Storage keeps the un-capped sum; only the display saturates.
func (i *GiftItemPublic) ProgressPercent() int {
	if !i.IsGroupGift || i.GoalCents == nil || *i.GoalCents <= 0 {
		return 0
	}
	pct := i.ContributedCents * 100 / *i.GoalCents
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// GiftReservation is an exclusive claim on a single-item gift. The database
// enforces at most one reserved row per item.
type GiftReservation struct {
	ID          string    `db:"id" json:"id"`
	ItemID      string    `db:"item_id" json:"item_id"`
	GuestName   string    `db:"guest_name" json:"guest_name"`
	IsAnonymous bool      `db:"is_anonymous" json:"is_anonymous"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GiftContribution is one payment toward a group gift, or a general
// contribution when ItemID is nil.
type GiftContribution struct {
	ID          string    `db:"id" json:"id"`
	ItemID      *string   `db:"item_id" json:"item_id"`
	GuestName   string    `db:"guest_name" json:"guest_name"`
	IsAnonymous bool      `db:"is_anonymous" json:"is_anonymous"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GuestRsvp is append-only; there is no update or delete path.
type GuestRsvp struct {
	ID              string    `db:"id" json:"id"`
	GuestName       string    `db:"guest_name" json:"guest_name"`
	Attending       bool      `db:"attending" json:"attending"`
	CompanionsCount int       `db:"companions_count" json:"companions_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
