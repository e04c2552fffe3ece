package storage

import (
	"context"
	"errors"
	"log/slog"

	"gift-registry/internal/config"
)

// Competing-write outcomes. Handlers map these onto the wire contract.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyReserved  = errors.New("item already reserved")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrNotReservable    = errors.New("item is not reservable")
	ErrNotGroupGift     = errors.New("item is not a group gift")
)

type Provider interface {
	Close() error
	GetSchemaVersion(ctx context.Context) (int, error)

	// Event configuration (single row)
	GetEventConfig(ctx context.Context) (*EventConfig, error)
	UpdateEventConfig(ctx context.Context, cfg *EventConfig) error

	// Gift item methods
	ListItems(ctx context.Context) ([]GiftItem, error)
	ListItemsPublic(ctx context.Context) ([]GiftItemPublic, error)
	GetItem(ctx context.Context, id string) (*GiftItem, error)
	CreateItem(ctx context.Context, item *GiftItem) error
	UpdateItem(ctx context.Context, item *GiftItem) error
	DeleteItem(ctx context.Context, id string) error

	// Reservation methods. ReserveItem is atomic with respect to concurrent
	// callers on the same item: exactly one wins, the rest get
	// ErrAlreadyReserved.
	ReserveItem(ctx context.Context, itemID, guestName string, isAnonymous bool) (*GiftReservation, error)
	GetReservation(ctx context.Context, id string) (*GiftReservation, error)
	CancelReservation(ctx context.Context, id string) (*GiftReservation, error)
	ListReservationsByItem(ctx context.Context, itemID string) ([]GiftReservation, error)

	// Contribution methods
	CreateContribution(ctx context.Context, c *GiftContribution) error
	DeleteContribution(ctx context.Context, id string) error
	ListContributionsByItem(ctx context.Context, itemID string) ([]GiftContribution, error)
	ContributedTotal(ctx context.Context, itemID string) (int64, error)

	// RSVP methods (append-only)
	CreateRsvp(ctx context.Context, r *GuestRsvp) error
	ListRsvps(ctx context.Context) ([]GuestRsvp, error)
}

func NewProvider(config *config.Storage) Provider {
	switch {
	case config.SQLite != nil:
		provider := NewSQLiteProvider(config)
		if err := provider.runMigrations("sqlite3"); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil
}
