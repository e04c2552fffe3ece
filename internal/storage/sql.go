package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gift-registry/internal/config"
)

type SQLProvider struct {
	db *sqlx.DB

	config *config.Storage

	logger *slog.Logger
}

func NewSQLProvider(config *config.Storage, driverName string, dataSource string) (provider *SQLProvider) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil
	}

	logger := slog.With("component", "storage")

	return &SQLProvider{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Event configuration

const eventConfigID = "default"

func (p *SQLProvider) GetEventConfig(ctx context.Context) (*EventConfig, error) {
	var cfg EventConfig
	err := p.db.GetContext(ctx, &cfg, `SELECT * FROM event_config WHERE id = ?`, eventConfigID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (p *SQLProvider) UpdateEventConfig(ctx context.Context, cfg *EventConfig) error {
	cfg.ID = eventConfigID
	cfg.UpdatedAt = time.Now().UTC()
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE event_config SET
			event_title = :event_title,
			couple_name = :couple_name,
			event_date = :event_date,
			event_time = :event_time,
			event_address_full = :event_address_full,
			pix_receiver_name = :pix_receiver_name,
			pix_key = :pix_key,
			pix_qr_code_url = :pix_qr_code_url,
			delivery_address_full = :delivery_address_full,
			store_url = :store_url,
			updated_at = :updated_at
		WHERE id = :id`, cfg)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Gift items

func (p *SQLProvider) ListItems(ctx context.Context) ([]GiftItem, error) {
	items := []GiftItem{}
	err := p.db.SelectContext(ctx, &items, `SELECT * FROM gift_items ORDER BY created_at DESC`)
	return items, err
}

func (p *SQLProvider) ListItemsPublic(ctx context.Context) ([]GiftItemPublic, error) {
	items := []GiftItemPublic{}
	err := p.db.SelectContext(ctx, &items, `
		SELECT i.*,
			COALESCE(c.total, 0) AS contributed_cents,
			EXISTS(
				SELECT 1 FROM gift_reservations r
				WHERE r.item_id = i.id AND r.status = 'reserved'
			) AS is_reserved
		FROM gift_items i
		LEFT JOIN (
			SELECT item_id, SUM(amount_cents) AS total
			FROM gift_contributions
			WHERE item_id IS NOT NULL
			GROUP BY item_id
		) c ON c.item_id = i.id
		WHERE i.status != 'archived'
		ORDER BY i.created_at DESC`)
	return items, err
}

func (p *SQLProvider) GetItem(ctx context.Context, id string) (*GiftItem, error) {
	var item GiftItem
	err := p.db.GetContext(ctx, &item, `SELECT * FROM gift_items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (p *SQLProvider) CreateItem(ctx context.Context, item *GiftItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = ItemStatusActive
	}

	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO gift_items (
			id, title, description, image_url, store_url, category,
			price_suggested_cents, is_group_gift, goal_cents, status,
			created_at, updated_at
		) VALUES (
			:id, :title, :description, :image_url, :store_url, :category,
			:price_suggested_cents, :is_group_gift, :goal_cents, :status,
			:created_at, :updated_at
		)`, item)
	return err
}

func (p *SQLProvider) UpdateItem(ctx context.Context, item *GiftItem) error {
	item.UpdatedAt = time.Now().UTC()
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE gift_items SET
			title = :title,
			description = :description,
			image_url = :image_url,
			store_url = :store_url,
			category = :category,
			price_suggested_cents = :price_suggested_cents,
			is_group_gift = :is_group_gift,
			goal_cents = :goal_cents,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`, item)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *SQLProvider) DeleteItem(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM gift_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reservations

// ReserveItem creates the reservation in a single conditional INSERT so that
// the not-already-reserved check and the write cannot interleave with a
// concurrent caller. A partial unique index on (item_id) WHERE status =
// 'reserved' backstops the same invariant.
func (p *SQLProvider) ReserveItem(ctx context.Context, itemID, guestName string, isAnonymous bool) (*GiftReservation, error) {
	reservation := GiftReservation{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		GuestName:   guestName,
		IsAnonymous: isAnonymous,
		Status:      ReservationStatusReserved,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	res, err := p.db.ExecContext(ctx, `
		INSERT INTO gift_reservations (id, item_id, guest_name, is_anonymous, status, created_at, updated_at)
		SELECT ?, i.id, ?, ?, 'reserved', ?, ?
		FROM gift_items i
		WHERE i.id = ?
			AND i.status = 'active'
			AND i.is_group_gift = 0
			AND NOT EXISTS (
				SELECT 1 FROM gift_reservations r
				WHERE r.item_id = i.id AND r.status = 'reserved'
			)`,
		reservation.ID, reservation.GuestName, reservation.IsAnonymous,
		reservation.CreatedAt, reservation.UpdatedAt, itemID)
	if err != nil {
		// Two racers can both pass the NOT EXISTS subquery on some drivers;
		// the unique index rejects the loser.
		if isUniqueViolation(err, "gift_reservations") {
			return nil, ErrAlreadyReserved
		}
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return &reservation, nil
	}

	// Nothing inserted: figure out which precondition failed.
	item, err := p.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsGroupGift || item.Status != ItemStatusActive {
		return nil, ErrNotReservable
	}
	return nil, ErrAlreadyReserved
}

func (p *SQLProvider) GetReservation(ctx context.Context, id string) (*GiftReservation, error) {
	var reservation GiftReservation
	err := p.db.GetContext(ctx, &reservation, `SELECT * FROM gift_reservations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (p *SQLProvider) CancelReservation(ctx context.Context, id string) (*GiftReservation, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE gift_reservations
		SET status = 'cancelled', updated_at = ?
		WHERE id = ? AND status = 'reserved'`,
		time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either the row is gone or it was cancelled before us.
		reservation, err := p.GetReservation(ctx, id)
		if err != nil {
			return nil, err
		}
		if reservation.Status == ReservationStatusCancelled {
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("reservation %s in unexpected state %q", id, reservation.Status)
	}

	return p.GetReservation(ctx, id)
}

func (p *SQLProvider) ListReservationsByItem(ctx context.Context, itemID string) ([]GiftReservation, error) {
	reservations := []GiftReservation{}
	err := p.db.SelectContext(ctx, &reservations, `
		SELECT * FROM gift_reservations WHERE item_id = ? ORDER BY created_at DESC`, itemID)
	return reservations, err
}

// Contributions

func (p *SQLProvider) CreateContribution(ctx context.Context, c *GiftContribution) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()

	if c.ItemID != nil {
		// Item-tied contributions require an active group gift. General
		// contributions (nil item) skip the check.
		item, err := p.GetItem(ctx, *c.ItemID)
		if err != nil {
			return err
		}
		if !item.IsGroupGift {
			return ErrNotGroupGift
		}
		if item.Status != ItemStatusActive {
			return ErrNotReservable
		}
	}

	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO gift_contributions (id, item_id, guest_name, is_anonymous, amount_cents, created_at)
		VALUES (:id, :item_id, :guest_name, :is_anonymous, :amount_cents, :created_at)`, c)
	return err
}

func (p *SQLProvider) DeleteContribution(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM gift_contributions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *SQLProvider) ListContributionsByItem(ctx context.Context, itemID string) ([]GiftContribution, error) {
	contributions := []GiftContribution{}
	err := p.db.SelectContext(ctx, &contributions, `
		SELECT * FROM gift_contributions WHERE item_id = ? ORDER BY created_at DESC`, itemID)
	return contributions, err
}

func (p *SQLProvider) ContributedTotal(ctx context.Context, itemID string) (int64, error) {
	var total int64
	err := p.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM gift_contributions WHERE item_id = ?`, itemID)
	return total, err
}

// RSVP

func (p *SQLProvider) CreateRsvp(ctx context.Context, r *GuestRsvp) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().UTC()
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO guests_rsvp (id, guest_name, attending, companions_count, created_at)
		VALUES (:id, :guest_name, :attending, :companions_count, :created_at)`, r)
	return err
}

func (p *SQLProvider) ListRsvps(ctx context.Context) ([]GuestRsvp, error) {
	rsvps := []GuestRsvp{}
	err := p.db.SelectContext(ctx, &rsvps, `SELECT * FROM guests_rsvp ORDER BY created_at DESC`)
	return rsvps, err
}

func isUniqueViolation(err error, table string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), table)
}
