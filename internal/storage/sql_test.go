package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-registry/internal/config"
)

func newTestProvider(t *testing.T) *SQLiteProvider {
	t.Helper()

	p := NewSQLiteProvider(&config.Storage{SQLite: &config.SQLLiteStorage{Path: ":memory:"}})
	require.NotNil(t, p)

	// A second connection would get its own empty in-memory database.
	p.db.SetMaxOpenConns(1)

	require.NoError(t, p.runMigrations("sqlite3"))
	t.Cleanup(func() { p.Close() })
	return p
}

func newTestItem(t *testing.T, p *SQLiteProvider, groupGift bool) *GiftItem {
	t.Helper()

	item := &GiftItem{
		Title:               "Jogo de panelas",
		PriceSuggestedCents: 25000,
		IsGroupGift:         groupGift,
		Status:              ItemStatusActive,
	}
	if groupGift {
		goal := int64(200000)
		item.GoalCents = &goal
	}
	require.NoError(t, p.CreateItem(context.Background(), item))
	return item
}

func TestReserveItem(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	item := newTestItem(t, p, false)

	reservation, err := p.ReserveItem(ctx, item.ID, "Maria Silva", false)
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusReserved, reservation.Status)
	assert.Equal(t, item.ID, reservation.ItemID)

	// Second caller loses.
	_, err = p.ReserveItem(ctx, item.ID, "João Souza", false)
	assert.ErrorIs(t, err, ErrAlreadyReserved)
}

func TestReserveItemPreconditions(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.ReserveItem(ctx, "missing-id", "Maria", false)
	assert.ErrorIs(t, err, ErrNotFound)

	group := newTestItem(t, p, true)
	_, err = p.ReserveItem(ctx, group.ID, "Maria", false)
	assert.ErrorIs(t, err, ErrNotReservable)

	delivered := newTestItem(t, p, false)
	delivered.Status = ItemStatusDelivered
	require.NoError(t, p.UpdateItem(ctx, delivered))
	_, err = p.ReserveItem(ctx, delivered.ID, "Maria", false)
	assert.ErrorIs(t, err, ErrNotReservable)
}

// TestConcurrentReservations verifies that when many guests race for the
// same single-item gift, exactly one wins and the rest observe
// ErrAlreadyReserved.
func TestConcurrentReservations(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	item := newTestItem(t, p, false)

	const guests = 10

	var successCount atomic.Int32
	var conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			_, err := p.ReserveItem(ctx, item.ID, "Convidado "+string(rune('A'+n)), false)
			switch {
			case err == nil:
				successCount.Add(1)
			case err == ErrAlreadyReserved:
				conflictCount.Add(1)
			default:
				t.Errorf("unexpected reserve error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
	assert.Equal(t, int32(guests-1), conflictCount.Load())

	reservations, err := p.ListReservationsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
}

func TestCancelReservation(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	item := newTestItem(t, p, false)

	reservation, err := p.ReserveItem(ctx, item.ID, "Maria Silva", false)
	require.NoError(t, err)

	cancelled, err := p.CancelReservation(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusCancelled, cancelled.Status)
	assert.True(t, cancelled.UpdatedAt.After(cancelled.CreatedAt) || cancelled.UpdatedAt.Equal(cancelled.CreatedAt))

	// Terminal state.
	_, err = p.CancelReservation(ctx, reservation.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	_, err = p.CancelReservation(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)

	// A cancelled reservation frees the item.
	_, err = p.ReserveItem(ctx, item.ID, "João Souza", false)
	assert.NoError(t, err)
}

func TestContributions(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	goal := int64(2000)
	item := &GiftItem{Title: "Lua de mel", IsGroupGift: true, GoalCents: &goal, Status: ItemStatusActive}
	require.NoError(t, p.CreateItem(ctx, item))

	// Contributions may exceed the goal; storage keeps the full sum.
	for i := 0; i < 2; i++ {
		c := &GiftContribution{ItemID: &item.ID, GuestName: "Maria", AmountCents: 1500}
		require.NoError(t, p.CreateContribution(ctx, c))
	}

	total, err := p.ContributedTotal(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), total)

	public, err := p.ListItemsPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, int64(3000), public[0].ContributedCents)
	assert.Equal(t, 100, public[0].ProgressPercent())
}

func TestContributionPreconditions(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	single := newTestItem(t, p, false)
	err := p.CreateContribution(ctx, &GiftContribution{ItemID: &single.ID, GuestName: "Maria", AmountCents: 500})
	assert.ErrorIs(t, err, ErrNotGroupGift)

	missing := "missing-id"
	err = p.CreateContribution(ctx, &GiftContribution{ItemID: &missing, GuestName: "Maria", AmountCents: 500})
	assert.ErrorIs(t, err, ErrNotFound)

	// General contribution, not tied to any item.
	err = p.CreateContribution(ctx, &GiftContribution{GuestName: "Maria", AmountCents: 500})
	assert.NoError(t, err)
}

func TestListItemsPublic(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	reserved := newTestItem(t, p, false)
	open := newTestItem(t, p, false)

	archived := newTestItem(t, p, false)
	archived.Status = ItemStatusArchived
	require.NoError(t, p.UpdateItem(ctx, archived))

	_, err := p.ReserveItem(ctx, reserved.ID, "Maria", false)
	require.NoError(t, err)

	public, err := p.ListItemsPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2, "archived items are hidden")

	byID := map[string]GiftItemPublic{}
	for _, item := range public {
		byID[item.ID] = item
	}
	assert.True(t, byID[reserved.ID].IsReserved)
	assert.False(t, byID[open.ID].IsReserved)
}

func TestRsvp(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	require.NoError(t, p.CreateRsvp(ctx, &GuestRsvp{GuestName: "Maria Silva", Attending: true, CompanionsCount: 2}))
	require.NoError(t, p.CreateRsvp(ctx, &GuestRsvp{GuestName: "João Souza", Attending: false}))

	rsvps, err := p.ListRsvps(ctx)
	require.NoError(t, err)
	assert.Len(t, rsvps, 2)
}

func TestEventConfig(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	cfg, err := p.GetEventConfig(ctx)
	require.NoError(t, err, "migration seeds the default row")

	cfg.CoupleName = "Ana & Bruno"
	cfg.PixKey = "ana.bruno@example.com"
	require.NoError(t, p.UpdateEventConfig(ctx, cfg))

	got, err := p.GetEventConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana & Bruno", got.CoupleName)
	assert.Equal(t, "ana.bruno@example.com", got.PixKey)
}
