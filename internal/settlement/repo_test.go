package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

func setupSettlementTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	bookings := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  garage_id TEXT NOT NULL,
  customer_username TEXT NOT NULL,
  vehicle_plate TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  start_time DATETIME NOT NULL,
  end_time DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	payments := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  booking_id TEXT NOT NULL UNIQUE,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  method TEXT NOT NULL DEFAULT 'card',
  created_at DATETIME,
  updated_at DATETIME
);`
	profitTracking := `
CREATE TABLE IF NOT EXISTS profit_tracking (
  id TEXT PRIMARY KEY,
  payment_id TEXT NOT NULL UNIQUE,
  owner_id TEXT,
  garage_id TEXT,
  garage_name TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  commission_rate NUMERIC NOT NULL,
  owner_profit NUMERIC NOT NULL,
  platform_profit NUMERIC NOT NULL,
  created_at DATETIME
);`
	ownerCommissions := `
CREATE TABLE IF NOT EXISTS owner_commissions (
  owner_id TEXT PRIMARY KEY,
  owner_type TEXT NOT NULL,
  rate NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(bookings).Error)
	require.NoError(t, db.Exec(payments).Error)
	require.NoError(t, db.Exec(profitTracking).Error)
	require.NoError(t, db.Exec(ownerCommissions).Error)
	return db
}

func newPaidPayment(t *testing.T, db *gorm.DB, garageID uuid.UUID, amount string, status string) *models.Payment {
	t.Helper()

	booking := &models.Booking{
		ID:               uuid.New(),
		GarageID:         garageID,
		CustomerUsername: "driver",
		VehiclePlate:     "AB-123-CD",
		StartTime:        time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(booking).Error)

	payment := &models.Payment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Amount:    decimal.RequireFromString(amount),
		Status:    enums.PaymentStatus(status),
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func trackPayment(t *testing.T, db *gorm.DB, paymentID uuid.UUID, ownerID string, ownerProfit string) {
	t.Helper()

	var owner *string
	if ownerID != "" {
		owner = &ownerID
	}
	record := &models.ProfitTracking{
		ID:             uuid.New(),
		PaymentID:      paymentID,
		OwnerID:        owner,
		GarageName:     "Test Garage",
		TotalAmount:    decimal.RequireFromString("100.00"),
		CommissionRate: decimal.RequireFromString("30.0"),
		OwnerProfit:    decimal.RequireFromString(ownerProfit),
		PlatformProfit: decimal.RequireFromString("100.00").Sub(decimal.RequireFromString(ownerProfit)),
	}
	require.NoError(t, db.Create(record).Error)
}

func TestRepository_ListUntrackedPaidPayments(t *testing.T) {
	db := setupSettlementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	garageID := uuid.New()
	paid := newPaidPayment(t, db, garageID, "50.00", "paid")
	newPaidPayment(t, db, garageID, "25.00", "pending")
	newPaidPayment(t, db, garageID, "15.00", "failed")
	tracked := newPaidPayment(t, db, garageID, "75.00", "paid")
	trackPayment(t, db, tracked.ID, "owner_a", "52.50")

	rows, err := repo.ListUntrackedPaidPayments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, paid.ID, rows[0].PaymentID)
	assert.Equal(t, garageID, rows[0].GarageID)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("50.00")))

	// Once tracked, the payment drops out of the pending set.
	trackPayment(t, db, paid.ID, "owner_a", "35.00")
	rows, err = repo.ListUntrackedPaidPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepository_CreateProfitTrackingRejectsDuplicate(t *testing.T) {
	db := setupSettlementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	payment := newPaidPayment(t, db, uuid.New(), "40.00", "paid")
	ownerID := "owner_a"
	record := &models.ProfitTracking{
		ID:             uuid.New(),
		PaymentID:      payment.ID,
		OwnerID:        &ownerID,
		GarageName:     "Test Garage",
		TotalAmount:    decimal.RequireFromString("40.00"),
		CommissionRate: decimal.RequireFromString("30.0"),
		OwnerProfit:    decimal.RequireFromString("28.00"),
		PlatformProfit: decimal.RequireFromString("12.00"),
	}
	require.NoError(t, repo.CreateProfitTracking(ctx, record))

	duplicate := *record
	duplicate.ID = uuid.New()
	assert.Error(t, repo.CreateProfitTracking(ctx, &duplicate))
}

func TestRepository_FindOwnerCommission(t *testing.T) {
	db := setupSettlementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		`INSERT INTO owner_commissions (owner_id, owner_type, rate) VALUES (?, ?, ?)`,
		"owner_a", "garage_owner", "15.5",
	).Error)

	commission, err := repo.FindOwnerCommission(ctx, "owner_a")
	require.NoError(t, err)
	assert.True(t, commission.Rate.Equal(decimal.RequireFromString("15.5")))

	_, err = repo.FindOwnerCommission(ctx, "owner_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_TopOwnersByProfit(t *testing.T) {
	db := setupSettlementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	garageID := uuid.New()
	for _, row := range []struct {
		owner  string
		profit string
	}{
		{"owner_big", "70.00"},
		{"owner_big", "30.00"},
		{"user_maria", "45.00"},
		{"owner_refunded", "-10.00"},
		{"", "20.00"},
	} {
		payment := newPaidPayment(t, db, garageID, "100.00", "paid")
		trackPayment(t, db, payment.ID, row.owner, row.profit)
	}

	rows, err := repo.TopOwnersByProfit(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "owner_big", rows[0].OwnerID)
	assert.True(t, rows[0].TotalProfit.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, int64(2), rows[0].TransactionCount)
	assert.True(t, rows[0].TotalRevenue.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, "Test Garage", rows[0].GarageName)
	assert.Equal(t, "user_maria", rows[1].OwnerID)

	limited, err := repo.TopOwnersByProfit(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "owner_big", limited[0].OwnerID)
}

func TestRepository_TopOwnersByProfitSkipsNegativeRows(t *testing.T) {
	db := setupSettlementTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	garageID := uuid.New()
	for _, profit := range []string{"50.00", "-5.00"} {
		payment := newPaidPayment(t, db, garageID, "100.00", "paid")
		trackPayment(t, db, payment.ID, "owner_mixed", profit)
	}

	rows, err := repo.TopOwnersByProfit(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Only the earning rows count; the negative row is excluded rather than
	// subtracted from the total.
	assert.True(t, rows[0].TotalProfit.Equal(decimal.RequireFromString("50.00")),
		"total = %s", rows[0].TotalProfit)
	assert.Equal(t, int64(1), rows[0].TransactionCount)
	assert.True(t, rows[0].TotalRevenue.Equal(decimal.RequireFromString("100.00")))
}
