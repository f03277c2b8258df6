package points

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

type fakeRepository struct {
	user      *models.User
	rows      []models.PointsTransaction
	listLimit int
	listErr   error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeRepository) ListRecentByUsername(ctx context.Context, username string, limit int) ([]models.PointsTransaction, error) {
	f.listLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func TestService_History(t *testing.T) {
	bookingID := uuid.New()
	repo := &fakeRepository{
		user: &models.User{ID: "user_maria", Username: "maria", PointsBalance: 340},
		rows: []models.PointsTransaction{
			{
				ID:          uuid.New(),
				Username:    "maria",
				Type:        enums.PointsTransactionTypeEarned,
				Amount:      40,
				Description: "booking completed",
				BookingID:   &bookingID,
				CreatedAt:   time.Now(),
			},
			{
				ID:          uuid.New(),
				Username:    "maria",
				Type:        enums.PointsTransactionTypeSpent,
				Amount:      -100,
				Description: "discount applied",
				CreatedAt:   time.Now().Add(-time.Hour),
			},
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	history, err := svc.History(context.Background(), "maria")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if history.Username != "maria" || history.Balance != 340 {
		t.Fatalf("unexpected history header: %+v", history)
	}
	if len(history.Entries) != 2 {
		t.Fatalf("entries = %d", len(history.Entries))
	}
	if history.Entries[0].BookingID == nil || *history.Entries[0].BookingID != bookingID {
		t.Fatalf("booking id missing from entry")
	}
	if repo.listLimit != 20 {
		t.Fatalf("list limit = %d, want 20", repo.listLimit)
	}
}

func TestService_HistoryEmptyLedger(t *testing.T) {
	repo := &fakeRepository{user: &models.User{Username: "maria", PointsBalance: 0}}
	svc, _ := NewService(repo)

	history, err := svc.History(context.Background(), "maria")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if history.Entries == nil || len(history.Entries) != 0 {
		t.Fatalf("entries should be an empty slice, got %v", history.Entries)
	}
}

func TestService_HistoryErrors(t *testing.T) {
	svc, _ := NewService(&fakeRepository{})

	if _, err := svc.History(context.Background(), ""); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for empty username")
	}

	_, err := svc.History(context.Background(), "ghost")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	listErr := errors.New("timeout")
	svc, _ = NewService(&fakeRepository{
		user:    &models.User{Username: "maria"},
		listErr: listErr,
	})
	if _, err := svc.History(context.Background(), "maria"); !errors.Is(err, listErr) {
		t.Fatalf("expected list error to bubble up, got %v", err)
	}
}
