package owners

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

type fakeRepository struct {
	findGarageFn            func(ctx context.Context, garageID uuid.UUID) (*models.Garage, error)
	findGarageOwnerFn       func(ctx context.Context, username string) (*models.GarageOwner, error)
	findUserOwnerFn         func(ctx context.Context, username string) (*models.User, error)
	listOwnerIDsFn          func(ctx context.Context) ([]string, error)
	updateGarageOwnerStatus func(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error)
	updateUserStatus        func(ctx context.Context, userID string, status enums.OwnerStatus) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) FindGarage(ctx context.Context, garageID uuid.UUID) (*models.Garage, error) {
	if f.findGarageFn != nil {
		return f.findGarageFn(ctx, garageID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindGarageOwnerByUsername(ctx context.Context, username string) (*models.GarageOwner, error) {
	if f.findGarageOwnerFn != nil {
		return f.findGarageOwnerFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindUserOwnerByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.findUserOwnerFn != nil {
		return f.findUserOwnerFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListOwnerIDs(ctx context.Context) ([]string, error) {
	if f.listOwnerIDsFn != nil {
		return f.listOwnerIDsFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) UpdateGarageOwnerStatus(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error) {
	if f.updateGarageOwnerStatus != nil {
		return f.updateGarageOwnerStatus(ctx, ownerID, status)
	}
	return 0, nil
}

func (f *fakeRepository) UpdateUserStatus(ctx context.Context, userID string, status enums.OwnerStatus) (int64, error) {
	if f.updateUserStatus != nil {
		return f.updateUserStatus(ctx, userID, status)
	}
	return 0, nil
}

func TestService_ResolveGarageOwnerGarageAccount(t *testing.T) {
	garageID := uuid.New()
	repo := &fakeRepository{
		findGarageFn: func(ctx context.Context, id uuid.UUID) (*models.Garage, error) {
			if id != garageID {
				t.Fatalf("unexpected garage id %s", id)
			}
			return &models.Garage{ID: garageID, Name: "Central Park Garage", OwnerUsername: "centralpark"}, nil
		},
		findGarageOwnerFn: func(ctx context.Context, username string) (*models.GarageOwner, error) {
			return &models.GarageOwner{ID: "owner_centralpark", Username: username}, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	info, err := svc.ResolveGarageOwner(context.Background(), garageID.String())
	if err != nil {
		t.Fatalf("ResolveGarageOwner error: %v", err)
	}
	if info.OwnerID == nil || *info.OwnerID != "owner_centralpark" {
		t.Fatalf("owner id = %v", info.OwnerID)
	}
	if info.GarageName != "Central Park Garage" || info.GarageOwnerUsername != "centralpark" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestService_ResolveGarageOwnerDualRoleFallback(t *testing.T) {
	garageID := uuid.New()
	repo := &fakeRepository{
		findGarageFn: func(ctx context.Context, id uuid.UUID) (*models.Garage, error) {
			return &models.Garage{ID: garageID, Name: "Dock 9", OwnerUsername: "maria"}, nil
		},
		findUserOwnerFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: "user_maria", Username: username, IsOwner: true}, nil
		},
	}
	svc, _ := NewService(repo)

	info, err := svc.ResolveGarageOwner(context.Background(), garageID.String())
	if err != nil {
		t.Fatalf("ResolveGarageOwner error: %v", err)
	}
	if info.OwnerID == nil || *info.OwnerID != "user_maria" {
		t.Fatalf("owner id = %v", info.OwnerID)
	}
}

func TestService_ResolveGarageOwnerSentinels(t *testing.T) {
	garageID := uuid.New()

	tests := []struct {
		name       string
		garageID   string
		repo       *fakeRepository
		wantGarage string
	}{
		{
			name:       "malformed garage id",
			garageID:   "not-a-uuid",
			repo:       &fakeRepository{},
			wantGarage: UnknownGarageName,
		},
		{
			name:       "missing garage",
			garageID:   uuid.NewString(),
			repo:       &fakeRepository{},
			wantGarage: UnknownGarageName,
		},
		{
			name:     "garage without owner rows",
			garageID: garageID.String(),
			repo: &fakeRepository{
				findGarageFn: func(ctx context.Context, id uuid.UUID) (*models.Garage, error) {
					return &models.Garage{ID: garageID, Name: "Orphan Lot", OwnerUsername: "ghost"}, nil
				},
			},
			wantGarage: "Orphan Lot",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := NewService(tc.repo)
			info, err := svc.ResolveGarageOwner(context.Background(), tc.garageID)
			if err != nil {
				t.Fatalf("resolution must not fail on missing data: %v", err)
			}
			if info.OwnerID != nil {
				t.Fatalf("owner id should be nil, got %v", *info.OwnerID)
			}
			if info.GarageName != tc.wantGarage {
				t.Fatalf("garage name = %q, want %q", info.GarageName, tc.wantGarage)
			}
			if info.GarageOwnerUsername != UnknownOwnerUsername {
				t.Fatalf("username = %q", info.GarageOwnerUsername)
			}
		})
	}
}

func TestService_ResolveGarageOwnerDependencyError(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := &fakeRepository{
		findGarageFn: func(ctx context.Context, id uuid.UUID) (*models.Garage, error) {
			return nil, dbErr
		},
	}
	svc, _ := NewService(repo)

	_, err := svc.ResolveGarageOwner(context.Background(), uuid.NewString())
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected db error to bubble up, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestService_UpdateStatusRouting(t *testing.T) {
	var garageOwnerCalls, userCalls int
	repo := &fakeRepository{
		updateGarageOwnerStatus: func(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error) {
			garageOwnerCalls++
			if ownerID != "owner_centralpark" || status != enums.OwnerStatusSuspended {
				t.Fatalf("unexpected update: %s %s", ownerID, status)
			}
			return 1, nil
		},
		updateUserStatus: func(ctx context.Context, userID string, status enums.OwnerStatus) (int64, error) {
			userCalls++
			if userID != "user_maria" || status != enums.OwnerStatusInactive {
				t.Fatalf("unexpected update: %s %s", userID, status)
			}
			return 1, nil
		},
	}
	svc, _ := NewService(repo)

	ref, status, err := svc.UpdateStatus(context.Background(), "owner_centralpark", "suspended")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if ref.Type != enums.OwnerTypeGarageOwner || status != enums.OwnerStatusSuspended {
		t.Fatalf("unexpected result: %+v %s", ref, status)
	}

	// display label routed to the users table
	ref, status, err = svc.UpdateStatus(context.Background(), "user_maria", "Deactivated")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if ref.Type != enums.OwnerTypeUserOwner || status != enums.OwnerStatusInactive {
		t.Fatalf("unexpected result: %+v %s", ref, status)
	}

	if garageOwnerCalls != 1 || userCalls != 1 {
		t.Fatalf("routing mismatch: garage=%d user=%d", garageOwnerCalls, userCalls)
	}
}

func TestService_UpdateStatusErrors(t *testing.T) {
	repo := &fakeRepository{
		updateGarageOwnerStatus: func(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error) {
			return 0, nil
		},
	}
	svc, _ := NewService(repo)

	if _, _, err := svc.UpdateStatus(context.Background(), "acct_9", "active"); err == nil {
		t.Fatal("expected error for unknown prefix")
	}
	if _, _, err := svc.UpdateStatus(context.Background(), "owner_x", "banished"); err == nil {
		t.Fatal("expected error for unknown status")
	}

	_, _, err := svc.UpdateStatus(context.Background(), "owner_ghost", "active")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for zero rows, got %v", err)
	}
}
