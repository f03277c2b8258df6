package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/internal/auth"
	"github.com/jpcarreras/garagehub-admin/internal/commission"
	"github.com/jpcarreras/garagehub-admin/internal/garages"
	"github.com/jpcarreras/garagehub-admin/internal/notifications"
	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/internal/payments"
	"github.com/jpcarreras/garagehub-admin/internal/points"
	"github.com/jpcarreras/garagehub-admin/internal/settlement"
	pkgAuth "github.com/jpcarreras/garagehub-admin/pkg/auth"
	"github.com/jpcarreras/garagehub-admin/pkg/auth/session"
	"github.com/jpcarreras/garagehub-admin/pkg/config"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return "refresh", nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubOwnersService struct{}

func (stubOwnersService) ResolveGarageOwner(ctx context.Context, garageID string) (owners.Info, error) {
	return owners.UnknownOwner(), nil
}

func (stubOwnersService) UpdateStatus(ctx context.Context, ownerID, rawStatus string) (owners.OwnerRef, enums.OwnerStatus, error) {
	return owners.OwnerRef{ID: ownerID, Type: enums.OwnerTypeGarageOwner}, enums.OwnerStatusActive, nil
}

type stubCommissionService struct{}

func (stubCommissionService) ApplyDefaultToAll(ctx context.Context) (commission.ApplyResult, error) {
	return commission.ApplyResult{}, nil
}

func (stubCommissionService) ApplyRateToAll(ctx context.Context, rate decimal.Decimal) (commission.ApplyResult, error) {
	return commission.ApplyResult{}, nil
}

type stubSettlementService struct{}

func (stubSettlementService) Backfill(ctx context.Context) (settlement.BackfillResult, error) {
	return settlement.BackfillResult{ProcessedCount: 2}, nil
}

func (stubSettlementService) TopOwners(ctx context.Context, limit int) ([]settlement.LeaderboardEntry, error) {
	return []settlement.LeaderboardEntry{}, nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) Refund(ctx context.Context, paymentID uuid.UUID) (payments.RefundResult, error) {
	return payments.RefundResult{PaymentID: paymentID}, nil
}

func (stubPaymentsService) Detail(ctx context.Context, paymentID uuid.UUID) (payments.Detail, error) {
	return payments.Detail{PaymentID: paymentID}, nil
}

type stubPointsService struct{}

func (stubPointsService) History(ctx context.Context, username string) (points.History, error) {
	return points.History{Username: username, Entries: []points.Entry{}}, nil
}

type stubGaragesService struct{}

func (stubGaragesService) Status(ctx context.Context, garageID uuid.UUID) (garages.Status, error) {
	return garages.Status{GarageID: garageID}, nil
}

func (stubGaragesService) SetVerified(ctx context.Context, garageID uuid.UUID, verified bool) error {
	return nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Badges(ctx context.Context) (notifications.BadgeCounts, error) {
	return notifications.BadgeCounts{Total: 1}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func newTestRouter(cfg *config.Config, registry *prometheus.Registry) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, stubPinger{}, stubSessionManager{}, registry, Services{
		Auth:          stubAuthService{},
		Owners:        stubOwnersService{},
		Commission:    stubCommissionService{},
		Settlement:    stubSettlementService{},
		Payments:      stubPaymentsService{},
		Points:        stubPointsService{},
		Garages:       stubGaragesService{},
		Notifications: stubNotificationsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AdminID:  uuid.New(),
		Username: "ops",
		Role:     pkgAuth.RoleAdmin,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsExposedWhenRegistryProvided(t *testing.T) {
	router := newTestRouter(testConfig(), prometheus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/admin/v1/actions"},
		{http.MethodGet, "/api/admin/v1/notifications/badges"},
		{http.MethodPost, "/api/admin/v1/settlement/backfill"},
		{http.MethodGet, "/api/admin/v1/payments/" + uuid.NewString()},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestProtectedRouteAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/notifications/badges", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestActionsEndpointDispatches(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/actions",
		strings.NewReader(`{"action":"backfill_profit_tracking"}`))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	unknown := httptest.NewRequest(http.MethodPost, "/api/admin/v1/actions",
		strings.NewReader(`{"action":"nope"}`))
	unknown.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, unknown)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login",
		strings.NewReader(`{"email":"ops@garagehub.app","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
