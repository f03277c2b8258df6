package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/internal/settlement"
)

func TestSettlementBackfillSuccess(t *testing.T) {
	svc := &testSettlementService{
		backfillFn: func(ctx context.Context) (settlement.BackfillResult, error) {
			return settlement.BackfillResult{ProcessedCount: 37}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/settlement/backfill", nil)
	resp := httptest.NewRecorder()
	SettlementBackfill(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data settlement.BackfillResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ProcessedCount != 37 {
		t.Fatalf("processed_count = %d", envelope.Data.ProcessedCount)
	}
}

func TestSettlementLeaderboardPassesLimit(t *testing.T) {
	svc := &testSettlementService{
		topOwnersFn: func(ctx context.Context, limit int) ([]settlement.LeaderboardEntry, error) {
			if limit != 3 {
				t.Fatalf("limit = %d", limit)
			}
			return []settlement.LeaderboardEntry{
				{OwnerID: "owner_big", DisplayName: "Big Garage", TotalProfit: decimal.RequireFromString("900.00")},
				{OwnerID: "user_side", DisplayName: "side", TotalProfit: decimal.RequireFromString("12.34")},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/settlement/leaderboard?limit=3", nil)
	resp := httptest.NewRecorder()
	SettlementLeaderboard(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Owners []settlement.LeaderboardEntry `json:"owners"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(envelope.Data.Owners))
	}
	if envelope.Data.Owners[0].DisplayName != "Big Garage" {
		t.Fatalf("unexpected ordering: %v", envelope.Data.Owners)
	}
}

func TestSettlementLeaderboardRejectsBadLimit(t *testing.T) {
	called := false
	svc := &testSettlementService{
		topOwnersFn: func(ctx context.Context, limit int) ([]settlement.LeaderboardEntry, error) {
			called = true
			return nil, nil
		},
	}

	for _, raw := range []string{"abc", "-1", "2.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/settlement/leaderboard?limit="+raw, nil)
		resp := httptest.NewRecorder()
		SettlementLeaderboard(svc, testLogger())(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: unexpected status %d", raw, resp.Code)
		}
	}
	if called {
		t.Fatal("service should not be reached with an invalid limit")
	}
}

func TestSettlementLeaderboardOmittedLimitDefers(t *testing.T) {
	svc := &testSettlementService{
		topOwnersFn: func(ctx context.Context, limit int) ([]settlement.LeaderboardEntry, error) {
			if limit != 0 {
				t.Fatalf("limit = %d, want 0 so the service applies its default", limit)
			}
			return []settlement.LeaderboardEntry{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/settlement/leaderboard", nil)
	resp := httptest.NewRecorder()
	SettlementLeaderboard(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
