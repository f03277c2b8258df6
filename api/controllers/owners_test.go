package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

func TestGarageOwnerResolveSuccess(t *testing.T) {
	garageID := uuid.NewString()
	ownerID := "owner_centralpark"
	svc := &testOwnersService{
		resolveFn: func(ctx context.Context, id string) (owners.Info, error) {
			if id != garageID {
				t.Fatalf("unexpected garage id %s", id)
			}
			return owners.Info{
				OwnerID:             &ownerID,
				GarageName:          "Central Park Garage",
				GarageOwnerUsername: "centralpark",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/garages/"+garageID+"/owner", nil)
	req = addRouteParam(req, "garageId", garageID)
	resp := httptest.NewRecorder()
	GarageOwnerResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data owners.Info `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.OwnerID == nil || *envelope.Data.OwnerID != ownerID {
		t.Fatalf("unexpected owner id: %v", envelope.Data.OwnerID)
	}
	if envelope.Data.GarageOwnerUsername != "centralpark" {
		t.Fatalf("unexpected username %s", envelope.Data.GarageOwnerUsername)
	}
}

func TestGarageOwnerResolveUnknownGarage(t *testing.T) {
	svc := &testOwnersService{
		resolveFn: func(ctx context.Context, id string) (owners.Info, error) {
			return owners.UnknownOwner(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/garages/bogus/owner", nil)
	req = addRouteParam(req, "garageId", "bogus")
	resp := httptest.NewRecorder()
	GarageOwnerResolve(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data owners.Info `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.OwnerID != nil {
		t.Fatalf("expected nil owner id, got %v", *envelope.Data.OwnerID)
	}
	if envelope.Data.GarageName != owners.UnknownGarageName {
		t.Fatalf("unexpected garage name %s", envelope.Data.GarageName)
	}
}

func TestOwnerUpdateStatusSuccess(t *testing.T) {
	svc := &testOwnersService{
		updateStatusFn: func(ctx context.Context, ownerID, rawStatus string) (owners.OwnerRef, enums.OwnerStatus, error) {
			if ownerID != "user_pedro" || rawStatus != "active" {
				t.Fatalf("unexpected args: %s %s", ownerID, rawStatus)
			}
			return owners.OwnerRef{ID: ownerID, Type: enums.OwnerTypeUserOwner, Username: "pedro"},
				enums.OwnerStatusActive, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/owners/user_pedro/status",
		strings.NewReader(`{"status":"active"}`))
	req = addRouteParam(req, "ownerId", "user_pedro")
	resp := httptest.NewRecorder()
	OwnerUpdateStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["owner_type"] != "user_owner" || envelope.Data["status"] != "active" {
		t.Fatalf("unexpected payload: %v", envelope.Data)
	}
}

func TestOwnerUpdateStatusMissingBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/owners/user_pedro/status",
		strings.NewReader(`{}`))
	req = addRouteParam(req, "ownerId", "user_pedro")
	resp := httptest.NewRecorder()
	OwnerUpdateStatus(&testOwnersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestOwnerUpdateStatusNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/owners/owner_ghost/status",
		strings.NewReader(`{"status":"suspended"}`))
	req = addRouteParam(req, "ownerId", "owner_ghost")
	resp := httptest.NewRecorder()
	OwnerUpdateStatus(&testOwnersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
