package handlers

import (
	"net/http"
	"testing"

	"cred-vault.backend/internal/domain/entities"
)

func TestEkycHandler_StartAndLatest(t *testing.T) {
	r, store := newVaultRouter(false)
	user := store.seedUser("alice@mail.com")

	rec := perform(t, r, http.MethodPost, "/api/v1/ekyc/sessions", user.ID, map[string]interface{}{
		"provider": "provider-x",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var session entities.EkycSession
	decodeBody(t, rec, &session)
	if session.Status != entities.EkycStatusPending || session.Provider.String != "provider-x" {
		t.Fatalf("unexpected session: %+v", session)
	}

	rec = perform(t, r, http.MethodGet, "/api/v1/ekyc/sessions/latest", user.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var latest entities.EkycSession
	decodeBody(t, rec, &latest)
	if latest.ID != session.ID {
		t.Fatalf("latest mismatch: got %d want %d", latest.ID, session.ID)
	}
}

func TestEkycHandler_Latest_ReflectsNewestSession(t *testing.T) {
	r, store := newVaultRouter(false)
	user := store.seedUser("alice@mail.com")

	perform(t, r, http.MethodPost, "/api/v1/ekyc/sessions", user.ID, nil)
	rec := perform(t, r, http.MethodPost, "/api/v1/ekyc/sessions", user.ID, nil)
	var second entities.EkycSession
	decodeBody(t, rec, &second)

	rec = perform(t, r, http.MethodGet, "/api/v1/ekyc/sessions/latest", user.ID, nil)
	var latest entities.EkycSession
	decodeBody(t, rec, &latest)
	if latest.ID != second.ID {
		t.Fatalf("latest should be the newest session: got %d want %d", latest.ID, second.ID)
	}
}

func TestEkycHandler_RecordResult(t *testing.T) {
	r, store := newVaultRouter(false)
	user := store.seedUser("alice@mail.com")

	rec := perform(t, r, http.MethodPost, "/api/v1/ekyc/sessions", user.ID, nil)
	var session entities.EkycSession
	decodeBody(t, rec, &session)

	rec = perform(t, r, http.MethodPost,
		"/api/v1/webhooks/ekyc/sessions/2/result", 0, map[string]interface{}{
			"status":      "approved",
			"referenceId": "ref-1",
			"resultJson":  `{"score":0.99}`,
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated entities.EkycSession
	decodeBody(t, rec, &updated)
	if updated.Status != entities.EkycStatusApproved || updated.ReferenceID.String != "ref-1" {
		t.Fatalf("result not recorded: %+v", updated)
	}

	// Callback audit entry has no actor
	last := store.audit[len(store.audit)-1]
	if last.Action != entities.AuditActionEkycResult || last.UserID.Valid {
		t.Fatalf("unexpected audit entry: %+v", last)
	}
}

func TestEkycHandler_RecordResult_UnknownStatus(t *testing.T) {
	r, store := newVaultRouter(false)
	user := store.seedUser("alice@mail.com")
	perform(t, r, http.MethodPost, "/api/v1/ekyc/sessions", user.ID, nil)

	rec := perform(t, r, http.MethodPost,
		"/api/v1/webhooks/ekyc/sessions/2/result", 0, map[string]interface{}{
			"status": "verified",
		})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEkycHandler_Latest_NoSessions(t *testing.T) {
	r, store := newVaultRouter(false)
	user := store.seedUser("alice@mail.com")

	rec := perform(t, r, http.MethodGet, "/api/v1/ekyc/sessions/latest", user.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
