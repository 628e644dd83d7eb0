package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kettno/courier-portal/pkg/models"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login request must not carry an Authorization header")
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["username"] != "clerk1" || creds["password"] != "pw" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login("clerk1", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", token)
	}
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login("clerk1", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListTowns("tok")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Message != "request failed" {
		t.Errorf("expected generic fallback message, got %q", apiErr.Message)
	}
}

func TestBearerTokenOnAuthenticatedCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.Town{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.ListTowns("tok-abc"); err != nil {
		t.Fatalf("list towns: %v", err)
	}
}

func TestListParcelsByStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parcels/by-status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "registered" {
			t.Errorf("expected status=registered, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.Parcel{{TrackingNumber: "TRK1", Status: models.StatusRegistered}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	parcels, err := c.ListParcelsByStatus("tok", models.StatusRegistered)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(parcels) != 1 || parcels[0].TrackingNumber != "TRK1" {
		t.Errorf("unexpected parcels: %+v", parcels)
	}
}

func TestListParcelsByStatusRejectsUnknownValue(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.ListParcelsByStatus("tok", "pending"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if called {
		t.Error("no request should be issued for an unknown status")
	}
}

func TestUpdateParcelStatusRejectsUnknownValue(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.UpdateParcelStatus("tok", "TRK1", "lost"); err == nil {
		t.Fatal("expected error for status outside the lifecycle set")
	}
	if called {
		t.Error("invalid status must be rejected before any network call")
	}
}

func TestUpdateParcelStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/parcels/TRK123/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "delivered" {
			t.Errorf("expected status delivered, got %q", body["status"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.UpdateParcelStatus("tok", "TRK123", models.StatusDelivered); err != nil {
		t.Fatalf("update status: %v", err)
	}
}

func TestManifestQueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from_date") != "2024-01-01" || q.Get("to_date") != "2024-01-31" {
			t.Errorf("unexpected date range: %v", q)
		}
		if q.Get("town_id") != "3" {
			t.Errorf("expected town_id=3, got %q", q.Get("town_id"))
		}
		json.NewEncoder(w).Encode([]models.Parcel{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Manifest("tok", "2024-01-01", "2024-01-31", 3); err != nil {
		t.Fatalf("manifest: %v", err)
	}
}

func TestManifestOmitsZeroTownID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["town_id"]; ok {
			t.Error("town_id should be omitted when zero (all offices)")
		}
		json.NewEncoder(w).Encode([]models.Parcel{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Manifest("tok", "2024-01-01", "2024-01-31", 0); err != nil {
		t.Fatalf("manifest: %v", err)
	}
}

func TestToggleOfficialStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/officials/7/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Official{ID: 7, Status: models.OfficialInactive})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	official, err := c.ToggleOfficialStatus("tok", 7)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if official.Status != models.OfficialInactive {
		t.Errorf("expected inactive after toggle, got %q", official.Status)
	}
}

func TestEmptyParcelListIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Parcel{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	parcels, err := c.ListParcels("tok")
	if err != nil {
		t.Fatalf("empty list must not error: %v", err)
	}
	if len(parcels) != 0 {
		t.Errorf("expected empty list, got %d", len(parcels))
	}
}
