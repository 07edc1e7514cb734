package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatal(err)
		}
		if creds["email"] != "ana@example.com" || creds["password"] != "secret" {
			t.Errorf("credentials = %v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	tok, err := c.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if tok != "tok-123" {
		t.Errorf("token = %q", tok)
	}
	if c.token != "tok-123" {
		t.Error("token was not installed on the client")
	}
}

func TestActiveReservationsSendsBearerAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/api/reservations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("mine") != "1" || q.Get("status") != "active" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`[{"_id":"r1","status":"active","startTime":"2026-03-10T12:00:00Z","endTime":"2026-03-10T13:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	list, err := c.ActiveReservations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "r1" {
		t.Fatalf("list = %+v", list)
	}
}

func TestCancelReservationConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/reservations/r1" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "reservation already ended"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	err := c.CancelReservation(context.Background(), "r1")
	if !errors.Is(err, ErrReservationEnded) {
		t.Fatalf("err = %v, want ErrReservationEnded", err)
	}
}

func TestCreateReservationConflictIsNotEnded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "slot is not available for the requested interval"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	_, err := c.CreateReservation(context.Background(), "s1", "2026-03-10T12:00:00Z", "2026-03-10T13:00:00Z")
	if err == nil {
		t.Fatal("expected an error for the slot conflict")
	}
	if errors.Is(err, ErrReservationEnded) {
		t.Error("a create-time slot conflict must not read as an ended reservation")
	}
}

func TestCreateReservationBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		want := map[string]string{
			"slotId":    "s1",
			"startTime": "2026-03-10T12:00:00Z",
			"endTime":   "2026-03-10T13:00:00Z",
		}
		for k, v := range want {
			if req[k] != v {
				t.Errorf("%s = %q, want %q", k, req[k], v)
			}
		}
		_, _ = w.Write([]byte(`{"_id":"r9","status":"active","startTime":"2026-03-10T12:00:00Z","endTime":"2026-03-10T13:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	res, err := c.CreateReservation(context.Background(), "s1", "2026-03-10T12:00:00Z", "2026-03-10T13:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if res.ID != "r9" {
		t.Errorf("id = %q", res.ID)
	}
}

func TestErrorBodySurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "endTime must be after startTime"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.CreateReservation(context.Background(), "s1", "x", "y")
	if err == nil || err.Error() != "POST /api/reservations: endTime must be after startTime" {
		t.Fatalf("err = %v", err)
	}
}

func TestSlotRefUnmarshalBothShapes(t *testing.T) {
	var bare Reservation
	if err := json.Unmarshal([]byte(`{"_id":"r1","slotId":"s7","startTime":"a","endTime":"b","status":"active"}`), &bare); err != nil {
		t.Fatal(err)
	}
	if bare.SlotID == nil || bare.SlotID.ID != "s7" || bare.SlotID.Slot != nil {
		t.Errorf("bare id parse = %+v", bare.SlotID)
	}
	if bare.SlotInfo() != nil {
		t.Error("SlotInfo should be nil for a bare id reference")
	}

	var embedded Reservation
	raw := `{"_id":"r2","slot":{"_id":"s8","slotCode":"A-12","zone":"North","type":"car","status":"active"},"startTime":"a","endTime":"b","status":"active"}`
	if err := json.Unmarshal([]byte(raw), &embedded); err != nil {
		t.Fatal(err)
	}
	info := embedded.SlotInfo()
	if info == nil || info.SlotCode != "A-12" || info.Zone != "North" {
		t.Errorf("embedded parse = %+v", info)
	}
	if embedded.Slot.ID != "s8" {
		t.Errorf("ref id = %q, want the embedded document's id", embedded.Slot.ID)
	}
}
