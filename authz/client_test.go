package authz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if got := r.Header.Get("X-Tenant-ID"); got != "t1" {
			t.Errorf("expected tenant header t1, got %q", got)
		}

		_ = json.NewEncoder(w).Encode(Snapshot{
			UserID:      "u1",
			IsSuperuser: true,
			RoleAssignments: []RoleAssignment{
				{UserID: "u1", RoleID: "admin", ResourceID: "org-1", ResourceType: "organization"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SnapshotURL: srv.URL, TenantID: "t1"})

	snap := c.Fetch(context.Background(), "at-1")
	if snap == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if !snap.IsSuperuser || len(snap.RoleAssignments) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestClientFetchNon2xxReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SnapshotURL: srv.URL})
	if snap := c.Fetch(context.Background(), "at-1"); snap != nil {
		t.Fatalf("expected nil snapshot on 403, got %+v", snap)
	}
}

func TestClientFetchMalformedBodyReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{SnapshotURL: srv.URL})
	if snap := c.Fetch(context.Background(), "at-1"); snap != nil {
		t.Fatalf("expected nil snapshot on malformed body, got %+v", snap)
	}
}

func TestClientFetchTimeoutReturnsNil(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(ClientConfig{
		SnapshotURL:  srv.URL,
		FetchTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	snap := c.Fetch(context.Background(), "at-1")
	if snap != nil {
		t.Fatalf("expected nil snapshot on timeout, got %+v", snap)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("fetch did not respect timeout, took %s", elapsed)
	}
}

func TestClientFetchWithoutTokenOrURL(t *testing.T) {
	c := NewClient(ClientConfig{SnapshotURL: "http://localhost:0"})
	if snap := c.Fetch(context.Background(), ""); snap != nil {
		t.Fatal("expected nil snapshot for empty access token")
	}

	c = NewClient(ClientConfig{})
	if snap := c.Fetch(context.Background(), "at-1"); snap != nil {
		t.Fatal("expected nil snapshot for unset URL")
	}
}

func TestStaleBoundaries(t *testing.T) {
	now := time.Now()
	ttl := 5 * time.Minute

	if !Stale(0, ttl, now) {
		t.Fatal("expected zero stamp to be stale")
	}
	if Stale(now.Add(-299*time.Second).Unix(), ttl, now) {
		t.Fatal("expected snapshot under TTL to be fresh")
	}
	if !Stale(now.Add(-301*time.Second).Unix(), ttl, now) {
		t.Fatal("expected snapshot over TTL to be stale")
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	snap := &Snapshot{
		UserID: "u1",
		PermissionOverrides: []PermissionOverride{
			{UserID: "u1", ResourceID: "doc-1", AllowActions: []string{"read"}},
		},
	}

	clone := snap.Clone()
	clone.PermissionOverrides[0].AllowActions[0] = "write"

	if snap.PermissionOverrides[0].AllowActions[0] != "read" {
		t.Fatal("clone mutation leaked into original")
	}

	var nilSnap *Snapshot
	if nilSnap.Clone() != nil {
		t.Fatal("expected nil clone for nil snapshot")
	}
}
