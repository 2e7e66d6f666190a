package id

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewRequestID_Format(t *testing.T) {
	got := NewRequestID()

	u, err := uuid.Parse(got)
	if err != nil {
		t.Fatalf("uuid.Parse(%q): %v", got, err)
	}
	if u.Version() != 4 {
		t.Fatalf("version = %d, want 4", u.Version())
	}
	if len(got) != 36 {
		t.Fatalf("length = %d, want 36 (got=%q)", len(got), got)
	}
}

func TestNewRequestID_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewRequestID()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestAgreementID(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	// 23:30 IST on 31 Dec is still 2025 in UTC
	if got := AgreementID(42, at); got != "AGR-2025-000042" {
		t.Fatalf("AgreementID = %q", got)
	}
	jan := time.Date(2026, 1, 1, 2, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	// 02:00 IST on 1 Jan is 2025 in UTC
	if got := AgreementID(1234567, jan); got != "AGR-2025-1234567" {
		t.Fatalf("AgreementID = %q", got)
	}
}
