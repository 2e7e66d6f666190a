package shareholdermock

import (
	"context"
	"errors"
	"testing"

	domain "shareholder-backend/internal/domain/shareholder"

	"gorm.io/gorm"
)

func TestRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Shareholder{ID: 9}

	called := false
	m := &Repo{
		GetByIDFn: func(gotCtx context.Context, id uint64) (*domain.Shareholder, error) {
			called = true
			if gotCtx != ctx || id != 9 {
				t.Fatalf("GetByID args mismatch: id=%d", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByID(ctx, 9)
	if err != nil || got != want || !called {
		t.Fatalf("GetByID: got %+v, %v (called=%v)", got, err, called)
	}

	// ForUpdate falls through to GetByIDFn when unset
	got, err = m.GetByIDForUpdate(ctx, 9)
	if err != nil || got != want {
		t.Fatalf("GetByIDForUpdate fallthrough: got %+v, %v", got, err)
	}

	// Default (nil func) → not found
	m = &Repo{}
	if _, err := m.GetByID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID default: want ErrRecordNotFound, got %v", err)
	}
	if _, err := m.GetByUsername(ctx, "x"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByUsername default: want ErrRecordNotFound, got %v", err)
	}
}

func TestRepo_ListApprovedFallsBackToList(t *testing.T) {
	var gotStatus domain.Status
	m := &Repo{
		ListFn: func(_ context.Context, status domain.Status) ([]domain.Shareholder, error) {
			gotStatus = status
			return []domain.Shareholder{{ID: 1}}, nil
		},
	}
	out, err := m.ListApproved(context.Background())
	if err != nil || len(out) != 1 {
		t.Fatalf("ListApproved: got %v, %v", out, err)
	}
	if gotStatus != domain.StatusApproved {
		t.Fatalf("ListApproved passed status %q", gotStatus)
	}
}

func TestRepo_Writers(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	m := &Repo{
		UpdateFn: func(_ context.Context, id uint64, fields map[string]any) error {
			if id != 3 || fields["username"] != "new" {
				t.Fatalf("Update args mismatch: %d %v", id, fields)
			}
			return wantErr
		},
	}
	if err := m.Update(ctx, 3, map[string]any{"username": "new"}); !errors.Is(err, wantErr) {
		t.Fatalf("Update: want %v, got %v", wantErr, err)
	}
	if err := m.Create(ctx, &domain.Shareholder{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := m.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete default: want nil, got %v", err)
	}
}
