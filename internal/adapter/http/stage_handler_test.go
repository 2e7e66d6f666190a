package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	domain "shareholder-backend/internal/domain/stage"
	"shareholder-backend/internal/domain/uow"
	"shareholder-backend/internal/testutil/stagemock"
	"shareholder-backend/internal/testutil/uowmock"
	"shareholder-backend/internal/usecase/stage"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newStageHandler(repo *stagemock.Repo) *StageHandler {
	tx := uowmock.Passthrough(uow.Repos{Stages: repo})
	return NewStageHandler(stage.NewUsecase(repo, tx, quietLog()), quietLog())
}

func seedStages() []domain.Stage {
	return []domain.Stage{
		{Stage: 1, Name: "Seed", PricePerShare: decimal.NewFromInt(1000), MinSubscribers: 0, MaxSubscribers: 100, Status: domain.StatusSoldOut},
		{Stage: 2, Name: "Growth", PricePerShare: decimal.NewFromInt(1200), MinSubscribers: 100, MaxSubscribers: 500, Status: domain.StatusRunning},
		{Stage: 3, Name: "Open", PricePerShare: decimal.NewFromInt(1500), MinSubscribers: 500, Status: domain.StatusUpcoming},
	}
}

func TestStages_List(t *testing.T) {
	h := newStageHandler(&stagemock.Repo{ListFn: func(context.Context) ([]domain.Stage, error) { return seedStages(), nil }})

	rec := call(t, h.List, stdhttp.MethodGet, "/stages", nil)
	var all []domain.Stage
	if res := decodeResult(t, rec, &all); rec.Code != stdhttp.StatusOK || !res.Success || len(all) != 3 {
		t.Fatalf("code=%d res=%+v len=%d", rec.Code, res, len(all))
	}

	rec = call(t, h.List, stdhttp.MethodGet, "/stages?subscribers=750", nil)
	var applicable []domain.Stage
	decodeResult(t, rec, &applicable)
	if len(applicable) != 1 || applicable[0].Stage != 3 {
		t.Fatalf("open-ended band should hold 750: %+v", applicable)
	}

	rec = call(t, h.List, stdhttp.MethodGet, "/stages?subscribers=-1", nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("negative subscribers: status = %d, want 400", rec.Code)
	}
}

func TestStages_Running(t *testing.T) {
	tests := []struct {
		name      string
		running   []domain.Stage
		wantStage int
		wantName  string
		wantPrice string
	}{
		{"stored running stage", seedStages()[1:2], 2, "Growth", "1200"},
		{"fallback when none running", nil, domain.FallbackStage, domain.FallbackName, domain.FallbackPrice.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newStageHandler(&stagemock.Repo{ListRunningFn: func(context.Context) ([]domain.Stage, error) { return tt.running, nil }})
			rec := call(t, h.Running, stdhttp.MethodGet, "/stages/running", nil)
			var dto stage.RunningStageDTO
			if res := decodeResult(t, rec, &dto); rec.Code != stdhttp.StatusOK || !res.Success {
				t.Fatalf("code=%d res=%+v", rec.Code, res)
			}
			if dto.Stage != tt.wantStage || dto.Name != tt.wantName || !dto.PricePerShare.Equal(decimal.RequireFromString(tt.wantPrice)) {
				t.Fatalf("dto = %+v", dto)
			}
		})
	}
}

func TestStages_Upsert(t *testing.T) {
	var created *domain.Stage
	repo := &stagemock.Repo{
		CreateFn: func(_ context.Context, s *domain.Stage) error {
			created = s
			return nil
		},
	}
	h := newStageHandler(repo)

	body := mustJSON(map[string]any{"stage": 4, "name": "Late", "price_per_share": "1750.50", "max_subscribers": 900, "min_subscribers": 500})
	rec := call(t, h.Upsert, stdhttp.MethodPut, "/admin/stages", body)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Stage != 4 || !created.PricePerShare.Equal(decimal.RequireFromString("1750.5")) {
		t.Fatalf("created = %+v", created)
	}
}

func TestStages_UpsertDeclines(t *testing.T) {
	other := domain.Stage{Stage: 2, Status: domain.StatusRunning}
	repo := &stagemock.Repo{
		GetByNumberFn: func(_ context.Context, n int) (*domain.Stage, error) {
			if n == 3 {
				return &domain.Stage{Stage: 3, Name: "Open", Status: domain.StatusUpcoming}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		LockAllFn:     func(context.Context) ([]domain.Stage, error) { return []domain.Stage{other}, nil },
	}
	h := newStageHandler(repo)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{"second running stage", map[string]any{"stage": 3, "status": "RUNNING"}, stdhttp.StatusConflict, "stage_already_running"},
		{"unknown status", map[string]any{"stage": 3, "status": "PAUSED"}, stdhttp.StatusBadRequest, "stage_invalid_status"},
		{"create without name", map[string]any{"stage": 8, "price_per_share": 10}, stdhttp.StatusBadRequest, "stage_fields_required"},
		{"missing stage number", map[string]any{"name": "x"}, stdhttp.StatusUnprocessableEntity, "validation_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, h.Upsert, stdhttp.MethodPut, "/admin/stages", mustJSON(tt.body))
			if res := decodeResult(t, rec, nil); rec.Code != tt.wantCode || res.Code != tt.wantErr {
				t.Fatalf("code=%d res=%+v, want %d %s", rec.Code, res, tt.wantCode, tt.wantErr)
			}
		})
	}
}
