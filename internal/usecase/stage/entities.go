package stage

import (
	domain "shareholder-backend/internal/domain/stage"

	"github.com/shopspring/decimal"
)

// UpsertInput is keyed by Stage; nil fields are left untouched on update.
type UpsertInput struct {
	Stage           int
	Name            *string
	PricePerShare   *decimal.Decimal
	Status          *domain.Status
	SharesAvailable *int
	MinSubscribers  *int
	MaxSubscribers  *int
}

func (in UpsertInput) empty() bool {
	return in.Name == nil && in.PricePerShare == nil && in.Status == nil &&
		in.SharesAvailable == nil && in.MinSubscribers == nil && in.MaxSubscribers == nil
}

type RunningStageDTO struct {
	Stage         int             `json:"stage"`
	Name          string          `json:"name"`
	PricePerShare decimal.Decimal `json:"price_per_share"`
}

func toRunningDTO(r domain.RunningStage) RunningStageDTO {
	return RunningStageDTO{Stage: r.Number(), Name: r.Name(), PricePerShare: r.PricePerShare()}
}
