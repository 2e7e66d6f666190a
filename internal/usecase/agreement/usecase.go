package agreement

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"shareholder-backend/internal/agreement"
	"shareholder-backend/internal/domain/dividend"
	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/stage"
	"shareholder-backend/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AssetLoader interface {
	Load(ctx context.Context, rel string) ([]byte, error)
}

type Rendered struct {
	Filename string
	Pages    int
	Data     []byte
}

type Usecase struct {
	shareholders shareholder.Repository
	dividends    dividend.Repository
	stages       stage.Repository
	assets       AssetLoader
	renderer     *agreement.Renderer
	newSurface   func() agreement.Surface
	log          logrus.FieldLogger
}

func NewUsecase(
	shareholders shareholder.Repository,
	dividends dividend.Repository,
	stages stage.Repository,
	assets AssetLoader,
	renderer *agreement.Renderer,
	newSurface func() agreement.Surface,
	log logrus.FieldLogger,
) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{
		shareholders: shareholders,
		dividends:    dividends,
		stages:       stages,
		assets:       assets,
		renderer:     renderer,
		newSurface:   newSurface,
		log:          log.WithField("component", "agreement"),
	}
}

func (u *Usecase) Render(ctx context.Context, shareholderID uint64) (*Rendered, error) {
	s, err := u.shareholders.GetByID(ctx, shareholderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shareholder.ErrNotFound
		}
		return nil, fmt.Errorf("get shareholder %d: %w", shareholderID, err)
	}

	divs, err := u.dividends.ListByShareholder(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list dividends: %w", err)
	}
	received := decimal.Zero
	for _, d := range divs {
		received = received.Add(d.NetAmount)
	}

	stageName, err := u.stageName(ctx, s.Stage)
	if err != nil {
		return nil, err
	}

	doc := agreement.Document{
		AgreementID:       id.AgreementID(s.ID, s.CreatedAt),
		SubmittedAt:       s.CreatedAt,
		Holder:            *s,
		StageName:         stageName,
		DividendsReceived: received,
		Photo:             u.image(ctx, s.ID, "photo", s.PhotoPath),
		Signature:         u.image(ctx, s.ID, "signature", s.SignaturePath),
	}

	surface := u.newSurface()
	pages, err := u.renderer.Render(surface, doc)
	if err != nil {
		return nil, fmt.Errorf("render agreement: %w", err)
	}
	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, fmt.Errorf("write agreement: %w", err)
	}

	u.log.WithFields(logrus.Fields{"shareholder_id": s.ID, "pages": pages}).Info("agreement rendered")
	return &Rendered{
		Filename: fmt.Sprintf("agreement-%s.pdf", s.Username),
		Pages:    pages,
		Data:     buf.Bytes(),
	}, nil
}

// stageName resolves the name of the stage the holder registered under.
func (u *Usecase) stageName(ctx context.Context, number int) (string, error) {
	st, err := u.stages.GetByNumber(ctx, number)
	switch {
	case err == nil:
		return st.Name, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if number == stage.FallbackStage {
			return stage.FallbackName, nil
		}
		return fmt.Sprintf("Stage %d", number), nil
	default:
		return "", fmt.Errorf("get stage %d: %w", number, err)
	}
}

// image loads and normalises an optional asset; any failure drops the image.
func (u *Usecase) image(ctx context.Context, holderID uint64, kind, rel string) *agreement.Image {
	if rel == "" {
		return nil
	}
	log := u.log.WithFields(logrus.Fields{"shareholder_id": holderID, "asset": kind, "path": rel})
	data, err := u.assets.Load(ctx, rel)
	if err != nil {
		log.WithError(err).Warn("asset unavailable, rendering without it")
		return nil
	}
	img, err := agreement.DecodeImage(data)
	if err != nil {
		log.WithError(err).Warn("asset unreadable, rendering without it")
		return nil
	}
	return &img
}
