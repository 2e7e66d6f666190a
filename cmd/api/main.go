package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	httpadp "shareholder-backend/internal/adapter/http"
	mw "shareholder-backend/internal/adapter/middleware"
	"shareholder-backend/internal/adapter/repository/sqlrepo"
	"shareholder-backend/internal/agreement"
	"shareholder-backend/internal/config"
	"shareholder-backend/internal/infrastructure/assets"
	"shareholder-backend/internal/infrastructure/cache"
	"shareholder-backend/internal/infrastructure/db"
	"shareholder-backend/internal/infrastructure/logging"
	"shareholder-backend/internal/infrastructure/password"
	"shareholder-backend/internal/infrastructure/pdf"
	ucAgreement "shareholder-backend/internal/usecase/agreement"
	ucDividend "shareholder-backend/internal/usecase/dividend"
	ucPricing "shareholder-backend/internal/usecase/pricing"
	ucShareholder "shareholder-backend/internal/usecase/shareholder"
	ucStage "shareholder-backend/internal/usecase/stage"
)

func main() {
	cfg := config.Load()
	log := logging.Setup(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("gorm: underlying db: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlrepo.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// repositories
	shareholders := sqlrepo.NewShareholderRepository(gdb)
	stages := sqlrepo.NewStageRepository(gdb)
	dividends := sqlrepo.NewDividendRepository(gdb)
	prices := sqlrepo.NewPricingRepository(gdb)
	tx := sqlrepo.NewGormUoW(gdb)

	// usecases
	stageUC := ucStage.NewUsecase(stages, tx, log)
	hasher := password.NewBcrypt(cfg.BcryptCost, cfg.HashConcurrency)
	holderUC := ucShareholder.NewUsecase(shareholders, tx, hasher, stageUC, log)
	dividendUC := ucDividend.NewUsecase(shareholders, dividends, tx, ucDividend.NewMetrics(reg), log)
	pricingUC := ucPricing.NewUsecase(prices)
	renderer := agreement.NewRenderer(agreement.Branding{
		CompanyName:        cfg.CompanyName,
		Email:              cfg.CompanyEmail,
		Phone:              cfg.CompanyPhone,
		AuthoritySignature: cfg.AuthoritySignature,
	}, log)
	agreementUC := ucAgreement.NewUsecase(shareholders, dividends, stages, assets.NewDir(cfg.AssetsDir), renderer,
		func() agreement.Surface { return pdf.NewSurface() }, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = holderUC.EnsureAdmin(seedCtx, ucShareholder.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	cancelSeed()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.Recover(),
		middleware.BodyLimit("2M"),
		mw.RequestLogger(log),
		mw.Metrics(reg),
	)

	// routes
	httpadp.Register(e, httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"db":    httpadp.PingFunc(sqlDB.PingContext),
			"redis": httpadp.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		}),
		Shareholders: httpadp.NewShareholderHandler(holderUC, log),
		Stages:       httpadp.NewStageHandler(stageUC, log),
		Dividends:    httpadp.NewDividendHandler(dividendUC, log),
		Pricing:      httpadp.NewPricingHandler(pricingUC, log),
		Agreements:   httpadp.NewAgreementHandler(agreementUC, log),
	}, mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
