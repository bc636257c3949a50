package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/backup"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/reconcile"
	"github.com/dailycount/stockledger-service/internal/sanitize"
	"github.com/dailycount/stockledger-service/internal/snapshot"
	"github.com/dailycount/stockledger-service/internal/snapshot/dto"
	"github.com/dailycount/stockledger-service/pkg/cache"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
)

// Config carries the ledger bounds the usecase enforces.
type Config struct {
	MaxQuantity float64
	SaveLockTTL time.Duration
}

type snapshotUseCase struct {
	repo    snapshot.Repository
	orders  snapshot.OrderSource
	catalog snapshot.CatalogSource
	retrier *retry.Controller
	backups *backup.Cache
	cache   *cache.RedisClient
	cfg     Config
	now     func() time.Time
	logger  logger.ZapLogger
}

func NewSnapshotUseCase(
	repo snapshot.Repository,
	orders snapshot.OrderSource,
	catalogSrc snapshot.CatalogSource,
	retrier *retry.Controller,
	backups *backup.Cache,
	cacheClient *cache.RedisClient,
	cfg Config,
	log logger.ZapLogger,
) snapshot.UseCase {
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = sanitize.DefaultMaxQuantity
	}
	if cfg.SaveLockTTL <= 0 {
		cfg.SaveLockTTL = 30 * time.Second
	}
	return &snapshotUseCase{
		repo:    repo,
		orders:  orders,
		catalog: catalogSrc,
		retrier: retrier,
		backups: backups,
		cache:   cacheClient,
		cfg:     cfg,
		now:     time.Now,
		logger:  log,
	}
}

func (uc *snapshotUseCase) Get(ctx context.Context, storeID, date string) (*model.StockSnapshot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	snap, err := uc.repo.Get(ctx, storeID, date)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load snapshot", err)
	}
	if snap == nil {
		return nil, errs.Newf(errs.KindNotFound, "load snapshot", "no snapshot for store %q on %s", storeID, date)
	}
	return snap, nil
}

func (uc *snapshotUseCase) Put(ctx context.Context, input *dto.PutSnapshotInput) (*dto.PutSnapshotResult, error) {
	recordedBy := auth.UserID(ctx)
	if recordedBy == "" {
		return nil, errs.New(errs.KindAuth, "save snapshot", "a signed-in user is required to record stock")
	}

	res := sanitize.Snapshot(input.Quantities, uc.cfg.MaxQuantity)
	return uc.save(ctx, input.StoreID, input.Date, res.Quantities, recordedBy, res.Warnings)
}

func (uc *snapshotUseCase) RecoverBackup(ctx context.Context, storeID, date string) (*dto.PutSnapshotResult, error) {
	entry, ok := uc.backups.Get(storeID, date)
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "recover snapshot", "no local backup for store %q on %s", storeID, date)
	}
	// The backup already went through sanitization on the original attempt;
	// the original enterer stays on record.
	return uc.save(ctx, storeID, date, entry.Quantities, entry.RecordedBy, nil)
}

func (uc *snapshotUseCase) save(ctx context.Context, storeID, date string, quantities map[string]float64, recordedBy string, warnings []string) (*dto.PutSnapshotResult, error) {
	if storeID == "" {
		return nil, errs.New(errs.KindValidation, "save snapshot", "store id is required")
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if parsed, _ := time.Parse(model.DateLayout, date); parsed.After(uc.now()) {
		return nil, errs.Newf(errs.KindValidation, "save snapshot", "stock date %s is in the future", date)
	}

	nonZero := 0
	for _, qty := range quantities {
		if qty > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return nil, errs.New(errs.KindBusinessRule, "save snapshot", "refusing to save an empty stock entry: count at least one item")
	}

	unlock, err := uc.lock(ctx, storeID, date)
	if err != nil {
		return nil, err
	}
	defer unlock()

	snap := &model.StockSnapshot{
		StoreID:    storeID,
		StockDate:  date,
		Quantities: model.QuantityMap(quantities).Clone(),
		RecordedBy: recordedBy,
		RecordedAt: uc.now(),
	}

	if err := uc.retrier.Do(ctx, "save snapshot", func(ctx context.Context) error {
		return uc.repo.Upsert(ctx, snap)
	}); err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			uc.backups.Put(backup.Entry{
				StoreID:    storeID,
				StockDate:  date,
				Kind:       "snapshot",
				Quantities: snap.Quantities,
				RecordedBy: recordedBy,
			})
			uc.logger.Warn("snapshot save exhausted retries, payload stashed locally",
				zap.String("store_id", storeID),
				zap.String("date", date))
			return nil, errs.Wrap(errs.KindTransient,
				"snapshot saved to local backup, retry when online", err)
		}
		return nil, err
	}

	// A durable save supersedes any stranded payload for the same key.
	uc.backups.Delete(storeID, date)

	return &dto.PutSnapshotResult{Snapshot: snap, Warnings: warnings}, nil
}

func (uc *snapshotUseCase) Export(ctx context.Context, storeID, date string) (*dto.SnapshotExport, error) {
	current, err := uc.Get(ctx, storeID, date)
	if err != nil {
		return nil, err
	}

	prior, err := previousDay(date)
	if err != nil {
		return nil, err
	}

	priorSnap, err := uc.repo.Get(ctx, storeID, prior)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load prior snapshot", err)
	}
	priorStock := model.QuantityMap{}
	if priorSnap != nil {
		priorStock = priorSnap.Quantities
	}

	priorOrders, err := uc.orders.OrdersForDay(ctx, storeID, prior)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load prior orders", err)
	}
	priorOrdered := reconcile.SumOrders(priorOrders)

	catalogDoc, err := uc.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	keys := reconcile.Keys(catalogDoc, current.Quantities, priorOrdered)
	summary := reconcile.Summarize(keys, current.Quantities, priorOrdered)

	return &dto.SnapshotExport{
		StoreID:      storeID,
		Date:         date,
		CurrentStock: current.Quantities,
		PriorStock:   priorStock,
		Items:        summary.Items,
		TotalSold:    summary.TotalSold,
		TotalLoss:    summary.TotalLoss,
	}, nil
}

// lock serializes saves for one (store, date) key across processes. Held
// briefly; a contending save fails fast instead of queueing.
func (uc *snapshotUseCase) lock(ctx context.Context, storeID, date string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}
	key := fmt.Sprintf("lock:snapshot:%s:%s", storeID, date)
	token := uuid.New().String()
	ok, err := uc.cache.AcquireLock(ctx, key, token, uc.cfg.SaveLockTTL)
	if err != nil {
		uc.logger.Warn("snapshot save lock unavailable, proceeding without it", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, errs.New(errs.KindBusinessRule, "save snapshot", "another save for this store and day is in progress")
	}
	return func() {
		if err := uc.cache.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.logger.Warn("snapshot save lock release failed", zap.Error(err))
		}
	}, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return errs.Newf(errs.KindValidation, "parse date", "invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

func previousDay(date string) (string, error) {
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return "", errs.Newf(errs.KindValidation, "parse date", "invalid date %q: expected YYYY-MM-DD", date)
	}
	return parsed.AddDate(0, 0, -1).Format(model.DateLayout), nil
}
