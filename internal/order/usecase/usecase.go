package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/internal/advisory"
	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/backup"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/order"
	"github.com/dailycount/stockledger-service/internal/order/dto"
	"github.com/dailycount/stockledger-service/internal/reconcile"
	"github.com/dailycount/stockledger-service/internal/sanitize"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
	"github.com/dailycount/stockledger-service/pkg/search"
)

const ordersIndex = "orders"

const ordersMapping = `{
	"mappings": {
		"properties": {
			"store_id": { "type": "keyword" },
			"placed_by": { "type": "keyword" },
			"order_date": { "type": "date" },
			"delivery_date": { "type": "date" },
			"rendered_text": { "type": "text" }
		}
	}
}`

type Config struct {
	MaxQuantity float64
}

type orderUseCase struct {
	repo      order.Repository
	snapshots order.SnapshotSource
	catalog   order.CatalogSource
	stores    order.StoreSource
	advisory  advisory.Provider
	retrier   *retry.Controller
	backups   *backup.Cache
	es        *search.Client
	cfg       Config
	now       func() time.Time
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	snapshots order.SnapshotSource,
	catalogSrc order.CatalogSource,
	stores order.StoreSource,
	advisoryProvider advisory.Provider,
	retrier *retry.Controller,
	backups *backup.Cache,
	es *search.Client,
	cfg Config,
	log logger.ZapLogger,
) order.UseCase {
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = sanitize.DefaultMaxQuantity
	}
	if advisoryProvider == nil {
		advisoryProvider = advisory.Noop{}
	}
	return &orderUseCase{
		repo:      repo,
		snapshots: snapshots,
		catalog:   catalogSrc,
		stores:    stores,
		advisory:  advisoryProvider,
		retrier:   retrier,
		backups:   backups,
		es:        es,
		cfg:       cfg,
		now:       time.Now,
		logger:    log,
	}
}

func (uc *orderUseCase) Create(ctx context.Context, input *dto.CreateOrderInput) (*model.OrderRecord, error) {
	if !auth.IsAdmin(ctx) {
		return nil, errs.New(errs.KindPermission, "create order", "placing an order requires the admin role")
	}
	placedBy := auth.UserID(ctx)
	if placedBy == "" {
		return nil, errs.New(errs.KindAuth, "create order", "a signed-in user is required to place an order")
	}

	res := sanitize.Snapshot(input.Quantities, uc.cfg.MaxQuantity)
	return uc.create(ctx, input.StoreID, res.Quantities, placedBy)
}

func (uc *orderUseCase) create(ctx context.Context, storeID string, quantities map[string]float64, placedBy string) (*model.OrderRecord, error) {
	nonZero := 0
	for _, qty := range quantities {
		if qty > 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return nil, errs.New(errs.KindBusinessRule, "create order", "refusing to place an empty order")
	}

	storeRow, err := uc.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	satelliteName := ""
	if satellite, err := uc.stores.RelatedStore(ctx, storeID); err != nil {
		uc.logger.Warn("satellite lookup failed, rendering without it", zap.Error(err))
	} else if satellite != nil {
		satelliteName = satellite.DisplayName
	}

	catalogDoc, err := uc.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	orderDay := now.Format(model.DateLayout)

	// The day's count rides along on the order for audit. Not having counted
	// yet is fine; the audit copy is then empty.
	snapshotAtOrder := model.QuantityMap{}
	if snap, err := uc.snapshots.Get(ctx, storeID, orderDay); err != nil {
		uc.logger.Warn("snapshot lookup for order audit failed", zap.Error(err))
	} else if snap != nil {
		snapshotAtOrder = snap.Quantities.Clone()
	}

	deliveryDate := now.AddDate(0, 0, 1)
	adv, err := uc.advisory.Fetch(ctx, deliveryDate)
	if err != nil {
		uc.logger.Warn("advisory fetch failed, storing order without it", zap.Error(err))
		adv = model.Advisory{Holidays: []model.HolidayInfo{}}
	}

	record := &model.OrderRecord{
		ID:              fmt.Sprintf("%s-%d", storeID, now.UnixMilli()),
		StoreID:         storeID,
		OrderDate:       now,
		DeliveryDate:    deliveryDate,
		Quantities:      model.QuantityMap(quantities).Clone(),
		RenderedText:    order.Render(storeRow.DisplayName, catalogDoc, quantities, satelliteName),
		SnapshotAtOrder: snapshotAtOrder,
		Advisory:        adv,
		PlacedBy:        placedBy,
		CreatedAt:       now,
	}

	if err := uc.retrier.Do(ctx, "save order", func(ctx context.Context) error {
		return uc.repo.Insert(ctx, record)
	}); err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			uc.backups.Put(backup.Entry{
				StoreID:    storeID,
				StockDate:  orderDay,
				Kind:       "order",
				Quantities: record.Quantities,
				RecordedBy: placedBy,
			})
			uc.logger.Warn("order save exhausted retries, payload stashed locally",
				zap.String("store_id", storeID),
				zap.String("order_id", record.ID))
			return nil, errs.Wrap(errs.KindTransient,
				"order saved to local backup, retry when online", err)
		}
		return nil, err
	}

	uc.backups.Delete(storeID, orderDay)

	go uc.indexOrder(context.WithoutCancel(ctx), record)

	uc.logger.Info("order placed",
		zap.String("order_id", record.ID),
		zap.String("store_id", storeID),
		zap.Time("delivery_date", deliveryDate))
	return record, nil
}

func (uc *orderUseCase) indexOrder(ctx context.Context, record *model.OrderRecord) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, ordersIndex, ordersMapping)
	if err := uc.es.Index(ctx, ordersIndex, record.ID, record); err != nil {
		uc.logger.Error("failed to index order", zap.String("order_id", record.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) List(ctx context.Context, storeID, from, to string) ([]model.OrderRecord, error) {
	records, err := uc.repo.ListRange(ctx, storeID, from, to)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "list orders", err)
	}
	return records, nil
}

func (uc *orderUseCase) OrdersForDay(ctx context.Context, storeID, day string) ([]model.OrderRecord, error) {
	records, err := uc.repo.ListByDay(ctx, storeID, day)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load orders for day", err)
	}
	return records, nil
}

// Defaults reconciles today's count against yesterday's summed orders and
// suggests the positive sold figures as reorder quantities.
func (uc *orderUseCase) Defaults(ctx context.Context, storeID string) (*dto.OrderDefaults, error) {
	today := uc.now().Format(model.DateLayout)
	yesterday := uc.now().AddDate(0, 0, -1).Format(model.DateLayout)

	current := model.QuantityMap{}
	if snap, err := uc.snapshots.Get(ctx, storeID, today); err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load snapshot", err)
	} else if snap != nil {
		current = snap.Quantities
	}

	priorOrders, err := uc.OrdersForDay(ctx, storeID, yesterday)
	if err != nil {
		return nil, err
	}
	priorOrdered := reconcile.SumOrders(priorOrders)

	catalogDoc, err := uc.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	keys := reconcile.Keys(catalogDoc, current, priorOrdered)
	summary := reconcile.Summarize(keys, current, priorOrdered)

	suggested := model.QuantityMap{}
	for _, item := range summary.Items {
		if item.Sold > 0 {
			suggested[item.Key] = item.Sold
		}
	}

	return &dto.OrderDefaults{
		StoreID:      storeID,
		SnapshotDate: today,
		Suggested:    suggested,
		Summary:      summary,
	}, nil
}

func (uc *orderUseCase) RecoverBackup(ctx context.Context, storeID, day string) (*model.OrderRecord, error) {
	// Replaying a stranded order places a new visible order, so the gate
	// matches Create.
	if !auth.IsAdmin(ctx) {
		return nil, errs.New(errs.KindPermission, "recover order", "placing an order requires the admin role")
	}
	if auth.UserID(ctx) == "" {
		return nil, errs.New(errs.KindAuth, "recover order", "a signed-in user is required to place an order")
	}

	entry, ok := uc.backups.Get(storeID, day)
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "recover order", "no local backup for store %q on %s", storeID, day)
	}
	return uc.create(ctx, storeID, entry.Quantities, entry.RecordedBy)
}
