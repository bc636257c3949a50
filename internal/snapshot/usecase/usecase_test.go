package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/backup"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/snapshot/dto"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
)

type memRepo struct {
	snaps    map[string]*model.StockSnapshot
	failWith error
	attempts int
}

func newMemRepo() *memRepo {
	return &memRepo{snaps: map[string]*model.StockSnapshot{}}
}

func (m *memRepo) key(storeID, date string) string { return storeID + "|" + date }

func (m *memRepo) Get(_ context.Context, storeID, date string) (*model.StockSnapshot, error) {
	snap, ok := m.snaps[m.key(storeID, date)]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

func (m *memRepo) Upsert(_ context.Context, snap *model.StockSnapshot) error {
	m.attempts++
	if m.failWith != nil {
		return m.failWith
	}
	m.snaps[m.key(snap.StoreID, snap.StockDate)] = snap
	return nil
}

type memOrders struct {
	byDay map[string][]model.OrderRecord
}

func (m *memOrders) OrdersForDay(_ context.Context, storeID, day string) ([]model.OrderRecord, error) {
	return m.byDay[storeID+"|"+day], nil
}

type staticCatalog struct{}

func (staticCatalog) Get(context.Context) (*model.MasterCatalog, error) {
	return model.DefaultCatalog(), nil
}

type fixture struct {
	uc      *snapshotUseCase
	repo    *memRepo
	orders  *memOrders
	backups *backup.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	orders := &memOrders{byDay: map[string][]model.OrderRecord{}}
	backups := backup.NewCache(time.Hour)
	retrier := retry.NewController(5, 32*time.Second, logger.NewNop(),
		retry.WithSleep(func(time.Duration) {}))

	uc := NewSnapshotUseCase(repo, orders, staticCatalog{}, retrier, backups, nil,
		Config{MaxQuantity: 1_000_000}, logger.NewNop()).(*snapshotUseCase)
	uc.now = func() time.Time {
		return time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	}
	return &fixture{uc: uc, repo: repo, orders: orders, backups: backups}
}

func staffCtx() context.Context {
	return auth.WithUser(context.Background(), "ravi", auth.RoleStaff)
}

func TestPutThenGetRoundTrip(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi", res.Snapshot.RecordedBy)

	snap, err := f.uc.Get(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 5}, snap.Quantities)
}

func TestPutLastWriteWins(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0, "SUPPLIES-Cups": 40.0},
	})
	require.NoError(t, err)

	_, err = f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 7.0},
	})
	require.NoError(t, err)

	snap, err := f.uc.Get(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)
	// Full replacement: only the second payload remains.
	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 7}, snap.Quantities)
}

func TestPutRejectsEmptySnapshot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 0.0},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
	assert.Zero(t, f.repo.attempts)
}

func TestPutRejectsFutureDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-16",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestPutRequiresIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Put(context.Background(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestPutExhaustionWritesBackup(t *testing.T) {
	f := newFixture(t)
	f.repo.failWith = errors.New("dial tcp: connection refused")

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})

	require.Error(t, err)
	assert.Equal(t, 5, f.repo.attempts)
	assert.True(t, errors.Is(err, retry.ErrExhausted))
	assert.Equal(t, errs.KindTransient, errs.KindOf(err))
	assert.Contains(t, errs.Label(err), "local backup")

	entry, ok := f.backups.Get("fc-road", "2024-01-15")
	require.True(t, ok)
	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 5}, entry.Quantities)
	assert.Equal(t, "ravi", entry.RecordedBy)
}

func TestPutFatalErrorSingleAttemptNoBackup(t *testing.T) {
	f := newFixture(t)
	f.repo.failWith = errs.New(errs.KindPermission, "upsert", "permission denied")

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})

	require.Error(t, err)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))
	assert.Equal(t, 1, f.repo.attempts)
	_, ok := f.backups.Get("fc-road", "2024-01-15")
	assert.False(t, ok)
}

func TestRecoverBackupReplaysStrandedSave(t *testing.T) {
	f := newFixture(t)
	f.repo.failWith = errors.New("network is unreachable")

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})
	require.Error(t, err)

	// Connectivity comes back; an admin triggers recovery without re-entry.
	f.repo.failWith = nil
	res, err := f.uc.RecoverBackup(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "ravi", res.Snapshot.RecordedBy)

	snap, err := f.uc.Get(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 5}, snap.Quantities)

	_, ok := f.backups.Get("fc-road", "2024-01-15")
	assert.False(t, ok, "recovered payload should leave the backup cache")
}

func TestRecoverBackupWithoutEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecoverBackup(context.Background(), "fc-road", "2024-01-15")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestPutSurfacesSanitizationWarnings(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID: "fc-road",
		Date:    "2024-01-15",
		Quantities: map[string]any{
			"MILKSHAKE-Mango": 5.0,
			"SUPPLIES-Cups":   -3.0,
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "SUPPLIES-Cups")
	assert.Equal(t, 0.0, res.Snapshot.Quantities["SUPPLIES-Cups"])
}

func TestExportReconcilesAgainstPriorDayOrders(t *testing.T) {
	f := newFixture(t)

	f.orders.byDay["fc-road|2024-01-14"] = []model.OrderRecord{
		{Quantities: model.QuantityMap{"MILKSHAKE-Mango": 12}},
		{Quantities: model.QuantityMap{"MILKSHAKE-Mango": 8}},
	}

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"MILKSHAKE-Mango": 5.0},
	})
	require.NoError(t, err)

	export, err := f.uc.Export(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, 15.0, export.TotalSold)
	var mango *float64
	for _, item := range export.Items {
		if item.Key == "MILKSHAKE-Mango" {
			v := item.Sold
			mango = &v
		}
	}
	require.NotNil(t, mango)
	assert.Equal(t, 15.0, *mango)
}

func TestExportKeepsStaleKeysVisible(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Put(staffCtx(), &dto.PutSnapshotInput{
		StoreID:    "fc-road",
		Date:       "2024-01-15",
		Quantities: map[string]any{"RETIRED-Item": 2.0, "MILKSHAKE-Mango": 1.0},
	})
	require.NoError(t, err)

	export, err := f.uc.Export(context.Background(), "fc-road", "2024-01-15")
	require.NoError(t, err)

	found := false
	for _, item := range export.Items {
		if item.Key == "RETIRED-Item" {
			found = true
			assert.True(t, item.Loss)
			assert.Equal(t, -2.0, item.Sold)
		}
	}
	assert.True(t, found, "keys outside the catalog must stay visible")
}
