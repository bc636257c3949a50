package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
)

type fakeRepo struct {
	doc   *model.MasterCatalog
	saves int
	err   error
}

func (f *fakeRepo) Get(context.Context) (*model.MasterCatalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeRepo) Save(_ context.Context, c *model.MasterCatalog) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	f.doc = c
	return nil
}

func newTestUC(repo *fakeRepo) *catalogUseCase {
	retrier := retry.NewController(3, 32*time.Second, logger.NewNop(),
		retry.WithSleep(func(time.Duration) {}))
	return NewCatalogUseCase(repo, nil, retrier, time.Minute, logger.NewNop()).(*catalogUseCase)
}

func adminCtx() context.Context {
	return auth.WithUser(context.Background(), "admin-1", auth.RoleAdmin)
}

func TestGetSeedsDefaultCatalog(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUC(repo)

	doc, err := uc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Categories)
	assert.Equal(t, 1, repo.saves)
}

func TestAddItemAppendsInOrder(t *testing.T) {
	repo := &fakeRepo{doc: model.DefaultCatalog()}
	uc := newTestUC(repo)

	doc, err := uc.AddItem(adminCtx(), "MILKSHAKE", "Guava")
	require.NoError(t, err)

	items := doc.Categories[0].Items
	assert.Equal(t, "Guava", items[len(items)-1])
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	repo := &fakeRepo{doc: model.DefaultCatalog()}
	uc := newTestUC(repo)

	_, err := uc.AddItem(adminCtx(), "MILKSHAKE", "Mango")
	require.Error(t, err)
	assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
}

func TestMutationRequiresAdmin(t *testing.T) {
	repo := &fakeRepo{doc: model.DefaultCatalog()}
	uc := newTestUC(repo)

	staff := auth.WithUser(context.Background(), "staff-1", auth.RoleStaff)
	_, err := uc.AddItem(staff, "MILKSHAKE", "Guava")
	require.Error(t, err)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))
	assert.Equal(t, 0, repo.saves)
}

func TestRemoveItemUnknownIsNotFound(t *testing.T) {
	repo := &fakeRepo{doc: model.DefaultCatalog()}
	uc := newTestUC(repo)

	_, err := uc.RemoveItem(adminCtx(), "MILKSHAKE", "Durian")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestMutationIsFullOverwrite(t *testing.T) {
	repo := &fakeRepo{doc: model.DefaultCatalog()}
	uc := newTestUC(repo)

	_, err := uc.AddCategory(adminCtx(), "FRIES")
	require.NoError(t, err)
	_, err = uc.RemoveCategory(adminCtx(), "SUPPLIES")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.saves)
	names := make([]string, 0, len(repo.doc.Categories))
	for _, c := range repo.doc.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"MILKSHAKE", "ICECREAM", "FRIES"}, names)
}
