package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/store"
	"github.com/dailycount/stockledger-service/internal/store/dto"
	"github.com/dailycount/stockledger-service/pkg/cache"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
)

const cacheKey = "stores:all"

type storeUseCase struct {
	repo     store.Repository
	cache    *cache.RedisClient
	retrier  *retry.Controller
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewStoreUseCase(repo store.Repository, cacheClient *cache.RedisClient, retrier *retry.Controller, cacheTTL time.Duration, log logger.ZapLogger) store.UseCase {
	return &storeUseCase{
		repo:     repo,
		cache:    cacheClient,
		retrier:  retrier,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *storeUseCase) CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error) {
	if !auth.IsAdmin(ctx) {
		return nil, errs.New(errs.KindPermission, "create store", "store mutation requires the admin role")
	}
	if input.ID == "" || input.DisplayName == "" {
		return nil, errs.New(errs.KindValidation, "create store", "store id and display name are required")
	}

	existing, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "create store", err)
	}
	if existing != nil {
		return nil, errs.Newf(errs.KindBusinessRule, "create store", "store %q already exists", input.ID)
	}

	s := &model.Store{
		ID:             input.ID,
		DisplayName:    input.DisplayName,
		FirmName:       input.FirmName,
		AreaCode:       input.AreaCode,
		RelatedStoreID: input.RelatedStoreID,
		CreatedAt:      time.Now(),
	}

	if err := uc.retrier.Do(ctx, "create store", func(ctx context.Context) error {
		return uc.repo.Create(ctx, s)
	}); err != nil {
		return nil, err
	}

	uc.dropCache(ctx)
	return s, nil
}

func (uc *storeUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load store", err)
	}
	if s == nil {
		return nil, errs.Newf(errs.KindNotFound, "load store", "store %q not found", id)
	}
	return s, nil
}

func (uc *storeUseCase) ListStores(ctx context.Context) ([]model.Store, error) {
	if uc.cache != nil {
		var cached []model.Store
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("store cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	stores, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "list stores", err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, stores, uc.cacheTTL); err != nil {
			uc.logger.Warn("store cache write failed", zap.Error(err))
		}
	}
	return stores, nil
}

func (uc *storeUseCase) DeleteStore(ctx context.Context, id string) error {
	if !auth.IsAdmin(ctx) {
		return errs.New(errs.KindPermission, "delete store", "store mutation requires the admin role")
	}

	if err := uc.retrier.Do(ctx, "delete store", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	}); err != nil {
		return err
	}

	uc.dropCache(ctx)
	return nil
}

func (uc *storeUseCase) RelatedStore(ctx context.Context, storeID string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "resolve related store", err)
	}
	if s == nil || s.RelatedStoreID == nil || *s.RelatedStoreID == "" {
		return nil, nil
	}
	related, err := uc.repo.FindByID(ctx, *s.RelatedStoreID)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "resolve related store", err)
	}
	// A dangling reference is not an error: the satellite may have been
	// deleted after the hub was configured.
	return related, nil
}

func (uc *storeUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, cacheKey)
}

func (uc *storeUseCase) dropCache(ctx context.Context) {
	if err := uc.Invalidate(ctx); err != nil {
		uc.logger.Warn("store cache invalidation failed", zap.Error(err))
	}
}
