package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/internal/catalog"
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/pkg/cache"
	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
	"github.com/dailycount/stockledger-service/pkg/retry"
)

const cacheKey = "catalog:master"

type catalogUseCase struct {
	repo     catalog.Repository
	cache    *cache.RedisClient
	retrier  *retry.Controller
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cacheClient *cache.RedisClient, retrier *retry.Controller, cacheTTL time.Duration, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:     repo,
		cache:    cacheClient,
		retrier:  retrier,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *catalogUseCase) Get(ctx context.Context) (*model.MasterCatalog, error) {
	if uc.cache != nil {
		var cached model.MasterCatalog
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	doc, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "load catalog", err)
	}
	if doc == nil {
		// First run: seed the default catalog so every consumer sees the
		// same key set.
		doc = model.DefaultCatalog()
		doc.UpdatedAt = time.Now()
		if err := uc.retrier.Do(ctx, "seed catalog", func(ctx context.Context) error {
			return uc.repo.Save(ctx, doc)
		}); err != nil {
			return nil, err
		}
		uc.logger.Info("seeded default master catalog",
			zap.Int("categories", len(doc.Categories)))
	}

	uc.fillCache(ctx, doc)
	return doc, nil
}

func (uc *catalogUseCase) AddCategory(ctx context.Context, name string) (*model.MasterCatalog, error) {
	if name == "" {
		return nil, errs.New(errs.KindValidation, "add category", "category name is required")
	}
	return uc.mutate(ctx, "add category", func(doc *model.MasterCatalog) error {
		for _, cat := range doc.Categories {
			if cat.Name == name {
				return errs.Newf(errs.KindBusinessRule, "add category", "category %q already exists", name)
			}
		}
		doc.Categories = append(doc.Categories, model.Category{Name: name, Items: []string{}})
		return nil
	})
}

func (uc *catalogUseCase) RemoveCategory(ctx context.Context, name string) (*model.MasterCatalog, error) {
	return uc.mutate(ctx, "remove category", func(doc *model.MasterCatalog) error {
		for i, cat := range doc.Categories {
			if cat.Name == name {
				doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
				return nil
			}
		}
		return errs.Newf(errs.KindNotFound, "remove category", "category %q not found", name)
	})
}

func (uc *catalogUseCase) AddItem(ctx context.Context, category, item string) (*model.MasterCatalog, error) {
	if category == "" || item == "" {
		return nil, errs.New(errs.KindValidation, "add item", "category and item are required")
	}
	return uc.mutate(ctx, "add item", func(doc *model.MasterCatalog) error {
		if doc.HasItem(category, item) {
			return errs.Newf(errs.KindBusinessRule, "add item", "item %q already exists in %q", item, category)
		}
		for i, cat := range doc.Categories {
			if cat.Name == category {
				doc.Categories[i].Items = append(doc.Categories[i].Items, item)
				return nil
			}
		}
		return errs.Newf(errs.KindNotFound, "add item", "category %q not found", category)
	})
}

func (uc *catalogUseCase) RemoveItem(ctx context.Context, category, item string) (*model.MasterCatalog, error) {
	return uc.mutate(ctx, "remove item", func(doc *model.MasterCatalog) error {
		for i, cat := range doc.Categories {
			if cat.Name != category {
				continue
			}
			for j, existing := range cat.Items {
				if existing == item {
					doc.Categories[i].Items = append(cat.Items[:j], cat.Items[j+1:]...)
					return nil
				}
			}
		}
		return errs.Newf(errs.KindNotFound, "remove item", "item %q not found in %q", item, category)
	})
}

func (uc *catalogUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, cacheKey)
}

// mutate applies fn to a fresh copy of the catalog and writes the whole
// document back through the retry controller. Only admins may mutate.
func (uc *catalogUseCase) mutate(ctx context.Context, label string, fn func(*model.MasterCatalog) error) (*model.MasterCatalog, error) {
	if !auth.IsAdmin(ctx) {
		return nil, errs.New(errs.KindPermission, label, "catalog mutation requires the admin role")
	}

	doc, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc.UpdatedAt = time.Now()

	if err := uc.retrier.Do(ctx, label, func(ctx context.Context) error {
		return uc.repo.Save(ctx, doc)
	}); err != nil {
		return nil, err
	}

	if err := uc.Invalidate(ctx); err != nil {
		uc.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
	uc.fillCache(ctx, doc)
	return doc, nil
}

func (uc *catalogUseCase) fillCache(ctx context.Context, doc *model.MasterCatalog) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetJSON(ctx, cacheKey, doc, uc.cacheTTL); err != nil {
		uc.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}
