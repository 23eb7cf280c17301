package service

import (
	"context"
	"strconv"

	"fieldmate/internal/cache"
	dom "fieldmate/internal/domain"
	"fieldmate/internal/events"
	"fieldmate/internal/repo"
	"fieldmate/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type CategoryService struct {
	repo   repo.CategoryRepo
	cache  *cache.ListCache
	events events.Publisher
	logger *zap.Logger
	sf     singleflight.Group
}

// NewCategoryService creates a CategoryService. If c is nil, caching is disabled.
func NewCategoryService(r repo.CategoryRepo, c *cache.ListCache, pub events.Publisher, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: r, cache: c, events: pub, logger: logger}
}

func (s *CategoryService) List(ctx context.Context, actor dom.Actor, companyID int64) ([]dom.Category, error) {
	if companyID != actor.CompanyID {
		return nil, ErrForbidden
	}
	if s.cache == nil {
		return s.repo.List(ctx, companyID)
	}
	ver, err := s.cache.CategoriesVersion(ctx, companyID)
	if err != nil {
		s.logger.Warn("category cache version", zap.Error(err))
		return s.repo.List(ctx, companyID)
	}
	key := strconv.FormatInt(companyID, 10) + ":" + strconv.FormatInt(ver, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetCategories(ctx, companyID, ver); err == nil && list != nil {
			return list, nil
		} else if err != nil {
			s.logger.Warn("category cache read", zap.Error(err))
		}
		list, err := s.repo.List(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetCategories(ctx, companyID, ver, list); err != nil {
			s.logger.Warn("category cache write", zap.Error(err))
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Category), nil
}

// Create adds a category; leaders only. Names are unique per company.
func (s *CategoryService) Create(ctx context.Context, actor dom.Actor, companyID int64, name, color string) (dom.Category, error) {
	if companyID != actor.CompanyID || !actor.IsLeader() {
		return dom.Category{}, ErrForbidden
	}
	var (
		c   = dom.Category{CompanyID: companyID}
		err error
	)
	if c.Name, err = requireText("name", name, 30); err != nil {
		return dom.Category{}, err
	}
	if c.Color, err = normalizeColor(color); err != nil {
		return dom.Category{}, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, conflict("category %q already exists", c.Name)
		}
		return dom.Category{}, err
	}
	s.changed(ctx, companyID, created.ID)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, actor dom.Actor, id int64, name, color *string) (dom.Category, error) {
	if !actor.IsLeader() {
		return dom.Category{}, ErrForbidden
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Category{}, notFound(err)
	}
	if c.CompanyID != actor.CompanyID {
		return dom.Category{}, ErrNotFound
	}
	if name != nil {
		if c.Name, err = requireText("name", *name, 30); err != nil {
			return dom.Category{}, err
		}
	}
	if color != nil {
		if c.Color, err = normalizeColor(*color); err != nil {
			return dom.Category{}, err
		}
	}
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, conflict("category %q already exists", c.Name)
		}
		return dom.Category{}, notFound(err)
	}
	s.changed(ctx, updated.CompanyID, updated.ID)
	return updated, nil
}

// DeleteMany removes the selected categories of the actor's company.
// Tasks that used them keep existing without a category.
func (s *CategoryService) DeleteMany(ctx context.Context, actor dom.Actor, ids []int64) (int64, error) {
	if !actor.IsLeader() {
		return 0, ErrForbidden
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, invalid("ids is required")
	}
	n, err := s.repo.DeleteMany(ctx, actor.CompanyID, ids)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.changed(ctx, actor.CompanyID, 0)
	}
	return n, nil
}

func (s *CategoryService) changed(ctx context.Context, companyID, id int64) {
	if s.cache != nil {
		if err := s.cache.InvalidateCategories(ctx, companyID); err != nil {
			s.logger.Warn("category cache invalidate", zap.Int64("company_id", companyID), zap.Error(err))
		}
	}
	s.events.Publish(dom.EventCategoryChanged, companyID, id)
}
