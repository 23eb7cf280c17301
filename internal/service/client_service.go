package service

import (
	"context"
	"strconv"
	"strings"

	"fieldmate/internal/cache"
	dom "fieldmate/internal/domain"
	"fieldmate/internal/events"
	"fieldmate/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type ClientInput struct {
	Name     string
	Phone    string
	SalesRep dom.SalesRepresentative
}

type ClientPatch struct {
	Name         *string
	Phone        *string
	SRName       *string
	SRPhone      *string
	SRDepartment *string
}

type ClientService struct {
	repo   repo.ClientRepo
	cache  *cache.ListCache
	events events.Publisher
	logger *zap.Logger
	sf     singleflight.Group
}

// NewClientService creates a ClientService. If c is nil, caching is disabled.
func NewClientService(r repo.ClientRepo, c *cache.ListCache, pub events.Publisher, logger *zap.Logger) *ClientService {
	return &ClientService{repo: r, cache: c, events: pub, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, actor dom.Actor, in ClientInput) (dom.Client, error) {
	var (
		c   = dom.Client{CompanyID: actor.CompanyID}
		err error
	)
	if c.Name, err = requireText("name", in.Name, 100); err != nil {
		return dom.Client{}, err
	}
	if c.Phone, err = normalizePhone("phone", in.Phone); err != nil {
		return dom.Client{}, err
	}
	if c.SalesRep, err = salesRep(in.SalesRep); err != nil {
		return dom.Client{}, err
	}
	c, err = s.repo.Create(ctx, c)
	if err != nil {
		return dom.Client{}, err
	}
	s.invalidateCache(ctx, actor.CompanyID)
	s.events.Publish(dom.EventClientCreated, c.CompanyID, c.ID)
	return c, nil
}

// Get returns a live client of the actor's company.
func (s *ClientService) Get(ctx context.Context, actor dom.Actor, id int64) (dom.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Client{}, notFound(err)
	}
	if c.CompanyID != actor.CompanyID {
		return dom.Client{}, ErrNotFound
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, actor dom.Actor, companyID int64, q dom.ClientQuery) ([]dom.Client, error) {
	if companyID != actor.CompanyID {
		return nil, ErrForbidden
	}
	q.Name = strings.TrimSpace(q.Name)
	switch q.Sort {
	case "":
		q.Sort = dom.ClientSortCreatedAt
	case dom.ClientSortCreatedAt, dom.ClientSortName:
	default:
		return nil, invalid("sort must be createdAt or name")
	}
	if s.cache == nil {
		return s.repo.List(ctx, companyID, q)
	}

	ver, err := s.cache.ClientsVersion(ctx, companyID)
	if err != nil {
		s.logger.Warn("client cache version", zap.Error(err))
		return s.repo.List(ctx, companyID, q)
	}
	key := strconv.FormatInt(companyID, 10) + ":" + strconv.FormatInt(ver, 10) + ":" + string(q.Sort) + ":" + strings.ToLower(q.Name)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetClients(ctx, companyID, ver, q); err == nil && list != nil {
			return list, nil
		} else if err != nil {
			s.logger.Warn("client cache read", zap.Error(err))
		}
		list, err := s.repo.List(ctx, companyID, q)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetClients(ctx, companyID, ver, q, list); err != nil {
			s.logger.Warn("client cache write", zap.Error(err))
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Client), nil
}

func (s *ClientService) Update(ctx context.Context, actor dom.Actor, id int64, p ClientPatch) (dom.Client, error) {
	c, err := s.Get(ctx, actor, id)
	if err != nil {
		return dom.Client{}, err
	}
	if p.Name != nil {
		if c.Name, err = requireText("name", *p.Name, 100); err != nil {
			return dom.Client{}, err
		}
	}
	if p.Phone != nil {
		if c.Phone, err = normalizePhone("phone", *p.Phone); err != nil {
			return dom.Client{}, err
		}
	}
	rep := c.SalesRep
	if p.SRName != nil {
		rep.Name = *p.SRName
	}
	if p.SRPhone != nil {
		rep.Phone = *p.SRPhone
	}
	if p.SRDepartment != nil {
		rep.Department = *p.SRDepartment
	}
	if c.SalesRep, err = salesRep(rep); err != nil {
		return dom.Client{}, err
	}
	c, err = s.repo.Update(ctx, c)
	if err != nil {
		return dom.Client{}, notFound(err)
	}
	s.invalidateCache(ctx, c.CompanyID)
	s.events.Publish(dom.EventClientUpdated, c.CompanyID, c.ID)
	return c, nil
}

// Delete soft-deletes a client; leaders only.
func (s *ClientService) Delete(ctx context.Context, actor dom.Actor, id int64) error {
	if !actor.IsLeader() {
		return ErrForbidden
	}
	if err := s.repo.SoftDelete(ctx, actor.CompanyID, id); err != nil {
		return notFound(err)
	}
	s.invalidateCache(ctx, actor.CompanyID)
	s.events.Publish(dom.EventClientDeleted, actor.CompanyID, id)
	return nil
}

func (s *ClientService) invalidateCache(ctx context.Context, companyID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateClients(ctx, companyID); err != nil {
		s.logger.Warn("client cache invalidate", zap.Int64("company_id", companyID), zap.Error(err))
	}
}

func salesRep(in dom.SalesRepresentative) (dom.SalesRepresentative, error) {
	var (
		out dom.SalesRepresentative
		err error
	)
	if out.Name, err = optionalText("sales representative name", in.Name, 50); err != nil {
		return out, err
	}
	if out.Department, err = optionalText("sales representative department", in.Department, 50); err != nil {
		return out, err
	}
	out.Phone, err = optionalPhone("sales representative phone", in.Phone)
	return out, err
}
