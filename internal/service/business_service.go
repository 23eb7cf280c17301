package service

import (
	"context"
	"time"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/events"
	"fieldmate/internal/repo"
)

type BusinessInput struct {
	Name        string
	Description string
	Revenue     int64
	StartDate   time.Time
	EndDate     time.Time
	MemberIDs   []int64
}

type BusinessPatch struct {
	Name        *string
	Description *string
	Revenue     *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

type BusinessService struct {
	repo    repo.BusinessRepo
	clients repo.ClientRepo
	members repo.MemberRepo
	events  events.Publisher
}

func NewBusinessService(r repo.BusinessRepo, clients repo.ClientRepo, members repo.MemberRepo, pub events.Publisher) *BusinessService {
	return &BusinessService{repo: r, clients: clients, members: members, events: pub}
}

func (s *BusinessService) Create(ctx context.Context, actor dom.Actor, clientID int64, in BusinessInput) (dom.Business, error) {
	client, err := s.client(ctx, actor, clientID)
	if err != nil {
		return dom.Business{}, err
	}
	b := dom.Business{
		ClientID:  client.ID,
		CompanyID: client.CompanyID,
		Revenue:   in.Revenue,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if b.Name, err = requireText("name", in.Name, 100); err != nil {
		return dom.Business{}, err
	}
	if b.Description, err = optionalText("description", in.Description, 1000); err != nil {
		return dom.Business{}, err
	}
	if err := checkBusiness(b); err != nil {
		return dom.Business{}, err
	}
	if b.MemberIDs, err = s.companyMembers(ctx, actor.CompanyID, in.MemberIDs); err != nil {
		return dom.Business{}, err
	}
	b, err = s.repo.Create(ctx, b)
	if err != nil {
		return dom.Business{}, err
	}
	s.events.Publish(dom.EventBusinessCreated, b.CompanyID, b.ID)
	return b, nil
}

func (s *BusinessService) Get(ctx context.Context, actor dom.Actor, id int64) (dom.Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Business{}, notFound(err)
	}
	if b.CompanyID != actor.CompanyID {
		return dom.Business{}, ErrNotFound
	}
	return b, nil
}

func (s *BusinessService) ListByClient(ctx context.Context, actor dom.Actor, clientID int64) ([]dom.Business, error) {
	if _, err := s.client(ctx, actor, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID)
}

func (s *BusinessService) Update(ctx context.Context, actor dom.Actor, id int64, p BusinessPatch) (dom.Business, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return dom.Business{}, err
	}
	if p.Name != nil {
		if b.Name, err = requireText("name", *p.Name, 100); err != nil {
			return dom.Business{}, err
		}
	}
	if p.Description != nil {
		if b.Description, err = optionalText("description", *p.Description, 1000); err != nil {
			return dom.Business{}, err
		}
	}
	if p.Revenue != nil {
		b.Revenue = *p.Revenue
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = *p.EndDate
	}
	if err := checkBusiness(b); err != nil {
		return dom.Business{}, err
	}
	b, err = s.repo.Update(ctx, b)
	if err != nil {
		return dom.Business{}, notFound(err)
	}
	s.events.Publish(dom.EventBusinessUpdated, b.CompanyID, b.ID)
	return b, nil
}

func (s *BusinessService) Delete(ctx context.Context, actor dom.Actor, id int64) error {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, b.ID); err != nil {
		return notFound(err)
	}
	s.events.Publish(dom.EventBusinessDeleted, b.CompanyID, b.ID)
	return nil
}

func (s *BusinessService) Members(ctx context.Context, actor dom.Actor, id int64) ([]dom.Member, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, b.ID)
}

// SetMembers replaces the member set of a business. Every member must belong
// to the actor's company.
func (s *BusinessService) SetMembers(ctx context.Context, actor dom.Actor, id int64, memberIDs []int64) ([]dom.Member, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.companyMembers(ctx, actor.CompanyID, memberIDs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceMembers(ctx, b.ID, ids); err != nil {
		return nil, err
	}
	s.events.Publish(dom.EventBusinessUpdated, b.CompanyID, b.ID)
	return s.repo.Members(ctx, b.ID)
}

func (s *BusinessService) client(ctx context.Context, actor dom.Actor, clientID int64) (dom.Client, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return dom.Client{}, notFound(err)
	}
	if c.CompanyID != actor.CompanyID {
		return dom.Client{}, ErrNotFound
	}
	return c, nil
}

func (s *BusinessService) companyMembers(ctx context.Context, companyID int64, ids []int64) ([]int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	n, err := s.members.CountInCompany(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	if n != len(ids) {
		return nil, invalid("member_ids contains members of another company")
	}
	return ids, nil
}

func checkBusiness(b dom.Business) error {
	if b.Revenue < 0 {
		return invalid("revenue must not be negative")
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return invalid("start_date and end_date are required")
	}
	if b.EndDate.Before(b.StartDate) {
		return invalid("end_date is before start_date")
	}
	return nil
}
