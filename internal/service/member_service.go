package service

import (
	"context"
	"errors"
	"strings"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/events"
	"fieldmate/internal/repo"
	"fieldmate/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// MemberInput carries the editable fields of a member.
type MemberInput struct {
	Name        string
	LoginID     string
	Password    string
	Phone       string
	StaffRank   string
	StaffNumber string
}

// MemberPatch is a partial update; nil fields are left alone.
type MemberPatch struct {
	Name        *string
	Password    *string
	Phone       *string
	StaffRank   *string
	StaffNumber *string
}

// MemberService handles companies, members and credential checks.
type MemberService struct {
	repo   repo.MemberRepo
	events events.Publisher
	cost   int
}

func NewMemberService(r repo.MemberRepo, pub events.Publisher) *MemberService {
	return &MemberService{repo: r, events: pub, cost: bcrypt.DefaultCost}
}

// RegisterCompany creates a company with in as its leader.
func (s *MemberService) RegisterCompany(ctx context.Context, companyName string, in MemberInput) (dom.Company, dom.Member, error) {
	name, err := requireText("company name", companyName, 100)
	if err != nil {
		return dom.Company{}, dom.Member{}, err
	}
	m, err := s.buildMember(in)
	if err != nil {
		return dom.Company{}, dom.Member{}, err
	}
	m.Role = dom.RoleLeader
	company, leader, err := s.repo.CreateCompany(ctx, name, m)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Company{}, dom.Member{}, conflict("login id %q is taken", m.LoginID)
		}
		return dom.Company{}, dom.Member{}, err
	}
	return company, leader, nil
}

// ValidateCredentials checks login id and password; returns the member if valid.
func (s *MemberService) ValidateCredentials(ctx context.Context, loginID, password string) (dom.Member, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return dom.Member{}, ErrUnauthorized
	}
	m, err := s.repo.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Member{}, ErrUnauthorized
		}
		return dom.Member{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return dom.Member{}, ErrUnauthorized
	}
	return m, nil
}

// ByID loads a member without access checks; used for token reissue.
func (s *MemberService) ByID(ctx context.Context, id int64) (dom.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	return m, notFound(err)
}

func (s *MemberService) Company(ctx context.Context, actor dom.Actor) (dom.Company, error) {
	c, err := s.repo.GetCompany(ctx, actor.CompanyID)
	return c, notFound(err)
}

// Get returns a member of the actor's company.
func (s *MemberService) Get(ctx context.Context, actor dom.Actor, id int64) (dom.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Member{}, notFound(err)
	}
	if m.CompanyID != actor.CompanyID {
		return dom.Member{}, ErrNotFound
	}
	return m, nil
}

func (s *MemberService) List(ctx context.Context, actor dom.Actor, companyID int64, name string) ([]dom.Member, error) {
	if companyID != actor.CompanyID {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, companyID, strings.TrimSpace(name))
}

// Create adds a staff member; leaders only.
func (s *MemberService) Create(ctx context.Context, actor dom.Actor, companyID int64, in MemberInput) (dom.Member, error) {
	if companyID != actor.CompanyID || !actor.IsLeader() {
		return dom.Member{}, ErrForbidden
	}
	m, err := s.buildMember(in)
	if err != nil {
		return dom.Member{}, err
	}
	m.CompanyID = companyID
	m.Role = dom.RoleStaff
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Member{}, conflict("login id %q is taken", m.LoginID)
		}
		return dom.Member{}, err
	}
	s.events.Publish(dom.EventMemberCreated, companyID, created.ID)
	return created, nil
}

// Update lets members edit themselves and leaders edit anyone in the company.
func (s *MemberService) Update(ctx context.Context, actor dom.Actor, id int64, p MemberPatch) (dom.Member, error) {
	if id != actor.MemberID && !actor.IsLeader() {
		return dom.Member{}, ErrForbidden
	}
	m, err := s.Get(ctx, actor, id)
	if err != nil {
		return dom.Member{}, err
	}
	if p.Name != nil {
		if m.Name, err = requireText("name", *p.Name, 50); err != nil {
			return dom.Member{}, err
		}
	}
	if p.Phone != nil {
		if m.Phone, err = optionalPhone("phone", *p.Phone); err != nil {
			return dom.Member{}, err
		}
	}
	if p.StaffRank != nil {
		if m.StaffRank, err = optionalText("staff rank", *p.StaffRank, 30); err != nil {
			return dom.Member{}, err
		}
	}
	if p.StaffNumber != nil {
		if m.StaffNumber, err = optionalText("staff number", *p.StaffNumber, 30); err != nil {
			return dom.Member{}, err
		}
	}
	if p.Password != nil {
		if m.PasswordHash, err = s.hash(*p.Password); err != nil {
			return dom.Member{}, err
		}
	}
	m, err = s.repo.Update(ctx, m)
	if err != nil {
		return dom.Member{}, notFound(err)
	}
	s.events.Publish(dom.EventMemberUpdated, m.CompanyID, m.ID)
	return m, nil
}

// Delete removes a member; leaders only and never themselves.
func (s *MemberService) Delete(ctx context.Context, actor dom.Actor, id int64) error {
	if !actor.IsLeader() || id == actor.MemberID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, actor.CompanyID, id); err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return conflict("member %d still has tasks", id)
		}
		return notFound(err)
	}
	s.events.Publish(dom.EventMemberDeleted, actor.CompanyID, id)
	return nil
}

func (s *MemberService) buildMember(in MemberInput) (dom.Member, error) {
	var (
		m   dom.Member
		err error
	)
	if m.Name, err = requireText("name", in.Name, 50); err != nil {
		return m, err
	}
	if m.LoginID, err = requireText("login id", in.LoginID, 50); err != nil {
		return m, err
	}
	if m.Phone, err = optionalPhone("phone", in.Phone); err != nil {
		return m, err
	}
	if m.StaffRank, err = optionalText("staff rank", in.StaffRank, 30); err != nil {
		return m, err
	}
	if m.StaffNumber, err = optionalText("staff number", in.StaffNumber, 30); err != nil {
		return m, err
	}
	m.PasswordHash, err = s.hash(in.Password)
	return m, err
}

func (s *MemberService) hash(password string) (string, error) {
	if len(password) < 8 {
		return "", invalid("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return "", invalid("password must be at most 72 bytes")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
